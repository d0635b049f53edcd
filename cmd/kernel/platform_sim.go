//go:build !riscv64

package main

import (
	"os"

	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/sbi"
)

func newPlatform() sbi.Platform { return sbi.NewSim(os.Stdout) }

// simBase and simPages size the fabricated physical-RAM arena the
// simulated platform runs the kernel over; large enough for a handful of
// processes' worth of page tables and segments without either package
// needing GOARCH-specific constants of its own.
const (
	simBase  mem.PPN = 0x10000
	simPages         = 4096
)

func newBackend() mem.Backend {
	b, err := mem.NewSimBackend(simBase, simPages)
	if err != nil {
		panic("kernel: build simulated backend: " + err.Error())
	}
	return b
}

// kernelLayout fabricates kernel image section boundaries the way every
// other package's tests do (memset_test.go's testLayout, trap's fixture):
// one page apiece for text/rodata/data/bss, with everything after treated
// as free memory for the frame allocator.
func kernelLayout() memset.KernelLayout {
	pg := uint64(config.PGSIZE)
	start := uint64(simBase) * pg
	return memset.KernelLayout{
		TrampolineStart: start,
		TextStart:       start + pg, TextEnd: start + 2*pg,
		RodataStart: start + 2*pg, RodataEnd: start + 3*pg,
		DataStart: start + 3*pg, DataEnd: start + 4*pg,
		BssStart: start + 4*pg, BssEnd: start + 5*pg,
		KernelEnd: start + 5*pg, MemEnd: start + uint64(simPages)*pg,
	}
}
