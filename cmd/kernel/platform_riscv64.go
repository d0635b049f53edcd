//go:build riscv64

package main

import (
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/sbi"
)

func newPlatform() sbi.Platform { return sbi.NewHart() }

func newBackend() mem.Backend { return mem.NewHartBackend() }

func kernelLayout() memset.KernelLayout { return memset.CurrentKernelLayout() }
