package task

import (
	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/pagetable"
	"github.com/Direktor799/unnamed-os/internal/switcher"
	"github.com/Direktor799/unnamed-os/internal/trapctx"
)

// NewProcess loads elfData into a fresh address space, writes its initial
// trap context, and returns a PCB ready to be enqueued at Fcfs1 — the Go
// shape of ProcessControlBlock::new plus pid_alloc. kernelMS is the kernel's
// own memory set, into which this pid's guard-paged kernel stack is mapped
// before anything can switch into it; trapHandlerAddr is where __interrupt
// jumps on a user trap; trapReturnAddr is the trampoline entry __switch
// resumes into the first time this process runs.
func NewProcess(alloc *mem.Allocator, pids *PidAllocator, layout memset.KernelLayout, elfData []byte, kernelMS *memset.MemorySet, trapHandlerAddr, trapReturnAddr uint64) (*PCB, error) {
	ms, userSP, entry, err := memset.FromELF(alloc, layout, elfData)
	if err != nil {
		return nil, err
	}

	pid := pids.Alloc()
	kernelSP := config.KernelStackTop(int(pid))
	if err := kernelMS.InsertSegment(memset.VPN(kernelSP-uint64(config.KernelStackSize)), memset.VPN(kernelSP), pagetable.R|pagetable.W, nil); err != nil {
		return nil, err
	}
	trapCtxVPN := memset.VPN(config.TrapContextVA)

	ppn, _, ok := ms.Translate(trapCtxVPN)
	if !ok {
		panic("task: trap context page missing from freshly built address space")
	}
	page := alloc.Backend().Page(ppn)
	trapctx.App(entry, userSP, kernelMS.SatpToken(), kernelSP, trapHandlerAddr, trapctx.InitialSstatus).Encode(page)

	return &PCB{
		Pid:        pid,
		MemSet:     ms,
		TrapCtxVPN: trapCtxVPN,
		KernelSP:   kernelSP,
		Cx:         switcher.TrapReturn(trapReturnAddr, kernelSP),
		Status:     Ready,
		Pos:        Fcfs1,
	}, nil
}
