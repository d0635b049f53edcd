package task

import (
	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/pagetable"
	"github.com/Direktor799/unnamed-os/internal/switcher"
	"github.com/Direktor799/unnamed-os/internal/trapctx"
)

// Fork duplicates parent's address space and kernel bookkeeping into a
// fresh child: its own pid and kernel stack — newly mapped into kernelMS,
// the same way NewProcess maps the first one — but an eager full copy of
// every user segment via MemorySet.Fork. The child's trap context (itself
// part of the copied address space) has its a0 forced to zero so sys_fork's
// "0 to the child, pid to the parent" contract holds without the syscall
// layer reaching into user memory a second time.
func Fork(alloc *mem.Allocator, pids *PidAllocator, kernelMS *memset.MemorySet, parent *PCB, trapReturnAddr uint64) (*PCB, error) {
	parent.Lock()
	defer parent.Unlock()

	ms, err := parent.MemSet.Fork(alloc)
	if err != nil {
		return nil, err
	}

	pid := pids.Alloc()
	kernelSP := config.KernelStackTop(int(pid))
	if err := kernelMS.InsertSegment(memset.VPN(kernelSP-uint64(config.KernelStackSize)), memset.VPN(kernelSP), pagetable.R|pagetable.W, nil); err != nil {
		return nil, err
	}

	ppn, _, ok := ms.Translate(parent.TrapCtxVPN)
	if !ok {
		panic("task: forked memory set has no trap context mapped")
	}
	page := alloc.Backend().Page(ppn)
	cx := trapctx.Decode(page)
	cx.GPRs[trapctx.RegA0] = 0
	cx.KernelSP = kernelSP
	cx.Encode(page)

	child := &PCB{
		Pid:        pid,
		MemSet:     ms,
		TrapCtxVPN: parent.TrapCtxVPN,
		KernelSP:   kernelSP,
		Cx:         switcher.TrapReturn(trapReturnAddr, kernelSP),
		Status:     Ready,
		Pos:        Fcfs1,
		Parent:     parent,
	}
	parent.Children = append(parent.Children, child)
	return child, nil
}
