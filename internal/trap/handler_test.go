package trap

import (
	"testing"

	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/pagetable"
	"github.com/Direktor799/unnamed-os/internal/sbi"
	"github.com/Direktor799/unnamed-os/internal/sched"
	"github.com/Direktor799/unnamed-os/internal/task"
	"github.com/Direktor799/unnamed-os/internal/trapctx"
)

func TestDecodeCause(t *testing.T) {
	cases := []struct {
		scause uint64
		want   Cause
	}{
		{3, CauseBreakpoint},
		{8, CauseUserEcall},
		{2, CauseIllegalInstruction},
		{12, CauseInstructionPageFault},
		{interruptBit | 5, CauseSupervisorTimer},
		{interruptBit | 9, CauseUnknown},
		{999, CauseUnknown},
	}
	for _, c := range cases {
		if got := DecodeCause(c.scause); got != c.want {
			t.Errorf("DecodeCause(%#x) = %v, want %v", c.scause, got, c.want)
		}
	}
}

type fakeSyscalls struct {
	ret uint64
}

func (f *fakeSyscalls) Dispatch(no uint64, args [3]uint64, cur *task.PCB) uint64 {
	return f.ret
}

// fixture wires up an allocator, a one-page trap context mapped at the
// fixed trap-context VA, and a scheduler whose current task is that
// process — enough for Handler to read and rewrite the trap context
// without a real ELF image or trampoline.
type fixture struct {
	alloc *mem.Allocator
	mgr   *sched.Manager
	pcb   *task.PCB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	const base mem.PPN = 0x1000
	backend, err := mem.NewSimBackend(base, 64)
	if err != nil {
		t.Fatalf("NewSimBackend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	alloc := mem.NewAllocator(backend)

	pg := uint64(config.PGSIZE)
	start := uint64(base) * pg
	layout := memset.KernelLayout{
		TrampolineStart: start,
		TextStart:       start + pg, TextEnd: start + 2*pg,
		RodataStart: start + 2*pg, RodataEnd: start + 3*pg,
		DataStart: start + 3*pg, DataEnd: start + 4*pg,
		BssStart: start + 4*pg, BssEnd: start + 5*pg,
		KernelEnd: start + 5*pg, MemEnd: start + 64*pg,
	}
	ms, err := memset.NewKernel(alloc, layout)
	if err != nil {
		t.Fatalf("NewKernel: %v", err)
	}

	trapCtxVPN := memset.VPN(config.TrapContextVA)
	if err := ms.InsertSegment(trapCtxVPN, trapCtxVPN+1, pagetable.R|pagetable.W, nil); err != nil {
		t.Fatalf("InsertSegment: %v", err)
	}

	pcb := &task.PCB{Pid: 1, MemSet: ms, TrapCtxVPN: trapCtxVPN, Status: task.Running}
	other := &task.PCB{Pid: 2, Status: task.Ready}

	mgr := sched.NewManager(pcb, sbi.NewSim(nil))
	mgr.AddNewTask(other)

	return &fixture{alloc: alloc, mgr: mgr, pcb: pcb}
}

func (f *fixture) writeContext(t *testing.T, cx trapctx.Context) {
	t.Helper()
	ppn, _, ok := f.pcb.MemSet.Translate(f.pcb.TrapCtxVPN)
	if !ok {
		t.Fatal("trap context not mapped")
	}
	cx.Encode(f.alloc.Backend().Page(ppn))
}

func (f *fixture) readContext(t *testing.T) trapctx.Context {
	t.Helper()
	ppn, _, ok := f.pcb.MemSet.Translate(f.pcb.TrapCtxVPN)
	if !ok {
		t.Fatal("trap context not mapped")
	}
	return trapctx.Decode(f.alloc.Backend().Page(ppn))
}

func TestHandleUserTrapBreakpointAdvancesSepc(t *testing.T) {
	f := newFixture(t)
	f.writeContext(t, trapctx.Context{Sepc: 100})
	h := NewHandler(f.alloc, f.mgr, &fakeSyscalls{})

	h.HandleUserTrap(3, 0)

	if got := f.readContext(t).Sepc; got != 102 {
		t.Fatalf("Sepc = %d, want 102", got)
	}
}

func TestHandleUserTrapEcallDispatchesAndAdvancesSepc(t *testing.T) {
	f := newFixture(t)
	cx := trapctx.Context{Sepc: 200}
	cx.GPRs[17] = 64 // syscall number
	cx.GPRs[10] = 1
	cx.GPRs[11] = 2
	cx.GPRs[12] = 3
	f.writeContext(t, cx)

	h := NewHandler(f.alloc, f.mgr, &fakeSyscalls{ret: 7})
	h.HandleUserTrap(8, 0)

	got := f.readContext(t)
	if got.Sepc != 204 {
		t.Fatalf("Sepc = %d, want 204", got.Sepc)
	}
	if got.GPRs[trapctx.RegA0] != 7 {
		t.Fatalf("a0 = %d, want 7", got.GPRs[trapctx.RegA0])
	}
}

func TestHandleUserTrapTimerTicksScheduler(t *testing.T) {
	f := newFixture(t)
	f.writeContext(t, trapctx.Context{})
	h := NewHandler(f.alloc, f.mgr, &fakeSyscalls{})

	h.HandleUserTrap(interruptBit|5, 0)

	if f.mgr.Current() == f.pcb {
		t.Fatal("timer interrupt should have switched away from the original task")
	}
}

func TestHandleUserTrapIllegalInstructionExitsCurrent(t *testing.T) {
	f := newFixture(t)
	f.writeContext(t, trapctx.Context{})
	h := NewHandler(f.alloc, f.mgr, &fakeSyscalls{})

	h.HandleUserTrap(2, 0)

	if f.pcb.Status != task.Exited || f.pcb.ExitCode != -1 {
		t.Fatalf("pcb = {status=%v, exitCode=%d}, want {Exited, -1}", f.pcb.Status, f.pcb.ExitCode)
	}
}

func TestHandleUserTrapPageFaultExitsCurrent(t *testing.T) {
	f := newFixture(t)
	f.writeContext(t, trapctx.Context{})
	h := NewHandler(f.alloc, f.mgr, &fakeSyscalls{})

	h.HandleUserTrap(12, 0)

	if f.pcb.Status != task.Exited || f.pcb.ExitCode != -2 {
		t.Fatalf("pcb = {status=%v, exitCode=%d}, want {Exited, -2}", f.pcb.Status, f.pcb.ExitCode)
	}
}

func TestHandleUserTrapPanicsOnUnrecognisedCause(t *testing.T) {
	f := newFixture(t)
	f.writeContext(t, trapctx.Context{})
	h := NewHandler(f.alloc, f.mgr, &fakeSyscalls{})

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an unrecognised cause")
		}
	}()
	h.HandleUserTrap(999, 0)
}
