package trap

import (
	"fmt"
	"io"

	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/sched"
	"github.com/Direktor799/unnamed-os/internal/task"
	"github.com/Direktor799/unnamed-os/internal/trapctx"
)

// Syscalls is the narrow view Handler needs of the syscall layer, kept as
// an interface here (rather than importing internal/syscall directly) so
// internal/syscall can in turn depend on internal/task without creating an
// import cycle back through trap.
type Syscalls interface {
	Dispatch(no uint64, args [3]uint64, cur *task.PCB) uint64
}

// Handler is the dispatcher __interrupt calls into after building the
// current process's trap context: it reads scause/stval, mutates the trap
// context in place, and either resumes the same process (via __restore) or
// hands control to the scheduler.
type Handler struct {
	alloc    *mem.Allocator
	mgr      *sched.Manager
	syscalls Syscalls
	diag     io.Writer
}

func NewHandler(alloc *mem.Allocator, mgr *sched.Manager, syscalls Syscalls) *Handler {
	return &Handler{alloc: alloc, mgr: mgr, syscalls: syscalls, diag: io.Discard}
}

// SetDiagOutput directs the breakpoint and process-fatal diagnostic lines
// spec.md §8's end-to-end scenarios name literally (e.g. "Breakpoint at
// 0x<sepc>") to w. Boot wires this to the kernel console; leaving it at
// the io.Discard default is fine for tests that only check PCB state.
func (h *Handler) SetDiagOutput(w io.Writer) {
	h.diag = w
}

// currentContext decodes the running process's trap context page, handing
// back its backing bytes too so the caller can re-encode after mutating it.
func (h *Handler) currentContext() ([]byte, trapctx.Context, *task.PCB) {
	pcb := h.mgr.Current()
	ppn, _, ok := pcb.MemSet.Translate(pcb.TrapCtxVPN)
	if !ok {
		panic("trap: current process has no trap context mapped")
	}
	page := h.alloc.Backend().Page(ppn)
	return page, trapctx.Decode(page), pcb
}

// HandleUserTrap is the high-level half of the trap pipeline spec.md §4.4
// describes: __interrupt has already saved the user's 32 GPRs, sstatus and
// sepc and switched to the kernel stack by the time this runs.
func (h *Handler) HandleUserTrap(scause, stval uint64) {
	page, cx, pcb := h.currentContext()

	switch DecodeCause(scause) {
	case CauseBreakpoint:
		fmt.Fprintf(h.diag, "Breakpoint at %#x\n", cx.Sepc)
		cx.Sepc += 2
		cx.Encode(page)

	case CauseUserEcall:
		cx.Sepc += 4
		no := cx.GPRs[17]
		args := [3]uint64{cx.GPRs[10], cx.GPRs[11], cx.GPRs[12]}
		cx.GPRs[trapctx.RegA0] = h.syscalls.Dispatch(no, args, pcb)
		cx.Encode(page)

	case CauseSupervisorTimer:
		cx.Encode(page)
		h.mgr.Tick()

	case CauseIllegalInstruction:
		fmt.Fprintf(h.diag, "[kernel] Process %d illegal instruction at %#x, exit code -1\n", pcb.Pid, cx.Sepc)
		cx.Encode(page)
		h.mgr.ExitCurrent(-1)

	case CauseInstructionPageFault:
		fmt.Fprintf(h.diag, "[kernel] Process %d page fault at %#x, exit code -2\n", pcb.Pid, stval)
		cx.Encode(page)
		h.mgr.ExitCurrent(-2)

	default:
		panic(fmt.Sprintf("trap: unrecognised cause scause=%#x stval=%#x", scause, stval))
	}
}
