// Package trap decodes scause/stval and dispatches to the syscall layer,
// the scheduler, or process termination — the high-level half of the trap
// pipeline the trampoline assembly (__interrupt/__restore) hands control
// to and returns from.
//
// Grounded on spec.md §4.4's dispatcher description; the source's
// trap-handling module was filtered from the retrieval pack, so the cause
// table here follows the spec text directly rather than a source file.
package trap

// interruptBit is scause's top bit: set for interrupts, clear for
// synchronous exceptions, per the RISC-V privileged spec — the same bit
// tinyrange-cc's rv64 package ORs into its own Cause* constants
// (CauseSTimerInt = 1<<63 | 5).
const interruptBit = uint64(1) << 63

// Exception and interrupt codes this kernel recognises. Named after the
// RISC-V privileged spec's own cause names, matching tinyrange-cc's
// rv64.CauseXxx constants where they overlap.
const (
	excBreakpoint          = 3
	excUserEcall           = 8
	excIllegalInstruction  = 2
	excInstructionPageFault = 12
	intSupervisorTimer     = 5
)

// Cause is the decoded, kernel-recognised trap reason.
type Cause int

const (
	CauseBreakpoint Cause = iota
	CauseUserEcall
	CauseSupervisorTimer
	CauseIllegalInstruction
	CauseInstructionPageFault
	CauseUnknown
)

// DecodeCause classifies a raw scause value into one of the causes this
// kernel handles; anything else maps to CauseUnknown, which the handler
// treats as a kernel-fatal bug per spec.md §7.
func DecodeCause(scause uint64) Cause {
	if scause&interruptBit != 0 {
		code := scause &^ interruptBit
		if code == intSupervisorTimer {
			return CauseSupervisorTimer
		}
		return CauseUnknown
	}
	switch scause {
	case excBreakpoint:
		return CauseBreakpoint
	case excUserEcall:
		return CauseUserEcall
	case excIllegalInstruction:
		return CauseIllegalInstruction
	case excInstructionPageFault:
		return CauseInstructionPageFault
	default:
		return CauseUnknown
	}
}
