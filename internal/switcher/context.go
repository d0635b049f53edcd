// Package switcher implements the kernel-context switch: the contract is
// save the caller's callee-saved registers, ra and sp into one Context,
// load them from another, and return — the return address transferred to
// whatever the target task last saved, which for a freshly created task is
// a trampoline into the trap-return path so it enters user mode for the
// first time.
//
// Grounded on the source's task::switch (__switch) and its two-Context
// swap contract described in spec.md §4.5.
package switcher

// Context is the callee-saved register file __switch moves a task through:
// ra, sp, and the twelve callee-saved s-registers. Stored inside each
// task.PCB as its suspended kernel-mode state.
type Context struct {
	RA uint64
	SP uint64
	S  [12]uint64
}

// TrapReturn builds the initial Context for a task that has never run: ra
// points at the trap-return trampoline so the first Switch into this
// Context falls straight into __restore instead of an ordinary function
// return, and sp is the top of the task's own kernel stack.
func TrapReturn(trapReturnAddr, kernelSP uint64) Context {
	return Context{RA: trapReturnAddr, SP: kernelSP}
}
