//go:build riscv64

package switcher

// Switch saves the caller's ra/sp/s0-s11 into old, loads new's, and
// returns — control resumes wherever new.RA points, which for a task that
// has run before is the instruction just after its own previous Switch
// call, and for a fresh task is the trap-return trampoline. Implemented in
// switch_riscv64.s.
func Switch(old, new *Context)
