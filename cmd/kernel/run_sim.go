//go:build !riscv64

package main

// Run is unavailable off real hardware: there is no RISC-V hart for the
// scheduler to hand control to, and no hardware trap will ever bring
// control back. Every test on this build instead drives the scheduler and
// trap handler directly via StepTrap, the same pattern internal/trap's own
// tests use.
func (k *Kernel) Run() {
	panic("kernel: Run requires riscv64 hardware; use StepTrap to drive scenarios under simulation")
}

// StepTrap feeds one synthetic trap into the handler, standing in for the
// hardware trap a real riscv64 build would take. Scenario tests use this
// to script a process's lifecycle (a timer tick per elapsed quantum, an
// ecall for its final sys_exit) without a RISC-V instruction interpreter.
func (k *Kernel) StepTrap(scause, stval uint64) {
	k.Handler.HandleUserTrap(scause, stval)
}
