//go:build riscv64

package trap

import "github.com/Direktor799/unnamed-os/internal/config"

// interruptEntry and restoreEntry are defined in trampoline_riscv64.s; their
// Go declarations exist only so the linker keeps them addressable and so
// boot code can point stvec and a process's trap context at them.
// restoreEntry takes the trap context's virtual address and the satp token
// to switch into, matching the a0/a1 it reads in assembly.
func interruptEntry()
func restoreEntry(trapCtxVA, satp uint64)

// csrWriteStvec and addrOf are tiny asm shims: the former writes a raw
// address into stvec, the latter reads back a TEXT symbol's entry address
// so Go code can hand it to hardware or store it in a trap context without
// resorting to unsafe.Pointer arithmetic.
func csrWriteStvec(addr uint64)
func interruptEntryAddr() uint64
func trapEntryCAddr() uint64
func restoreEntryAddr() uint64

// active is the Handler trapEntryC forwards into. There is exactly one per
// running kernel; set once during boot.
var active *Handler

// Install points stvec at the trampoline and remembers h as the target for
// every subsequent trap, mirroring spec.md §4.4's "stvec is set once, at
// boot, to __interrupt" description.
func Install(h *Handler) {
	active = h
	csrWriteStvec(interruptEntryAddr())
}

// TrapEntryAddr returns the address a process's trap context should store
// as its trap-handler field: the low-level bridge __interrupt's final JALR
// lands on, which in turn calls into the installed Handler.
func TrapEntryAddr() uint64 {
	return trapEntryCAddr()
}

// RestoreEntryAddr returns the address a freshly loaded process's suspended
// context should resume into on its first ever scheduling, the same
// restoreEntry trapEntryC itself calls back into once a trap is handled.
func RestoreEntryAddr() uint64 {
	return restoreEntryAddr()
}

// trapEntryC is the landing pad __interrupt's JALR jumps to once the user's
// registers are saved and the kernel stack and satp are live. a0/a1 arrive
// as scause/stval per the riscv64 calling convention.
func trapEntryC(scause, stval uint64) {
	active.HandleUserTrap(scause, stval)

	pcb := active.mgr.Current()
	if _, _, ok := pcb.MemSet.Translate(pcb.TrapCtxVPN); !ok {
		panic("trap: restore found no trap context mapped")
	}
	restoreEntry(uint64(pcb.TrapCtxVPN)<<config.PGSHIFT, pcb.MemSet.SatpToken())
}
