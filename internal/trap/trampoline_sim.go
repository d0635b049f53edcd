//go:build !riscv64

package trap

// TrapEntryAddr has no real trampoline page to report on the simulated
// platform: Install, the trampoline assembly, and the hardware trap it
// arms for are all riscv64-only. Every test on this build drives
// Handler.HandleUserTrap directly instead of trapping through hardware;
// this stub exists purely so portable callers like cmd/kernel compile
// without their own build tag.
func TrapEntryAddr() uint64 { return 0 }

// RestoreEntryAddr mirrors TrapEntryAddr's stub reasoning: no real
// restoreEntry routine exists off riscv64 hardware.
func RestoreEntryAddr() uint64 { return 0 }
