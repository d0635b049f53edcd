// Package config holds the fixed virtual-memory layout, clock, and
// scheduler-quantum constants that the rest of the kernel is built around.
//
// These values are physically constrained (the trampoline assembly and the
// SV39 page-table format fix most of them) rather than tunable, so they live
// as untyped constants the way biscuit's mem package keeps PGSHIFT/PGSIZE/
// PTE_P etc. as package-level consts rather than a loaded configuration
// object.
package config

// PGSHIFT is the base-2 exponent of the page size.
const PGSHIFT uint = 12

// PGSIZE is the size of a single page in bytes.
const PGSIZE int = 1 << PGSHIFT

// PGOFFSET masks the in-page offset bits of a virtual or physical address.
const PGOFFSET uint64 = uint64(PGSIZE) - 1

// PteWidth is the number of PTEs per page table page (4 KiB / 8 bytes).
const PteWidth = PGSIZE / 8

// VpnIndexBits is the width of each of the three per-level VPN indices.
const VpnIndexBits uint = 9

// Levels is the number of page-table levels (SV39 is exactly three).
const Levels = 3

// VaBits is the number of usable virtual address bits (sign-extended above).
const VaBits = PGSHIFT + VpnIndexBits*uint(Levels)

// TrampolineVA is the fixed top-of-address-space page, mapped R|X and
// identical in every address space so a satp switch mid-instruction-stream
// is always valid.
const TrampolineVA uint64 = (uint64(1) << VaBits) - uint64(PGSIZE)

// TrapContextVA is one page below the trampoline, R|W, no U.
const TrapContextVA uint64 = TrampolineVA - uint64(PGSIZE)

// UserStackSize is the size in bytes of every user process's initial stack
// segment.
const UserStackSize = 8 * PGSIZE

// KernelStackSize is the size in bytes of each process's kernel stack.
const KernelStackSize = 2 * PGSIZE

// GuardPageSize separates consecutive kernel stacks so a stack overflow
// faults instead of corrupting the neighbouring stack.
const GuardPageSize = PGSIZE

// KernelStackTop returns the fixed kernel-stack-top VA for the given pid,
// counting down from the trampoline as described in SPEC_FULL.md §9.
func KernelStackTop(pid int) uint64 {
	slot := uint64(pid) * uint64(KernelStackSize+GuardPageSize)
	return TrampolineVA - slot
}

// CLOCK_FREQ is the platform timer frequency in Hz (ticks per second).
const CLOCK_FREQ uint64 = 12500000

// MsPerTick converts a raw mtime delta into milliseconds.
func MsPerTick(ticks uint64) uint64 {
	return ticks * 1000 / CLOCK_FREQ
}

// TicksPerMs converts a millisecond duration into a raw mtime delta.
func TicksPerMs(ms uint64) uint64 {
	return ms * CLOCK_FREQ / 1000
}

// Quantum slices, in milliseconds, one per MLFQ level. The scheduler uses
// these values as they are: a boot manifest's quantum_override_ms entries
// are parsed and validated by internal/bootcfg but not applied to them.
const (
	QuantumFcfs1Ms = 10
	QuantumFcfs2Ms = 20
	QuantumRrMs    = 40
)

// KernelVersion is printed in the boot banner and validated as a semantic
// version by cmd/kernel using golang.org/x/mod/semver.
const KernelVersion = "v0.3.0"
