package mem

// Backend abstracts "the hart's physical RAM" away from the frame allocator
// and page table, exactly the role biscuit's Page_i interface plays between
// its VM code and the page-map allocator: a narrow capability interface at
// a hardware boundary (SPEC_FULL.md §9, "Dynamic dispatch").
//
// On riscv64 this is backed by the real physical address space; everywhere
// else (which is every environment this repository's tests run under) it is
// backed by a simulated RAM arena. See backend_riscv64.go / backend_sim.go.
type Backend interface {
	// Page returns a byte slice view of the full PGSIZE page at ppn. The
	// slice aliases the backing storage: writes are visible to every
	// other holder of the same ppn.
	Page(ppn PPN) []byte

	// Base returns the first PPN reserved for kernel dynamic allocation.
	Base() PPN

	// End returns one past the last PPN reserved for kernel dynamic
	// allocation.
	End() PPN
}
