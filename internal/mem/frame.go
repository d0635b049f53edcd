// Package mem implements the physical frame allocator and the pluggable
// backend that stands in for physical RAM.
//
// The allocator itself is grounded on biscuit's Physmem_t (mem/mem.go):
// a contiguous reserved range of pages, handed out from a free list, with
// ownership tracked so that a double free is a detectable kernel bug rather
// than silent corruption. Unlike biscuit's allocator this one carries no
// per-page reference count — SPEC_FULL.md's non-goals exclude copy-on-write
// and demand paging, so every frame has exactly one owner.
package mem

import "fmt"

// PPN is a physical page number: a physical byte address shifted right by
// PGSHIFT.
type PPN uint64

// PGSIZE mirrors config.PGSIZE without importing internal/config, since
// this package is also imported by the config-free sim backend tests.
const PGSIZE = 4096

// OutOfMemory is returned by Alloc when the free list is empty.
type OutOfMemory struct{}

func (OutOfMemory) Error() string { return "mem: out of memory" }

// Allocator hands out and reclaims 4 KiB physical frames from the
// contiguous range [first, end) supplied by a Backend. Frames are handed
// out in LIFO order and are not zeroed by the allocator; callers that need
// a zeroed page (page tables, user data pages) zero it themselves via
// Backend.Page.
type Allocator struct {
	backend   Backend
	first     PPN
	end       PPN
	free      []PPN       // LIFO free list
	allocated map[PPN]bool // tracks live allocations to catch double-free
}

// NewAllocator seeds the allocator with every frame in the backend's
// reserved range.
func NewAllocator(backend Backend) *Allocator {
	first, end := backend.Base(), backend.End()
	a := &Allocator{
		backend:   backend,
		first:     first,
		end:       end,
		free:      make([]PPN, 0, int(end-first)),
		allocated: make(map[PPN]bool),
	}
	for p := end; p > first; p-- {
		a.free = append(a.free, p-1)
	}
	return a
}

// Alloc removes and returns one frame from the free list.
func (a *Allocator) Alloc() (PPN, error) {
	n := len(a.free)
	if n == 0 {
		return 0, OutOfMemory{}
	}
	p := a.free[n-1]
	a.free = a.free[:n-1]
	a.allocated[p] = true
	return p, nil
}

// Dealloc returns a frame to the free list. It panics on a double free or
// on a frame outside the allocator's reserved range, since both indicate a
// kernel bug rather than a recoverable condition (SPEC_FULL.md §3).
func (a *Allocator) Dealloc(p PPN) {
	if p < a.first || p >= a.end {
		panic(fmt.Sprintf("mem: dealloc of frame %#x outside reserved range", p))
	}
	if !a.allocated[p] {
		panic(fmt.Sprintf("mem: double free of frame %#x", p))
	}
	delete(a.allocated, p)
	a.free = append(a.free, p)
}

// Free reports the number of frames currently available, for diagnostics
// and tests.
func (a *Allocator) Free() int { return len(a.free) }

// Backend returns the backend this allocator draws frames from.
func (a *Allocator) Backend() Backend { return a.backend }

// AllocZeroed allocates a frame and zeroes its contents via the backend.
func (a *Allocator) AllocZeroed() (PPN, error) {
	p, err := a.Alloc()
	if err != nil {
		return 0, err
	}
	pg := a.backend.Page(p)
	for i := range pg {
		pg[i] = 0
	}
	return p, nil
}
