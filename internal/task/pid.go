package task

import "fmt"

// Pid is a process identifier: a monotonically increasing counter with a
// free list, so PIDs get reused but a given PID is never live twice at
// once. Mirrors the source's RecycleAllocator (task/id.rs) one-to-one.
type Pid int

// PidAllocator hands out and recycles Pids.
type PidAllocator struct {
	current  Pid
	recycled []Pid
}

// NewPidAllocator returns an empty allocator, PID 0 handed out first.
func NewPidAllocator() *PidAllocator {
	return &PidAllocator{}
}

// Alloc returns a recycled Pid if one is available, else the next unused
// one.
func (a *PidAllocator) Alloc() Pid {
	if n := len(a.recycled); n > 0 {
		id := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		return id
	}
	id := a.current
	a.current++
	return id
}

// Live reports the number of pids currently allocated and not yet freed,
// for internal/diag's allocator snapshot.
func (a *PidAllocator) Live() int {
	return int(a.current) - len(a.recycled)
}

// Dealloc returns id to the free list. Panics if id was never allocated or
// is already free — a double free here is a scheduler bug, not a
// recoverable condition, the same contract mem.Allocator.Dealloc and
// pagetable.Unmap use.
func (a *PidAllocator) Dealloc(id Pid) {
	if id >= a.current {
		panic(fmt.Sprintf("task: dealloc of never-allocated pid %d", id))
	}
	for _, r := range a.recycled {
		if r == id {
			panic(fmt.Sprintf("task: pid %d has already been deallocated", id))
		}
	}
	a.recycled = append(a.recycled, id)
}
