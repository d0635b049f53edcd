// Package task defines the process control block: a process's identity,
// address space, trap context, suspended kernel context, MLFQ position,
// and parent/child links.
//
// Grounded on the source's task::task::ProcessControlBlock (task/mod.rs's
// uses of it) for the field set and lifecycle, restyled after biscuit's
// Vm_t (vm/as.go) for the embedded-mutex, method-on-pointer idiom biscuit
// uses for anything shared across traps.
package task

import (
	"sync"

	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/switcher"
)

// Status is a process's run state.
type Status int

const (
	Ready Status = iota
	Running
	Exited
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// QueueLevel is a process's current position in the multilevel feedback
// queue: Fcfs1 is the highest priority, Rr the lowest and the only level a
// process can be requeued into from itself.
type QueueLevel int

const (
	Fcfs1 QueueLevel = iota
	Fcfs2
	Rr
)

// Demote returns the next-lower queue level, per the scheduler's
// demotion-only policy: Fcfs1->Fcfs2->Rr->Rr.
func (l QueueLevel) Demote() QueueLevel {
	if l >= Rr {
		return Rr
	}
	return l + 1
}

// PCB is one process. Its mutex guards every field below the Pid, the same
// boundary biscuit's Vm_t draws around vmregion/pmap/p_pmap.
type PCB struct {
	Pid Pid

	mu          sync.Mutex
	MemSet      *memset.MemorySet
	TrapCtxVPN  uint64
	KernelSP    uint64
	Cx          switcher.Context
	Status      Status
	Pos         QueueLevel
	ExitCode    int32
	Parent      *PCB
	Children    []*PCB
}

// Lock and Unlock expose the PCB's inner-state mutex directly, the way
// Vm_t.Lock/Unlock do, since every caller that reaches into a PCB's mutable
// fields is already inside the single-hart trap/scheduler path and wants
// the plain critical-section idiom rather than an accessor per field.
func (p *PCB) Lock()   { p.mu.Lock() }
func (p *PCB) Unlock() { p.mu.Unlock() }

// AddChild links child under p, the strong parent-to-child edge; the
// child's Parent field is the reverse edge. Go's tracing garbage collector
// reclaims the parent/child cycle once neither the scheduler nor any other
// PCB references either side, so unlike the source's Rc/Weak split no
// Weak-equivalent is needed here purely for memory safety — Parent stays a
// plain pointer for that reason, and the asymmetry that survives is only
// the daemon reparenting orphans, not a cycle-breaking trick.
func (p *PCB) AddChild(child *PCB) {
	child.Parent = p
	p.Children = append(p.Children, child)
}

// ReparentChildrenTo moves every one of p's children under newParent (the
// daemon, for an exiting process's orphans) and clears p's own child list.
func (p *PCB) ReparentChildrenTo(newParent *PCB) {
	for _, c := range p.Children {
		newParent.AddChild(c)
	}
	p.Children = nil
}
