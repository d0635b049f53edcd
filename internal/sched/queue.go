// Package sched implements the multilevel feedback queue scheduler: three
// strictly-prioritized FIFO queues (fcfs1, fcfs2, rr), demotion-only level
// transitions, and the orchestration that ties a scheduling decision to a
// kernel context switch and a rearmed timer.
//
// Grounded on the source's task::schd (MultilevelFeedbackQueue/SchdMaster)
// and task::mod's TaskManager, restyled after biscuit's lock-per-shared-
// struct idiom for the orchestration half.
package sched

import (
	"container/list"

	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/task"
)

// Quantum returns the time slice, in milliseconds, for a given queue
// level.
func Quantum(level task.QueueLevel) uint64 {
	switch level {
	case task.Fcfs1:
		return config.QuantumFcfs1Ms
	case task.Fcfs2:
		return config.QuantumFcfs2Ms
	default:
		return config.QuantumRrMs
	}
}

// mlfq is the bare three-queue structure, with no notion of "current"
// task — that belongs to Manager. Mirrors MultilevelFeedbackQueue exactly:
// enqueue always targets fcfs1, requeue demotes one level, and get_task
// drains fcfs1 before fcfs2 before rr.
type mlfq struct {
	fcfs1, fcfs2, rr list.List
}

func (q *mlfq) queueFor(level task.QueueLevel) *list.List {
	switch level {
	case task.Fcfs1:
		return &q.fcfs1
	case task.Fcfs2:
		return &q.fcfs2
	default:
		return &q.rr
	}
}

// enqueue inserts a brand-new task at the highest priority level.
func (q *mlfq) enqueue(t *task.PCB) {
	t.Pos = task.Fcfs1
	q.fcfs1.PushBack(t)
}

// requeue reinserts t at its post-demotion level after it has used up its
// time slice without exiting.
func (q *mlfq) requeue(t *task.PCB) {
	t.Pos = t.Pos.Demote()
	q.queueFor(t.Pos).PushBack(t)
}

// next pops the highest-priority non-empty queue's front task.
func (q *mlfq) next() (*task.PCB, bool) {
	for _, l := range []*list.List{&q.fcfs1, &q.fcfs2, &q.rr} {
		if e := l.Front(); e != nil {
			l.Remove(e)
			return e.Value.(*task.PCB), true
		}
	}
	return nil, false
}

// len reports the total number of runnable tasks waiting across all three
// levels, for diagnostics and tests.
func (q *mlfq) len() int {
	return q.fcfs1.Len() + q.fcfs2.Len() + q.rr.Len()
}

// lenByLevel reports the waiting count at each level individually, for
// internal/diag's queue-depth snapshot.
func (q *mlfq) lenByLevel() map[string]int {
	return map[string]int{
		"fcfs1": q.fcfs1.Len(),
		"fcfs2": q.fcfs2.Len(),
		"rr":    q.rr.Len(),
	}
}
