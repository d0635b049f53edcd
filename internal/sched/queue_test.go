package sched

import (
	"testing"

	"github.com/Direktor799/unnamed-os/internal/task"
)

func TestEnqueueGoesToFcfs1(t *testing.T) {
	var q mlfq
	p := &task.PCB{Pid: 1}
	q.enqueue(p)
	if p.Pos != task.Fcfs1 {
		t.Fatalf("Pos = %v, want Fcfs1", p.Pos)
	}
	if q.len() != 1 {
		t.Fatalf("len = %d, want 1", q.len())
	}
}

func TestStrictPriorityAcrossLevels(t *testing.T) {
	var q mlfq
	hi := &task.PCB{Pid: 1}
	mid := &task.PCB{Pid: 2, Pos: task.Fcfs2}
	lo := &task.PCB{Pid: 3, Pos: task.Rr}
	q.fcfs1.PushBack(hi)
	q.fcfs2.PushBack(mid)
	q.rr.PushBack(lo)

	got, ok := q.next()
	if !ok || got != hi {
		t.Fatalf("expected fcfs1 task first, got %v", got)
	}
	got, ok = q.next()
	if !ok || got != mid {
		t.Fatalf("expected fcfs2 task second, got %v", got)
	}
	got, ok = q.next()
	if !ok || got != lo {
		t.Fatalf("expected rr task third, got %v", got)
	}
	if _, ok := q.next(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestFIFOWithinALevel(t *testing.T) {
	var q mlfq
	a := &task.PCB{Pid: 1}
	b := &task.PCB{Pid: 2}
	q.enqueue(a)
	q.enqueue(b)
	got, _ := q.next()
	if got != a {
		t.Fatal("expected FIFO order within fcfs1")
	}
	got, _ = q.next()
	if got != b {
		t.Fatal("expected FIFO order within fcfs1")
	}
}

func TestRequeueDemotesOneLevel(t *testing.T) {
	var q mlfq
	p := &task.PCB{Pid: 1, Pos: task.Fcfs1}
	q.requeue(p)
	if p.Pos != task.Fcfs2 {
		t.Fatalf("Pos after requeue from Fcfs1 = %v, want Fcfs2", p.Pos)
	}
	p.Pos = task.Rr
	q.requeue(p)
	if p.Pos != task.Rr {
		t.Fatal("Rr should requeue into Rr again, not demote further")
	}
}

func TestQuantumPerLevel(t *testing.T) {
	if Quantum(task.Fcfs1) >= Quantum(task.Fcfs2) || Quantum(task.Fcfs2) >= Quantum(task.Rr) {
		t.Fatal("quanta should strictly increase from fcfs1 to fcfs2 to rr")
	}
}
