package task

import "testing"

func TestPidAllocMonotonic(t *testing.T) {
	a := NewPidAllocator()
	if p := a.Alloc(); p != 0 {
		t.Fatalf("first pid = %d, want 0", p)
	}
	if p := a.Alloc(); p != 1 {
		t.Fatalf("second pid = %d, want 1", p)
	}
}

func TestPidDeallocIsRecycledLIFO(t *testing.T) {
	a := NewPidAllocator()
	p0 := a.Alloc()
	p1 := a.Alloc()
	a.Dealloc(p0)
	a.Dealloc(p1)
	if got := a.Alloc(); got != p1 {
		t.Fatalf("expected LIFO reuse of %d, got %d", p1, got)
	}
}

func TestPidDoubleDeallocPanics(t *testing.T) {
	a := NewPidAllocator()
	p := a.Alloc()
	a.Dealloc(p)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double dealloc")
		}
	}()
	a.Dealloc(p)
}

func TestPidDeallocOfUnallocatedPanics(t *testing.T) {
	a := NewPidAllocator()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic deallocating an unallocated pid")
		}
	}()
	a.Dealloc(5)
}

func TestPidLiveCountTracksAllocAndDealloc(t *testing.T) {
	a := NewPidAllocator()
	p0 := a.Alloc()
	a.Alloc()
	if got := a.Live(); got != 2 {
		t.Fatalf("Live() = %d, want 2", got)
	}
	a.Dealloc(p0)
	if got := a.Live(); got != 1 {
		t.Fatalf("Live() after dealloc = %d, want 1", got)
	}
}

func TestQueueLevelDemotion(t *testing.T) {
	cases := []struct {
		from, want QueueLevel
	}{
		{Fcfs1, Fcfs2},
		{Fcfs2, Rr},
		{Rr, Rr},
	}
	for _, c := range cases {
		if got := c.from.Demote(); got != c.want {
			t.Fatalf("Demote(%v) = %v, want %v", c.from, got, c.want)
		}
	}
}
