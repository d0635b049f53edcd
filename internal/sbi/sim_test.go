//go:build !riscv64

package sbi

import "testing"

func TestSimConsoleRoundTrip(t *testing.T) {
	s := NewSim(nil)
	if _, ok := s.ConsoleGetchar(); ok {
		t.Fatal("expected no pending byte before Feed")
	}
	s.Feed('x')
	b, ok := s.ConsoleGetchar()
	if !ok || b != 'x' {
		t.Fatalf("ConsoleGetchar = (%v, %v), want ('x', true)", b, ok)
	}
}

func TestSimTimerFiresAtDeadline(t *testing.T) {
	s := NewSim(nil)
	s.SetTimer(100)
	if fired := s.Tick(40); fired {
		t.Fatal("timer fired early")
	}
	if fired := s.Tick(40); fired {
		t.Fatal("timer fired early")
	}
	if fired := s.Tick(40); !fired {
		t.Fatal("timer should have fired by tick 120 >= deadline 100")
	}
}

func TestSimSatpRoundTrip(t *testing.T) {
	s := NewSim(nil)
	s.SetSatp(0xdead)
	if got := s.Satp(); got != 0xdead {
		t.Fatalf("Satp() = %#x, want 0xdead", got)
	}
}

func TestSimShutdownPanics(t *testing.T) {
	s := NewSim(nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected Shutdown to panic on the simulated platform")
		}
	}()
	s.Shutdown()
}
