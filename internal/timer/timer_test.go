package timer

import (
	"testing"

	"github.com/Direktor799/unnamed-os/internal/sbi"
)

func TestSetNextTimeoutArmsRelativeDeadline(t *testing.T) {
	s := sbi.NewSim(nil)
	s.Tick(500)
	SetNextTimeout(s, 10)
	if got := s.Timer(); got <= s.Time() {
		t.Fatalf("Timer() = %d, want something after current time %d", got, s.Time())
	}
}

func TestNowMsTracksTicks(t *testing.T) {
	s := sbi.NewSim(nil)
	s.Tick(12500000) // one second of ticks at CLOCK_FREQ
	if got := NowMs(s); got != 1000 {
		t.Fatalf("NowMs = %d, want 1000", got)
	}
}
