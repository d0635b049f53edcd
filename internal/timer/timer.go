// Package timer converts between platform ticks and milliseconds and arms
// the next timer interrupt, the thin layer sched.Manager and the trap
// dispatcher share instead of each hand-rolling the conversion.
//
// Grounded on the source's interrupt::timer (get_time, set_next_timeout),
// translated onto sbi.Platform's Time/SetTimer pair instead of a direct
// mtime memory-mapped read, since SPEC_FULL.md's platform boundary is the
// SBI call surface, not raw CLINT registers.
package timer

import (
	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/sbi"
)

// NowMs returns the platform's current time in milliseconds.
func NowMs(p sbi.Platform) uint64 {
	return config.MsPerTick(p.Time())
}

// SetNextTimeout arms the timer to fire after durationMs milliseconds from
// now.
func SetNextTimeout(p sbi.Platform, durationMs uint64) {
	p.SetTimer(p.Time() + config.TicksPerMs(durationMs))
}
