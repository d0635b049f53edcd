// Package diag snapshots scheduler and allocator state into a pprof
// profile on demand, the Go-native analogue of biscuit's D_PROF device
// (defs/device.go): a diagnostic tap a caller opens deliberately, not a
// device any user process reads from by default.
package diag

import (
	"io"

	"github.com/google/pprof/profile"
)

// Snapshot is the point-in-time state the dumper samples.
type Snapshot struct {
	QueueDepth    map[string]int // MLFQ level name -> task count
	FreeFrames    int
	AllocatedPids int
}

// Sampler is the narrow view diag needs of the scheduler and allocator;
// implemented by a small adapter in cmd/kernel rather than importing
// internal/sched or internal/mem directly, so this package stays reachable
// from any caller that already has a Snapshot.
type Sampler interface {
	Sample() Snapshot
}

const (
	typeQueueDepth = "queue_depth"
	typeFreeFrames = "free_frames"
	unitCount      = "count"
)

// Dump builds a pprof profile from a snapshot and writes it, gzip-encoded,
// to w. Each queue level becomes one sample tagged with a "level" label;
// two final samples under the "mem.Allocator" location report the free
// frame count and the allocated pid count.
func Dump(w io.Writer, snap Snapshot) error {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{{Type: typeQueueDepth, Unit: unitCount}},
	}

	fn := &profile.Function{ID: 1, Name: "sched.Manager"}
	loc := &profile.Location{ID: 1, Line: []profile.Line{{Function: fn}}}
	p.Function = []*profile.Function{fn}
	p.Location = []*profile.Location{loc}

	for _, level := range []string{"fcfs1", "fcfs2", "rr"} {
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{int64(snap.QueueDepth[level])},
			Label:    map[string][]string{"level": {level}},
		})
	}

	allocFn := &profile.Function{ID: 2, Name: "mem.Allocator"}
	allocLoc := &profile.Location{ID: 2, Line: []profile.Line{{Function: allocFn}}}
	p.Function = append(p.Function, allocFn)
	p.Location = append(p.Location, allocLoc)
	p.Sample = append(p.Sample, &profile.Sample{
		Location: []*profile.Location{allocLoc},
		Value:    []int64{int64(snap.FreeFrames)},
		Label:    map[string][]string{"metric": {typeFreeFrames}},
	})
	p.Sample = append(p.Sample, &profile.Sample{
		Location: []*profile.Location{allocLoc},
		Value:    []int64{int64(snap.AllocatedPids)},
		Label:    map[string][]string{"metric": {"allocated_pids"}},
	})

	if err := p.CheckValid(); err != nil {
		return err
	}
	return p.Write(w)
}
