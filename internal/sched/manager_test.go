package sched

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/sbi"
	"github.com/Direktor799/unnamed-os/internal/switcher"
	"github.com/Direktor799/unnamed-os/internal/task"
)

func withSwitchRecorder(t *testing.T) *[][2]task.Pid {
	t.Helper()
	var record [][2]task.Pid
	prev := switcher.Hook
	switcher.Hook = func(old, new *switcher.Context) {
		record = append(record, [2]task.Pid{pidOf(old), pidOf(new)})
	}
	t.Cleanup(func() { switcher.Hook = prev })
	return &record
}

// pidOf maps a Context pointer back to the owning PCB's pid via a
// best-effort linear scan; tests register contexts through trackContext.
var contexts = map[*switcher.Context]task.Pid{}

func trackContext(p *task.PCB) { contexts[&p.Cx] = p.Pid }

func pidOf(cx *switcher.Context) task.Pid {
	if p, ok := contexts[cx]; ok {
		return p
	}
	return -1
}

func newTestPCB(pid task.Pid) *task.PCB {
	p := &task.PCB{Pid: pid, Status: task.Ready}
	trackContext(p)
	return p
}

func TestAddNewTaskEnqueuesAtFcfs1(t *testing.T) {
	daemon := newTestPCB(0)
	m := NewManager(daemon, sbi.NewSim(nil))
	p := newTestPCB(1)
	m.AddNewTask(p)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if p.Pos != task.Fcfs1 {
		t.Fatal("new task should start at Fcfs1")
	}
}

func TestSuspendCurrentSwitchesToNextAndRequeuesSelf(t *testing.T) {
	record := withSwitchRecorder(t)
	daemon := newTestPCB(0)
	sim := sbi.NewSim(nil)
	m := NewManager(daemon, sim)
	p := newTestPCB(1)
	m.AddNewTask(p)

	m.SuspendCurrent() // daemon -> p
	if m.Current() != p {
		t.Fatal("expected p to become current")
	}
	if len(*record) != 1 || (*record)[0] != [2]task.Pid{0, 1} {
		t.Fatalf("unexpected switch record: %v", *record)
	}
	if m.Len() != 1 {
		t.Fatal("daemon should have been requeued after yielding")
	}
}

func TestExitCurrentReparentsChildrenToDaemon(t *testing.T) {
	withSwitchRecorder(t)
	daemon := newTestPCB(0)
	sim := sbi.NewSim(nil)
	m := NewManager(daemon, sim)

	parent := newTestPCB(1)
	child := newTestPCB(2)
	parent.AddChild(child)
	m.AddNewTask(parent)
	m.SuspendCurrent() // daemon -> parent

	m.ExitCurrent(0)
	if child.Parent != daemon {
		t.Fatalf("child.Parent = %v, want daemon", child.Parent)
	}
	if len(parent.Children) != 0 {
		t.Fatal("exited parent should have no children left")
	}
}

func TestScheduleDoesNotReparentToDaemon(t *testing.T) {
	daemon := newTestPCB(0)
	m := NewManager(daemon, sbi.NewSim(nil))
	parent := newTestPCB(1)
	child := newTestPCB(2)
	parent.AddChild(child)

	m.Schedule(child)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if child.Parent != parent {
		t.Fatalf("Schedule must not reparent; child.Parent = %v, want %v", child.Parent, parent)
	}
	if len(daemon.Children) != 0 {
		t.Fatal("Schedule must not attach the task under the daemon")
	}
}

func TestQueueDepthReportsPerLevelCounts(t *testing.T) {
	daemon := newTestPCB(0)
	m := NewManager(daemon, sbi.NewSim(nil))
	p := newTestPCB(1)
	m.AddNewTask(p)

	depth := m.QueueDepth()
	if depth["fcfs1"] != 1 || depth["fcfs2"] != 0 || depth["rr"] != 0 {
		t.Fatalf("QueueDepth() = %v, want {fcfs1:1, fcfs2:0, rr:0}", depth)
	}
}

func TestArmTimerUsesLevelQuantum(t *testing.T) {
	withSwitchRecorder(t)
	daemon := newTestPCB(0)
	sim := sbi.NewSim(nil)
	m := NewManager(daemon, sim)
	p := newTestPCB(1)
	m.AddNewTask(p)

	m.SuspendCurrent()
	want := sim.Time() + config.TicksPerMs(Quantum(task.Fcfs1))
	if got := sim.Timer(); got != want {
		t.Fatalf("timer = %d, want %d", got, want)
	}
}

// TestArmTimerCallsExactPlatformSequence pins armTimer's platform calls to
// a gomock expectation rather than Sim's observable state, the case
// sbi.MockPlatform exists for: it fails if switching ever starts reading
// the clock twice or arms a timer before reading it.
func TestArmTimerCallsExactPlatformSequence(t *testing.T) {
	withSwitchRecorder(t)
	ctrl := gomock.NewController(t)
	platform := sbi.NewMockPlatform(ctrl)

	wantDeadline := config.TicksPerMs(Quantum(task.Fcfs1))
	gomock.InOrder(
		platform.EXPECT().Time().Return(uint64(0)),
		platform.EXPECT().SetTimer(wantDeadline),
	)

	daemon := newTestPCB(0)
	m := NewManager(daemon, platform)
	p := newTestPCB(1)
	m.AddNewTask(p)

	m.SuspendCurrent()
}
