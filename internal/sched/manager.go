package sched

import (
	"sync"

	"github.com/Direktor799/unnamed-os/internal/sbi"
	"github.com/Direktor799/unnamed-os/internal/switcher"
	"github.com/Direktor799/unnamed-os/internal/task"
	"github.com/Direktor799/unnamed-os/internal/timer"
)

// Manager owns the MLFQ queues, the currently-running task, and the daemon
// every orphan reparents to. Mirrors task::mod's TaskManager plus its
// module-level exit_current_and_run_next/suspend_current_and_run_next
// functions, folded into methods on one struct instead of package globals.
type Manager struct {
	mu       sync.Mutex
	queues   mlfq
	current  *task.PCB
	daemon   *task.PCB
	platform sbi.Platform
}

// NewManager starts the scheduler with daemon as the running task. The
// daemon starts outside the MLFQ; once it yields it is requeued like any
// other task that has not exited.
func NewManager(daemon *task.PCB, platform sbi.Platform) *Manager {
	daemon.Status = task.Running
	return &Manager{current: daemon, daemon: daemon, platform: platform}
}

// Current returns the task presently charged with the hart.
func (m *Manager) Current() *task.PCB {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// AddNewTask enqueues a freshly created task at the top MLFQ level and
// links it under the daemon, the spec's default parent for processes
// started directly rather than via fork.
func (m *Manager) AddNewTask(t *task.PCB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.daemon.AddChild(t)
	m.queues.enqueue(t)
}

// Schedule enqueues an already-parented task without touching its
// Parent/Children links, unlike AddNewTask which attaches a fresh
// top-level task under the daemon. task.Fork wires the parent link itself,
// so a forked child reaches the run queue through this method instead.
func (m *Manager) Schedule(t *task.PCB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues.enqueue(t)
}

// armTimer sets the platform timer to fire one quantum, sized by the
// about-to-run task's queue level, from now.
func (m *Manager) armTimer(next *task.PCB) {
	timer.SetNextTimeout(m.platform, Quantum(next.Pos))
}

// switchToNext is switch_to_next_task: if the current task hasn't exited,
// demote-and-requeue it; pop the next task off the MLFQ; arm its quantum;
// context-switch into it. Panics if no task is runnable — on a kernel that
// always keeps the daemon enqueued as a fallback idle task, that is a
// scheduler invariant violation, not a recoverable condition.
func (m *Manager) switchToNext() {
	m.mu.Lock()
	cur := m.current
	curExited := cur.Status == task.Exited
	if !curExited {
		cur.Status = task.Ready
		m.queues.requeue(cur)
	}
	next, ok := m.queues.next()
	if !ok {
		m.mu.Unlock()
		panic("sched: no runnable task")
	}
	next.Status = task.Running
	m.armTimer(next)
	m.current = next
	m.mu.Unlock()

	if curExited {
		var unused switcher.Context
		switcher.Switch(&unused, &next.Cx)
		return
	}
	switcher.Switch(&cur.Cx, &next.Cx)
}

// SuspendCurrent yields the hart: the current task is still runnable and
// goes back into the MLFQ one level down.
func (m *Manager) SuspendCurrent() {
	m.switchToNext()
}

// Tick is the timer interrupt's scheduling callback: requeue the current
// task if it's still Ready, drop it if Exited, pick the next task, and
// context-switch — spec.md §4.5's tick(). It is SuspendCurrent under
// another name because the two descriptions (timer preemption and a
// cooperative yield) resolve to the identical queue operation; it is kept
// as a separate method so call sites read as the spec names them.
func (m *Manager) Tick() {
	m.switchToNext()
}

// ExitCurrent marks the current task Exited, reparents its children to the
// daemon, and switches away from it for good — its PCB is never requeued,
// matching exit_current_and_run_next.
func (m *Manager) ExitCurrent(exitCode int32) {
	m.mu.Lock()
	cur := m.current
	m.mu.Unlock()

	cur.Lock()
	cur.Status = task.Exited
	cur.ExitCode = exitCode
	cur.ReparentChildrenTo(m.daemon)
	cur.Unlock()

	m.switchToNext()
}

// Run performs the kernel's first-ever switch, from an unused bootstrap
// context into whichever task the scheduler already holds as current
// (ordinarily the daemon, immediately re-switched away from once a real
// workload is enqueued). It never returns.
func (m *Manager) Run() {
	var boot switcher.Context
	cur := m.Current()
	switcher.Switch(&boot, &cur.Cx)
	panic("sched: Run returned")
}

// Len reports the number of tasks waiting to run, for diagnostics.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queues.len()
}

// QueueDepth reports the waiting count at each MLFQ level, for
// internal/diag's scheduler snapshot.
func (m *Manager) QueueDepth() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queues.lenByLevel()
}
