// Command kernel boots the scheduler, console, and in-memory file system
// described in SPEC_FULL.md and, on riscv64, runs them on real hardware.
// On every other platform the same wiring backs the package's own
// scenario tests against the simulated hart.
package main

import (
	"fmt"
	"io"

	"golang.org/x/mod/semver"

	"github.com/Direktor799/unnamed-os/internal/bootcfg"
	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/console"
	"github.com/Direktor799/unnamed-os/internal/diag"
	"github.com/Direktor799/unnamed-os/internal/fs"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/sbi"
	"github.com/Direktor799/unnamed-os/internal/sched"
	"github.com/Direktor799/unnamed-os/internal/syscall"
	"github.com/Direktor799/unnamed-os/internal/task"
	"github.com/Direktor799/unnamed-os/internal/trap"
)

// bannerVersion is validated against semver at boot rather than hand
// checked, so a typo in a release fails before the banner ever prints.
const bannerVersion = config.KernelVersion

// Kernel owns every subsystem the teacher's package-level globals would
// otherwise be: the frame allocator, pid allocator, kernel address space,
// scheduler, daemon, platform, console, file system and syscall
// dispatcher, threaded explicitly through boot instead (SPEC_FULL.md
// §10.1, §9's portability note).
type Kernel struct {
	Platform     sbi.Platform
	Alloc        *mem.Allocator
	Pids         *task.PidAllocator
	KernelMemSet *memset.MemorySet
	Mgr          *sched.Manager
	Daemon       *task.PCB
	Console      *console.Console
	FS           *fs.FS
	Dispatcher   *syscall.Dispatcher
	Handler      *trap.Handler
	Manifest     *bootcfg.Manifest
	Layout       memset.KernelLayout
}

// Boot constructs every subsystem in the order SPEC_FULL.md §10.1 fixes:
// platform backend (supplied by the caller) → frame allocator → kernel
// memory set, activated → scheduler and daemon → console, file system and
// syscall dispatcher → trap handler. The manifest's images are not loaded
// here; call LoadImage once per bootcfg.ImageSpec after Boot returns.
func Boot(platform sbi.Platform, backend mem.Backend, layout memset.KernelLayout, manifest *bootcfg.Manifest) (*Kernel, error) {
	if !semver.IsValid(bannerVersion) {
		return nil, fmt.Errorf("kernel: banner version %q is not valid semver", bannerVersion)
	}

	alloc := mem.NewAllocator(backend)

	kms, err := memset.NewKernel(alloc, layout)
	if err != nil {
		return nil, fmt.Errorf("kernel: build kernel memory set: %w", err)
	}
	kms.Activate(platform)

	pids := task.NewPidAllocator()
	daemon := &task.PCB{Pid: pids.Alloc(), Status: task.Running}
	mgr := sched.NewManager(daemon, platform)

	con := console.New(platform)
	filesystem := fs.New()
	dispatcher := syscall.NewDispatcher(alloc, pids, mgr, platform, filesystem, con, kms, trap.RestoreEntryAddr())
	handler := trap.NewHandler(alloc, mgr, dispatcher)
	handler.SetDiagOutput(con)

	return &Kernel{
		Platform: platform, Alloc: alloc, Pids: pids, KernelMemSet: kms,
		Mgr: mgr, Daemon: daemon, Console: con, FS: filesystem,
		Dispatcher: dispatcher, Handler: handler, Manifest: manifest, Layout: layout,
	}, nil
}

// LoadImage loads one manifest-named ELF image into a fresh address space
// and enqueues it under the daemon at Fcfs1, per spec.md §4.2's process
// creation and §4.5's default top-level parent.
func (k *Kernel) LoadImage(elfData []byte) (*task.PCB, error) {
	p, err := task.NewProcess(k.Alloc, k.Pids, k.Layout, elfData, k.KernelMemSet, trap.TrapEntryAddr(), trap.RestoreEntryAddr())
	if err != nil {
		return nil, err
	}
	k.Mgr.AddNewTask(p)
	return p, nil
}

// Banner writes the boot banner cmd/kernel prints before starting the
// scheduler.
func Banner(w io.Writer, manifest *bootcfg.Manifest) {
	fmt.Fprintf(w, "unnamed-os %s booting, manifest version %s, %d image(s)\n",
		bannerVersion, manifest.Version, len(manifest.Images))
}

// Sample implements internal/diag.Sampler.
func (k *Kernel) Sample() diag.Snapshot {
	return diag.Snapshot{
		QueueDepth:    k.Mgr.QueueDepth(),
		FreeFrames:    k.Alloc.Free(),
		AllocatedPids: k.Pids.Live(),
	}
}
