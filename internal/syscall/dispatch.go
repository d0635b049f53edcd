package syscall

import (
	"encoding/binary"
	"fmt"

	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/errno"
	"github.com/Direktor799/unnamed-os/internal/fs"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/memset"
	"github.com/Direktor799/unnamed-os/internal/sbi"
	"github.com/Direktor799/unnamed-os/internal/sched"
	"github.com/Direktor799/unnamed-os/internal/task"
	"github.com/Direktor799/unnamed-os/internal/timer"
)

// Console is the narrow view the fd 0/1/2 path of sys_read/sys_write
// needs of internal/console, kept local to avoid a dependency from the
// syscall layer onto the terminal-rendering machinery console pulls in.
type Console interface {
	WriteByte(b byte)
	ReadByte() (byte, bool)
}

// procState is per-process bookkeeping the syscall layer owns but the
// PCB itself does not: a current-working-directory inode and an open-file
// table. Kept out of task.PCB so internal/task never needs to import
// internal/fs.
type procState struct {
	cwd    *fs.Inode
	fds    map[int32]*fs.File
	nextFd int32
}

// Dispatcher implements trap.Syscalls: it is the single place that knows
// how syscall numbers map onto the scheduler, task and file-system layers.
type Dispatcher struct {
	Alloc        *mem.Allocator
	Pids         *task.PidAllocator
	Mgr          *sched.Manager
	Platform     sbi.Platform
	FS           *fs.FS
	Console      Console
	KernelMemSet *memset.MemorySet
	TrapReturnVA uint64

	procs map[task.Pid]*procState
}

// NewDispatcher wires a Dispatcher against the kernel's shared subsystems.
// kernelMS is the kernel's own memory set, the one sysFork maps each new
// child's kernel stack into.
func NewDispatcher(alloc *mem.Allocator, pids *task.PidAllocator, mgr *sched.Manager, platform sbi.Platform, filesystem *fs.FS, console Console, kernelMS *memset.MemorySet, trapReturnVA uint64) *Dispatcher {
	return &Dispatcher{
		Alloc: alloc, Pids: pids, Mgr: mgr, Platform: platform,
		FS: filesystem, Console: console, KernelMemSet: kernelMS, TrapReturnVA: trapReturnVA,
		procs: map[task.Pid]*procState{},
	}
}

func (d *Dispatcher) state(pid task.Pid) *procState {
	st, ok := d.procs[pid]
	if !ok {
		st = &procState{cwd: d.FS.Root(), fds: map[int32]*fs.File{}, nextFd: 3}
		d.procs[pid] = st
	}
	return st
}

// Dispatch satisfies trap.Syscalls: no is x17, args is x10-x12, the
// return value is written back to x10 by the caller.
func (d *Dispatcher) Dispatch(no uint64, args [3]uint64, cur *task.PCB) uint64 {
	switch no {
	case SysExit:
		code := int32(int64(args[0]))
		d.printLine(fmt.Sprintf("[kernel] Process %d exit with code %d\n", cur.Pid, code))
		d.Mgr.ExitCurrent(code)
		return 0
	case SysYield:
		d.Mgr.SuspendCurrent()
		return 0
	case SysGetTime:
		return timer.NowMs(d.Platform)
	case SysGetpid:
		return uint64(cur.Pid)
	case SysFork:
		return d.sysFork(cur)
	case SysWaitpid:
		return d.sysWaitpid(cur, task.Pid(int64(args[0])), args[1], args[2] != 0)
	case SysGetcwd, SysMkdir, SysChdir, SysOpen, SysClose, SysRead, SysWrite:
		return d.sysFS(no, args, cur)
	default:
		panic(fmt.Sprintf("syscall: unrecognised syscall number %d", no))
	}
}

// printLine writes s to the console byte by byte, the only primitive the
// narrow Console interface exposes.
func (d *Dispatcher) printLine(s string) {
	for i := 0; i < len(s); i++ {
		d.Console.WriteByte(s[i])
	}
}

func (d *Dispatcher) sysFork(cur *task.PCB) uint64 {
	child, err := task.Fork(d.Alloc, d.Pids, d.KernelMemSet, cur, d.TrapReturnVA)
	if err != nil {
		return errnoU(errno.ENOMEM)
	}
	d.Mgr.Schedule(child)
	return uint64(child.Pid)
}

// sysWaitpid implements waitpid's nohang contract exactly: with nohang
// set, it returns 0 immediately if a matching child exists but hasn't
// exited yet, or ECHILD if no matching child exists at all. With
// nohang clear, the no-such-child case still returns ECHILD immediately
// (there is nothing to wait for), but a matching, still-running child
// makes the caller re-queue itself and yield — cooperatively, the same
// way sys_yield does — until a later pass finds it Exited.
func (d *Dispatcher) sysWaitpid(cur *task.PCB, pid task.Pid, statusVA uint64, nohang bool) uint64 {
	for {
		cur.Lock()
		matched := false
		for i, child := range cur.Children {
			if pid != -1 && child.Pid != pid {
				continue
			}
			matched = true
			child.Lock()
			exited := child.Status == task.Exited
			exitCode := child.ExitCode
			child.Unlock()
			if !exited {
				continue
			}
			cur.Children = append(cur.Children[:i:i], cur.Children[i+1:]...)
			cur.Unlock()
			if statusVA != 0 {
				var buf [4]byte
				binary.LittleEndian.PutUint32(buf[:], uint32(exitCode))
				d.writeUserBytes(cur, statusVA, buf[:])
			}
			return uint64(child.Pid)
		}
		cur.Unlock()

		if !matched {
			return errnoU(errno.ECHILD)
		}
		if nohang {
			return 0
		}
		d.Mgr.SuspendCurrent()
	}
}

func (d *Dispatcher) sysFS(no uint64, args [3]uint64, cur *task.PCB) uint64 {
	st := d.state(cur.Pid)
	switch no {
	case SysGetcwd:
		path := append([]byte(d.FS.Getcwd(st.cwd)), 0)
		if uint64(len(path)) > args[1] {
			return errnoU(errno.ENAMETOOLONG)
		}
		d.writeUserBytes(cur, args[0], path)
		return args[0]

	case SysMkdir:
		path := string(d.readUserBytes(cur, args[0], int(args[1])))
		return errnoU(d.FS.Mkdir(st.cwd, path))

	case SysChdir:
		path := string(d.readUserBytes(cur, args[0], int(args[1])))
		node, err := d.FS.Chdir(st.cwd, path)
		if err != errno.Ok {
			return errnoU(err)
		}
		st.cwd = node
		return 0

	case SysOpen:
		path := string(d.readUserBytes(cur, args[0], int(args[1])))
		node, err := d.FS.Open(st.cwd, path, int(args[2]))
		if err != errno.Ok {
			return errnoU(err)
		}
		fd := st.nextFd
		st.nextFd++
		st.fds[fd] = fs.NewFile(node)
		return uint64(fd)

	case SysClose:
		fd := int32(args[0])
		if _, ok := st.fds[fd]; !ok {
			return errnoU(errno.EBADF)
		}
		delete(st.fds, fd)
		return 0

	case SysRead:
		return d.readWrite(cur, st, int32(args[0]), args[1], int(args[2]), false)

	case SysWrite:
		return d.readWrite(cur, st, int32(args[0]), args[1], int(args[2]), true)

	default:
		panic(fmt.Sprintf("syscall: unhandled fs syscall %d", no))
	}
}

// readWrite serves fd 0/1/2 from the console and everything else from the
// process's open-file table, matching the teacher's Fd_t dispatch to
// either a console device or a regular file's Fops.
func (d *Dispatcher) readWrite(cur *task.PCB, st *procState, fd int32, bufVA uint64, n int, write bool) uint64 {
	switch fd {
	case 0:
		if write {
			return errnoU(errno.EBADF)
		}
		buf := make([]byte, 0, n)
		for len(buf) < n {
			b, ok := d.Console.ReadByte()
			if !ok {
				break
			}
			buf = append(buf, b)
		}
		d.writeUserBytes(cur, bufVA, buf)
		return uint64(len(buf))

	case 1, 2:
		if !write {
			return errnoU(errno.EBADF)
		}
		for _, b := range d.readUserBytes(cur, bufVA, n) {
			d.Console.WriteByte(b)
		}
		return uint64(n)
	}

	file, ok := st.fds[fd]
	if !ok {
		return errnoU(errno.EBADF)
	}
	if write {
		written, err := file.Write(d.readUserBytes(cur, bufVA, n))
		if err != errno.Ok {
			return errnoU(err)
		}
		return uint64(written)
	}
	buf := make([]byte, n)
	nread, err := file.Read(buf)
	if err != errno.Ok {
		return errnoU(err)
	}
	d.writeUserBytes(cur, bufVA, buf[:nread])
	return uint64(nread)
}

// readUserBytes copies n bytes starting at the user virtual address va out
// of cur's address space, walking page boundaries as needed.
func (d *Dispatcher) readUserBytes(cur *task.PCB, va uint64, n int) []byte {
	buf := make([]byte, n)
	for read := 0; read < n; {
		cva := va + uint64(read)
		ppn, _, ok := cur.MemSet.Translate(memset.VPN(cva))
		if !ok {
			panic("syscall: user pointer not mapped")
		}
		off := cva & config.PGOFFSET
		read += copy(buf[read:], d.Alloc.Backend().Page(ppn)[off:])
	}
	return buf
}

// writeUserBytes is readUserBytes's mirror for writing into user memory.
func (d *Dispatcher) writeUserBytes(cur *task.PCB, va uint64, data []byte) {
	for written := 0; written < len(data); {
		cva := va + uint64(written)
		ppn, _, ok := cur.MemSet.Translate(memset.VPN(cva))
		if !ok {
			panic("syscall: user pointer not mapped")
		}
		off := cva & config.PGOFFSET
		written += copy(d.Alloc.Backend().Page(ppn)[off:], data[written:])
	}
}

func errnoU(e errno.Errno) uint64 { return uint64(int64(e)) }
