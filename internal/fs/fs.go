// Package fs is a minimal in-memory named-blob file system: directories
// and files in one tree, no block device and no persistence across boots.
// It exists to give the syscall layer's open/close/read/write/mkdir/chdir/
// getcwd something real to operate on, the way the teacher's ufs/fs
// packages back the same syscalls with an AHCI-backed log-structured
// filesystem — simplified here to single-threaded, memory-only storage
// since SPEC_FULL.md's non-goals exclude persistent storage.
package fs

import (
	"strings"
	"sync"

	"github.com/Direktor799/unnamed-os/internal/errno"
)

// Inode is either a directory (Children non-nil) or a file (Data holds its
// bytes). Parent/Name let Getcwd reconstruct a path by walking up the
// tree, the one piece of bookkeeping a flat map-of-maps tree needs that
// the teacher's on-disk inode numbers get for free from directory entries.
type Inode struct {
	Dir      bool
	Name     string
	Parent   *Inode
	Data     []byte
	Children map[string]*Inode
}

func newDir(name string, parent *Inode) *Inode {
	return &Inode{Dir: true, Name: name, Parent: parent, Children: map[string]*Inode{}}
}

// FS is the whole tree, guarded by one mutex: this kernel never runs two
// harts, so there is no need for per-inode or per-directory locking.
type FS struct {
	mu   sync.Mutex
	root *Inode
}

// New returns an empty file system with just a root directory.
func New() *FS {
	return &FS{root: newDir("", nil)}
}

// Root returns the root directory inode, the initial cwd for every
// process that isn't given a more specific one.
func (f *FS) Root() *Inode { return f.root }

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func (f *FS) lookup(from *Inode, parts []string) (*Inode, errno.Errno) {
	cur := from
	for _, part := range parts {
		if !cur.Dir {
			return nil, errno.ENOTDIR
		}
		next, ok := cur.Children[part]
		if !ok {
			return nil, errno.ENOENT
		}
		cur = next
	}
	return cur, errno.Ok
}

// Mkdir creates a directory at p relative to cwd; every path component but
// the last must already exist, matching Fs_mkdir's single-level-at-a-time
// contract.
func (f *FS) Mkdir(cwd *Inode, p string) errno.Errno {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := splitPath(p)
	if len(parts) == 0 {
		return errno.EINVAL
	}
	parent, err := f.lookup(cwd, parts[:len(parts)-1])
	if err != errno.Ok {
		return err
	}
	if !parent.Dir {
		return errno.ENOTDIR
	}
	name := parts[len(parts)-1]
	if _, exists := parent.Children[name]; exists {
		return errno.EEXIST
	}
	parent.Children[name] = newDir(name, parent)
	return errno.Ok
}

// OCreat mirrors the O_CREAT open flag: create p if it does not exist.
const OCreat = 1 << 0

func (f *FS) create(parent *Inode, name string) *Inode {
	node := &Inode{Name: name, Parent: parent}
	parent.Children[name] = node
	return node
}

// Open resolves p relative to cwd, creating an empty file when flags has
// OCreat set and the path does not already exist. An empty path resolves
// to cwd itself.
func (f *FS) Open(cwd *Inode, p string, flags int) (*Inode, errno.Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := splitPath(p)
	if len(parts) == 0 {
		return cwd, errno.Ok
	}
	node, err := f.lookup(cwd, parts)
	if err == errno.ENOENT && flags&OCreat != 0 {
		parent, perr := f.lookup(cwd, parts[:len(parts)-1])
		if perr != errno.Ok {
			return nil, perr
		}
		if !parent.Dir {
			return nil, errno.ENOTDIR
		}
		return f.create(parent, parts[len(parts)-1]), errno.Ok
	}
	if err != errno.Ok {
		return nil, err
	}
	return node, errno.Ok
}

// Chdir resolves p relative to cwd and returns the target directory, for
// the syscall layer to install as the calling process's new cwd.
func (f *FS) Chdir(cwd *Inode, p string) (*Inode, errno.Errno) {
	f.mu.Lock()
	defer f.mu.Unlock()
	node, err := f.lookup(cwd, splitPath(p))
	if err != errno.Ok {
		return nil, err
	}
	if !node.Dir {
		return nil, errno.ENOTDIR
	}
	return node, errno.Ok
}

// Getcwd reconstructs cwd's absolute path by walking Parent links to the
// root, the in-memory substitute for a disk directory's ".." entry walk.
func (f *FS) Getcwd(cwd *Inode) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cwd.Parent == nil {
		return "/"
	}
	var parts []string
	for n := cwd; n.Parent != nil; n = n.Parent {
		parts = append([]string{n.Name}, parts...)
	}
	return "/" + strings.Join(parts, "/")
}
