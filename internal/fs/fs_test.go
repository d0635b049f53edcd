package fs

import (
	"testing"

	"github.com/Direktor799/unnamed-os/internal/errno"
)

func TestMkdirThenOpenCreatesFile(t *testing.T) {
	f := New()
	if err := f.Mkdir(f.Root(), "bin"); err != errno.Ok {
		t.Fatalf("Mkdir = %v, want Ok", err)
	}
	node, err := f.Open(f.Root(), "bin/hello", OCreat)
	if err != errno.Ok {
		t.Fatalf("Open = %v, want Ok", err)
	}
	if node.Dir {
		t.Fatal("expected a file inode, got a directory")
	}
}

func TestMkdirOnExistingNameFails(t *testing.T) {
	f := New()
	f.Mkdir(f.Root(), "bin")
	if err := f.Mkdir(f.Root(), "bin"); err != errno.EEXIST {
		t.Fatalf("Mkdir = %v, want EEXIST", err)
	}
}

func TestOpenWithoutCreatOnMissingPathFails(t *testing.T) {
	f := New()
	if _, err := f.Open(f.Root(), "nope", 0); err != errno.ENOENT {
		t.Fatalf("Open = %v, want ENOENT", err)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	f := New()
	node, err := f.Open(f.Root(), "greeting", OCreat)
	if err != errno.Ok {
		t.Fatalf("Open = %v, want Ok", err)
	}
	w := NewFile(node)
	if n, err := w.Write([]byte("hello")); n != 5 || err != errno.Ok {
		t.Fatalf("Write = (%d, %v), want (5, Ok)", n, err)
	}

	r := NewFile(node)
	buf := make([]byte, 5)
	if n, err := r.Read(buf); n != 5 || err != errno.Ok || string(buf) != "hello" {
		t.Fatalf("Read = (%d, %v, %q), want (5, Ok, \"hello\")", n, err, buf)
	}
}

func TestChdirAndGetcwd(t *testing.T) {
	f := New()
	f.Mkdir(f.Root(), "usr")
	usr, err := f.Chdir(f.Root(), "usr")
	if err != errno.Ok {
		t.Fatalf("Chdir = %v, want Ok", err)
	}
	f.Mkdir(usr, "bin")
	bin, err := f.Chdir(usr, "bin")
	if err != errno.Ok {
		t.Fatalf("Chdir = %v, want Ok", err)
	}
	if got := f.Getcwd(bin); got != "/usr/bin" {
		t.Fatalf("Getcwd = %q, want /usr/bin", got)
	}
	if got := f.Getcwd(f.Root()); got != "/" {
		t.Fatalf("Getcwd(root) = %q, want /", got)
	}
}

func TestChdirOnFileFails(t *testing.T) {
	f := New()
	node, _ := f.Open(f.Root(), "plainfile", OCreat)
	NewFile(node).Write([]byte("x"))
	if _, err := f.Chdir(f.Root(), "plainfile"); err != errno.ENOTDIR {
		t.Fatalf("Chdir = %v, want ENOTDIR", err)
	}
}
