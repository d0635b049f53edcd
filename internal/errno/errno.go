// Package errno defines the small negative-integer error codes that cross
// the user/kernel boundary as plain syscall return values.
//
// These are deliberately not the `error` interface: a syscall return value
// is a single signed register (x10), so the kernel-side handlers return an
// Errno directly and the trap dispatcher copies it into x10 unchanged. Code
// that never crosses the trap path (the boot manifest loader, diagnostics,
// devconsole) uses ordinary Go errors instead; see SPEC_FULL.md §7.
package errno

// Errno is a negative syscall return value. Zero means success.
type Errno int32

// Ok reports whether e represents success.
func (e Errno) Ok() bool { return e == 0 }

const (
	Ok           Errno = 0
	EBADF        Errno = -1  /// bad file descriptor
	ENOTDIR      Errno = -2  /// not a directory
	EFAULT       Errno = -3  /// bad user address
	ENOENT       Errno = -4  /// no such file or directory
	ENOMEM       Errno = -5  /// out of memory
	EINVAL       Errno = -6  /// invalid argument
	ENAMETOOLONG Errno = -7  /// path too long
	ECHILD       Errno = -8  /// no matching child process
	EEXIST       Errno = -9  /// name already exists
	EISDIR       Errno = -10 /// is a directory
)
