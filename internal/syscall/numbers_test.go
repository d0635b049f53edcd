package syscall

import (
	"testing"

	"gvisor.dev/gvisor/pkg/abi/linux"
)

// TestNumbersMatchLinuxABI cross-checks this kernel's syscall numbers
// against the real Linux asm-generic numbering gvisor's sentry also
// targets, so that an unmodified riscv64 toolchain's ecall sequences
// decode identically here.
func TestNumbersMatchLinuxABI(t *testing.T) {
	cases := []struct {
		name string
		got  int
		want uintptr
	}{
		{"getcwd", SysGetcwd, linux.SYS_GETCWD},
		{"mkdirat", SysMkdir, linux.SYS_MKDIRAT},
		{"chdir", SysChdir, linux.SYS_CHDIR},
		{"openat", SysOpen, linux.SYS_OPENAT},
		{"close", SysClose, linux.SYS_CLOSE},
		{"read", SysRead, linux.SYS_READ},
		{"write", SysWrite, linux.SYS_WRITE},
		{"exit", SysExit, linux.SYS_EXIT},
		{"sched_yield", SysYield, linux.SYS_SCHED_YIELD},
		{"gettimeofday", SysGetTime, linux.SYS_GETTIMEOFDAY},
		{"getpid", SysGetpid, linux.SYS_GETPID},
		{"clone", SysFork, linux.SYS_CLONE},
		{"wait4", SysWaitpid, linux.SYS_WAIT4},
	}
	for _, c := range cases {
		if uintptr(c.got) != c.want {
			t.Errorf("%s: have %d, gvisor abi says %d", c.name, c.got, c.want)
		}
	}
}
