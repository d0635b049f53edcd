// Package syscall maps the numeric convention the trap dispatcher decodes
// off the trap context (number in x17, arguments in x10-x12, return value
// written back to x10) onto the scheduler, task and file-system layers.
//
// Grounded on the source's syscall::proc (sys_exit/sys_yield/sys_get_time)
// for the process-control handlers; fork/waitpid/getpid and the fs-backed
// handlers are supplemented per SPEC_FULL.md §6 and §10.5, since the
// retrieval pack's original_source/ only kept the process-control subset.
package syscall

// Syscall numbers, deliberately reusing the real Linux riscv64 (asm-generic)
// numbering so an unmodified toolchain's raw ecall sequences decode the
// same way here as on Linux — verified against gvisor.dev/gvisor/pkg/abi/
// linux in numbers_test.go.
const (
	SysGetcwd  = 17
	SysMkdir   = 34
	SysChdir   = 49
	SysOpen    = 56
	SysClose   = 57
	SysRead    = 63
	SysWrite   = 64
	SysExit    = 93
	SysYield   = 124
	SysGetTime = 169
	SysGetpid  = 172
	SysFork    = 220
	SysWaitpid = 260
)
