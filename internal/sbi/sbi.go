// Package sbi is the kernel's narrow view of the platform underneath it:
// console I/O, the timer, satp installation, and shutdown, all funneled
// through SBI ecalls on real hardware. Grounded on tinyrange-cc's
// rv64.Machine.HandleSBI, which enumerates the same extension surface
// (legacy console, timer, system reset) this kernel actually calls.
package sbi

// Platform is every capability the kernel needs from the hart/firmware
// boundary. trap and timer depend on this instead of issuing ecalls
// directly, the same narrow-interface-at-the-hardware-boundary shape as
// mem.Backend and pagetable's use of it.
type Platform interface {
	ConsolePutchar(c byte)
	// ConsoleGetchar returns the pending byte and true, or false if no
	// byte is ready, matching the legacy SBI getchar's -1-means-none
	// convention without leaking the sentinel value into callers.
	ConsoleGetchar() (byte, bool)
	SetTimer(deadline uint64)
	// Time returns the platform's monotonic tick counter (mtime).
	Time() uint64
	SetSatp(token uint64)
	Shutdown()
}

// Legacy SBI extension IDs, named the way tinyrange-cc's rv64 package
// names them, used only by the riscv64 ecall-based Platform.
const (
	extLegacyPutchar = 0x01
	extLegacyGetchar = 0x02
	extTimer         = 0x54494d45 // "TIME"
	extSRST          = 0x53525354 // "SRST"
)
