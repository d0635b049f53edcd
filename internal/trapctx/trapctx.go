// Package trapctx defines the fixed-offset trap context record the
// trampoline assembly (__interrupt/__restore) reads and writes as a raw byte
// buffer. The layout is physically constrained, so it is encoded and decoded
// at fixed byte offsets rather than relying on any language's struct layout
// rules, the same discipline pagetable.go applies to PTEs.
package trapctx

import "encoding/binary"

// Register indices into the GPRs array, named the way the calling
// convention names them (x2 is sp, x10 is a0, ...).
const (
	RegSP = 2
	RegA0 = 10
)

// InitialSstatus is the sstatus value a freshly loaded process's trap
// context starts with: SPP clear (previous privilege was U, so sret drops
// to user mode) and SPIE set (interrupts re-enable once back in U-mode).
const InitialSstatus uint64 = 1 << 5 // SPIE

// Size is the trap context's footprint in bytes: 32 GPRs, sstatus, sepc,
// kernel satp, kernel sp, trap handler address - all 8-byte fields.
const Size = (32 + 5) * 8

const (
	offGPRs      = 0
	offSstatus   = 32 * 8
	offSepc      = offSstatus + 8
	offKernelSatp = offSepc + 8
	offKernelSP  = offKernelSatp + 8
	offTrapHandler = offKernelSP + 8
)

// Context is the decoded, Go-side view of a trap context page. Encode and
// Decode move it to and from the raw byte layout the trampoline assembly
// actually touches.
type Context struct {
	GPRs          [32]uint64
	Sstatus       uint64
	Sepc          uint64
	KernelSatp    uint64
	KernelSP      uint64
	TrapHandler   uint64
}

// App returns the initial trap context for a freshly loaded user process:
// sp set to the user stack top, sepc set to the entry point, sstatus set
// from the caller's value, everything else zeroed except the three
// kernel-side fields __restore needs on first entry.
func App(entry, userSP, kernelSatp, kernelSP, trapHandler uint64, sstatusUserPrevMode uint64) Context {
	var c Context
	c.GPRs[RegSP] = userSP
	c.Sepc = entry
	c.Sstatus = sstatusUserPrevMode
	c.KernelSatp = kernelSatp
	c.KernelSP = kernelSP
	c.TrapHandler = trapHandler
	return c
}

// Encode writes c into buf at the fixed offsets. buf must be at least Size
// bytes; callers hand it the trap-context page's backing slice.
func (c Context) Encode(buf []byte) {
	if len(buf) < Size {
		panic("trapctx: buffer shorter than trap context")
	}
	for i, r := range c.GPRs {
		binary.LittleEndian.PutUint64(buf[offGPRs+i*8:], r)
	}
	binary.LittleEndian.PutUint64(buf[offSstatus:], c.Sstatus)
	binary.LittleEndian.PutUint64(buf[offSepc:], c.Sepc)
	binary.LittleEndian.PutUint64(buf[offKernelSatp:], c.KernelSatp)
	binary.LittleEndian.PutUint64(buf[offKernelSP:], c.KernelSP)
	binary.LittleEndian.PutUint64(buf[offTrapHandler:], c.TrapHandler)
}

// Decode reads a Context back out of buf, the inverse of Encode.
func Decode(buf []byte) Context {
	if len(buf) < Size {
		panic("trapctx: buffer shorter than trap context")
	}
	var c Context
	for i := range c.GPRs {
		c.GPRs[i] = binary.LittleEndian.Uint64(buf[offGPRs+i*8:])
	}
	c.Sstatus = binary.LittleEndian.Uint64(buf[offSstatus:])
	c.Sepc = binary.LittleEndian.Uint64(buf[offSepc:])
	c.KernelSatp = binary.LittleEndian.Uint64(buf[offKernelSatp:])
	c.KernelSP = binary.LittleEndian.Uint64(buf[offKernelSP:])
	c.TrapHandler = binary.LittleEndian.Uint64(buf[offTrapHandler:])
	return c
}
