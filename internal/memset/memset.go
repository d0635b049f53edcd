package memset

import (
	"fmt"

	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/pagetable"
)

// KernelLayout names the virtual-address boundaries of the running kernel
// image, supplied by the platform backend (real linker symbols on riscv64,
// fabricated ranges over the simulated backend's arena in tests).
type KernelLayout struct {
	TextStart, TextEnd     uint64
	RodataStart, RodataEnd uint64
	DataStart, DataEnd     uint64
	BssStart, BssEnd       uint64
	KernelEnd              uint64
	MemEnd                 uint64
	TrampolineStart        uint64
}

// Activator applies a satp token to the hart, the Go-side equivalent of the
// source's `csrw satp, {}; sfence.vma` pair in MemorySet::activate.
type Activator interface {
	SetSatp(token uint64)
}

// MemorySet is one address space: a page table plus the segments that own
// its leaf frames. Mirrors the source's MemorySet 1:1; map_trampoline,
// from_elf and insert_segment keep their names translated to Go case.
type MemorySet struct {
	alloc   *mem.Allocator
	backend mem.Backend
	pt      *pagetable.PageTable
	segs    []*Segment
}

func newEmpty(alloc *mem.Allocator) (*MemorySet, error) {
	pt, err := pagetable.New(alloc)
	if err != nil {
		return nil, err
	}
	return &MemorySet{alloc: alloc, backend: alloc.Backend(), pt: pt}, nil
}

func (ms *MemorySet) mapTrampoline(layout KernelLayout) error {
	return ms.pt.Map(VPN(config.TrampolineVA), mem.PPN(VPN(layout.TrampolineStart)), pagetable.R|pagetable.X)
}

// NewKernel builds the identity-mapped kernel address space: text/rodata
// read-execute and read-only respectively, data/bss/free-memory
// read-write, plus the trampoline page, matching MemorySet::new_kernel.
func NewKernel(alloc *mem.Allocator, layout KernelLayout) (*MemorySet, error) {
	ms, err := newEmpty(alloc)
	if err != nil {
		return nil, err
	}
	if err := ms.mapTrampoline(layout); err != nil {
		return nil, err
	}
	ranges := []identityRange{
		{VPN(layout.TextStart), VPN(layout.TextEnd), pagetable.R | pagetable.X},
		{VPN(layout.RodataStart), VPN(layout.RodataEnd), pagetable.R},
		{VPN(layout.DataStart), VPN(layout.DataEnd), pagetable.R | pagetable.W},
		{VPN(layout.BssStart), VPN(layout.BssEnd), pagetable.R | pagetable.W},
		{VPN(layout.KernelEnd), VPN(layout.MemEnd), pagetable.R | pagetable.W},
	}
	for _, r := range ranges {
		if err := r.mapInto(ms.pt); err != nil {
			return nil, err
		}
	}
	return ms, nil
}

// FromELF builds a user address space from a loaded executable image: one
// segment per PT_LOAD header, a guard-separated user stack above the
// highest loaded page, and the shared trap-context page below the
// trampoline. Returns the memory set, the initial user stack pointer and
// the entry address, matching MemorySet::from_elf's three-tuple.
func FromELF(alloc *mem.Allocator, layout KernelLayout, elfData []byte) (ms *MemorySet, userSP, entry uint64, err error) {
	ms, err = newEmpty(alloc)
	if err != nil {
		return nil, 0, 0, err
	}
	if err := ms.mapTrampoline(layout); err != nil {
		return nil, 0, 0, err
	}

	img, err := parseELF(elfData)
	if err != nil {
		return nil, 0, 0, err
	}

	var maxEndVPN uint64
	for _, lseg := range img.segments {
		startVPN := VPN(lseg.vaddr)
		endVPN := VPN(lseg.vaddr+lseg.memSize) + 1
		if endVPN > maxEndVPN {
			maxEndVPN = endVPN
		}
		if err := ms.InsertSegment(startVPN, endVPN, lseg.flags, lseg.data); err != nil {
			return nil, 0, 0, err
		}
	}

	userStackStart := maxEndVPN + 1 // guard page between image and stack
	userStackEnd := userStackStart + uint64(config.UserStackSize)/uint64(config.PGSIZE)
	if err := ms.InsertSegment(userStackStart, userStackEnd, pagetable.U|pagetable.R|pagetable.W, nil); err != nil {
		return nil, 0, 0, err
	}

	if err := ms.InsertSegment(VPN(config.TrapContextVA), VPN(config.TrampolineVA), pagetable.R|pagetable.W, nil); err != nil {
		return nil, 0, 0, err
	}

	return ms, userStackEnd*uint64(config.PGSIZE) - 1, img.entry, nil
}

// InsertSegment allocates a new segment spanning [startVPN, endVPN),
// optionally initializes it from data, and maps its frames into the page
// table. Matches MemorySet::insert_segment.
func (ms *MemorySet) InsertSegment(startVPN, endVPN uint64, flags pagetable.Flags, data []byte) error {
	seg, err := newSegment(ms.alloc, startVPN, endVPN, flags)
	if err != nil {
		return err
	}
	if data != nil {
		if uint64(len(data)) > (endVPN-startVPN)*uint64(config.PGSIZE) {
			seg.free(ms.alloc)
			return fmt.Errorf("memset: segment data does not fit in [%#x, %#x)", startVPN, endVPN)
		}
		seg.copyData(ms.backend, data)
	}
	if err := seg.mapInto(ms.pt); err != nil {
		seg.free(ms.alloc)
		return err
	}
	ms.segs = append(ms.segs, seg)
	return nil
}

// Translate looks up vpn in the underlying page table.
func (ms *MemorySet) Translate(vpn uint64) (mem.PPN, pagetable.Flags, bool) {
	return ms.pt.Translate(vpn)
}

// SatpToken returns the satp value that activates this address space.
func (ms *MemorySet) SatpToken() uint64 { return ms.pt.SatpToken() }

// Activate installs this address space as the hart's current satp.
func (ms *MemorySet) Activate(hart Activator) {
	hart.SetSatp(ms.SatpToken())
}

// Fork builds a deep-copy child address space: the trampoline mapping is
// reinstalled at its existing VPN/PPN/flags, and every segment is
// recreated with fresh frames whose contents are copied from the parent's.
// This kernel carries no copy-on-write (pagetable's doc comment already
// drops PTE_COW/PTE_WASCOW as out of scope), so fork's cost is paid
// eagerly here instead of being deferred to the first write.
func (ms *MemorySet) Fork(alloc *mem.Allocator) (*MemorySet, error) {
	child, err := newEmpty(alloc)
	if err != nil {
		return nil, err
	}

	trampVPN := VPN(config.TrampolineVA)
	if ppn, flags, ok := ms.pt.Translate(trampVPN); ok {
		if err := child.pt.Map(trampVPN, ppn, flags); err != nil {
			return nil, err
		}
	}

	for _, seg := range ms.segs {
		newSeg, err := newSegment(alloc, seg.startVPN, seg.endVPN, seg.flags)
		if err != nil {
			child.Drop()
			return nil, err
		}
		for vpn, ppn := range seg.frames {
			copy(child.backend.Page(newSeg.frames[vpn]), ms.backend.Page(ppn))
		}
		if err := newSeg.mapInto(child.pt); err != nil {
			newSeg.free(alloc)
			child.Drop()
			return nil, err
		}
		child.segs = append(child.segs, newSeg)
	}
	return child, nil
}

// Drop releases every frame this memory set owns: each segment's data
// frames, then the page table's own intermediate frames.
func (ms *MemorySet) Drop() {
	for _, seg := range ms.segs {
		seg.free(ms.alloc)
	}
	ms.segs = nil
	ms.pt.Drop()
}
