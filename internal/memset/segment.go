// Package memset builds per-address-space memory layouts on top of
// pagetable.PageTable: a kernel identity map, an ELF-loaded user image, and
// the fixed trampoline/trap-context mappings every address space shares.
//
// Grounded on the source's MemorySet/MemorySegment (memory_set.rs) with the
// segment/page-table split kept exactly as there, restyled after biscuit's
// Vm_t (vm/as.go): a segment owns the frames backing it, the page table only
// records where they are mapped.
package memset

import (
	"github.com/Direktor799/unnamed-os/internal/config"
	"github.com/Direktor799/unnamed-os/internal/mem"
	"github.com/Direktor799/unnamed-os/internal/pagetable"
)

// Segment is a contiguous, page-aligned virtual range backed by frames the
// segment itself owns. copy_data in the source becomes copyData here.
type Segment struct {
	startVPN, endVPN uint64 // [startVPN, endVPN)
	flags            pagetable.Flags
	frames           map[uint64]mem.PPN // vpn -> owned frame
}

func newSegment(alloc *mem.Allocator, startVPN, endVPN uint64, flags pagetable.Flags) (*Segment, error) {
	seg := &Segment{
		startVPN: startVPN,
		endVPN:   endVPN,
		flags:    flags,
		frames:   make(map[uint64]mem.PPN, endVPN-startVPN),
	}
	for vpn := startVPN; vpn < endVPN; vpn++ {
		ppn, err := alloc.AllocZeroed()
		if err != nil {
			seg.free(alloc)
			return nil, err
		}
		seg.frames[vpn] = ppn
	}
	return seg, nil
}

func (s *Segment) free(alloc *mem.Allocator) {
	for _, ppn := range s.frames {
		alloc.Dealloc(ppn)
	}
	s.frames = nil
}

// copyData writes data into the segment's frames starting at startVPN,
// spanning as many pages as needed. data must fit within the segment.
func (s *Segment) copyData(backend mem.Backend, data []byte) {
	off := 0
	for vpn := s.startVPN; off < len(data); vpn++ {
		ppn, ok := s.frames[vpn]
		if !ok {
			panic("memset: segment data longer than its VPN range")
		}
		page := backend.Page(ppn)
		n := copy(page, data[off:])
		off += n
	}
}

func (s *Segment) mapInto(pt *pagetable.PageTable) error {
	for vpn, ppn := range s.frames {
		if err := pt.Map(vpn, ppn, s.flags); err != nil {
			return err
		}
	}
	return nil
}

// identityRange is the kernel's own text/rodata/data/bss/free-memory
// ranges: ppn == vpn, and the segment does not own the frames it maps (the
// kernel image is not allocator-backed), so unlike Segment it is never
// freed through the allocator.
type identityRange struct {
	startVPN, endVPN uint64
	flags            pagetable.Flags
}

func (r identityRange) mapInto(pt *pagetable.PageTable) error {
	for vpn := r.startVPN; vpn < r.endVPN; vpn++ {
		if err := pt.Map(vpn, mem.PPN(vpn), r.flags); err != nil {
			return err
		}
	}
	return nil
}

// VPN converts a virtual address to its virtual page number, truncating the
// page offset, matching VirtAddr::vpn in the source.
func VPN(va uint64) uint64 { return va >> config.PGSHIFT }
