// Package pagetable implements a three-level SV39-style page table: build,
// walk, map/unmap single pages, and pack the satp token.
//
// Grounded on biscuit's pmap walk (vm/as.go's pmap_walk/Page_insert call
// sites) and mem.Pmap_t, generalised from biscuit's four-level x86 tree to
// the spec's fixed three-level SV39 tree, and simplified by dropping
// biscuit's copy-on-write bookkeeping (PTE_COW/PTE_WASCOW): SPEC_FULL.md's
// non-goals exclude demand paging, so a PTE here carries only the
// architectural SV39 flag bits.
package pagetable

import (
	"fmt"

	"github.com/Direktor799/unnamed-os/internal/mem"
)

// Flags is the SV39 PTE flag set: V, R, W, X, U, G, A, D.
type Flags uint64

const (
	V Flags = 1 << 0 // valid
	R Flags = 1 << 1 // readable
	W Flags = 1 << 2 // writable
	X Flags = 1 << 3 // executable
	U Flags = 1 << 4 // user-accessible
	G Flags = 1 << 5 // global
	A Flags = 1 << 6 // accessed
	D Flags = 1 << 7 // dirty

	flagBits = 8
	ppnShift = 10 // SV39 PTE: [63:54] reserved, [53:10] PPN, [9:8] RSW, [7:0] flags
)

// IsLeaf reports whether f marks a leaf PTE (any of R/W/X set).
func (f Flags) IsLeaf() bool { return f&(R|W|X) != 0 }

// pte is a single 64-bit SV39 page table entry.
type pte uint64

func mkpte(ppn mem.PPN, f Flags) pte {
	return pte(uint64(ppn)<<ppnShift | uint64(f))
}

func (p pte) flags() Flags   { return Flags(p) & ((1 << flagBits) - 1) }
func (p pte) ppn() mem.PPN   { return mem.PPN(uint64(p) >> ppnShift) }
func (p pte) valid() bool    { return p.flags()&V != 0 }

// indices decomposes a virtual page number into its three 9-bit per-level
// indices, top level first, matching the source's VirtPageNum::indices.
func indices(vpn uint64) [3]uint {
	var idx [3]uint
	v := vpn
	for i := 2; i >= 0; i-- {
		idx[i] = uint(v & 0x1ff)
		v >>= 9
	}
	return idx
}

// PageTable is the root PPN plus the set of intermediate-level frames it
// owns. Dropping it frees exactly those frames; leaf-mapped frames belong
// to the memory segments that installed them, never to the page table.
type PageTable struct {
	alloc  *mem.Allocator
	root   mem.PPN
	owned  []mem.PPN // intermediate (non-leaf) frames, for Drop
}

// New allocates a zeroed root page and returns an empty page table.
func New(alloc *mem.Allocator) (*PageTable, error) {
	root, err := alloc.AllocZeroed()
	if err != nil {
		return nil, err
	}
	return &PageTable{alloc: alloc, root: root, owned: []mem.PPN{root}}, nil
}

func (pt *PageTable) entries(ppn mem.PPN) []pte {
	raw := pt.alloc.Backend().Page(ppn)
	n := len(raw) / 8
	out := make([]pte, n)
	for i := 0; i < n; i++ {
		var v uint64
		for b := 0; b < 8; b++ {
			v |= uint64(raw[i*8+b]) << (8 * b)
		}
		out[i] = pte(v)
	}
	return out
}

func (pt *PageTable) writeEntry(ppn mem.PPN, slot uint, e pte) {
	raw := pt.alloc.Backend().Page(ppn)
	v := uint64(e)
	off := slot * 8
	for b := 0; b < 8; b++ {
		raw[off+uint(b)] = byte(v >> (8 * b))
	}
}

func (pt *PageTable) readEntry(ppn mem.PPN, slot uint) pte {
	raw := pt.alloc.Backend().Page(ppn)
	var v uint64
	off := slot * 8
	for b := 0; b < 8; b++ {
		v |= uint64(raw[off+uint(b)]) << (8 * b)
	}
	return pte(v)
}

// walk returns the PPN of the leaf-level table that should hold vpn's PTE,
// allocating and zeroing missing intermediate levels along the way when
// create is true. It returns false if an intermediate level is missing and
// create is false.
func (pt *PageTable) walk(vpn uint64, create bool) (mem.PPN, uint, bool, error) {
	idx := indices(vpn)
	cur := pt.root
	for level := 0; level < 2; level++ {
		e := pt.readEntry(cur, idx[level])
		if !e.valid() {
			if !create {
				return 0, 0, false, nil
			}
			child, err := pt.alloc.AllocZeroed()
			if err != nil {
				return 0, 0, false, err
			}
			pt.owned = append(pt.owned, child)
			pt.writeEntry(cur, idx[level], mkpte(child, V))
			cur = child
			continue
		}
		if e.flags().IsLeaf() {
			panic("pagetable: intermediate PTE unexpectedly a leaf")
		}
		cur = e.ppn()
	}
	return cur, idx[2], true, nil
}

// Map installs ppn at vpn with the given leaf flags, creating missing
// intermediate tables as needed. f must not include V; Map sets it.
func (pt *PageTable) Map(vpn uint64, ppn mem.PPN, f Flags) error {
	table, slot, _, err := pt.walk(vpn, true)
	if err != nil {
		return err
	}
	pt.writeEntry(table, slot, mkpte(ppn, f|V))
	return nil
}

// Unmap clears the leaf PTE for vpn. It panics if no mapping is present,
// per the spec's contract: unmap of an unmapped page is a bug, not a
// recoverable condition.
func (pt *PageTable) Unmap(vpn uint64) {
	table, slot, ok, err := pt.walk(vpn, false)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Sprintf("pagetable: unmap of vpn %#x has no intermediate table", vpn))
	}
	e := pt.readEntry(table, slot)
	if !e.valid() {
		panic(fmt.Sprintf("pagetable: unmap of unmapped vpn %#x", vpn))
	}
	pt.writeEntry(table, slot, 0)
}

// Translate returns the PPN and flags mapped at vpn, if any.
func (pt *PageTable) Translate(vpn uint64) (mem.PPN, Flags, bool) {
	table, slot, ok, err := pt.walk(vpn, false)
	if err != nil {
		panic(err)
	}
	if !ok {
		return 0, 0, false
	}
	e := pt.readEntry(table, slot)
	if !e.valid() {
		return 0, 0, false
	}
	return e.ppn(), e.flags(), true
}

// satpMode is the SV39 encoding of satp's MODE field.
const satpMode = 8 << 60

// SatpToken packs mode=SV39 and the root PPN into the format the hardware
// satp CSR expects.
func (pt *PageTable) SatpToken() uint64 {
	return satpMode | uint64(pt.root)
}

// Root returns the page table's root PPN, used by tests.
func (pt *PageTable) Root() mem.PPN { return pt.root }

// Drop frees every intermediate frame this page table owns. Leaf-mapped
// frames are not touched; the caller (MemorySet) is responsible for them.
func (pt *PageTable) Drop() {
	for _, p := range pt.owned {
		pt.alloc.Dealloc(p)
	}
	pt.owned = nil
}
