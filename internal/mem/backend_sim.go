//go:build !riscv64

package mem

import "golang.org/x/sys/unix"

// SimBackend simulates physical RAM with an anonymous mmap arena, the same
// trick used by host-level RISC-V and KVM emulators in the wild (the
// corpus's usbarmory-tamago MMU code and jamlee-t-gokvm both back "physical
// memory" with a single mmap'd slice rather than a hardware address space).
// Every GOARCH/GOOS this kernel's tests run under builds this backend
// instead of backend_riscv64.go.
type SimBackend struct {
	mem   []byte
	first PPN
	end   PPN
}

// NewSimBackend reserves npages frames starting at PPN first, backed by a
// single anonymous mapping.
func NewSimBackend(first PPN, npages int) (*SimBackend, error) {
	buf, err := unix.Mmap(-1, 0, npages*PGSIZE, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &SimBackend{mem: buf, first: first, end: first + PPN(npages)}, nil
}

// Close releases the backing mapping.
func (s *SimBackend) Close() error {
	return unix.Munmap(s.mem)
}

func (s *SimBackend) Page(ppn PPN) []byte {
	if ppn < s.first || ppn >= s.end {
		panic("mem: Page() of unreserved ppn")
	}
	off := int(ppn-s.first) * PGSIZE
	return s.mem[off : off+PGSIZE]
}

func (s *SimBackend) Base() PPN { return s.first }
func (s *SimBackend) End() PPN  { return s.end }
