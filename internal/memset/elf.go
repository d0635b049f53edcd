package memset

import (
	"debug/elf"
	"bytes"
	"fmt"

	"github.com/Direktor799/unnamed-os/internal/pagetable"
)

// loadSegment is one PT_LOAD program header's relevant fields, decoded with
// the standard library's debug/elf the way chentry.go decodes ELF headers
// (here to read program headers rather than rewrite the entry point).
type loadSegment struct {
	vaddr, memSize, fileSize uint64
	flags                    pagetable.Flags
	data                     []byte
}

type elfImage struct {
	entry    uint64
	segments []loadSegment
}

// parseELF decodes a little-endian riscv64 executable's PT_LOAD headers.
func parseELF(raw []byte) (*elfImage, error) {
	f, err := elf.NewFile(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("memset: invalid elf: %w", err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS64 {
		return nil, fmt.Errorf("memset: not a 64-bit elf")
	}
	if f.Type != elf.ET_EXEC {
		return nil, fmt.Errorf("memset: not an executable elf")
	}

	img := &elfImage{entry: f.Entry}
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		seg := loadSegment{
			vaddr:    prog.Vaddr,
			memSize:  prog.Memsz,
			fileSize: prog.Filesz,
			flags:    pagetable.U,
		}
		if prog.Flags&elf.PF_R != 0 {
			seg.flags |= pagetable.R
		}
		if prog.Flags&elf.PF_W != 0 {
			seg.flags |= pagetable.W
		}
		if prog.Flags&elf.PF_X != 0 {
			seg.flags |= pagetable.X
		}
		if seg.fileSize > 0 {
			off := prog.Off
			if off+seg.fileSize > uint64(len(raw)) {
				return nil, fmt.Errorf("memset: program header exceeds file size")
			}
			seg.data = raw[off : off+seg.fileSize]
		}
		img.segments = append(img.segments, seg)
	}
	return img, nil
}
