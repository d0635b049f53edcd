// Package console adapts the platform's single-byte SBI putchar/getchar
// pair into the kernel's console: every written byte is echoed unchanged to
// the platform, and is also sanitised as UTF-8 and mirrored into a virtual
// terminal kept purely so tests can assert against rendered screen content instead
// of a raw byte comparison, per the corpus's own terminal tests
// (tinyrange-cc's internal/term).
package console

import (
	"sync"

	"github.com/charmbracelet/x/vt"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Direktor799/unnamed-os/internal/sbi"
)

// Console implements internal/syscall's Console interface on top of a
// Platform's raw putchar/getchar pair.
type Console struct {
	mu       sync.Mutex
	platform sbi.Platform
	dec      transform.Transformer
	pending  []byte
	emu      *vt.SafeEmulator
}

// DefaultCols and DefaultRows size the virtual terminal kept for test
// assertions; no real hardware geometry constrains this kernel's console.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// New wraps platform's console calls, with a DefaultCols x DefaultRows
// virtual terminal behind it.
func New(platform sbi.Platform) *Console {
	return &Console{
		platform: platform,
		dec:      unicode.UTF8.NewDecoder(),
		emu:      vt.NewSafeEmulator(DefaultCols, DefaultRows),
	}
}

// WriteByte sends b to the platform console and, once enough bytes have
// accumulated to decode a complete rune, feeds the sanitised UTF-8 into the
// virtual terminal.
func (c *Console) WriteByte(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.platform.ConsolePutchar(b)

	c.pending = append(c.pending, b)
	dst := make([]byte, 4*len(c.pending))
	nDst, nSrc, err := c.dec.Transform(dst, c.pending, false)
	if err == transform.ErrShortSrc {
		// an incomplete multi-byte rune; wait for the rest of it.
		return
	}
	if nDst > 0 {
		_, _ = c.emu.Write(dst[:nDst])
	}
	c.pending = append([]byte{}, c.pending[nSrc:]...)
}

// ReadByte passes a getchar straight through; input sanitisation is a
// line-discipline concern the spec leaves to user space.
func (c *Console) ReadByte() (byte, bool) {
	return c.platform.ConsoleGetchar()
}

// Write implements io.Writer over WriteByte, so the trap handler can hand
// internal/trap.Handler.SetDiagOutput a Console directly.
func (c *Console) Write(p []byte) (int, error) {
	for _, b := range p {
		c.WriteByte(b)
	}
	return len(p), nil
}

// Line returns the rendered text of screen row y, trimmed of trailing
// blanks, for test assertions against what a human reading the console
// would see.
func (c *Console) Line(y int) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sb []byte
	width, _ := c.emu.Width(), c.emu.Height()
	for x := 0; x < width; x++ {
		cell := c.emu.CellAt(x, y)
		if cell == nil || cell.Content == "" {
			sb = append(sb, ' ')
			continue
		}
		sb = append(sb, []byte(cell.Content)...)
	}
	end := len(sb)
	for end > 0 && sb[end-1] == ' ' {
		end--
	}
	return string(sb[:end])
}
