//go:build riscv64

package sbi

// ecall issues an SBI call with the given extension/function IDs and up to
// two arguments, returning (error, value) in a0/a1 per the SBI calling
// convention. Implemented in hart_riscv64.s.
func ecall(eid, fid, a0, a1 uint64) (uint64, uint64)

// csrWriteSatp installs token into the satp CSR and fences the TLB.
// Implemented in hart_riscv64.s.
func csrWriteSatp(token uint64)

// csrReadTime reads the time CSR (mtime, made available to S-mode via
// mcounteren). Implemented in hart_riscv64.s.
func csrReadTime() uint64

// Hart is the real ecall-backed Platform.
type Hart struct{}

func NewHart() *Hart { return &Hart{} }

func (Hart) ConsolePutchar(c byte) {
	ecall(extLegacyPutchar, 0, uint64(c), 0)
}

func (Hart) ConsoleGetchar() (byte, bool) {
	_, val := ecall(extLegacyGetchar, 0, 0, 0)
	if val == ^uint64(0) {
		return 0, false
	}
	return byte(val), true
}

func (Hart) SetTimer(deadline uint64) {
	ecall(extTimer, 0, deadline, 0)
}

func (Hart) Time() uint64 {
	return csrReadTime()
}

func (Hart) SetSatp(token uint64) {
	csrWriteSatp(token)
}

func (Hart) Shutdown() {
	ecall(extSRST, 0, 0, 0) // type=shutdown, reason=none
	for {
	}
}
