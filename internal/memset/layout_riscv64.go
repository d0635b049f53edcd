//go:build riscv64

package memset

// Linker-provided symbol addresses, implemented in layout_riscv64.s and
// resolved from kernel.ld the same way mem.kernelEndPPN/memEndPPN resolve
// _kernel_end/_mem_end: the kernel image's own section boundaries aren't
// knowable at compile time, only at link time.
func trampolineStartVA() uint64
func textStartVA() uint64
func textEndVA() uint64
func rodataStartVA() uint64
func rodataEndVA() uint64
func dataStartVA() uint64
func dataEndVA() uint64
func bssStartVA() uint64
func bssEndVA() uint64
func kernelEndVA() uint64
func memEndVA() uint64

// CurrentKernelLayout reads the running kernel image's own section
// boundaries off the linker script, for cmd/kernel's boot sequence to pass
// to NewKernel without hand-maintaining addresses that the linker already
// knows.
func CurrentKernelLayout() KernelLayout {
	return KernelLayout{
		TrampolineStart: trampolineStartVA(),
		TextStart:       textStartVA(),
		TextEnd:         textEndVA(),
		RodataStart:     rodataStartVA(),
		RodataEnd:       rodataEndVA(),
		DataStart:       dataStartVA(),
		DataEnd:         dataEndVA(),
		BssStart:        bssStartVA(),
		BssEnd:          bssEndVA(),
		KernelEnd:       kernelEndVA(),
		MemEnd:          memEndVA(),
	}
}
