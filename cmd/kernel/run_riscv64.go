//go:build riscv64

package main

import "github.com/Direktor799/unnamed-os/internal/trap"

// Run installs the trap handler and hands the hart to the scheduler. It
// never returns: the daemon, or whichever process the scheduler picks
// next, runs until a trap brings control back through Handler.
func (k *Kernel) Run() {
	trap.Install(k.Handler)
	k.Mgr.Run()
}
