//go:build !riscv64

package switcher

// Switch, off real hardware, has nothing to save or restore: there is no
// virtual CPU executing arbitrary machine code for old/new to describe the
// register state of. It exists so internal/sched's scheduling-decision
// logic can be exercised by go test against the exact same call sequence
// the riscv64 build makes, with Hook as the observation point tests use in
// place of inspecting register contents.
var Hook func(old, new *Context)

func Switch(old, new *Context) {
	if Hook != nil {
		Hook(old, new)
	}
}
