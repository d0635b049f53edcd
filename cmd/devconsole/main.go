// Command devconsole puts the host terminal into raw mode and bridges
// keystrokes into a simulated SBI console's getchar queue, echoing
// whatever the simulated side reads back the way a real UART loopback
// would. It exists to exercise internal/sbi's simulated platform and
// internal/console's byte-at-a-time decoding by hand, since cmd/kernel's
// own Run only does anything on real riscv64 hardware.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/Direktor799/unnamed-os/internal/sbi"
)

// detachByte is the escape keystroke (ctrl-]) that ends the session, the
// same one telnet uses for its own loopback consoles.
const detachByte = 0x1d

func main() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "devconsole: stdin is not a terminal")
		os.Exit(1)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devconsole: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(fd, oldState)

	sim := sbi.NewSim(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// feed reads raw keystrokes off the host terminal and hands them to
	// the simulated console's input queue, as if they had arrived on a
	// real UART.
	g.Go(func() error {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return err
			}
			if n == 0 {
				continue
			}
			if buf[0] == detachByte {
				return context.Canceled
			}
			sim.Feed(buf[0])
		}
	})

	// echo drains whatever the simulated side's getchar would return and
	// writes it straight back out through putchar, a loopback standing
	// in for a kernel actually consuming console input.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			b, ok := sim.ConsoleGetchar()
			if !ok {
				time.Sleep(time.Millisecond)
				continue
			}
			sim.ConsolePutchar(b)
		}
	})

	_ = g.Wait()
	fmt.Fprint(os.Stderr, "\r\ndevconsole: detached\r\n")
}
