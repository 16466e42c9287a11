package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/ezrec/ucalc/calc"
	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/sim"
)

const (
	KEY_QUIT   = 'q'
	KEY_EOF    = 0x04
	KEY_ESCAPE = 0x1b
)

// rawMode turns off line buffering and echo on stdin. The returned function
// restores the terminal.
func rawMode() (restore func(), err error) {
	fd := os.Stdin.Fd()

	var orig unix.Termios
	err = termios.Tcgetattr(fd, &orig)
	if err != nil {
		return
	}

	raw := orig
	raw.Lflag &^= unix.ICANON | unix.ECHO
	err = termios.Tcsetattr(fd, termios.TCSANOW, &raw)
	if err != nil {
		return
	}

	restore = func() {
		_ = termios.Tcsetattr(fd, termios.TCSANOW, &orig)
	}

	return
}

func redraw(board *sim.Board) {
	fmt.Print("\x1b[H\x1b[2J")
	fmt.Print(board.Panel.String())
	fmt.Print("keys: 0-9 . + - * / ( ) = Enter, Backspace, c clear, q quit\n")
}

// session taps keys typed on the terminal until quit or end of input.
func session(ctx context.Context, board *sim.Board, st *calc.State) (err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	if width, _, size_err := term.GetSize(int(os.Stdout.Fd())); size_err == nil && width < display.WIDTH {
		log.Printf("ucalc: terminal is %d columns, the display needs %d", width, display.WIDTH)
	}

	restore, err := rawMode()
	if err != nil {
		return
	}
	defer restore()

	input := make(chan byte, 16)
	go func() {
		defer close(input)
		buf := make([]byte, 1)
		for {
			n, read_err := os.Stdin.Read(buf)
			if read_err != nil {
				return
			}
			if n == 1 {
				input <- buf[0]
			}
		}
	}()

	redraw(board)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-board.Cpu.Halted():
			return sim.ErrHalted
		case c, ok := <-input:
			if !ok || c == KEY_QUIT || c == KEY_EOF || c == KEY_ESCAPE {
				return
			}
			err = tap(ctx, board, st, string([]byte{c}))
			if err != nil {
				return
			}
			redraw(board)
		}
	}
}
