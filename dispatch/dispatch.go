// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package dispatch is the firmware's main loop: it drains button events
// queued by the keyboard interrupt, applies presses to the calculator and
// repaints the display, and idles the processor when there is nothing to do.
package dispatch

import (
	"context"
	"log"

	"github.com/ezrec/ucalc/critical"
	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/hal"
)

// Calculator is the calculator state the loop forwards presses to.
type Calculator interface {
	// Apply handles a key press. It must not block.
	Apply(key event.Key)
	// Screen returns the calculator's framebuffer.
	Screen() *display.Framebuffer
}

// Refresher repaints the display from a framebuffer.
type Refresher interface {
	Refresh(fb *display.Framebuffer) error
}

// Loop drains the event queue.
type Loop struct {
	Verbose bool

	Cpu        hal.Cpu
	Section    *critical.Section
	Queue      *event.Queue
	Calculator Calculator
	Display    Refresher

	// Status, if set, is told the accumulated display status after every
	// refresh.
	Status func(ok bool)

	Err      error // First display failure, if any.
	Presses  int   // Down events applied.
	Releases int   // Up events observed.
	Idles    int   // Wait-for-interrupt count.
}

// Step performs one drain attempt. It returns true if an event was handled,
// and false after idling the processor on an empty queue.
func (loop *Loop) Step() (handled bool) {
	g := loop.Section.Start()
	ev, ok := loop.Queue.Pop(g)
	g.End()

	if !ok {
		loop.Idles++
		loop.Cpu.WaitForInterrupt()
		return false
	}

	if loop.Verbose {
		log.Printf("dispatch: %v", ev)
	}

	if ev.Edge != event.EDGE_DOWN {
		loop.Releases++
		return true
	}

	loop.Presses++
	loop.Calculator.Apply(ev.Key)
	loop.Report(loop.Display.Refresh(loop.Calculator.Screen()))

	return true
}

// Report folds a display result into the accumulated status.
func (loop *Loop) Report(err error) {
	if err != nil && loop.Err == nil {
		loop.Err = err
	}

	if loop.Status != nil {
		loop.Status(loop.Err == nil)
	}
}

// Run steps forever. On the host it returns ctx's error once ctx is done;
// the processor must keep interrupting for Run to notice.
func (loop *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		loop.Step()
	}
}
