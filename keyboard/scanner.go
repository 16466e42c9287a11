package keyboard

import (
	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/hal"
)

// Scanner is the keyboard timer's interrupt handler.
type Scanner struct {
	Gpio   hal.Gpio
	Timer  hal.Timer
	Layout Layout
	Queue  *event.Queue

	// Detect derives events from raster changes. Nil uses the package Detect.
	Detect func(previous, current Raster) (event.Event, bool)

	previous Raster
}

// Configure sets the matrix pins as pulled-down inputs.
func (s *Scanner) Configure() {
	for _, pin := range s.Layout.Pins() {
		s.Gpio.Configure(pin, hal.MODE_INPUT_PULL_DOWN)
	}
}

// Previous returns the raster retained from the last interrupt.
func (s *Scanner) Previous() Raster {
	return s.previous
}

// Interrupt services one timer interrupt. It must not block, log or
// allocate: it preempts the main context.
func (s *Scanner) Interrupt() {
	s.Timer.Acknowledge()

	current := s.Layout.Sample(s.Gpio.ReadAll(s.Layout.Port))

	detect := s.Detect
	if detect == nil {
		detect = Detect
	}

	if ev, ok := detect(s.previous, current); ok {
		// Overflow is the queue policy's business.
		_ = s.Queue.Push(ev)
	}

	s.previous = current
}
