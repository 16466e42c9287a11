package sim

import (
	"sync/atomic"

	"github.com/ezrec/ucalc/hal"
)

// Gpio is the I/O port model. Input lines are driven from outside the
// board; output lines read back their driven level.
type Gpio struct {
	input  [hal.PORT_COUNT]atomic.Uint32
	output [hal.PORT_COUNT]atomic.Uint32
	driven [hal.PORT_COUNT]atomic.Uint32 // Lines configured as outputs.
	pulled [hal.PORT_COUNT]atomic.Uint32 // Lines with pull-downs.
}

var _ hal.Gpio = (*Gpio)(nil)

// Configure sets the mode of pin.
func (g *Gpio) Configure(pin hal.Pin, mode hal.Mode) {
	mask := pin.Mask()

	g.driven[pin.Port].And(^mask)
	g.pulled[pin.Port].And(^mask)

	switch mode {
	case hal.MODE_OUTPUT:
		g.driven[pin.Port].Or(mask)
	case hal.MODE_INPUT_PULL_DOWN:
		g.pulled[pin.Port].Or(mask)
	}
}

// Mode returns the configured mode of pin.
func (g *Gpio) Mode(pin hal.Pin) hal.Mode {
	mask := pin.Mask()

	switch {
	case g.driven[pin.Port].Load()&mask != 0:
		return hal.MODE_OUTPUT
	case g.pulled[pin.Port].Load()&mask != 0:
		return hal.MODE_INPUT_PULL_DOWN
	}

	return hal.MODE_INPUT
}

// Set drives an output pin.
func (g *Gpio) Set(pin hal.Pin, level bool) {
	if level {
		g.output[pin.Port].Or(pin.Mask())
	} else {
		g.output[pin.Port].And(^pin.Mask())
	}
}

// ReadAll returns the levels of every line of port.
func (g *Gpio) ReadAll(port hal.Port) uint32 {
	driven := g.driven[port].Load()
	return (g.input[port].Load() &^ driven) | (g.output[port].Load() & driven)
}

// Drive sets the external levels of port's lines in mask.
func (g *Gpio) Drive(port hal.Port, mask uint32, level bool) {
	if level {
		g.input[port].Or(mask)
	} else {
		g.input[port].And(^mask)
	}
}

// Level returns the level driven on an output pin.
func (g *Gpio) Level(pin hal.Pin) bool {
	return g.output[pin.Port].Load()&pin.Mask() != 0
}

// Replace sets the external levels of port's lines in mask to value, in one
// step.
func (g *Gpio) Replace(port hal.Port, mask uint32, value uint32) {
	for {
		old := g.input[port].Load()
		if g.input[port].CompareAndSwap(old, (old&^mask)|(value&mask)) {
			return
		}
	}
}
