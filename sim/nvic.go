package sim

import (
	"context"
	"log"
	"math/bits"
	"sync/atomic"

	"github.com/ezrec/ucalc/vector"
)

// Nvic is the interrupt controller model. Lines are serviced lowest number
// first. A line whose source is still asserted when its handler returns is
// pended again, as level-triggered peripheral interrupts are.
type Nvic struct {
	Verbose bool

	Cpu   *Cpu
	Table *vector.Table

	// Asserted, if set for a line, reports whether its source still
	// requests service.
	Asserted [vector.LINE_COUNT]func() bool

	Panic atomic.Pointer[any] // Last handler panic cause.

	pending atomic.Uint32
	wake    chan struct{}
}

// NewNvic returns a controller delivering table on cpu.
func NewNvic(cpu *Cpu, table *vector.Table) *Nvic {
	return &Nvic{
		Cpu:   cpu,
		Table: table,
		wake:  make(chan struct{}, 1),
	}
}

// Raise pends line.
func (n *Nvic) Raise(line vector.Line) {
	n.pending.Or(1 << line)
	select {
	case n.wake <- struct{}{}:
	default:
	}
}

// Pending reports whether line awaits service.
func (n *Nvic) Pending(line vector.Line) bool {
	return n.pending.Load()&(1<<line) != 0
}

// Run services pended lines until ctx is done or the core halts.
func (n *Nvic) Run(ctx context.Context) {
	for {
		pending := n.pending.Load()
		if pending == 0 {
			select {
			case <-ctx.Done():
				return
			case <-n.Cpu.Halted():
				return
			case <-n.wake:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		line := vector.Line(bits.TrailingZeros32(pending))
		if !n.Cpu.enter() {
			return
		}
		n.pending.And(^uint32(1 << line))
		n.deliver(line)
		n.Cpu.leave()

		if asserted := n.Asserted[line]; asserted != nil && asserted() {
			n.Raise(line)
		}
	}
}

// deliver runs the handler for line. A line with no handler, or a handler
// that panics, escalates to the hard fault.
func (n *Nvic) deliver(line vector.Line) {
	handler, ok := n.Table.Lookup(line)
	if !ok {
		if n.Verbose {
			log.Printf("nvic: %v: no handler", line)
		}
		n.hardFault()
		return
	}

	defer func() {
		if cause := recover(); cause != nil {
			if n.Verbose {
				log.Printf("nvic: %v: %v", line, cause)
			}
			n.Panic.Store(&cause)
			n.hardFault()
		}
	}()

	handler()
}

func (n *Nvic) hardFault() {
	if n.Table.HardFault == nil {
		n.Cpu.Halt()
	}
	n.Table.HardFault()
}
