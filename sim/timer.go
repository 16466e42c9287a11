package sim

import (
	"sync/atomic"
	"time"

	"github.com/ezrec/ucalc/hal"
	"github.com/ezrec/ucalc/vector"
)

// Timer is the scan timer model. Each period it sets its update flag and
// raises its line; the flag holds the line asserted until acknowledged.
type Timer struct {
	Period time.Duration
	Nvic   *Nvic
	Line   vector.Line

	flag    atomic.Bool
	started atomic.Bool
	ticks   atomic.Int64
	acks    atomic.Int64
}

var _ hal.Timer = (*Timer)(nil)

// NewTimer returns a stopped timer on nvic's line.
func NewTimer(nvic *Nvic, line vector.Line, period time.Duration) (t *Timer) {
	t = &Timer{
		Period: period,
		Nvic:   nvic,
		Line:   line,
	}

	nvic.Asserted[line] = t.flag.Load

	return
}

// Start begins periodic updates until the core halts. Later calls do nothing.
func (t *Timer) Start() {
	if t.started.Swap(true) {
		return
	}

	go func() {
		ticker := time.NewTicker(t.Period)
		defer ticker.Stop()

		for {
			select {
			case <-t.Nvic.Cpu.Halted():
				return
			case <-ticker.C:
				t.Tick()
			}
		}
	}()
}

// Started reports whether Start was called.
func (t *Timer) Started() bool {
	return t.started.Load()
}

// Tick performs one update.
func (t *Timer) Tick() {
	t.ticks.Add(1)
	t.flag.Store(true)
	t.Nvic.Raise(t.Line)
}

// Acknowledge clears the update flag.
func (t *Timer) Acknowledge() {
	t.acks.Add(1)
	t.flag.Store(false)
}

// Ticks returns the updates since power on.
func (t *Timer) Ticks() int64 {
	return t.ticks.Load()
}

// Acks returns the acknowledgements since power on: one per serviced scan.
func (t *Timer) Acks() int64 {
	return t.acks.Load()
}
