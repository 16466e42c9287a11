package event

import (
	"github.com/ezrec/ucalc/critical"
)

type cpu struct {
	enabled bool
}

func (c *cpu) DisableInterrupts()      { c.enabled = false }
func (c *cpu) EnableInterrupts()       { c.enabled = true }
func (c *cpu) InterruptsEnabled() bool { return c.enabled }
func (c *cpu) WaitForInterrupt()       {}
func (c *cpu) Spin(n int)              {}
func (c *cpu) Halt()                   { select {} }

func newSection() *critical.Section {
	return critical.NewSection(&cpu{enabled: true})
}

// popAll drains the queue inside one guard.
func popAll(cs *critical.Section, q *Queue) (events []Event) {
	cs.With(func(g *critical.Guard) {
		for ev, ok := q.Pop(g); ok; ev, ok = q.Pop(g) {
			events = append(events, ev)
		}
	})
	return
}
