package keyboard

import (
	"github.com/ezrec/ucalc/critical"
	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/hal"
)

type gpio struct {
	ports      [hal.PORT_COUNT]uint32
	configured map[hal.Pin]hal.Mode
}

func (g *gpio) Configure(pin hal.Pin, mode hal.Mode) {
	if g.configured == nil {
		g.configured = map[hal.Pin]hal.Mode{}
	}
	g.configured[pin] = mode
}

func (g *gpio) Set(pin hal.Pin, level bool) {}

func (g *gpio) ReadAll(port hal.Port) uint32 {
	return g.ports[port]
}

type timer struct {
	acks int
	// order records calls, to check the acknowledge comes first.
	order *[]string
}

func (t *timer) Start() {}

func (t *timer) Acknowledge() {
	t.acks++
	if t.order != nil {
		*t.order = append(*t.order, "ack")
	}
}

type cpu struct{}

func (cpu) DisableInterrupts()      {}
func (cpu) EnableInterrupts()       {}
func (cpu) InterruptsEnabled() bool { return true }
func (cpu) WaitForInterrupt()       {}
func (cpu) Spin(n int)              {}
func (cpu) Halt()                   { select {} }

func drain(q *event.Queue) (events []event.Event) {
	critical.NewSection(cpu{}).With(func(g *critical.Guard) {
		for ev, ok := q.Pop(g); ok; ev, ok = q.Pop(g) {
			events = append(events, ev)
		}
	})
	return
}
