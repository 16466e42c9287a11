package dispatch

import (
	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/event"
)

type cpu struct {
	enabled bool
	waits   int
	// onWait runs in place of an interrupt while waiting.
	onWait func()
}

func (c *cpu) DisableInterrupts()      { c.enabled = false }
func (c *cpu) EnableInterrupts()       { c.enabled = true }
func (c *cpu) InterruptsEnabled() bool { return c.enabled }
func (c *cpu) Spin(n int)              {}
func (c *cpu) Halt()                   { select {} }

func (c *cpu) WaitForInterrupt() {
	c.waits++
	if c.onWait != nil {
		c.onWait()
	}
}

type calculator struct {
	applied []event.Key
	screen  display.Framebuffer
	// enabled records the interrupt state seen by Apply.
	cpu     *cpu
	enabled []bool
}

func (c *calculator) Apply(key event.Key) {
	c.applied = append(c.applied, key)
	c.screen.Set(int(key), 0, true)
	if c.cpu != nil {
		c.enabled = append(c.enabled, c.cpu.enabled)
	}
}

func (c *calculator) Screen() *display.Framebuffer {
	return &c.screen
}

type refresher struct {
	frames []display.Framebuffer
	err    error
}

func (r *refresher) Refresh(fb *display.Framebuffer) error {
	r.frames = append(r.frames, *fb)
	return r.err
}
