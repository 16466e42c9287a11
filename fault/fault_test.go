package fault

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucalc/hal"
)

// cpu halts by ending the calling goroutine.
type cpu struct {
	halts int
}

func (c *cpu) DisableInterrupts()      {}
func (c *cpu) EnableInterrupts()       {}
func (c *cpu) InterruptsEnabled() bool { return true }
func (c *cpu) WaitForInterrupt()       {}
func (c *cpu) Spin(n int)              {}

func (c *cpu) Halt() {
	c.halts++
	runtime.Goexit()
}

type gpio struct {
	levels map[hal.Pin]bool
}

func (g *gpio) Configure(pin hal.Pin, mode hal.Mode) {}

func (g *gpio) Set(pin hal.Pin, level bool) {
	g.levels[pin] = level
}

func (g *gpio) ReadAll(port hal.Port) uint32 { return 0 }

// run calls fn on its own goroutine and reports whether fn returned.
func run(fn func()) (returned bool) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
		returned = true
	}()
	wg.Wait()
	return
}

func newHandler() (h *Handler, c *cpu, io *gpio) {
	c = &cpu{}
	io = &gpio{levels: map[hal.Pin]bool{}}
	h = &Handler{
		Cpu:   c,
		Gpio:  io,
		Pin:   hal.Pin{Port: hal.PORT_A, Line: 15},
		Level: false,
	}
	io.levels[h.Pin] = true
	return
}

func TestHandler_Fault(t *testing.T) {
	assert := assert.New(t)

	h, c, io := newHandler()

	returned := run(func() { h.Fault(FAULT_SOFTWARE, "boom") })

	assert.False(returned)
	assert.Equal(1, c.halts)
	assert.False(io.levels[h.Pin])
	assert.Equal(FAULT_SOFTWARE, h.Last.Kind)
	assert.Equal("boom", h.Last.Cause)
}

func TestHandler_Recover(t *testing.T) {
	assert := assert.New(t)

	h, c, io := newHandler()

	returned := run(func() {
		defer h.Recover()
		panic(hal.ErrNack)
	})

	assert.False(returned)
	assert.Equal(1, c.halts)
	assert.False(io.levels[h.Pin])
	assert.Equal(hal.ErrNack, h.Last.Cause)

	// No panic, no fault.
	h2, c2, io2 := newHandler()
	returned = run(func() {
		defer h2.Recover()
	})
	assert.True(returned)
	assert.Equal(0, c2.halts)
	assert.True(io2.levels[h2.Pin])
}

func TestHandler_Processor(t *testing.T) {
	assert := assert.New(t)

	h, _, _ := newHandler()

	assert.False(run(h.Processor))
	assert.Equal(FAULT_PROCESSOR, h.Last.Kind)
	assert.Equal(ErrProcessor, h.Last.Cause)
	assert.Equal("processor", h.Last.Kind.String())
}
