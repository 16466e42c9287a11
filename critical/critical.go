// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package critical provides the interrupt-masking critical section shared by
// the main context and the interrupt handler.
//
// Sections do not nest. Starting a second guard while one is open would
// re-enable interrupts at the wrong time when the inner guard ends, so it
// panics with ErrNested instead.
package critical

import (
	"sync/atomic"

	"github.com/ezrec/ucalc/hal"
)

// Section masks interrupts on one processor.
type Section struct {
	Cpu hal.Cpu

	open atomic.Bool
}

// Guard is an open critical section.
type Guard struct {
	section *Section
	ended   bool
}

// NewSection creates a critical section for the processor.
func NewSection(cpu hal.Cpu) *Section {
	return &Section{Cpu: cpu}
}

// Start masks interrupts and returns the guard that unmasks them.
func (cs *Section) Start() *Guard {
	if !cs.open.CompareAndSwap(false, true) {
		panic(ErrNested)
	}

	cs.Cpu.DisableInterrupts()

	return &Guard{section: cs}
}

// With runs fn inside the critical section. The guard is ended even if fn
// panics.
func (cs *Section) With(fn func(g *Guard)) {
	g := cs.Start()
	defer g.End()

	fn(g)
}

// Open reports whether a guard is currently held.
func (cs *Section) Open() bool {
	return cs.open.Load()
}

// End unmasks interrupts. Ending a guard twice has no effect.
func (g *Guard) End() {
	if g == nil || g.ended {
		return
	}

	g.ended = true
	g.section.open.Store(false)
	g.section.Cpu.EnableInterrupts()
}

// Open reports whether the guard still masks interrupts.
func (g *Guard) Open() bool {
	return g != nil && !g.ended
}
