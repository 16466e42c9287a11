// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package fault is the terminal handler for unrecoverable conditions.
//
// A fault latches the diagnostic indicator and halts the processor. There is
// no retry: a visibly stopped calculator is preferred to one running on from
// corrupted state.
package fault

import (
	"log"

	"github.com/ezrec/ucalc/hal"
)

// Kind is the source of a fault.
type Kind uint8

const (
	FAULT_SOFTWARE  = Kind(0) // Contract violation: a panic.
	FAULT_PROCESSOR = Kind(1) // Processor fault exception.
)

func (kind Kind) String() string {
	if kind == FAULT_PROCESSOR {
		return "processor"
	}
	return "software"
}

// Handler latches Pin to Level and halts Cpu.
type Handler struct {
	Verbose bool

	Cpu   hal.Cpu
	Gpio  hal.Gpio
	Pin   hal.Pin
	Level bool

	// Last records the most recent fault, for the host debugger.
	Last struct {
		Kind  Kind
		Cause any
	}
}

// Fault never returns.
func (h *Handler) Fault(kind Kind, cause any) {
	h.Gpio.Set(h.Pin, h.Level)

	h.Last.Kind = kind
	h.Last.Cause = cause

	if h.Verbose {
		log.Printf("fault: %v: %v", kind, cause)
	}

	for {
		h.Cpu.Halt()
	}
}

// Processor is the processor fault exception entry.
func (h *Handler) Processor() {
	h.Fault(FAULT_PROCESSOR, ErrProcessor)
}

// Recover, deferred at the top of a context, turns a panic into a software
// fault.
func (h *Handler) Recover() {
	if cause := recover(); cause != nil {
		h.Fault(FAULT_SOFTWARE, cause)
	}
}
