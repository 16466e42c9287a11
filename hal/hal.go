// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package hal defines the narrow hardware interfaces the μCalc firmware is
// written against. The target board and the host simulator (package sim)
// both implement them.
package hal

// Cpu is the processor core: interrupt masking, idle and halt.
type Cpu interface {
	// DisableInterrupts masks all maskable interrupts.
	DisableInterrupts()
	// EnableInterrupts unmasks all maskable interrupts.
	EnableInterrupts()
	// InterruptsEnabled reports whether maskable interrupts are delivered.
	InterruptsEnabled() bool
	// WaitForInterrupt suspends instruction execution until any interrupt
	// has been serviced.
	WaitForInterrupt()
	// Spin busy-waits for n iterations.
	Spin(n int)
	// Halt stops the processor. It never returns.
	Halt()
}

// Timer is the keyboard scan timer peripheral.
type Timer interface {
	// Start begins periodic update interrupts.
	Start()
	// Acknowledge clears the pending update interrupt condition.
	Acknowledge()
}
