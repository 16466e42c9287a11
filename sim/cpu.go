package sim

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ezrec/ucalc/hal"
)

// Cpu is the processor core model.
type Cpu struct {
	lock     sync.Mutex
	cond     *sync.Cond
	masked   bool   // Main context disabled interrupts.
	active   bool   // An interrupt handler is running.
	halted   bool   // Halt was called.
	serviced uint64 // Interrupts serviced.

	spins atomic.Int64
	halt  chan struct{}

	Waits atomic.Int64 // WaitForInterrupt calls.
	Masks atomic.Int64 // DisableInterrupts calls.
}

var _ hal.Cpu = (*Cpu)(nil)

// NewCpu returns a running core with interrupts enabled.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		halt: make(chan struct{}),
	}
	cpu.cond = sync.NewCond(&cpu.lock)
	return
}

// exit ends the calling context of a halted core. Called with lock held.
func (cpu *Cpu) exit() {
	cpu.lock.Unlock()
	runtime.Goexit()
}

// DisableInterrupts waits for a running handler to return, then masks
// delivery.
func (cpu *Cpu) DisableInterrupts() {
	cpu.Masks.Add(1)

	cpu.lock.Lock()
	for cpu.active && !cpu.halted {
		cpu.cond.Wait()
	}
	if cpu.halted {
		cpu.exit()
	}
	cpu.masked = true
	cpu.lock.Unlock()
}

// EnableInterrupts unmasks delivery.
func (cpu *Cpu) EnableInterrupts() {
	cpu.lock.Lock()
	cpu.masked = false
	cpu.cond.Broadcast()
	cpu.lock.Unlock()
}

// InterruptsEnabled reports whether delivery is unmasked.
func (cpu *Cpu) InterruptsEnabled() bool {
	cpu.lock.Lock()
	defer cpu.lock.Unlock()
	return !cpu.masked
}

// WaitForInterrupt blocks until an interrupt is serviced after the call.
func (cpu *Cpu) WaitForInterrupt() {
	cpu.Waits.Add(1)

	cpu.lock.Lock()
	serviced := cpu.serviced
	for cpu.serviced == serviced && !cpu.halted {
		cpu.cond.Wait()
	}
	if cpu.halted {
		cpu.exit()
	}
	cpu.lock.Unlock()
}

// Spin counts busy-wait iterations without waiting.
func (cpu *Cpu) Spin(n int) {
	cpu.spins.Add(int64(n))

	cpu.lock.Lock()
	if cpu.halted {
		cpu.exit()
	}
	cpu.lock.Unlock()

	runtime.Gosched()
}

// Spins returns the busy-wait iterations since power on.
func (cpu *Cpu) Spins() int64 {
	return cpu.spins.Load()
}

// Halt stops the core. The calling goroutine exits, as does every context
// that later touches the core.
func (cpu *Cpu) Halt() {
	cpu.lock.Lock()
	cpu.stop()
	cpu.exit()
}

// PowerOff halts the core from outside it.
func (cpu *Cpu) PowerOff() {
	cpu.lock.Lock()
	cpu.stop()
	cpu.lock.Unlock()
}

// stop marks the core halted. Called with lock held.
func (cpu *Cpu) stop() {
	if cpu.halted {
		return
	}
	cpu.halted = true
	close(cpu.halt)
	cpu.cond.Broadcast()
}

// Halted is closed once the core halts.
func (cpu *Cpu) Halted() <-chan struct{} {
	return cpu.halt
}

// enter begins handler execution, once delivery is unmasked. It returns
// false on a halted core.
func (cpu *Cpu) enter() bool {
	cpu.lock.Lock()
	defer cpu.lock.Unlock()

	for cpu.masked && !cpu.halted {
		cpu.cond.Wait()
	}
	if cpu.halted {
		return false
	}

	cpu.active = true
	return true
}

// leave ends handler execution.
func (cpu *Cpu) leave() {
	cpu.lock.Lock()
	cpu.active = false
	cpu.serviced++
	cpu.cond.Broadcast()
	cpu.lock.Unlock()
}

// Serviced returns the count of interrupts serviced.
func (cpu *Cpu) Serviced() uint64 {
	cpu.lock.Lock()
	defer cpu.lock.Unlock()
	return cpu.serviced
}
