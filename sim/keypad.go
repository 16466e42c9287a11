package sim

import (
	"context"
	"sync"
	"time"

	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/keyboard"
)

// KEYPAD_SETTLE_SCANS is the scans Tap waits after each change so the
// scan handler has sampled it.
const KEYPAD_SETTLE_SCANS = 2

// Keypad is the button matrix: a held key connects its row and column lines.
type Keypad struct {
	Gpio   *Gpio
	Layout keyboard.Layout
	Timer  *Timer // Paces Tap.

	mutex sync.Mutex
	held  map[event.Key]bool
}

func (kp *Keypad) drive() {
	var mask, value uint32

	for _, key := range kp.Layout.Keys() {
		mask |= kp.Layout.Bits(key)
	}
	for key := range kp.held {
		value |= kp.Layout.Bits(key)
	}

	kp.Gpio.Replace(kp.Layout.Port, mask, value)
}

// Press holds key down.
func (kp *Keypad) Press(key event.Key) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	if kp.held == nil {
		kp.held = map[event.Key]bool{}
	}
	kp.held[key] = true
	kp.drive()
}

// Release lets key up.
func (kp *Keypad) Release(key event.Key) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	delete(kp.held, key)
	kp.drive()
}

// Held returns the keys held down.
func (kp *Keypad) Held() (keys []event.Key) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	for _, key := range kp.Layout.Keys() {
		if kp.held[key] {
			keys = append(keys, key)
		}
	}
	return
}

// Settle waits until the scan handler has completed a scan started after
// the call.
func (kp *Keypad) Settle(ctx context.Context) (err error) {
	start := kp.Timer.Acks()

	poll := kp.Timer.Period / 4
	if poll <= 0 {
		poll = time.Millisecond
	}

	for kp.Timer.Acks() < start+KEYPAD_SETTLE_SCANS {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-kp.Timer.Nvic.Cpu.Halted():
			return ErrHalted
		case <-time.After(poll):
		}
	}

	return
}

// Tap presses and releases key, waiting for each edge to be scanned.
func (kp *Keypad) Tap(ctx context.Context, key event.Key) (err error) {
	kp.Press(key)
	err = kp.Settle(ctx)
	kp.Release(key)
	if err != nil {
		return
	}

	return kp.Settle(ctx)
}
