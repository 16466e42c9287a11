package sim

import (
	"log"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/ezrec/ucalc/hal"
)

// Device is a bus target.
type Device interface {
	// Ack reports whether the device answers its address.
	Ack() bool
	// Receive handles one complete write transaction.
	Receive(data []byte)
}

// Transfer is a captured write transaction.
type Transfer struct {
	Addr uint8
	Data []byte
}

// I2c is the two-wire bus master model.
type I2c struct {
	Verbose bool

	Busy atomic.Bool // Set to fail every transaction start with ErrBusy.

	// Capture, if set, records every completed transaction.
	Capture bool

	mutex     sync.Mutex
	devices   map[uint8]Device
	transfers []Transfer
}

var _ hal.Bus = (*I2c)(nil)

// Attach places dev at addr.
func (bus *I2c) Attach(addr uint8, dev Device) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if bus.devices == nil {
		bus.devices = map[uint8]Device{}
	}
	bus.devices[addr] = dev
}

// Transfers returns the captured transactions.
func (bus *I2c) Transfers() []Transfer {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	return slices.Clone(bus.transfers)
}

func (bus *I2c) start(addr uint8) (dev Device, err error) {
	if bus.Busy.Load() {
		err = hal.ErrBusy
		return
	}

	bus.mutex.Lock()
	dev, ok := bus.devices[addr]
	bus.mutex.Unlock()

	if !ok || !dev.Ack() {
		err = hal.ErrNack
		if bus.Verbose {
			log.Printf("i2c: 0x%02x: %v", addr, err)
		}
		return
	}

	return
}

func (bus *I2c) complete(addr uint8, dev Device, data []byte) {
	if bus.Capture {
		bus.mutex.Lock()
		bus.transfers = append(bus.transfers, Transfer{Addr: addr, Data: slices.Clone(data)})
		bus.mutex.Unlock()
	}

	dev.Receive(data)
}

// Send writes data to the device at addr.
func (bus *I2c) Send(addr uint8, data []byte) (err error) {
	dev, err := bus.start(addr)
	if err != nil {
		return
	}

	bus.complete(addr, dev, data)

	return
}

// OpenFrame starts a write of register reg to the device at addr.
func (bus *I2c) OpenFrame(addr uint8, reg uint8) (frame hal.Frame, err error) {
	dev, err := bus.start(addr)
	if err != nil {
		return
	}

	frame = &i2cFrame{bus: bus, addr: addr, dev: dev, data: []byte{reg}}

	return
}

type i2cFrame struct {
	bus    *I2c
	addr   uint8
	dev    Device
	data   []byte
	closed bool
}

func (fr *i2cFrame) Transmit(value byte) (err error) {
	if fr.closed {
		return hal.ErrBusy
	}

	fr.data = append(fr.data, value)

	return
}

func (fr *i2cFrame) Close() (err error) {
	if fr.closed {
		return hal.ErrBusy
	}

	fr.closed = true
	fr.bus.complete(fr.addr, fr.dev, fr.data)

	return
}
