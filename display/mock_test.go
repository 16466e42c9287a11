package display

import (
	"github.com/ezrec/ucalc/hal"
)

// transfer is one recorded bus transaction.
type transfer struct {
	Addr  uint8
	Frame bool // Opened with OpenFrame.
	Bytes []byte
}

// bus records transactions and injects failures.
type bus struct {
	Transfers []transfer

	// FailSend fails Send calls whose index is in the set.
	FailSend map[int]error
	// FailOpen fails OpenFrame calls whose index is in the set.
	FailOpen map[int]error
	// FailTransmit fails the n-th transmitted byte over all frames.
	FailTransmit map[int]error

	sends     int
	opens     int
	transmits int
}

func (b *bus) Send(addr uint8, data []byte) (err error) {
	n := b.sends
	b.sends++
	b.Transfers = append(b.Transfers, transfer{Addr: addr, Bytes: append([]byte(nil), data...)})
	return b.FailSend[n]
}

func (b *bus) OpenFrame(addr uint8, reg uint8) (frame hal.Frame, err error) {
	n := b.opens
	b.opens++
	if err = b.FailOpen[n]; err != nil {
		return
	}

	b.Transfers = append(b.Transfers, transfer{Addr: addr, Frame: true, Bytes: []byte{reg}})
	frame = &busFrame{bus: b, index: len(b.Transfers) - 1}
	return
}

type busFrame struct {
	bus    *bus
	index  int
	closed bool
}

func (bf *busFrame) Transmit(value byte) error {
	n := bf.bus.transmits
	bf.bus.transmits++
	tr := &bf.bus.Transfers[bf.index]
	tr.Bytes = append(tr.Bytes, value)
	return bf.bus.FailTransmit[n]
}

func (bf *busFrame) Close() error {
	bf.closed = true
	return nil
}
