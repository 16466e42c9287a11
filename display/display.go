// Package display drives the calculator's 128x64 monochrome OLED panel over
// the two-wire bus.
//
// A refresh repaints the whole panel, one 8-row page at a time. Failures do
// not stop a refresh: every page is attempted so that a transient bus error
// leaves as much of the new image visible as possible.
package display

import (
	"errors"
	"log"
	"math/bits"

	"github.com/ezrec/ucalc/hal"
)

const (
	ADDRESS       = 0x3c // Panel bus address.
	REG_COMMAND   = 0x00 // Control byte: command stream follows.
	REG_DATA      = 0x40 // Control byte: display data follows.
	CMD_PAGE      = 0xb0 // Set page address, or'ed with the page.
	CMD_COLUMN_LO = 0x00 // Set column address low nibble.
	CMD_COLUMN_HI = 0x10 // Set column address high nibble.

	// PADDING is the count of invisible columns ahead of column 0.
	PADDING = 2

	// POWER_ON_SPINS is the busy-wait after power up before the panel
	// acknowledges its address.
	POWER_ON_SPINS = 1_000_000
)

// INIT_SEQUENCE configures the panel and switches it on.
var INIT_SEQUENCE = [...]byte{
	REG_COMMAND,
	0xa8, 0x3f, // multiplex ratio: 64 rows
	0xd3, 0x00, // display offset
	0x40,       // start line 0
	0xa0,       // segment remap
	0xc0,       // COM output scan direction
	0xda, 0x12, // COM pins hardware configuration
	0x81, 0x7f, // contrast
	0xa4,       // display follows RAM
	0xd5, 0x80, // oscillator frequency
	0x8d, 0x14, // charge pump on
	0xaf,       // display on
}

// PageCommand selects page and resets the column pointer to 0.
func PageCommand(page int) [4]byte {
	return [4]byte{REG_COMMAND, CMD_PAGE | byte(page), CMD_COLUMN_LO, CMD_COLUMN_HI}
}

// Display is the panel on a bus.
type Display struct {
	Verbose bool
	Bus     hal.Bus
	Address uint8 // Zero selects ADDRESS.
}

func (d *Display) address() uint8 {
	if d.Address == 0 {
		return ADDRESS
	}
	return d.Address
}

// Init sends the configuration sequence.
func (d *Display) Init() (err error) {
	err = d.Bus.Send(d.address(), INIT_SEQUENCE[:])
	if d.Verbose {
		log.Printf("display: init %v", err)
	}
	return
}

// Refresh repaints the whole panel from fb. The error joins an ErrPage for
// every page that had any failure.
func (d *Display) Refresh(fb *Framebuffer) (err error) {
	var errs []error

	for page := range PAGES {
		if page_err := d.refreshPage(fb, page); page_err != nil {
			errs = append(errs, &ErrPage{Page: page, Err: page_err})
		}
	}

	err = errors.Join(errs...)
	if err != nil && d.Verbose {
		log.Printf("display: refresh: %v", err)
	}

	return
}

func (d *Display) refreshPage(fb *Framebuffer, page int) (err error) {
	addr := d.address()
	var errs []error
	fail := func(e error) {
		if e != nil {
			errs = append(errs, e)
		}
	}

	cmd := PageCommand(page)
	fail(d.Bus.Send(addr, cmd[:]))

	frame, frame_err := d.Bus.OpenFrame(addr, REG_DATA)
	if frame_err != nil {
		fail(frame_err)
		return errors.Join(errs...)
	}

	for range PADDING {
		fail(frame.Transmit(0))
	}

	for column := range WIDTH {
		fail(frame.Transmit(bits.Reverse8(fb.PageByte(page, column))))
	}

	fail(frame.Close())

	return errors.Join(errs...)
}
