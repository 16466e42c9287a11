// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package keyboard samples the calculator's button matrix from the timer
// interrupt and turns raster changes into button events.
package keyboard

import (
	"fmt"
	"math/bits"

	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/hal"
)

// Raster is an instantaneous sample of the asserted matrix lines.
type Raster struct {
	Rows uint8 // Bit n set: row line n asserted.
	Cols uint8 // Bit n set: column line n asserted.
}

// Key returns the key named by the raster: exactly one row line and exactly
// one column line asserted. Anything else (no key, or several keys ghosting
// across the matrix) names no key.
func (r Raster) Key() (key event.Key, ok bool) {
	if bits.OnesCount8(r.Rows) != 1 || bits.OnesCount8(r.Cols) != 1 {
		return
	}

	key = event.MakeKey(bits.TrailingZeros8(r.Rows), bits.TrailingZeros8(r.Cols))
	ok = true

	return
}

func (r Raster) String() string {
	return fmt.Sprintf("rows:%08b cols:%08b", r.Rows, r.Cols)
}

// Layout places the matrix lines on a GPIO port.
type Layout struct {
	Port     hal.Port
	RowShift uint8 // First row line's pin.
	Rows     uint8 // Row line count, at most 8.
	ColShift uint8 // First column line's pin.
	Cols     uint8 // Column line count, at most 8.
}

// Sample extracts the raster from a port's input bits.
func (l Layout) Sample(port uint32) (r Raster) {
	r.Rows = uint8((port >> l.RowShift) & lineMask(l.Rows))
	r.Cols = uint8((port >> l.ColShift) & lineMask(l.Cols))
	return
}

// Bits returns the port bits that assert key's row and column lines.
func (l Layout) Bits(key event.Key) uint32 {
	return (1 << (uint(l.RowShift) + uint(key.Row()))) |
		(1 << (uint(l.ColShift) + uint(key.Column())))
}

// Pins returns every matrix pin, rows first.
func (l Layout) Pins() (pins []hal.Pin) {
	for n := range l.Rows {
		pins = append(pins, hal.Pin{Port: l.Port, Line: l.RowShift + n})
	}
	for n := range l.Cols {
		pins = append(pins, hal.Pin{Port: l.Port, Line: l.ColShift + n})
	}
	return
}

// Keys returns every key of the matrix in row order.
func (l Layout) Keys() (keys []event.Key) {
	for row := range int(l.Rows) {
		for col := range int(l.Cols) {
			keys = append(keys, event.MakeKey(row, col))
		}
	}
	return
}

func lineMask(count uint8) uint32 {
	return (uint32(1) << count) - 1
}

// Detect derives at most one event from two consecutive rasters.
//
//	no key -> key A : A down
//	key A  -> no key: A up
//	key A  -> key B : B down
func Detect(previous, current Raster) (ev event.Event, ok bool) {
	prevKey, prevOk := previous.Key()
	curKey, curOk := current.Key()

	switch {
	case !prevOk && curOk:
		return event.Down(curKey), true
	case prevOk && !curOk:
		return event.Up(prevKey), true
	case prevOk && curOk && prevKey != curKey:
		return event.Down(curKey), true
	}

	return
}
