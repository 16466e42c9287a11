// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package event carries button events from the keyboard interrupt handler to
// the main dispatch loop.
package event

import (
	"fmt"
)

// Key is a logical key: row*KEY_COLUMNS + column of the button matrix.
type Key uint8

// KEY_COLUMNS is the column stride of a Key.
const KEY_COLUMNS = 8

// MakeKey returns the key at a matrix position.
func MakeKey(row, column int) Key {
	return Key(row*KEY_COLUMNS + column)
}

// Row of the key in the button matrix.
func (key Key) Row() int {
	return int(key) / KEY_COLUMNS
}

// Column of the key in the button matrix.
func (key Key) Column() int {
	return int(key) % KEY_COLUMNS
}

func (key Key) String() string {
	return fmt.Sprintf("K%d%d", key.Row(), key.Column())
}

// Edge is the direction of a button transition.
type Edge uint8

const (
	EDGE_DOWN = Edge(0) // Button pressed.
	EDGE_UP   = Edge(1) // Button released.
)

func (edge Edge) String() string {
	if edge == EDGE_DOWN {
		return "down"
	}
	return "up"
}

// Event is one button transition.
type Event struct {
	Key  Key
	Edge Edge
}

// Down returns the press event for key.
func Down(key Key) Event {
	return Event{Key: key, Edge: EDGE_DOWN}
}

// Up returns the release event for key.
func Up(key Key) Event {
	return Event{Key: key, Edge: EDGE_UP}
}

func (ev Event) String() string {
	return fmt.Sprintf("%v %v", ev.Key, ev.Edge)
}
