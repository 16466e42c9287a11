package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/hal"
)

var testLayout = Layout{Port: hal.PORT_B, RowShift: 0, Rows: 5, ColShift: 8, Cols: 4}

func TestRaster_Key(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		Raster Raster
		Key    event.Key
		Ok     bool
	}){
		{Raster: Raster{}},
		{Raster: Raster{Rows: 0b100}},
		{Raster: Raster{Cols: 0b1}},
		{Raster: Raster{Rows: 0b100, Cols: 0b1000}, Key: event.MakeKey(2, 3), Ok: true},
		{Raster: Raster{Rows: 0b1, Cols: 0b1}, Key: event.MakeKey(0, 0), Ok: true},
		{Raster: Raster{Rows: 0b110, Cols: 0b1000}},
		{Raster: Raster{Rows: 0b100, Cols: 0b1010}},
	}

	for _, testcase := range table {
		key, ok := testcase.Raster.Key()
		assert.Equal(testcase.Ok, ok, testcase.Raster.String())
		assert.Equal(testcase.Key, key, testcase.Raster.String())
	}
}

func TestDetect(t *testing.T) {
	assert := assert.New(t)

	none := Raster{}
	half := Raster{Rows: 0b00010}
	k13 := Raster{Rows: 0b00010, Cols: 0b1000}
	k40 := Raster{Rows: 0b10000, Cols: 0b0001}

	table := [](struct {
		Previous Raster
		Current  Raster
		Event    event.Event
		Ok       bool
	}){
		{Previous: none, Current: none},
		{Previous: k13, Current: k13},
		{Previous: none, Current: half},
		{Previous: half, Current: k13, Event: event.Down(event.MakeKey(1, 3)), Ok: true},
		{Previous: k13, Current: half, Event: event.Up(event.MakeKey(1, 3)), Ok: true},
		{Previous: none, Current: k40, Event: event.Down(event.MakeKey(4, 0)), Ok: true},
		{Previous: k40, Current: none, Event: event.Up(event.MakeKey(4, 0)), Ok: true},
		{Previous: k13, Current: k40, Event: event.Down(event.MakeKey(4, 0)), Ok: true},
	}

	for _, testcase := range table {
		ev, ok := Detect(testcase.Previous, testcase.Current)
		assert.Equal(testcase.Ok, ok, "%v -> %v", testcase.Previous, testcase.Current)
		assert.Equal(testcase.Event, ev, "%v -> %v", testcase.Previous, testcase.Current)
	}
}

// A single line change that completes or breaks a key yields exactly one
// event naming that key with the right direction.
func TestDetect_SingleBit(t *testing.T) {
	assert := assert.New(t)

	for _, key := range testLayout.Keys() {
		full := testLayout.Sample(testLayout.Bits(key))
		rowOnly := Raster{Rows: full.Rows}
		colOnly := Raster{Cols: full.Cols}

		for _, partial := range []Raster{rowOnly, colOnly} {
			ev, ok := Detect(partial, full)
			assert.True(ok)
			assert.Equal(event.Down(key), ev)

			ev, ok = Detect(full, partial)
			assert.True(ok)
			assert.Equal(event.Up(key), ev)

			_, ok = Detect(partial, partial)
			assert.False(ok)
		}
	}
}

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	key := event.MakeKey(3, 2)
	port := testLayout.Bits(key)
	assert.Equal(uint32(1<<3|1<<10), port)

	r := testLayout.Sample(port | 0xffff_0000 | 1<<6)
	assert.Equal(Raster{Rows: 0b01000, Cols: 0b0100}, r)

	pins := testLayout.Pins()
	assert.Len(pins, 9)
	assert.Equal(hal.Pin{Port: hal.PORT_B, Line: 0}, pins[0])
	assert.Equal(hal.Pin{Port: hal.PORT_B, Line: 11}, pins[8])

	assert.Len(testLayout.Keys(), 20)
}

func TestScanner(t *testing.T) {
	assert := assert.New(t)

	var order []string
	io := &gpio{}
	tim := &timer{order: &order}
	q := &event.Queue{Capacity: 8}
	q.Reset()

	s := &Scanner{
		Gpio:   io,
		Timer:  tim,
		Layout: testLayout,
		Queue:  q,
		Detect: func(previous, current Raster) (event.Event, bool) {
			order = append(order, "detect")
			return Detect(previous, current)
		},
	}

	s.Configure()
	assert.Len(io.configured, 9)
	assert.Equal(hal.MODE_INPUT_PULL_DOWN, io.configured[hal.Pin{Port: hal.PORT_B, Line: 8}])

	key := event.MakeKey(2, 1)

	// Idle ticks produce nothing.
	s.Interrupt()
	s.Interrupt()
	assert.Empty(drain(q))

	// Press, hold, release.
	io.ports[hal.PORT_B] = testLayout.Bits(key)
	s.Interrupt()
	assert.Equal(testLayout.Sample(testLayout.Bits(key)), s.Previous())
	s.Interrupt()
	s.Interrupt()
	io.ports[hal.PORT_B] = 0
	s.Interrupt()

	assert.Equal([]event.Event{event.Down(key), event.Up(key)}, drain(q))
	assert.Equal(6, tim.acks)
	assert.Equal(Raster{}, s.Previous())

	// Acknowledge always precedes the sample.
	for n := 0; n < len(order); n += 2 {
		assert.Equal("ack", order[n])
		assert.Equal("detect", order[n+1])
	}
}

func TestScanner_DefaultDetect(t *testing.T) {
	assert := assert.New(t)

	io := &gpio{}
	q := &event.Queue{}
	q.Reset()

	s := &Scanner{Gpio: io, Timer: &timer{}, Layout: testLayout, Queue: q}

	key := event.MakeKey(4, 3)
	io.ports[hal.PORT_B] = testLayout.Bits(key)
	s.Interrupt()

	assert.Equal([]event.Event{event.Down(key)}, drain(q))
}
