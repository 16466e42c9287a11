// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package config holds the board and firmware parameters, and loads them
// from Starlark files.
//
// A configuration file is a Starlark program. It runs with the names from
// Defines() predeclared, and its upper-case globals override the defaults:
//
//	TIMER_PERIOD_US = 2000
//	QUEUE_POLICY = OVERFLOW_DROP_NEWEST
//	STATUS_PIN = PB3
//	SCRIPT = "6*7="
package config

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strconv"
	"strings"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/hal"
	"github.com/ezrec/ucalc/keyboard"
)

const (
	TIMER_PERIOD_DEFAULT = time.Millisecond
	DEMO_SCRIPT          = "9+5*(3+2)="

	// PIN_LINES is the pin count of a port, for Starlark pin values.
	PIN_LINES = 16
)

// Config is the board and firmware parameters.
type Config struct {
	TimerPeriod    time.Duration // Keyboard scan period.
	QueueCapacity  int
	QueuePolicy    event.Policy
	DisplayAddress uint8
	PowerOnSpins   int
	Layout         keyboard.Layout
	StatusPin      hal.Pin
	FaultPin       hal.Pin
	FaultLevel     bool   // Level of FaultPin once faulted.
	Script         string // Buttons pressed before the main loop starts.
}

// Default returns the parameters of the reference board.
func Default() (cfg *Config) {
	cfg = &Config{
		TimerPeriod:    TIMER_PERIOD_DEFAULT,
		QueueCapacity:  event.QUEUE_DEFAULT_CAPACITY,
		QueuePolicy:    event.OVERFLOW_DROP_OLDEST,
		DisplayAddress: display.ADDRESS,
		PowerOnSpins:   display.POWER_ON_SPINS,
		Layout: keyboard.Layout{
			Port:     hal.PORT_B,
			RowShift: 0,
			Rows:     5,
			ColShift: 8,
			Cols:     4,
		},
		StatusPin:  hal.Pin{Port: hal.PORT_A, Line: 7},
		FaultPin:   hal.Pin{Port: hal.PORT_A, Line: 15},
		FaultLevel: false,
		Script:     DEMO_SCRIPT,
	}

	return
}

// PinValue is the Starlark value of pin.
func PinValue(pin hal.Pin) int {
	return int(pin.Port)*PIN_LINES + int(pin.Line)
}

// PinOf is the pin of a Starlark pin value.
func PinOf(value int) (pin hal.Pin, ok bool) {
	if value < 0 || value >= hal.PORT_COUNT*PIN_LINES {
		return
	}

	pin = hal.Pin{Port: hal.Port(value / PIN_LINES), Line: uint8(value % PIN_LINES)}
	ok = true

	return
}

var _config_defines = map[string]string{
	"OVERFLOW_DROP_OLDEST": fmt.Sprintf("%d", event.OVERFLOW_DROP_OLDEST),
	"OVERFLOW_DROP_NEWEST": fmt.Sprintf("%d", event.OVERFLOW_DROP_NEWEST),
	"OVERFLOW_FAULT":       fmt.Sprintf("%d", event.OVERFLOW_FAULT),
	"DISPLAY_ADDRESS":      fmt.Sprintf("0x%x", display.ADDRESS),
}

// Defines returns the names predeclared for configuration files: ports,
// pins and queue policies.
func Defines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for key, value := range maps.All(_config_defines) {
			if !yield(key, value) {
				return
			}
		}

		for port := range hal.Port(hal.PORT_COUNT) {
			name := port.String()
			if !yield("PORT_"+name[1:], fmt.Sprintf("%d", port)) {
				return
			}
			for line := range uint8(PIN_LINES) {
				pin := hal.Pin{Port: port, Line: line}
				if !yield(pin.String(), fmt.Sprintf("0x%02x", PinValue(pin))) {
					return
				}
			}
		}
	}
}

func predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}
	for key, str := range Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			panic(err)
		}
		pred[key] = starlark.MakeInt64(value)
	}
	return
}

// Load runs the Starlark configuration src and applies its globals. name is
// used in error messages.
func (cfg *Config) Load(name string, src io.Reader) (err error) {
	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, name, src, predeclared())
	if err != nil {
		err = &ErrConfig{Name: name, Err: err}
		return
	}

	for key, value := range globals {
		err = cfg.set(key, value)
		if err != nil {
			err = &ErrConfig{Name: name, Key: key, Err: err}
			return
		}
	}

	return
}

func asInt(value starlark.Value, lo, hi int) (n int, err error) {
	n, err = starlark.AsInt32(value)
	if err != nil {
		return
	}

	if n < lo || n > hi {
		err = ErrRange
		return
	}

	return
}

func asPin(value starlark.Value) (pin hal.Pin, err error) {
	n, err := starlark.AsInt32(value)
	if err != nil {
		return
	}

	pin, ok := PinOf(n)
	if !ok {
		err = ErrRange
	}

	return
}

func (cfg *Config) set(key string, value starlark.Value) (err error) {
	var n int

	switch key {
	case "TIMER_PERIOD_US":
		n, err = asInt(value, 1, 1_000_000)
		cfg.TimerPeriod = time.Duration(n) * time.Microsecond
	case "QUEUE_CAPACITY":
		n, err = asInt(value, 1, 1024)
		cfg.QueueCapacity = n
	case "QUEUE_POLICY":
		n, err = asInt(value, int(event.OVERFLOW_DROP_OLDEST), int(event.OVERFLOW_FAULT))
		cfg.QueuePolicy = event.Policy(n)
	case "DISPLAY_ADDRESS":
		n, err = asInt(value, 0x08, 0x77)
		cfg.DisplayAddress = uint8(n)
	case "POWER_ON_SPINS":
		n, err = asInt(value, 0, 1<<30)
		cfg.PowerOnSpins = n
	case "KEY_PORT":
		n, err = asInt(value, 0, hal.PORT_COUNT-1)
		cfg.Layout.Port = hal.Port(n)
	case "ROW_SHIFT":
		n, err = asInt(value, 0, PIN_LINES-1)
		cfg.Layout.RowShift = uint8(n)
	case "ROWS":
		n, err = asInt(value, 1, 8)
		cfg.Layout.Rows = uint8(n)
	case "COL_SHIFT":
		n, err = asInt(value, 0, PIN_LINES-1)
		cfg.Layout.ColShift = uint8(n)
	case "COLS":
		n, err = asInt(value, 1, 8)
		cfg.Layout.Cols = uint8(n)
	case "STATUS_PIN":
		cfg.StatusPin, err = asPin(value)
	case "FAULT_PIN":
		cfg.FaultPin, err = asPin(value)
	case "FAULT_LEVEL":
		level, ok := value.(starlark.Bool)
		if !ok {
			err = ErrType
			return
		}
		cfg.FaultLevel = bool(level)
	case "SCRIPT":
		script, ok := starlark.AsString(value)
		if !ok {
			err = ErrType
			return
		}
		cfg.Script = script
	default:
		// Lower-case names are the file's own helpers.
		if key == strings.ToUpper(key) {
			err = ErrUnknown
		}
	}

	return
}

// Validate checks that the matrix lines fit the port and do not collide with
// each other or with the indicator pins.
func (cfg *Config) Validate() (err error) {
	l := cfg.Layout

	if int(l.RowShift)+int(l.Rows) > PIN_LINES || int(l.ColShift)+int(l.Cols) > PIN_LINES {
		return ErrLayout
	}

	var mask uint32
	for _, pin := range l.Pins() {
		if mask&pin.Mask() != 0 {
			return ErrLayout
		}
		mask |= pin.Mask()
	}

	for _, pin := range []hal.Pin{cfg.StatusPin, cfg.FaultPin} {
		if pin.Port == l.Port && mask&pin.Mask() != 0 {
			return ErrLayout
		}
	}

	if cfg.StatusPin == cfg.FaultPin {
		return ErrLayout
	}

	return
}
