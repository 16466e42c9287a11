package hal

import (
	"fmt"
)

// Port is a GPIO port identifier.
type Port uint8

const (
	PORT_A = Port(0)
	PORT_B = Port(1)
	PORT_C = Port(2)
	PORT_D = Port(3)
	PORT_F = Port(5)

	PORT_COUNT = 6
)

func (port Port) String() string {
	return fmt.Sprintf("P%c", 'A'+rune(port))
}

// Pin is a single GPIO line on a port.
type Pin struct {
	Port Port
	Line uint8 // 0..15
}

// Mask returns the pin's bit in its port's ReadAll value.
func (pin Pin) Mask() uint32 {
	return 1 << pin.Line
}

func (pin Pin) String() string {
	return fmt.Sprintf("%v%d", pin.Port, pin.Line)
}

// Mode is a pin configuration.
type Mode uint8

const (
	MODE_INPUT           = Mode(0) // Floating input.
	MODE_INPUT_PULL_DOWN = Mode(1) // Input with pull-down resistor.
	MODE_OUTPUT          = Mode(2) // Push-pull output, low speed.
)

// Gpio is the general purpose I/O driver. It is safe to use from both the
// interrupt and main contexts for independent pins.
type Gpio interface {
	Configure(pin Pin, mode Mode)
	Set(pin Pin, level bool)
	ReadAll(port Port) uint32
}
