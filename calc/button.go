package calc

import (
	"github.com/ezrec/ucalc/event"
)

// Button is a calculator key function.
type Button uint8

//go:generate go tool stringer -type=Button
const (
	BUTTON_0           = Button(0)
	BUTTON_1           = Button(1)
	BUTTON_2           = Button(2)
	BUTTON_3           = Button(3)
	BUTTON_4           = Button(4)
	BUTTON_5           = Button(5)
	BUTTON_6           = Button(6)
	BUTTON_7           = Button(7)
	BUTTON_8           = Button(8)
	BUTTON_9           = Button(9)
	BUTTON_DOT         = Button(10)
	BUTTON_PLUS        = Button(11)
	BUTTON_MINUS       = Button(12)
	BUTTON_MULTIPLY    = Button(13)
	BUTTON_DIVIDE      = Button(14)
	BUTTON_OPEN_PAREN  = Button(15)
	BUTTON_CLOSE_PAREN = Button(16)
	BUTTON_ENTER       = Button(17) // Evaluate.
	BUTTON_DELETE      = Button(18) // Remove the last symbol.
	BUTTON_CLEAR       = Button(19) // Clear input and result.
)

var buttonSymbols = map[Button]byte{
	BUTTON_0: '0', BUTTON_1: '1', BUTTON_2: '2', BUTTON_3: '3', BUTTON_4: '4',
	BUTTON_5: '5', BUTTON_6: '6', BUTTON_7: '7', BUTTON_8: '8', BUTTON_9: '9',
	BUTTON_DOT:         '.',
	BUTTON_PLUS:        '+',
	BUTTON_MINUS:       '-',
	BUTTON_MULTIPLY:    '*',
	BUTTON_DIVIDE:      '/',
	BUTTON_OPEN_PAREN:  '(',
	BUTTON_CLOSE_PAREN: ')',
}

// Symbol returns the expression symbol the button enters.
func (button Button) Symbol() (symbol byte, ok bool) {
	symbol, ok = buttonSymbols[button]
	return
}

// ButtonOf returns the button entering an expression symbol. '=' and '\n'
// are BUTTON_ENTER, '\b' is BUTTON_DELETE, 'c' is BUTTON_CLEAR.
func ButtonOf(symbol byte) (button Button, ok bool) {
	switch symbol {
	case '=', '\n', '\r':
		return BUTTON_ENTER, true
	case '\b', 0x7f:
		return BUTTON_DELETE, true
	case 'c', 'C':
		return BUTTON_CLEAR, true
	case 'x', 'X':
		return BUTTON_MULTIPLY, true
	}

	for button, sym := range buttonSymbols {
		if sym == symbol {
			return button, true
		}
	}

	return
}

// Keymap assigns buttons to matrix keys.
type Keymap map[event.Key]Button

// KEYMAP_ROWS and KEYMAP_COLS are the size of the default matrix.
const (
	KEYMAP_ROWS = 5
	KEYMAP_COLS = 4
)

var defaultLayout = [KEYMAP_ROWS][KEYMAP_COLS]Button{
	{BUTTON_CLEAR, BUTTON_OPEN_PAREN, BUTTON_CLOSE_PAREN, BUTTON_DIVIDE},
	{BUTTON_7, BUTTON_8, BUTTON_9, BUTTON_MULTIPLY},
	{BUTTON_4, BUTTON_5, BUTTON_6, BUTTON_MINUS},
	{BUTTON_1, BUTTON_2, BUTTON_3, BUTTON_PLUS},
	{BUTTON_0, BUTTON_DOT, BUTTON_DELETE, BUTTON_ENTER},
}

// DefaultKeymap is the 5x4 keypad:
//
//	C ( ) /
//	7 8 9 *
//	4 5 6 -
//	1 2 3 +
//	0 . ⌫ =
func DefaultKeymap() Keymap {
	km := Keymap{}
	for row, buttons := range defaultLayout {
		for col, button := range buttons {
			km[event.MakeKey(row, col)] = button
		}
	}
	return km
}

// KeyOf returns the key assigned to button.
func (km Keymap) KeyOf(button Button) (key event.Key, ok bool) {
	for k, b := range km {
		if b == button {
			return k, true
		}
	}
	return
}
