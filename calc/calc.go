// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package calc is the calculator state machine behind the firmware's main
// loop: expression entry, evaluation and rendering into the display's
// framebuffer.
package calc

import (
	"log"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/ezrec/ucalc/dispatch"
	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/event"
	"github.com/ezrec/ucalc/translate"
)

const (
	INPUT_LIMIT = 54 // Most symbols in an expression: three full lines.

	FONT_WIDTH    = 7  // basicfont.Face7x13 advance.
	FONT_HEIGHT   = 13 // basicfont.Face7x13 line height.
	FONT_ASCENT   = 11
	LINE_SYMBOLS  = display.WIDTH / FONT_WIDTH
	INPUT_LINES   = 3
	RULE_Y        = 44 // Row of the rule between input and result.
	RESULT_BASE_Y = 59 // Baseline of the result line.
)

// State is the calculator.
type State struct {
	Verbose bool
	Keymap  Keymap

	Input  []byte  // Expression being entered.
	Value  float64 // Last result.
	Result string  // Formatted last result, or error text.
	Err    error   // Last evaluation error.

	fresh  bool // Result on screen; a digit starts a new expression.
	screen display.Framebuffer
	dc     *gg.Context
}

var _ dispatch.Calculator = (*State)(nil)

// New creates a cleared calculator with the default keymap.
func New() (st *State) {
	st = &State{
		Keymap: DefaultKeymap(),
		dc:     gg.NewContext(display.WIDTH, display.HEIGHT),
	}

	st.dc.SetFontFace(basicfont.Face7x13)
	st.Clear()

	return
}

// Clear resets input and result.
func (st *State) Clear() {
	st.Input = st.Input[:0]
	st.Value = 0
	st.Result = ""
	st.Err = nil
	st.fresh = false
	st.render()
}

// Apply presses the button mapped to key. Unmapped keys are ignored.
func (st *State) Apply(key event.Key) {
	button, ok := st.Keymap[key]
	if !ok {
		if st.Verbose {
			log.Printf("calc: unmapped key %v", key)
		}
		return
	}

	st.Press(button)
}

// Press handles one button.
func (st *State) Press(button Button) {
	if st.Verbose {
		log.Printf("calc: %v", button)
	}

	switch button {
	case BUTTON_CLEAR:
		st.Clear()
		return
	case BUTTON_DELETE:
		st.fresh = false
		st.Err = nil
		if len(st.Input) > 0 {
			st.Input = st.Input[:len(st.Input)-1]
		}
	case BUTTON_ENTER:
		st.evaluate()
	default:
		symbol, ok := button.Symbol()
		if !ok {
			return
		}
		st.enter(button, symbol)
	}

	st.render()
}

func (st *State) enter(button Button, symbol byte) {
	if st.fresh {
		st.fresh = false
		st.Input = st.Input[:0]
		switch button {
		case BUTTON_PLUS, BUTTON_MINUS, BUTTON_MULTIPLY, BUTTON_DIVIDE:
			// Operators continue from the last result.
			if st.Err == nil {
				st.Input = strconv.AppendFloat(st.Input, st.Value, 'f', -1, 64)
			}
		}
		st.Err = nil
	}

	if len(st.Input) >= INPUT_LIMIT {
		return
	}

	st.Input = append(st.Input, symbol)
}

func (st *State) evaluate() {
	value, err := Evaluate(string(st.Input))
	st.fresh = true
	st.Err = err

	if err != nil {
		if st.Verbose {
			log.Printf("calc: %v", err)
		}
		st.Result = f("Error")
		return
	}

	st.Value = value
	st.Result = translate.Number(value)
}

// Screen returns the framebuffer showing the current state.
func (st *State) Screen() *display.Framebuffer {
	return &st.screen
}

// Lines returns the input as displayed, wrapped, last INPUT_LINES lines.
func (st *State) Lines() (lines []string) {
	text := string(st.Input)
	for len(text) > LINE_SYMBOLS {
		lines = append(lines, text[:LINE_SYMBOLS])
		text = text[LINE_SYMBOLS:]
	}
	lines = append(lines, text)

	if len(lines) > INPUT_LINES {
		lines = lines[len(lines)-INPUT_LINES:]
	}

	return
}

func (st *State) render() {
	dc := st.dc

	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)

	for n, line := range st.Lines() {
		dc.DrawString(line, 0, float64(FONT_ASCENT+n*FONT_HEIGHT))
	}

	dc.SetLineWidth(1)
	dc.DrawLine(0, RULE_Y+0.5, display.WIDTH, RULE_Y+0.5)
	dc.Stroke()

	if len(st.Result) > 0 {
		w, _ := dc.MeasureString(st.Result)
		dc.DrawString(st.Result, display.WIDTH-w, RESULT_BASE_Y)
	}

	img := dc.Image()
	for y := range display.HEIGHT {
		for x := range display.WIDTH {
			r, g, b, _ := img.At(x, y).RGBA()
			st.screen.Set(x, y, r+g+b > 3*0x7fff)
		}
	}
}
