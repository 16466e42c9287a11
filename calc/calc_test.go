package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/language"

	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/translate"
)

func TestEvaluate(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		expr  string
		value float64
	}){
		{"9+5*(3+2)", 34},
		{"007+1", 8},
		{"10+05", 15},
		{"7/2", 3.5},
		{"0.5+0.25", 0.75},
		{"-3*-3", 9},
		{"100", 100},
	}

	for _, entry := range table {
		value, err := Evaluate(entry.expr)
		assert.NoError(err, entry.expr)
		assert.Equal(entry.value, value, entry.expr)
	}
}

func TestEvaluateError(t *testing.T) {
	assert := assert.New(t)

	_, err := Evaluate("")
	assert.ErrorIs(err, ErrEmpty)

	_, err = Evaluate("2a")
	var sym ErrSymbol
	assert.True(errors.As(err, &sym))
	assert.Equal(ErrSymbol('a'), sym)

	table := []string{
		"1/0",
		"1+",
		"2*(3",
		"1..2",
		"()",
	}

	for _, expr := range table {
		_, err := Evaluate(expr)
		var eval *ErrEvaluate
		assert.True(errors.As(err, &eval), expr)
	}
}

func press(st *State, text string) {
	for n := range len(text) {
		button, ok := ButtonOf(text[n])
		if ok {
			st.Press(button)
		}
	}
}

func lit(fb *display.Framebuffer) (count int) {
	for y := range display.HEIGHT {
		for x := range display.WIDTH {
			if fb.Get(x, y) {
				count++
			}
		}
	}
	return
}

func TestState(t *testing.T) {
	assert := assert.New(t)

	translate.SetLanguage(language.AmericanEnglish)

	st := New()
	blank := lit(st.Screen())
	assert.Less(0, blank) // The rule.

	press(st, "9+5*(3+2)")
	assert.Equal("9+5*(3+2)", string(st.Input))
	assert.Empty(st.Result)
	assert.Less(blank, lit(st.Screen()))

	press(st, "=")
	assert.NoError(st.Err)
	assert.Equal(34.0, st.Value)
	assert.Equal("34", st.Result)

	// An operator continues from the result.
	press(st, "*2=")
	assert.Equal("34*2", string(st.Input))
	assert.Equal("68", st.Result)

	// A digit starts over.
	press(st, "1")
	assert.Equal("1", string(st.Input))

	press(st, "\b")
	assert.Equal("", string(st.Input))

	press(st, "1/0=")
	assert.Error(st.Err)
	assert.Equal("Error", st.Result)

	press(st, "c")
	assert.Empty(st.Input)
	assert.Empty(st.Result)
	assert.NoError(st.Err)
	assert.Equal(blank, lit(st.Screen()))
}

func TestStateApply(t *testing.T) {
	assert := assert.New(t)

	st := New()

	for _, button := range []Button{BUTTON_7, BUTTON_PLUS, BUTTON_1, BUTTON_ENTER} {
		key, ok := st.Keymap.KeyOf(button)
		assert.True(ok)
		st.Apply(key)
	}

	assert.Equal(8.0, st.Value)

	// Keys off the map are ignored.
	before := string(st.Input)
	st.Apply(0x77)
	assert.Equal(before, string(st.Input))
}

func TestStateLimit(t *testing.T) {
	assert := assert.New(t)

	st := New()
	for range INPUT_LIMIT + 10 {
		st.Press(BUTTON_1)
	}

	assert.Equal(INPUT_LIMIT, len(st.Input))
	assert.Equal(INPUT_LINES, len(st.Lines()))
	for _, line := range st.Lines() {
		assert.LessOrEqual(len(line), LINE_SYMBOLS)
	}
}

func TestKeymap(t *testing.T) {
	assert := assert.New(t)

	km := DefaultKeymap()
	assert.Equal(KEYMAP_ROWS*KEYMAP_COLS, len(km))

	for button := BUTTON_0; button <= BUTTON_CLEAR; button++ {
		_, ok := km.KeyOf(button)
		assert.True(ok, button.String())
	}

	button, ok := ButtonOf('=')
	assert.True(ok)
	assert.Equal(BUTTON_ENTER, button)

	_, ok = ButtonOf('q')
	assert.False(ok)
}
