package calc

import (
	"math"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// EVAL_MAX_STEPS bounds the interpreter work for one expression.
const EVAL_MAX_STEPS = 10_000

// normalize rejects anything but calculator symbols, and strips leading zeros
// from number literals, which Starlark reads as obsolete octal.
func normalize(expr string) (text string, err error) {
	var sb strings.Builder

	number := false // Inside a number literal.
	for n := 0; n < len(expr); n++ {
		c := expr[n]
		switch {
		case c >= '0' && c <= '9':
			if !number && c == '0' {
				// Drop a leading zero unless it is the whole integer part.
				if n+1 < len(expr) && expr[n+1] >= '0' && expr[n+1] <= '9' {
					continue
				}
			}
			number = true
		case c == '.':
			number = true
		case strings.IndexByte("+-*/()", c) >= 0:
			number = false
		default:
			err = ErrSymbol(c)
			return
		}
		sb.WriteByte(c)
	}

	text = sb.String()
	return
}

// Evaluate computes an arithmetic expression of the calculator's symbols.
func Evaluate(expr string) (value float64, err error) {
	text, err := normalize(expr)
	if err != nil {
		return
	}

	if len(text) == 0 {
		err = ErrEmpty
		return
	}

	thread := &starlark.Thread{Name: "calc"}
	thread.SetMaxExecutionSteps(EVAL_MAX_STEPS)

	opts := syntax.FileOptions{}
	prog := "rc=" + text + "\n"
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", prog, nil)
	if err != nil {
		err = &ErrEvaluate{Expr: expr, Err: err}
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = &ErrEvaluate{Expr: expr, Err: ErrSyntax}
		return
	}

	value, ok = starlark.AsFloat(st_rc)
	if !ok {
		err = &ErrEvaluate{Expr: expr, Err: ErrSyntax}
		return
	}

	if math.IsInf(value, 0) || math.IsNaN(value) {
		err = &ErrEvaluate{Expr: expr, Err: ErrOverflow}
		return
	}

	return
}
