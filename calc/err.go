package calc

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Evaluation errors
	ErrEmpty    = errors.New(f("empty expression"))
	ErrSyntax   = errors.New(f("syntax error"))
	ErrOverflow = errors.New(f("overflow"))
)

// ErrSymbol is a byte that is not a calculator symbol.
type ErrSymbol byte

func (err ErrSymbol) Error() string {
	return f("'%c' is not a calculator symbol", byte(err))
}

// ErrEvaluate reports an expression the interpreter rejected.
type ErrEvaluate struct {
	Expr string
	Err  error
}

func (err *ErrEvaluate) Error() string {
	return f("'%v' %v", err.Expr, err.Err)
}

func (err *ErrEvaluate) Unwrap() error {
	return err.Err
}
