package sim

import (
	"errors"
	"fmt"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Board errors
	ErrHalted   = errors.New(f("processor halted"))
	ErrReadOnly = errors.New(f("store to read-only memory"))
	ErrUnmapped = errors.New(f("access to unmapped memory"))
)

// ErrBusFault is a memory access the board cannot complete.
type ErrBusFault struct {
	Addr uint32
	Err  error
}

func (err *ErrBusFault) Error() string {
	return f("%v: %v", fmt.Sprintf("0x%08x", err.Addr), err.Err)
}

func (err *ErrBusFault) Unwrap() error {
	return err.Err
}
