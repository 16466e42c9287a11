package hal

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Bus errors
	ErrBusy = errors.New(f("bus busy"))
	ErrNack = errors.New(f("bus nack"))
)
