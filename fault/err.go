package fault

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	ErrProcessor = errors.New(f("processor fault"))
)
