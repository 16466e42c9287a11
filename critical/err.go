package critical

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Usage errors
	ErrNested = errors.New(f("critical section nested"))
)
