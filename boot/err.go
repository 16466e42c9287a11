package boot

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Image layout errors
	ErrUnaligned = errors.New(f("region not word aligned"))
	ErrInverted  = errors.New(f("region end before start"))
	ErrOverlap   = errors.New(f("regions overlap"))
)

// ErrImage locates an image layout error.
type ErrImage struct {
	Region Region
	Err    error
}

func (err *ErrImage) Error() string {
	return f("region 0x%08x-0x%08x %v", err.Region.Start, err.Region.End, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
