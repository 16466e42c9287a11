package config

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Value errors
	ErrRange   = errors.New(f("value out of range"))
	ErrType    = errors.New(f("wrong value type"))
	ErrUnknown = errors.New(f("unknown setting"))
	ErrLayout  = errors.New(f("key matrix pins overlap"))
)

// ErrConfig reports a configuration file that could not be applied.
type ErrConfig struct {
	Name string
	Key  string // Setting, if the file ran.
	Err  error
}

func (err *ErrConfig) Error() string {
	if len(err.Key) == 0 {
		return f("%v: %v", err.Name, err.Err)
	}
	return f("%v: %v: %v", err.Name, err.Key, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
