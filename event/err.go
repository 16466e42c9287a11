package event

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Queue errors
	ErrQueueFull = errors.New(f("event queue full"))
	ErrUnguarded = errors.New(f("event queue used outside critical section"))
)
