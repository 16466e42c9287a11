package main

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	ErrNotTerminal = errors.New(f("standard input is not a terminal"))
)
