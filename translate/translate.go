// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate localizes the messages and numbers shown by μCalc.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// NUMBER_FRACTION_DIGITS is the most fraction digits Number will show.
	NUMBER_FRACTION_DIGITS = 8
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ucalc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage replaces the locale chosen from the environment.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Number formats a calculator value with the locale's grouping and
// decimal mark.
func Number(value float64) string {
	return printer.Sprint(number.Decimal(value,
		number.MaxFractionDigits(NUMBER_FRACTION_DIGITS)))
}
