// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate renders user visible message text in the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// fallback is used when the host reports no usable locale.
var fallback = language.AmericanEnglish

var printer *message.Printer

func init() {
	printer = NewPrinter()
}

// NewPrinter selects a message printer for the locales reported by the host.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("starjconf: locale: %v", err)
	}

	if len(locales) == 0 {
		return message.NewPrinter(fallback)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
