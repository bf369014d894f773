// Package i18n provides message printing for the web service UI strings.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default returns the default language tag.
func Default() language.Tag {
	return language.AmericanEnglish
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
