// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate renders user-facing bfc messages in the caller's locale.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("bfc: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintln writes a translated en-US Sprintf() format, followed by a newline.
func Fprintln(w io.Writer, key message.Reference, args ...any) {
	_, _ = io.WriteString(w, printer.Sprintf(key, args...)+"\n")
}
