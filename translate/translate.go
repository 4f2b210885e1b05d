// Package translate renders diagnostic strings in the host language,
// falling back to en-US when the locale cannot be detected or parsed.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var fallback = language.AmericanEnglish

// hostLanguage resolves the first host locale that parses as a BCP 47
// tag.
func hostLanguage() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("misim: locale detection: %v", err)
		return fallback
	}

	for _, loc := range locales {
		if tag, perr := language.Parse(loc); perr == nil {
			return tag
		}
	}

	return fallback
}

var printer = sync.OnceValue(func() *message.Printer {
	return message.NewPrinter(hostLanguage())
})

// From renders an en-US Sprintf() format in the host language.
func From(key message.Reference, args ...any) string {
	return printer().Sprintf(key, args...)
}
