// Package i18n provides the bilingual (English/Arabic) building blocks used by
// the table engine and the web layer: locale parsing and negotiation, text
// direction, parallel strings, and a small dictionary of UI labels.
//
// Nothing in this package holds global mutable state. The active locale is
// always passed explicitly to whatever needs it.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is a display language supported by the storefront.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// Default is the locale used when nothing else matches.
const Default = English

// supported lists locales in matcher preference order.
var supported = []language.Tag{language.English, language.Arabic}

var matcher = language.NewMatcher(supported)

// Parse converts a BCP 47 tag ("ar", "ar-EG", "en-US") to a supported Locale.
// Unknown or malformed tags resolve to Default.
func Parse(tag string) Locale {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Default
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Default
	}
	base, _ := t.Base()
	switch base.String() {
	case "ar":
		return Arabic
	case "en":
		return English
	default:
		return Default
	}
}

// Match negotiates a locale from an Accept-Language header value.
func Match(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Parse(supported[idx].String())
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	return l == English || l == Arabic
}

// Tag returns the language tag for l.
func (l Locale) Tag() language.Tag {
	if l == Arabic {
		return language.Arabic
	}
	return language.English
}

// Dir returns the HTML text direction for l: "rtl" for Arabic, "ltr" otherwise.
func (l Locale) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// String returns the locale code.
func (l Locale) String() string {
	if !l.Valid() {
		return string(Default)
	}
	return string(l)
}

// FormatNumber formats n with the digit grouping of l.
func FormatNumber(l Locale, n any) string {
	return message.NewPrinter(l.Tag()).Sprintf("%v", n)
}
