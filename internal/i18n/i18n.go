// Package i18n holds the site's locales, Accept-Language negotiation and the
// translated UI strings.
package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Default is the locale used when nothing better is known.
const Default = "ru"

var (
	// ErrUnknownLocale is returned for locale segments the site does not serve.
	ErrUnknownLocale = errors.New("unknown locale")
	// ErrBadMessage is returned for catalog messages that would not format.
	ErrBadMessage = errors.New("malformed catalog message")
)

// Supported lists the URL locale segments in preference order. Kazakh is
// "kz" in URLs although its BCP 47 code is "kk".
var Supported = []string{"ru", "en", "kz"}

var (
	tags    = []language.Tag{language.Russian, language.English, language.Kazakh}
	matcher = language.NewMatcher(tags)
	labels  = map[string]string{"ru": "Русский", "en": "English", "kz": "Қазақша"}
)

// Valid reports whether locale is a supported URL segment.
func Valid(locale string) bool {
	for _, l := range Supported {
		if l == locale {
			return true
		}
	}
	return false
}

// Parse validates a URL locale segment.
func Parse(locale string) (string, error) {
	if !Valid(locale) {
		return "", ErrUnknownLocale
	}
	return locale, nil
}

// Tag returns the BCP 47 tag of a supported locale, or the default's tag.
func Tag(locale string) language.Tag {
	for i, l := range Supported {
		if l == locale {
			return tags[i]
		}
	}
	return tags[0]
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) string {
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return Default
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No {
		return Default
	}
	return Supported[index]
}

// SwitchPath rewrites path so it points at the same page in locale: a
// leading supported locale segment is replaced, otherwise one is prepended.
func SwitchPath(path, locale string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && Valid(parts[0]) {
		parts = parts[1:]
	}
	rest := strings.Join(parts, "/")
	if rest == "" {
		return "/" + locale
	}
	return "/" + locale + "/" + rest
}

// Option is one entry of the language switcher.
type Option struct {
	Locale string
	Label  string
	Href   string
	Active bool
}

// Options builds the language switcher for the page at path.
func Options(path, active string) []Option {
	out := make([]Option, 0, len(Supported))
	for _, l := range Supported {
		out = append(out, Option{
			Locale: l,
			Label:  labels[l],
			Href:   SwitchPath(path, l),
			Active: l == active,
		})
	}
	return out
}
