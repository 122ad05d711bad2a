package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.toml
var embeddedLocales embed.FS

// Bundle holds the translated strings of every supported locale.
type Bundle struct {
	catalog *catalog.Builder
	keys    map[string]map[string]struct{}
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads locales/<locale>.toml for every supported locale from
// fsys. Nested tables become dotted keys ("hero.buttons.download").
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	b := &Bundle{
		catalog: catalog.NewBuilder(catalog.Fallback(Tag(Default))),
		keys:    make(map[string]map[string]struct{}, len(Supported)),
	}
	for _, locale := range Supported {
		name := path.Join("locales", locale+".toml")
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", name, err)
		}
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", name, err)
		}

		flat := make(map[string]string)
		flatten("", raw, flat)
		b.keys[locale] = make(map[string]struct{}, len(flat))
		for key, msg := range flat {
			if err := checkPercent(msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %s: %w", name, key, err)
			}
			if err := b.catalog.SetString(Tag(locale), key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s: key %s: %w", name, key, err)
			}
			b.keys[locale][key] = struct{}{}
		}
	}
	return b, nil
}

// Keys returns the sorted message keys defined for locale.
func (b *Bundle) Keys(locale string) []string {
	out := make([]string, 0, len(b.keys[locale]))
	for k := range b.keys[locale] {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Localizer returns the translator for locale. Unknown locales get the
// default one.
func (b *Bundle) Localizer(locale string) *Localizer {
	if !Valid(locale) {
		locale = Default
	}
	return &Localizer{
		Locale:  locale,
		printer: message.NewPrinter(Tag(locale), message.Catalog(b.catalog)),
	}
}

// Localizer translates UI strings for one locale. Templates call T.
type Localizer struct {
	Locale  string
	printer *message.Printer
}

// T returns the message for key; unknown keys come back verbatim. Messages
// are printf formats, so a literal percent sign is written "%%".
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Lang returns the value for the html lang attribute.
func (l *Localizer) Lang() string {
	return Tag(l.Locale).String()
}

// checkPercent rejects a '%' that ends a message or is followed by
// whitespace, which the printer would render as a format error.
func checkPercent(msg string) error {
	for i := 0; i < len(msg); i++ {
		if msg[i] != '%' {
			continue
		}
		if i+1 == len(msg) || unicode.IsSpace(rune(msg[i+1])) {
			return fmt.Errorf("%w: bare %% at offset %d, write %%%%", ErrBadMessage, i)
		}
		if msg[i+1] == '%' {
			i++
		}
	}
	return nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = strings.TrimSpace(val)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
