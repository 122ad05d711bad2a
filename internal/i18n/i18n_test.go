package i18n

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"
)

func TestNegotiate(t *testing.T) {
	cases := map[string]string{
		"":                          "ru",
		"en-US,en;q=0.9":            "en",
		"kk-KZ,kk;q=0.9,ru;q=0.8":   "kz",
		"ru-RU,ru;q=0.9,en;q=0.8":   "ru",
		"de-DE":                     "ru",
		"fr;q=0.9,en;q=0.5":         "en",
		"not a header ;;; q=banana": "ru",
	}
	for header, want := range cases {
		if got := Negotiate(header); got != want {
			t.Errorf("Negotiate(%q): got %q want %q", header, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	if l, err := Parse("kz"); err != nil || l != "kz" {
		t.Errorf("Parse(kz): %q, %v", l, err)
	}
	if _, err := Parse("kk"); !errors.Is(err, ErrUnknownLocale) {
		t.Errorf("Parse(kk): expected ErrUnknownLocale, got %v", err)
	}
}

func TestTag(t *testing.T) {
	if Tag("kz").String() != "kk" || Tag("en").String() != "en" || Tag("xx").String() != "ru" {
		t.Errorf("unexpected tags: %s %s %s", Tag("kz"), Tag("en"), Tag("xx"))
	}
}

func TestSwitchPath(t *testing.T) {
	cases := []struct {
		path, locale, want string
	}{
		{"/", "en", "/en"},
		{"/ru", "kz", "/kz"},
		{"/ru/common", "en", "/en/common"},
		{"/en/common/offers/3", "ru", "/ru/common/offers/3"},
		{"/common", "kz", "/kz/common"},
	}
	for _, tc := range cases {
		if got := SwitchPath(tc.path, tc.locale); got != tc.want {
			t.Errorf("SwitchPath(%q, %q): got %q want %q", tc.path, tc.locale, got, tc.want)
		}
	}
}

func TestOptions(t *testing.T) {
	opts := Options("/ru/common", "en")
	if len(opts) != len(Supported) {
		t.Fatalf("expected %d options, got %d", len(Supported), len(opts))
	}
	for _, o := range opts {
		if o.Active != (o.Locale == "en") {
			t.Errorf("option %s: active=%v", o.Locale, o.Active)
		}
		if o.Label == "" {
			t.Errorf("option %s: empty label", o.Locale)
		}
	}
	if opts[2].Href != "/kz/common" {
		t.Errorf("kz href: got %q", opts[2].Href)
	}
}

func TestLoadEmbedded(t *testing.T) {
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	t.Run("translates_per_locale", func(t *testing.T) {
		cases := map[string]string{
			"ru": "Забронировать",
			"en": "Book a table",
			"kz": "Бронь жасау",
		}
		for locale, want := range cases {
			if got := b.Localizer(locale).T("offerDetail.book"); got != want {
				t.Errorf("%s: got %q want %q", locale, got, want)
			}
		}
	})

	t.Run("unknown_key_verbatim", func(t *testing.T) {
		if got := b.Localizer("en").T("missing.key"); got != "missing.key" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown_locale_uses_default", func(t *testing.T) {
		l := b.Localizer("de")
		if l.Locale != Default || l.Lang() != "ru" {
			t.Errorf("got locale %q lang %q", l.Locale, l.Lang())
		}
	})

	t.Run("locales_share_keys", func(t *testing.T) {
		base := b.Keys(Default)
		if len(base) == 0 {
			t.Fatal("no keys in default catalog")
		}
		for _, locale := range Supported {
			if got := b.Keys(locale); !slices.Equal(got, base) {
				t.Errorf("%s keys differ from %s:\n%v\n%v", locale, Default, got, base)
			}
		}
	})
}

func TestLoadFromFS_literal_percent(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/ru.toml": {Data: []byte(`[offer]
discount = "50%% скидка"
share = "%s%%"`)},
		"locales/en.toml": {Data: []byte(`[offer]
discount = "50%% off"
share = "%s%%"`)},
		"locales/kz.toml": {Data: []byte(`[offer]
discount = "50%% жеңілдік"
share = "%s%%"`)},
	}
	b, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("LoadFromFS: %v", err)
	}
	l := b.Localizer("en")
	if got := l.T("offer.discount"); got != "50% off" {
		t.Errorf("discount: got %q", got)
	}
	if got := l.T("offer.share", "30"); got != "30%" {
		t.Errorf("share: got %q", got)
	}
}

func TestLoadFromFS_errors(t *testing.T) {
	t.Run("missing_locale", func(t *testing.T) {
		fsys := fstest.MapFS{"locales/ru.toml": {Data: []byte(`a = "b"`)}}
		if _, err := LoadFromFS(fsys); err == nil {
			t.Error("expected error for missing en/kz catalogs")
		}
	})

	t.Run("bare_percent", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/ru.toml": {Data: []byte(`a = "скидка 50% на всё"`)},
			"locales/en.toml": {Data: []byte(`a = "b"`)},
			"locales/kz.toml": {Data: []byte(`a = "b"`)},
		}
		if _, err := LoadFromFS(fsys); !errors.Is(err, ErrBadMessage) {
			t.Errorf("expected ErrBadMessage, got %v", err)
		}
	})

	t.Run("bad_toml", func(t *testing.T) {
		fsys := fstest.MapFS{
			"locales/ru.toml": {Data: []byte(`a = `)},
			"locales/en.toml": {Data: []byte(`a = "b"`)},
			"locales/kz.toml": {Data: []byte(`a = "b"`)},
		}
		if _, err := LoadFromFS(fsys); err == nil {
			t.Error("expected parse error")
		}
	})
}
