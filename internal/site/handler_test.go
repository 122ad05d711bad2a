package site

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"lounge-site/internal/contentapi"
	"lounge-site/internal/i18n"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T, src ContentSource, policy string) *chi.Mux {
	t.Helper()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	render, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	h := NewHandler(newTestService(src, policy), render, bundle, log, nil)
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func get(r http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Root(t *testing.T) {
	r := newTestRouter(t, newFakeSource(), PolicyLookahead)

	cases := map[string]string{
		"":               "/ru",
		"en-GB,en;q=0.8": "/en",
		"kk-KZ":          "/kz",
	}
	for header, want := range cases {
		rec := get(r, "/", "Accept-Language", header)
		if rec.Code != http.StatusFound {
			t.Fatalf("%q: status %d", header, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != want {
			t.Errorf("%q: Location %q want %q", header, loc, want)
		}
	}
}

func TestHandler_Home(t *testing.T) {
	r := newTestRouter(t, newFakeSource(), PolicyLookahead)

	for _, target := range []string{"/en", "/en/"} {
		rec := get(r, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", target, rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{
			`<html lang="en">`,
			`data-hero-policy="lookahead"`,
			`class="hero__video is-active" data-hero-slot="0"`,
			`data-hero-slot="2"`,
			`href="/en/common/offers/3"`,
			`SINCE 2009`,
			`href="/kz"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("%s: body missing %q", target, want)
			}
		}
	}
}

func TestHandler_Home_lazy_unload(t *testing.T) {
	r := newTestRouter(t, newFakeSource(), PolicyLazyUnload)

	body := get(r, "/ru").Body.String()
	if !strings.Contains(body, `data-hero-policy="lazy-unload"`) {
		t.Error("missing policy attribute")
	}
	if !strings.Contains(body, `data-src="/v/1.mp4" src="/v/1.mp4"`) {
		t.Error("active slot should carry its source")
	}
	if !strings.Contains(body, `data-src="/v/2.mp4" preload="metadata"`) {
		t.Error("inactive slot should only carry data-src")
	}
}

func TestHandler_MenuPage(t *testing.T) {
	t.Run("renders_groups", func(t *testing.T) {
		r := newTestRouter(t, newFakeSource(), PolicyLookahead)
		rec := get(r, "/en/common?tab=7")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{
			"Main menu",
			`id="group-cat-1"`,
			"Steak",
			`href="?tab=1#group-cat-2" class="is-active"`,
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
		if strings.Contains(body, `id="group-cat-2"`) {
			t.Error("empty group should have no panel")
		}
	})

	t.Run("unknown_menu_404", func(t *testing.T) {
		r := newTestRouter(t, newFakeSource(), PolicyLookahead)
		if rec := get(r, "/ru/nope"); rec.Code != http.StatusNotFound {
			t.Errorf("status %d", rec.Code)
		}
	})

	t.Run("dishes_404_still_renders", func(t *testing.T) {
		src := newFakeSource()
		src.dishesErr = &contentapi.UpstreamError{Status: http.StatusNotFound}
		r := newTestRouter(t, src, PolicyLookahead)
		rec := get(r, "/ru/common")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `class="menu__unavailable"`) {
			t.Error("expected unavailable message")
		}
	})

	t.Run("upstream_down_still_renders", func(t *testing.T) {
		src := newFakeSource()
		src.menuErr = errors.New("dial tcp: connection refused")
		src.hallsErr = src.menuErr
		r := newTestRouter(t, src, PolicyLookahead)
		rec := get(r, "/ru/common")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `class="menu__unavailable"`) {
			t.Error("expected unavailable message")
		}
	})
}

func TestHandler_OfferPage(t *testing.T) {
	r := newTestRouter(t, newFakeSource(), PolicyLookahead)

	t.Run("renders_offer", func(t *testing.T) {
		rec := get(r, "/kz/common/offers/3")
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{
			"VIP караоке",
			`href="/kz/#offers"`,
			`href="https://wa.me/77770900333"`,
			`href="tel:`,
			"https://api.example/resource/halls/media/vip.png/",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("body missing %q", want)
			}
		}
		if strings.Contains(body, "ZgotmplZ") {
			t.Error("a link was rejected by the template escaper")
		}
	})

	t.Run("unknown_offer_404", func(t *testing.T) {
		if rec := get(r, "/ru/common/offers/99"); rec.Code != http.StatusNotFound {
			t.Errorf("status %d", rec.Code)
		}
	})
}

func TestHandler_not_found(t *testing.T) {
	r := newTestRouter(t, newFakeSource(), PolicyLookahead)

	cases := map[string]string{
		"/de":              `lang="ru"`,
		"/xx/common":       `lang="ru"`,
		"/en/common/extra": `lang="en"`,
		"/kz/a/b/c/d":      `lang="kk"`,
	}
	for target, lang := range cases {
		rec := get(r, target)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status %d", target, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), lang) {
			t.Errorf("%s: expected %s", target, lang)
		}
	}
}

var _ ContentSource = (*contentapi.Client)(nil)
