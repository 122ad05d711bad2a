package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"lounge-site/internal/contentapi"

	"github.com/go-chi/chi/v5"
)

type fakeFetcher struct {
	bodies map[string][]byte
	err    error
	paths  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, path string) ([]byte, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.bodies[path]
	if !ok {
		return nil, &contentapi.UpstreamError{Status: http.StatusNotFound, Body: []byte(`{"detail":"Not found."}`)}
	}
	return body, nil
}

func newTestRouter(f *fakeFetcher) *chi.Mux {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	h := NewHandler(f, log)
	r := chi.NewRouter()
	r.Route("/api", h.Routes)
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_passthrough(t *testing.T) {
	f := &fakeFetcher{bodies: map[string][]byte{
		contentapi.DishesPath:            []byte(`[{"id":1}]`),
		contentapi.CategoriesPath:        []byte(`[{"id":2}]`),
		"/services/api/v3/menus/common/": []byte(`{"id":3}`),
		"/services/api/v2/halls/":        []byte(`[{"id":4}]`),
		"/services/api/v2/halls/4/?x=1":  []byte(`{"id":4}`),
	}}
	r := newTestRouter(f)

	cases := map[string]string{
		"/api/dishes":       `[{"id":1}]`,
		"/api/dishes/":      `[{"id":1}]`,
		"/api/categories/":  `[{"id":2}]`,
		"/api/menu/common":  `{"id":3}`,
		"/api/menu/common/": `{"id":3}`,
		"/api/halls":        `[{"id":4}]`,
		"/api/halls/":       `[{"id":4}]`,
		"/api/halls/4/?x=1": `{"id":4}`,
	}
	for target, want := range cases {
		t.Run(target, func(t *testing.T) {
			rec := serve(r, target)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
			}
			if rec.Header().Get("Content-Type") != "application/json" {
				t.Errorf("content type: %q", rec.Header().Get("Content-Type"))
			}
			if rec.Body.String() != want {
				t.Errorf("body: got %s want %s", rec.Body.String(), want)
			}
		})
	}
}

func TestHandler_upstream_status(t *testing.T) {
	r := newTestRouter(&fakeFetcher{bodies: map[string][]byte{}})

	rec := serve(r, "/api/menu/404")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected upstream 404 to pass through, got %d", rec.Code)
	}
	var got struct {
		Error struct {
			Detail string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v (%s)", err, rec.Body.String())
	}
	if got.Error.Detail != "Not found." {
		t.Errorf("expected upstream JSON embedded, got %s", rec.Body.String())
	}
}

func TestHandler_upstream_text_error(t *testing.T) {
	f := &fakeFetcher{err: &contentapi.UpstreamError{Status: http.StatusBadGateway, Body: []byte("bad gateway")}}
	rec := serve(newTestRouter(f), "/api/dishes")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got["error"] != "bad gateway" {
		t.Errorf("unexpected body %s (%v)", rec.Body.String(), err)
	}
}

func TestHandler_transport_failure(t *testing.T) {
	f := &fakeFetcher{err: errors.New("dial tcp: connection refused")}
	rec := serve(newTestRouter(f), "/api/halls")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var got map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil || got["error"] == "" {
		t.Errorf("expected error message, got %s", rec.Body.String())
	}
}

func TestHandler_rejects_traversal(t *testing.T) {
	for _, target := range []string{
		"/api/halls/a/../../menus/1/",
		"/api/halls/a/%2e%2e/%2e%2e/menus/1/",
		"/api/halls/a/%2E%2e/menus/1/",
		"/api/halls/a%2f..%2f..%2fmenus/1/",
	} {
		t.Run(target, func(t *testing.T) {
			f := &fakeFetcher{}
			rec := serve(newTestRouter(f), target)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			if len(f.paths) != 0 {
				t.Errorf("upstream should not be called, got %v", f.paths)
			}
		})
	}
}
