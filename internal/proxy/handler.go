// Package proxy exposes the content API to the browser under /api, passing
// upstream JSON through unchanged.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lounge-site/internal/contentapi"

	"github.com/go-chi/chi/v5"
)

// Fetcher returns raw upstream bodies. *contentapi.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint, path string) ([]byte, error)
}

// Handler serves the passthrough endpoints.
type Handler struct {
	api Fetcher
	log *slog.Logger
}

// NewHandler returns a Handler forwarding to api.
func NewHandler(api Fetcher, log *slog.Logger) *Handler {
	return &Handler{api: api, log: log}
}

// Routes mounts the endpoints on r. Trailing-slash variants are accepted
// because the upstream API uses them.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/dishes", h.Dishes)
	r.Get("/dishes/", h.Dishes)
	r.Get("/categories", h.Categories)
	r.Get("/categories/", h.Categories)
	r.Get("/menu/{id}", h.Menu)
	r.Get("/menu/{id}/", h.Menu)
	r.Get("/halls", h.Halls)
	r.Get("/halls/*", h.Halls)
}

// Dishes handles GET /api/dishes.
func (h *Handler) Dishes(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, contentapi.EndpointDishes, contentapi.DishesPath)
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.forward(w, r, contentapi.EndpointCategories, contentapi.CategoriesPath)
}

// Menu handles GET /api/menu/{id}.
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	path, err := contentapi.MenuPath(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.forward(w, r, contentapi.EndpointMenu, path)
}

// Halls handles GET /api/halls and GET /api/halls/*, forwarding the suffix
// path and query string.
func (h *Handler) Halls(w http.ResponseWriter, r *http.Request) {
	path, err := contentapi.HallsPath(chi.URLParam(r, "*"), r.URL.RawQuery)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.forward(w, r, contentapi.EndpointHalls, path)
}

func (h *Handler) forward(w http.ResponseWriter, r *http.Request, endpoint, path string) {
	body, err := h.api.Fetch(r.Context(), endpoint, path)
	if err != nil {
		var upErr *contentapi.UpstreamError
		if errors.As(err, &upErr) {
			h.log.Info("upstream rejected request",
				slog.String("endpoint", endpoint),
				slog.Int("status", upErr.Status))
			writeError(w, upErr.Status, upstreamDetail(upErr.Body))
			return
		}
		h.log.Error("proxy request failed",
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// upstreamDetail embeds a JSON upstream body as-is and anything else as a
// string.
func upstreamDetail(body []byte) any {
	if len(body) > 0 && json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

func writeError(w http.ResponseWriter, status int, detail any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"error": detail})
}
