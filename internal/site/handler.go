package site

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"lounge-site/internal/i18n"
	"lounge-site/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Handler serves the HTML pages using go-chi.
type Handler struct {
	svc     *Service
	render  *Renderer
	bundle  *i18n.Bundle
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler. Metrics may be nil (e.g. in tests).
func NewHandler(svc *Service, render *Renderer, bundle *i18n.Bundle, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, render: render, bundle: bundle, log: log, metrics: m}
}

// Routes mounts the pages on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/{locale}", h.Home)
	r.Get("/{locale}/", h.Home)
	r.Get("/{locale}/{menuID}", h.MenuPage)
	r.Get("/{locale}/{menuID}/offers/{offerID}", h.OfferPage)
	r.NotFound(h.NotFound)
}

// Root handles GET / by redirecting to the visitor's best locale.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Negotiate(r.Header.Get("Accept-Language"))
	w.Header().Add("Vary", "Accept-Language")
	http.Redirect(w, r, "/"+locale, http.StatusFound)
}

// Home handles GET /{locale}: hero, offers and a link to the default menu.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.locale(w, r)
	if !ok {
		return
	}
	menuID := h.svc.Content().Site.DefaultMenu
	hero := h.svc.Hero()
	p := h.page(r, PageHome, locale, menuID)
	p.Hero = &hero
	p.Offers = h.svc.Offers(r.Context(), locale, menuID)
	h.write(w, http.StatusOK, p)
}

// MenuPage handles GET /{locale}/{menuID}.
func (h *Handler) MenuPage(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.locale(w, r)
	if !ok {
		return
	}
	menuID := chi.URLParam(r, "menuID")
	menu, err := h.svc.Menu(r.Context(), locale, menuID, ParseTab(r.URL.Query().Get("tab")))
	if err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			h.notFound(w, r, locale)
			return
		}
		h.log.Error("menu page failed", slog.String("menu_id", menuID), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	hero := h.svc.Hero()
	p := h.page(r, PageMenu, locale, menuID)
	p.Hero = &hero
	p.Offers = h.svc.Offers(r.Context(), locale, menuID)
	p.Menu = &menu
	h.write(w, http.StatusOK, p)
}

// OfferPage handles GET /{locale}/{menuID}/offers/{offerID}.
func (h *Handler) OfferPage(w http.ResponseWriter, r *http.Request) {
	locale, ok := h.locale(w, r)
	if !ok {
		return
	}
	menuID := chi.URLParam(r, "menuID")
	offerID := chi.URLParam(r, "offerID")
	offer, err := h.svc.Offer(r.Context(), locale, menuID, offerID)
	if err != nil {
		if errors.Is(err, ErrOfferNotFound) {
			h.notFound(w, r, locale)
			return
		}
		h.log.Error("offer page failed",
			slog.String("offer_id", offerID),
			slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	p := h.page(r, PageOffer, locale, menuID)
	p.Offer = &offer
	h.write(w, http.StatusOK, p)
}

// NotFound renders the 404 page in the locale of the first path segment, if
// it is one.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	first, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	locale := i18n.Default
	if i18n.Valid(first) {
		locale = first
	}
	h.notFound(w, r, locale)
}

func (h *Handler) locale(w http.ResponseWriter, r *http.Request) (string, bool) {
	locale, err := i18n.Parse(chi.URLParam(r, "locale"))
	if err != nil {
		h.notFound(w, r, i18n.Default)
		return "", false
	}
	return locale, true
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, locale string) {
	h.write(w, http.StatusNotFound, h.page(r, PageNotFound, locale, h.svc.Content().Site.DefaultMenu))
}

func (h *Handler) page(r *http.Request, name, locale, menuID string) Page {
	return Page{
		Name:      name,
		L:         h.bundle.Localizer(locale),
		Path:      r.URL.Path,
		Languages: i18n.Options(r.URL.Path, locale),
		Content:   h.svc.Content(),
		MenuID:    menuID,
	}
}

func (h *Handler) write(w http.ResponseWriter, status int, p Page) {
	var buf bytes.Buffer
	if err := h.render.Render(&buf, p); err != nil {
		h.log.Error("render failed", slog.String("page", p.Name), slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	if h.metrics != nil {
		h.metrics.IncPageRendered(p.Name, p.L.Locale)
	}
}
