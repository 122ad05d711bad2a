package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lounge-site/internal/contentapi"
	"lounge-site/internal/i18n"
	"lounge-site/internal/platform/config"
	"lounge-site/internal/platform/logger"
	"lounge-site/internal/platform/metrics"
	"lounge-site/internal/platform/static"
	"lounge-site/internal/proxy"
	"lounge-site/internal/site"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	cfg, err := config.Parse()
	if err != nil {
		logger.New("error", "text").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	content, err := site.LoadContent(cfg.ContentFile)
	if err != nil {
		log.Error("load site content", "error", err)
		os.Exit(1)
	}
	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		log.Error("load translations", "error", err)
		os.Exit(1)
	}
	render, err := site.NewRenderer()
	if err != nil {
		log.Error("parse templates", "error", err)
		os.Exit(1)
	}

	met := metrics.New()
	api := contentapi.NewClient(contentapi.Options{
		Origin:     cfg.ContentAPIOrigin,
		HTTPClient: &http.Client{Timeout: cfg.ContentAPITimeout},
		Rate:       cfg.ContentAPIRate,
		Burst:      cfg.ContentAPIBurst,
		Cache:      contentapi.NewCache(cfg.ContentCacheTTL),
		Metrics:    met,
	})
	svc := site.NewService(api, content, contentapi.NewMediaResolver(api.Origin()), cfg.HeroPolicy, log)
	pages := site.NewHandler(svc, render, bundle, log, met)
	apiProxy := proxy.NewHandler(api, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetCacheEntries(api.CacheLen()) }).ServeHTTP(w, r)
	})
	r.Mount("/static", static.Handler(cfg.WasmDir, cfg.MediaDir))
	r.Route("/api", apiProxy.Routes)
	pages.Routes(r)

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", cfg.Port,
		"content_api", api.Origin(),
		"hero_policy", cfg.HeroPolicy,
		"log_level", cfg.LogLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
