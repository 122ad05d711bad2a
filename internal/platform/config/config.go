package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration read from the environment.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// ContentAPIOrigin is the scheme+host of the external content API; media
	// URLs are resolved against it too.
	ContentAPIOrigin  string        `env:"CONTENT_API_ORIGIN" envDefault:"https://api.svoy-lounge.kz"`
	ContentAPITimeout time.Duration `env:"CONTENT_API_TIMEOUT" envDefault:"10s"`
	// ContentAPIRate is the sustained upstream request rate per second.
	ContentAPIRate  float64       `env:"CONTENT_API_RATE" envDefault:"20"`
	ContentAPIBurst int           `env:"CONTENT_API_BURST" envDefault:"10"`
	ContentCacheTTL time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"1m"`

	// ContentFile overrides the embedded site content (hero, contacts).
	ContentFile string `env:"CONTENT_FILE"`
	// WasmDir holds herovideo.wasm and wasm_exec.js, served under /static/wasm/.
	WasmDir string `env:"WASM_DIR" envDefault:"web/wasm"`
	// MediaDir holds the large site media (hero videos and photos, menu PDF),
	// served under /static/ after the embedded assets.
	MediaDir string `env:"MEDIA_DIR" envDefault:"web/media"`
	// HeroPolicy selects the hero rotation policy: "lookahead" or "lazy-unload".
	HeroPolicy string `env:"HERO_POLICY" envDefault:"lookahead"`
}

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files (e.g. ".env"); with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// Parse fills a Config from the current environment, applying defaults.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.HeroPolicy {
	case "lookahead", "lazy-unload":
	default:
		return Config{}, fmt.Errorf("parse env: HERO_POLICY %q: want lookahead or lazy-unload", cfg.HeroPolicy)
	}
	return cfg, nil
}
