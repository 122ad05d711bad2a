// Package contentapi talks to the venue's external content API (menus,
// categories, dishes and halls). Lookups are rate limited, and successful
// bodies are cached for a short TTL.
package contentapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"lounge-site/internal/platform/metrics"

	"golang.org/x/time/rate"
)

// DefaultOrigin is the production content API.
const DefaultOrigin = "https://api.svoy-lounge.kz"

const maxBodyBytes = 8 << 20

// Endpoint names used in logs and metrics.
const (
	EndpointDishes     = "dishes"
	EndpointCategories = "categories"
	EndpointMenu       = "menu"
	EndpointHalls      = "halls"
)

// Upstream paths.
const (
	DishesPath     = "/services/api/v1/dishes/"
	CategoriesPath = "/services/api/v1/categories/"
	menusPrefix    = "/services/api/v3/menus/"
	hallsPrefix    = "/services/api/v2/halls/"
)

// MenuPath returns the upstream path of one menu.
func MenuPath(id string) (string, error) {
	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "/") || id == "." || id == ".." {
		return "", ErrInvalidPath
	}
	return menusPrefix + url.PathEscape(id) + "/", nil
}

// HallsPath returns the upstream halls path for the given suffix and raw
// query, forwarded as-is from the site's proxy route.
func HallsPath(suffix, rawQuery string) (string, error) {
	suffix = strings.TrimLeft(suffix, "/")
	for _, seg := range strings.Split(suffix, "/") {
		// The suffix arrives still escaped; "%2e%2e" is ".." upstream.
		dec, err := url.PathUnescape(seg)
		if err != nil || dec == ".." || dec == "." || strings.Contains(dec, "/") {
			return "", ErrInvalidPath
		}
	}
	p := hallsPrefix + suffix
	if rawQuery != "" {
		p += "?" + rawQuery
	}
	return p, nil
}

// Options configures a Client.
type Options struct {
	// Origin defaults to DefaultOrigin.
	Origin string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Rate is the sustained request rate per second; <= 0 means unlimited.
	Rate  float64
	Burst int
	// Cache may be nil to disable caching.
	Cache *Cache
	// Metrics may be nil to disable metric recording (e.g. in tests).
	Metrics *metrics.Metrics
}

// Client fetches content from the external API.
type Client struct {
	origin  string
	http    *http.Client
	limiter *rate.Limiter
	cache   *Cache
	metrics *metrics.Metrics
}

// NewClient returns a Client configured by opts.
func NewClient(opts Options) *Client {
	origin := strings.TrimRight(opts.Origin, "/")
	if origin == "" {
		origin = DefaultOrigin
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		origin:  origin,
		http:    hc,
		limiter: rate.NewLimiter(limit, burst),
		cache:   opts.Cache,
		metrics: opts.Metrics,
	}
}

// Origin returns the scheme+host the client talks to.
func (c *Client) Origin() string {
	return c.origin
}

// CacheLen returns the number of live cache entries, 0 without a cache.
func (c *Client) CacheLen() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Fetch performs a GET for path and returns the raw body. A non-2xx answer
// is returned as *UpstreamError.
func (c *Client) Fetch(ctx context.Context, endpoint, path string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(path); ok {
			c.observe(endpoint, metrics.OutcomeCached)
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.observe(endpoint, metrics.OutcomeThrottle)
		return nil, fmt.Errorf("content api %s: wait for rate limit: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin+path, nil)
	if err != nil {
		return nil, fmt.Errorf("content api %s: create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(endpoint, metrics.OutcomeFailed)
		return nil, fmt.Errorf("content api %s: request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.observe(endpoint, metrics.OutcomeFailed)
		return nil, fmt.Errorf("content api %s: read response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(endpoint, metrics.OutcomeStatus)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}

	if c.cache != nil {
		c.cache.Set(path, body)
	}
	c.observe(endpoint, metrics.OutcomeOK)
	return body, nil
}

// Dishes returns every dish.
func (c *Client) Dishes(ctx context.Context) ([]Dish, error) {
	var out []Dish
	if err := c.fetchJSON(ctx, EndpointDishes, DishesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories returns every category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.fetchJSON(ctx, EndpointCategories, CategoriesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Menu returns the menu with the given id.
func (c *Client) Menu(ctx context.Context, id string) (Menu, error) {
	var out Menu
	p, err := MenuPath(id)
	if err != nil {
		return out, err
	}
	if err := c.fetchJSON(ctx, EndpointMenu, p, &out); err != nil {
		return Menu{}, err
	}
	return out, nil
}

// Halls returns every hall.
func (c *Client) Halls(ctx context.Context) ([]Hall, error) {
	var out []Hall
	if err := c.fetchJSON(ctx, EndpointHalls, hallsPrefix, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Hall returns the hall with the given id.
func (c *Client) Hall(ctx context.Context, id string) (Hall, error) {
	var out Hall
	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "/") {
		return out, ErrInvalidPath
	}
	p, err := HallsPath(url.PathEscape(id)+"/", "")
	if err != nil {
		return out, err
	}
	if err := c.fetchJSON(ctx, EndpointHalls, p, &out); err != nil {
		return Hall{}, err
	}
	return out, nil
}

func (c *Client) fetchJSON(ctx context.Context, endpoint, path string, dst any) error {
	body, err := c.Fetch(ctx, endpoint, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("content api %s: decode: %w", endpoint, err)
	}
	return nil
}

func (c *Client) observe(endpoint, outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveUpstream(endpoint, outcome)
	}
}
