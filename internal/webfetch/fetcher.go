// Package webfetch fetches planning pages politely: it honours robots.txt,
// paces requests, and identifies itself with a research user agent.
package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/time/rate"
)

// Default request settings.
const (
	DefaultUserAgent      = "Oslo-Planning-Premium/1.0 (Planning Document Research; contact@oslo.kommune.no)"
	DefaultMinDelay       = time.Second
	DefaultTimeout        = 10 * time.Second
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	defaultAcceptLanguage = "nb-NO,nb;q=0.9,no;q=0.8,en;q=0.7"
	maxBodyBytes          = 5 << 20
	maxRobotsBytes        = 512 << 10
)

// ErrRobotsDisallowed is returned when robots.txt forbids a URL.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// Config configures a Fetcher.
type Config struct {
	UserAgent string
	// MinDelay is the pause between requests; zero takes DefaultMinDelay.
	MinDelay time.Duration
	// DisablePacing turns the limiter off and ignores MinDelay.
	DisablePacing bool
	Timeout       time.Duration
	Client        *http.Client
	Logger        *slog.Logger
}

// Fetcher is safe for concurrent use. All requests share one limiter and one
// robots.txt cache.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	logger    *slog.Logger

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData // by scheme://host; nil entry allows all
}

// New creates a Fetcher. Zero config fields take the package defaults.
func New(cfg Config) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = DefaultMinDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	limit := rate.Every(cfg.MinDelay)
	if cfg.DisablePacing {
		limit = rate.Inf
	}

	return &Fetcher{
		client:    cfg.Client,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    cfg.Logger,
		robots:    make(map[string]*robotstxt.RobotsData),
	}
}

// UserAgent returns the agent string sent with every request.
func (f *Fetcher) UserAgent() string {
	return f.userAgent
}

// Allowed reports whether robots.txt permits fetching rawURL. When robots.txt
// cannot be retrieved the URL is allowed.
func (f *Fetcher) Allowed(ctx context.Context, rawURL string) (bool, error) {
	u, err := parseURL(rawURL)
	if err != nil {
		return false, err
	}

	robots := f.robotsFor(ctx, u)
	if robots == nil {
		return true, nil
	}
	return robots.TestAgent(u.RequestURI(), f.userAgent), nil
}

func (f *Fetcher) robotsFor(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host

	f.mu.Lock()
	robots, ok := f.robots[key]
	f.mu.Unlock()
	if ok {
		return robots
	}

	robots = f.loadRobots(ctx, key+"/robots.txt")

	f.mu.Lock()
	f.robots[key] = robots
	f.mu.Unlock()
	return robots
}

func (f *Fetcher) loadRobots(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	req, err := f.newRequest(ctx, http.MethodGet, robotsURL)
	if err != nil {
		return nil
	}
	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Debug("robots.txt unavailable", "url", robotsURL, "error", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil
	}
	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		f.logger.Debug("robots.txt unparsable", "url", robotsURL, "error", err)
		return nil
	}
	return robots
}

// Fetch retrieves a page and extracts its title, description and markdown.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	allowed, err := f.Allowed(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrRobotsDisallowed)
	}

	resp, err := f.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	page, err := ParsePage(body)
	if err != nil {
		return nil, err
	}
	page.URL = rawURL
	page.StatusCode = resp.StatusCode
	return page, nil
}

// URLStatus describes whether a URL can be reached.
type URLStatus struct {
	URL           string `json:"url"`
	Accessible    bool   `json:"accessible"`
	RobotsAllowed bool   `json:"robots_allowed"`
	StatusCode    int    `json:"status_code,omitempty"`
	Error         string `json:"error,omitempty"`
}

// CheckURL probes a URL with HEAD, falling back to GET when HEAD is not
// allowed. Any response counts as accessible; non-200 codes are reported in
// Error.
func (f *Fetcher) CheckURL(ctx context.Context, rawURL string) URLStatus {
	status := URLStatus{URL: rawURL}

	allowed, err := f.Allowed(ctx, rawURL)
	if err != nil {
		status.Error = "Request failed: " + err.Error()
		return status
	}
	status.RobotsAllowed = allowed
	if !allowed {
		status.Error = "Blocked by robots.txt"
		return status
	}

	resp, err := f.do(ctx, http.MethodHead, rawURL)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		_ = resp.Body.Close()
		resp, err = f.do(ctx, http.MethodGet, rawURL)
	}
	if err != nil {
		status.Error = "Request failed: " + err.Error()
		return status
	}
	_ = resp.Body.Close()

	status.Accessible = true
	status.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		status.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return status
}

// do waits for the limiter and sends one request.
func (f *Fetcher) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := f.newRequest(ctx, method, rawURL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		f.logger.Warn("request failed", "method", method, "url", rawURL, "error", err)
		return nil, err
	}
	f.logger.Debug("fetched", "method", method, "url", rawURL,
		"status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

func (f *Fetcher) newRequest(ctx context.Context, method, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", defaultAcceptLanguage)
	return req, nil
}

func parseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid URL %q: must be absolute http(s)", rawURL)
	}
	return u, nil
}
