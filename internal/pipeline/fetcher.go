package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/pressparse/internal/cache"
	"github.com/ppiankov/pressparse/internal/extract/adapters"
	"github.com/ppiankov/pressparse/internal/model"
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// RateLimiter throttles requests per host
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string) error
	SetCrawlDelay(rawURL string, delay time.Duration)
}

const maxFetchAttempts = 3

// fetchSleepFunc is replaced in tests to skip retry backoff
var fetchSleepFunc = time.Sleep

// Fetcher downloads release pages and converts them to text
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker // nil when robots.txt is not consulted
	limiter    RateLimiter    // nil when unthrottled
	cache      cache.Cache
	adapters   *adapters.Registry
	logger     *slog.Logger
}

// NewFetcher creates a new Fetcher with the given configuration
func NewFetcher(cfg model.HTTPConfig, c cache.Cache, logger *slog.Logger) *Fetcher {
	if c == nil {
		c = cache.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFunc(cfg)

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	f := &Fetcher{
		httpClient: client,
		userAgent:  cfg.UserAgent,
		maxBytes:   maxBytes,
		cache:      c,
		adapters:   adapters.NewRegistry(),
		logger:     logger,
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(client, cfg.UserAgent)
	}
	return f
}

// SetLimiter throttles subsequent fetches
func (f *Fetcher) SetLimiter(l RateLimiter) {
	f.limiter = l
}

// FetchResult contains the extracted page and HTTP metadata
type FetchResult struct {
	Page     adapters.Page   `json:"page"`
	Meta     model.FetchMeta `json:"meta"`
	Subject  string          `json:"subject"`
	FinalURL string          `json:"final_url"`
}

// Fetch retrieves a release page, honouring the cache, robots.txt and the rate limiter
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.Key(cache.KindPage, rawURL)
	var cached FetchResult
	if cache.GetJSON(f.cache, key, &cached) {
		cached.Meta.FromCache = true
		f.logger.Debug("cache hit", "url", rawURL)
		return &cached, nil
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%w: %s", ErrDisallowed, rawURL)
		}
		if delay > 0 && f.limiter != nil {
			f.logger.Debug("robots.txt crawl delay", "url", rawURL, "delay", delay)
			f.limiter.SetCrawlDelay(rawURL, delay)
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	body, meta, finalURL, err := f.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	page, err := f.toPage(body, finalURL, meta.ContentType)
	if err != nil {
		return nil, fmt.Errorf("extract page: %w", err)
	}
	meta.PublishedDate = page.PublishedDate

	subject := page.Title
	if subject == "" {
		subject = extractSubject(finalURL)
	}

	result := &FetchResult{
		Page:     page,
		Meta:     meta,
		Subject:  subject,
		FinalURL: finalURL,
	}
	if err := cache.SetJSON(f.cache, key, result, 0); err != nil {
		f.logger.Warn("cache write failed", "url", rawURL, "error", err)
	}
	return result, nil
}

// toPage runs HTML through the site adapters; plain text passes through unchanged
func (f *Fetcher) toPage(body, finalURL, contentType string) (adapters.Page, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "text/plain" {
		return adapters.Page{Text: body, Adapter: "plain"}, nil
	}
	return f.adapters.Extract(body, finalURL, contentType)
}

// statusError is a non-2xx response
type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

// FetchWithRetry performs the GET, retrying network errors, 429 and 5xx with backoff
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (string, model.FetchMeta, string, error) {
	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(500*(1<<(attempt-1))) * time.Millisecond
			f.logger.Debug("retrying fetch", "url", rawURL, "attempt", attempt+1, "backoff", backoff)
			fetchSleepFunc(backoff)
		}

		body, meta, finalURL, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, meta, finalURL, nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	return "", model.FetchMeta{}, "", fmt.Errorf("fetch %s: %w", rawURL, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (string, model.FetchMeta, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", model.FetchMeta{}, "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", model.FetchMeta{}, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	meta := model.FetchMeta{
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		LastModified: resp.Header.Get("Last-Modified"),
		Headers:      make(map[string]string),
	}
	for _, key := range []string{"Content-Length", "Server", "Cache-Control", "ETag"} {
		if val := resp.Header.Get(key); val != "" {
			meta.Headers[key] = val
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", meta, "", &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", meta, "", fmt.Errorf("read body: %w", err)
	}
	return string(body), meta, resp.Request.URL.String(), nil
}

// extractSubject extracts a human-readable subject from the URL
func extractSubject(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// De-slugify and drop the extension
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	last = strings.ReplaceAll(last, "_", " ")
	last = strings.ReplaceAll(last, "-", " ")
	return last
}
