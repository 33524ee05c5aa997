package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cloudmazing/kvkapi/pkg/cache"
	"github.com/cloudmazing/kvkapi/pkg/httputil"
	"github.com/cloudmazing/kvkapi/pkg/observability"
)

// Client provides shared HTTP functionality for registry API clients.
// It handles response caching, request pacing and common request headers.
//
// Every outbound read goes through [Client.Fetch]: a URL is requested over
// the network at most once per Client, and network requests start at least
// the throttle interval apart.
//
// A Client is not safe for concurrent use. The throttle and the sequencing of
// cache lookups and stores assume a single caller at a time.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	throttle *httputil.Throttle
	headers  map[string]string
	logger   *log.Logger
}

// NewClient creates a Client with the given cache and default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed, and nil for
// backend to use a fresh in-memory cache.
func NewClient(backend cache.Cache, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewMemoryCache()
	}
	return &Client{
		http:     NewHTTPClient(),
		cache:    backend,
		throttle: httputil.NewThrottle(httputil.DefaultInterval),
		headers:  headers,
		logger:   log.New(io.Discard),
	}
}

// SetHTTPClient replaces the underlying HTTP client (TLS, proxies, timeouts).
func (c *Client) SetHTTPClient(h *http.Client) {
	if h != nil {
		c.http = h
	}
}

// SetThrottle replaces the request pacing.
func (c *Client) SetThrottle(t *httputil.Throttle) {
	if t != nil {
		c.throttle = t
	}
}

// SetLogger sets the logger used for debug output of cache hits and fetches.
func (c *Client) SetLogger(l *log.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetHeader sets a default header sent with every request.
func (c *Client) SetHeader(key, value string) {
	if c.headers == nil {
		c.headers = make(map[string]string)
	}
	c.headers[key] = value
}

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// Cache returns the response cache.
func (c *Client) Cache() cache.Cache { return c.cache }

// Fetch returns the body stored for url, or performs a throttled GET and
// stores the body under the exact url before returning it.
//
// Returns:
//   - [ErrNotFound] for 404 responses
//   - [ErrNetwork] for transport failures and other non-200 responses
//   - ctx.Err() if the context ends while waiting for the throttle
//
// A failing cache lookup is logged and treated as a miss.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, ok, err := c.cache.Get(ctx, url)
	if err != nil {
		c.logger.Warn("cache lookup failed", "url", url, "err", err)
	} else if ok {
		c.logger.Debug("cache hit", "url", url)
		observability.Cache().OnCacheHit(ctx, url)
		return body, nil
	}
	observability.Cache().OnCacheMiss(ctx, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	waitStart := time.Now()
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}
	observability.HTTP().OnThrottle(ctx, req.URL.Host, time.Since(waitStart))

	start := time.Now()
	body, err = c.doRequest(req)
	if err != nil {
		c.logger.Debug("fetch failed", "url", url, "err", err)
		return nil, err
	}
	c.logger.Debug("fetched", "url", url, "bytes", len(body), "elapsed", time.Since(start).Round(time.Millisecond))

	if err := c.cache.Set(ctx, url, body); err != nil {
		c.logger.Warn("cache store failed", "url", url, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, url, len(body))
	}
	return body, nil
}

func (c *Client) doRequest(req *http.Request) ([]byte, error) {
	ctx := req.Context()
	host, path := req.URL.Host, req.URL.Path
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
