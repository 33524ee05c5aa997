package kvk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cloudmazing/kvkapi/pkg/buildinfo"
	"github.com/cloudmazing/kvkapi/pkg/cache"
	kvkerrors "github.com/cloudmazing/kvkapi/pkg/errors"
	"github.com/cloudmazing/kvkapi/pkg/httputil"
	"github.com/cloudmazing/kvkapi/pkg/integrations"
	"github.com/cloudmazing/kvkapi/pkg/observability"
)

const (
	// DefaultBaseURL is the production KVK API root.
	DefaultBaseURL = "https://api.kvk.nl/api/"

	searchEndpoint       = "v2/zoeken"
	baseProfileEndpoint  = "v1/basisprofielen"
	primaryEstablishment = "hoofdvestiging"

	apiKeyHeader = "apikey"

	// Operation names reported to observability hooks.
	opSearch      = "search"
	opBaseProfile = "base_profile"

	defaultPage           = 1
	defaultResultsPerPage = 10
)

// Search parameter keys.
const (
	ParamPage             = "pagina"
	ParamResultsPerPage   = "resultatenPerPagina"
	ParamName             = "naam"
	ParamKvkNumber        = "kvkNummer"
	ParamRsin             = "rsin"
	ParamVestigingsnummer = "vestigingsnummer"
)

// Params are extra query parameters passed to the search endpoint. They
// override the page settings of the client.
type Params map[string]string

// Client queries the KVK registry API.
//
// Every request goes through the embedded [integrations.Client], so a URL is
// fetched at most once per Client and network requests start at least 200ms
// apart.
//
// A Client is not safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL        string
	page           int
	resultsPerPage int
	results        []Company
}

type options struct {
	baseURL        string
	apiKey         string
	rootCert       string
	headers        map[string]string
	httpClient     *http.Client
	cache          cache.Cache
	throttle       *httputil.Throttle
	logger         *log.Logger
	page           int
	resultsPerPage int
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL overrides the API root (default [DefaultBaseURL]).
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithAPIKey sends key in the apikey header of every request.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithRootCertificate trusts only the PEM root certificate at path.
func WithRootCertificate(path string) Option {
	return func(o *options) { o.rootCert = path }
}

// WithHeaders adds default headers to every request.
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			o.headers[k] = v
		}
	}
}

// WithHTTPClient replaces the HTTP client. It takes precedence over
// WithRootCertificate.
func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.httpClient = h }
}

// WithCache replaces the in-memory response cache.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithThrottle replaces the request pacing.
func WithThrottle(t *httputil.Throttle) Option {
	return func(o *options) { o.throttle = t }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPage sets the initial result page.
func WithPage(n int) Option {
	return func(o *options) { o.page = n }
}

// WithResultsPerPage sets the initial page size.
func WithResultsPerPage(n int) Option {
	return func(o *options) { o.resultsPerPage = n }
}

// NewClient creates a KVK client. It fails only if a root certificate was
// requested and cannot be loaded.
func NewClient(opts ...Option) (*Client, error) {
	o := options{
		baseURL:        DefaultBaseURL,
		page:           defaultPage,
		resultsPerPage: defaultResultsPerPage,
	}
	for _, opt := range opts {
		opt(&o)
	}

	headers := map[string]string{"User-Agent": buildinfo.UserAgent()}
	for k, v := range o.headers {
		headers[k] = v
	}
	if o.apiKey != "" {
		headers[apiKeyHeader] = o.apiKey
	}

	base := integrations.NewClient(o.cache, headers)
	switch {
	case o.httpClient != nil:
		base.SetHTTPClient(o.httpClient)
	case o.rootCert != "":
		h, err := integrations.LoadRootCertificate(o.rootCert)
		if err != nil {
			return nil, kvkerrors.Wrap(kvkerrors.ErrCodeConfig, err, "load root certificate %s", o.rootCert)
		}
		base.SetHTTPClient(h)
	}
	base.SetThrottle(o.throttle)
	base.SetLogger(o.logger)

	return &Client{
		Client:         base,
		baseURL:        strings.TrimSuffix(o.baseURL, "/") + "/",
		page:           o.page,
		resultsPerPage: o.resultsPerPage,
	}, nil
}

// New creates a client authenticated with apiKey, optionally trusting a
// custom root certificate via [WithRootCertificate].
func New(apiKey string, opts ...Option) (*Client, error) {
	return NewClient(append([]Option{WithAPIKey(apiKey)}, opts...)...)
}

// SetPage sets the result page used by subsequent searches.
func (c *Client) SetPage(n int) *Client {
	c.page = n
	return c
}

// SetResultsPerPage sets the page size used by subsequent searches.
func (c *Client) SetResultsPerPage(n int) *Client {
	c.resultsPerPage = n
	return c
}

// Page returns the configured result page.
func (c *Client) Page() int { return c.page }

// ResultsPerPage returns the configured page size.
func (c *Client) ResultsPerPage() int { return c.resultsPerPage }

// Results returns the companies of the last successful search.
func (c *Client) Results() []Company {
	out := make([]Company, len(c.results))
	copy(out, c.results)
	return out
}

// Search looks up companies by name. An empty query searches by params
// alone. For each search result, every relation link is fetched and the
// linked objects are merged into one record, which must carry a kvkNummer.
//
// Any failure aborts the whole search; the returned error is an
// [*errors.Error] with code [errors.ErrCodeRegistryQuery].
func (c *Client) Search(ctx context.Context, query string, params Params) ([]Company, error) {
	c.results = nil

	hooks := observability.Registry()
	hooks.OnQueryStart(ctx, opSearch)
	start := time.Now()
	companies, err := c.search(ctx, query, params)
	hooks.OnQueryComplete(ctx, opSearch, len(companies), time.Since(start), err)
	if err != nil {
		return nil, kvkerrors.Wrap(kvkerrors.ErrCodeRegistryQuery, err, "failed to search companies")
	}
	c.results = companies
	return companies, nil
}

func (c *Client) search(ctx context.Context, query string, params Params) ([]Company, error) {
	body, err := c.Fetch(ctx, c.searchURL(query, params))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from KVK API: %w", err)
	}
	data, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}

	results := parseResults(data)
	c.Logger().Debug("search results", "query", query, "count", len(results))

	companies := make([]Company, 0, len(results))
	for _, res := range results {
		merged, err := c.relatedRecord(ctx, res)
		if err != nil {
			return nil, err
		}
		if err := validateRecord(merged); err != nil {
			return nil, err
		}
		companies = append(companies, companyFromSearch(merged))
	}
	return companies, nil
}

func (c *Client) searchURL(query string, params Params) string {
	q := url.Values{}
	q.Set(ParamPage, strconv.Itoa(c.page))
	q.Set(ParamResultsPerPage, strconv.Itoa(c.resultsPerPage))
	for k, v := range params {
		q.Set(k, v)
	}
	if query != "" {
		q.Set(ParamName, query)
	}
	return c.baseURL + searchEndpoint + "?" + q.Encode()
}

// SearchByKvkNumber searches by KVK number.
func (c *Client) SearchByKvkNumber(ctx context.Context, kvkNumber string, params Params) ([]Company, error) {
	return c.Search(ctx, "", withParam(ParamKvkNumber, kvkNumber, params))
}

// SearchByRsin searches by RSIN (legal entity tax number).
func (c *Client) SearchByRsin(ctx context.Context, rsin string, params Params) ([]Company, error) {
	return c.Search(ctx, "", withParam(ParamRsin, rsin, params))
}

// SearchByVestigingsnummer searches by establishment number.
func (c *Client) SearchByVestigingsnummer(ctx context.Context, vestigingsnummer string, params Params) ([]Company, error) {
	return c.Search(ctx, "", withParam(ParamVestigingsnummer, vestigingsnummer, params))
}

// withParam returns {key: value} merged with params; params win on collision.
func withParam(key, value string, params Params) Params {
	out := make(Params, len(params)+1)
	out[key] = value
	for k, v := range params {
		out[k] = v
	}
	return out
}

// GetBaseProfile fetches the base profile of the main establishment of the
// company registered under kvkNumber.
//
// The trade name is the first present of eersteHandelsnaam, handelsnaam and
// naam. Failures are returned as [*errors.Error] with code
// [errors.ErrCodeRegistryQuery].
func (c *Client) GetBaseProfile(ctx context.Context, kvkNumber string) (*Company, error) {
	hooks := observability.Registry()
	hooks.OnQueryStart(ctx, opBaseProfile)
	start := time.Now()
	company, err := c.baseProfile(ctx, kvkNumber)
	found := 0
	if company != nil {
		found = 1
	}
	hooks.OnQueryComplete(ctx, opBaseProfile, found, time.Since(start), err)
	if err != nil {
		return nil, kvkerrors.Wrap(kvkerrors.ErrCodeRegistryQuery, err, "failed to fetch base profile")
	}
	return company, nil
}

func (c *Client) baseProfile(ctx context.Context, kvkNumber string) (*Company, error) {
	body, err := c.Fetch(ctx, c.profileURL(kvkNumber))
	if err != nil {
		return nil, err
	}
	data, err := decodeRecord(body)
	if err != nil {
		return nil, err
	}
	if err := validateRecord(data); err != nil {
		return nil, err
	}
	company := companyFromProfile(data)
	return &company, nil
}

func (c *Client) profileURL(kvkNumber string) string {
	return c.baseURL + baseProfileEndpoint + "/" + url.PathEscape(kvkNumber) + "/" + primaryEstablishment
}
