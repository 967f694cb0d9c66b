package feedly

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/richardwooding/feedly-mcp/model"
)

const (
	// DefaultBaseURL is the Feedly Cloud API root.
	DefaultBaseURL = "https://cloud.feedly.com/v3"

	defaultTimeout = 30 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
)

// Config holds the configuration for creating a new Client.
type Config struct {
	AccessToken string
	BaseURL     string
	Timeout     time.Duration
	HTTPClient  *http.Client

	RequestsPerSecond float64
	BurstCapacity     int

	CircuitBreakerEnabled          *bool
	CircuitBreakerMaxRequests      uint32
	CircuitBreakerInterval         time.Duration
	CircuitBreakerTimeout          time.Duration
	CircuitBreakerFailureThreshold uint32
}

// Client issues authenticated requests against the Feedly Cloud API. It holds
// no state beyond credentials and connection settings; every call is a single
// request/response exchange.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	logger      *model.DebugLogger
}

// RateLimitedTransport wraps an http.RoundTripper with rate limiting
type RateLimitedTransport struct {
	transport   http.RoundTripper
	rateLimiter *rate.Limiter
}

// RoundTrip implements the http.RoundTripper interface with rate limiting
func (r *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.rateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return r.transport.RoundTrip(req)
}

// NewRateLimitedHTTPClient creates an HTTP client with rate limiting
func NewRateLimitedHTTPClient(requestsPerSecond float64, burstCapacity int, timeout time.Duration) *http.Client {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burstCapacity)

	return &http.Client{
		Transport: &RateLimitedTransport{
			transport:   http.DefaultTransport,
			rateLimiter: limiter,
		},
		Timeout: timeout,
	}
}

// NewClient creates a Client from the given configuration. The access token
// is required; everything else has defaults.
func NewClient(config Config) (*Client, error) {
	if config.AccessToken == "" {
		return nil, model.NewFeedlyError(model.ErrorTypeConfiguration, "FEEDLY_ACCESS_TOKEN environment variable not set").
			WithOperation("create_client").
			WithComponent("feedly_client")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = 2.0
	}
	if config.BurstCapacity <= 0 {
		config.BurstCapacity = 5
	}
	if config.CircuitBreakerMaxRequests == 0 {
		config.CircuitBreakerMaxRequests = 3
	}
	if config.CircuitBreakerInterval == 0 {
		config.CircuitBreakerInterval = 60 * time.Second
	}
	if config.CircuitBreakerTimeout == 0 {
		config.CircuitBreakerTimeout = 30 * time.Second
	}
	if config.CircuitBreakerFailureThreshold == 0 {
		config.CircuitBreakerFailureThreshold = 3
	}

	if config.HTTPClient == nil {
		config.HTTPClient = NewRateLimitedHTTPClient(config.RequestsPerSecond, config.BurstCapacity, config.Timeout)
	}

	// Circuit breaker is enabled by default unless explicitly disabled. Only
	// outages count as failures: upstream verdicts such as 401 or 429 must
	// keep surfacing verbatim instead of tripping the breaker.
	var breaker *gobreaker.CircuitBreaker
	if config.CircuitBreakerEnabled == nil || *config.CircuitBreakerEnabled {
		threshold := config.CircuitBreakerFailureThreshold
		breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "feedly-api",
			MaxRequests: config.CircuitBreakerMaxRequests,
			Interval:    config.CircuitBreakerInterval,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				var fe *model.FeedlyError
				if errors.As(err, &fe) {
					switch fe.ErrorType {
					case model.ErrorTypeTimeout, model.ErrorTypeNetwork:
						return false
					case model.ErrorTypeHTTP:
						return fe.HTTPStatus < 500
					default:
						return true
					}
				}
				return false
			},
		})
	}

	return &Client{
		accessToken: config.AccessToken,
		baseURL:     config.BaseURL,
		httpClient:  config.HTTPClient,
		breaker:     breaker,
		logger:      model.GetLogger(),
	}, nil
}

// execute issues one request through the circuit breaker, when enabled.
func (c *Client) execute(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if c.breaker == nil {
		return c.do(ctx, method, path, query, body)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.do(ctx, method, path, query, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, model.NewFeedlyErrorWithCause(model.ErrorTypeCircuitBreaker,
				"Feedly API temporarily unavailable. Try again shortly.", err).
				WithOperation("api_request").
				WithComponent("feedly_client")
		}
		return nil, err
	}
	raw, _ := result.(json.RawMessage)
	return raw, nil
}

// do performs a single authenticated HTTP exchange and maps the outcome.
// Special-cased statuses (401, 403, 404, 429) are handled before the generic
// non-2xx failure; 204 yields a nil payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, model.NewFeedlyErrorWithCause(model.ErrorTypeInternal, "failed to encode request body", err).
				WithOperation("api_request").
				WithComponent("feedly_client")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, model.NewFeedlyErrorWithCause(model.ErrorTypeInternal, "failed to build request", err).
			WithOperation("api_request").
			WithComponent("feedly_client")
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("issuing API request", "feedly_client", method+" "+path, nil)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fe := model.CreateRequestError(err)
		c.logger.LogError(fe)
		return nil, fe
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.CreateRequestError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fe := model.CreateStatusError(resp.StatusCode, string(data), resp.Header)
		c.logger.LogError(fe)
		return nil, fe
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// decode unmarshals a response payload into out.
func decode[T any](raw json.RawMessage, out *T, what string) error {
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return model.NewFeedlyErrorWithCause(model.ErrorTypeInternal, "failed to decode "+what+" response", err).
			WithOperation("decode_response").
			WithComponent("feedly_client")
	}
	return nil
}

// Profile returns the authenticated user's profile, including the user ID
// needed to construct category and tag stream IDs.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	raw, err := c.execute(ctx, http.MethodGet, "/profile", nil, nil)
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := decode(raw, &profile, "profile"); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Subscriptions lists all feed subscriptions.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	raw, err := c.execute(ctx, http.MethodGet, "/subscriptions", nil, nil)
	if err != nil {
		return nil, err
	}
	var subs []Subscription
	if err := decode(raw, &subs, "subscriptions"); err != nil {
		return nil, err
	}
	return subs, nil
}

// Categories lists all categories/folders.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	raw, err := c.execute(ctx, http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	var categories []Category
	if err := decode(raw, &categories, "categories"); err != nil {
		return nil, err
	}
	return categories, nil
}

// Tags lists all tags, including the reserved saved-articles tag.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	raw, err := c.execute(ctx, http.MethodGet, "/tags", nil, nil)
	if err != nil {
		return nil, err
	}
	var tags []Tag
	if err := decode(raw, &tags, "tags"); err != nil {
		return nil, err
	}
	return tags, nil
}

// UnreadCounts returns unread article counts per stream.
func (c *Client) UnreadCounts(ctx context.Context) ([]UnreadCount, error) {
	raw, err := c.execute(ctx, http.MethodGet, "/markers/counts", nil, nil)
	if err != nil {
		return nil, err
	}
	var resp unreadCountsResponse
	if err := decode(raw, &resp, "unread counts"); err != nil {
		return nil, err
	}
	return resp.Unreadcounts, nil
}

// StreamContents fetches one page of articles from a stream (feed, category,
// or tag). Pagination is caller-driven via the continuation token.
func (c *Client) StreamContents(ctx context.Context, opts StreamOptions) (*StreamPage, error) {
	count := opts.Count
	if count == 0 {
		count = 20
	}
	ranked := opts.Ranked
	if ranked == "" {
		ranked = "newest"
	}

	query := url.Values{}
	query.Set("streamId", opts.StreamID)
	query.Set("count", strconv.Itoa(count))
	query.Set("ranked", ranked)
	if opts.UnreadOnly {
		query.Set("unreadOnly", "true")
	}
	if opts.Continuation != "" {
		query.Set("continuation", opts.Continuation)
	}

	raw, err := c.execute(ctx, http.MethodGet, "/streams/contents", query, nil)
	if err != nil {
		return nil, err
	}
	var page StreamPage
	if err := decode(raw, &page, "stream contents"); err != nil {
		return nil, err
	}
	return &page, nil
}

// Entry fetches a single article by ID. The API returns an array, empty when
// the entry does not exist.
func (c *Client) Entry(ctx context.Context, entryID string) ([]Entry, error) {
	raw, err := c.execute(ctx, http.MethodGet, "/entries/"+url.PathEscape(entryID), nil, nil)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := decode(raw, &entries, "entry"); err != nil {
		return nil, err
	}
	return entries, nil
}

// Entries fetches multiple articles by ID via the batch endpoint.
func (c *Client) Entries(ctx context.Context, entryIDs []string) ([]Entry, error) {
	raw, err := c.execute(ctx, http.MethodPost, "/entries/.mget", nil, entryIDs)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := decode(raw, &entries, "entries"); err != nil {
		return nil, err
	}
	return entries, nil
}

// markerRequest is the body of the unified markers endpoint.
type markerRequest struct {
	Action      string   `json:"action"`
	Type        string   `json:"type"`
	EntryIDs    []string `json:"entryIds,omitempty"`
	FeedIDs     []string `json:"feedIds,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	AsOf        *int64   `json:"asOf,omitempty"`
}

// MarkEntriesAsRead marks the given entries as read.
func (c *Client) MarkEntriesAsRead(ctx context.Context, entryIDs []string) error {
	_, err := c.execute(ctx, http.MethodPost, "/markers", nil, markerRequest{
		Action:   "markAsRead",
		Type:     "entries",
		EntryIDs: entryIDs,
	})
	return err
}

// MarkFeedAsRead marks an entire feed as read, optionally bounded to entries
// older than the asOf cutoff (epoch milliseconds).
func (c *Client) MarkFeedAsRead(ctx context.Context, feedID string, asOf *int64) error {
	_, err := c.execute(ctx, http.MethodPost, "/markers", nil, markerRequest{
		Action:  "markAsRead",
		Type:    "feeds",
		FeedIDs: []string{feedID},
		AsOf:    asOf,
	})
	return err
}

// MarkCategoryAsRead marks an entire category as read, optionally bounded to
// entries older than the asOf cutoff (epoch milliseconds).
func (c *Client) MarkCategoryAsRead(ctx context.Context, categoryID string, asOf *int64) error {
	_, err := c.execute(ctx, http.MethodPost, "/markers", nil, markerRequest{
		Action:      "markAsRead",
		Type:        "categories",
		CategoryIDs: []string{categoryID},
		AsOf:        asOf,
	})
	return err
}

// KeepEntriesUnread undoes mark-as-read for the given entries.
func (c *Client) KeepEntriesUnread(ctx context.Context, entryIDs []string) error {
	_, err := c.execute(ctx, http.MethodPost, "/markers", nil, markerRequest{
		Action:   "keepUnread",
		Type:     "entries",
		EntryIDs: entryIDs,
	})
	return err
}
