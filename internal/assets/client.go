// Package assets provides a client for the upstream cryptocurrency quote API.
// It exposes the asset directory, per-asset metadata, and batched price
// quotes with bounded retry on rate limiting and transient failures.
package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAssetNotFound is returned when the upstream does not know the asset id.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrRateLimited classifies an upstream 429 response.
	ErrRateLimited = errors.New("rate limited by price API")
	// ErrUnavailable is returned when the retry budget is exhausted or the
	// upstream cannot be reached.
	ErrUnavailable = errors.New("price API unavailable")
)

// errTransient classifies network-level and upstream 5xx failures; like
// rate limiting, they are retried with the same fixed delay.
var errTransient = errors.New("transient price API failure")

const (
	defaultMaxAttempts   = 3
	defaultRetryDelay    = 60 * time.Second
	defaultHTTPTimeout   = 15 * time.Second
	quoteConvertCurrency = "USD"
)

// Client talks to a CoinMarketCap-compatible quote API.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxAttempts caps the total number of attempts for a batched price fetch.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between price fetch attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// NewClient creates a quote API client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Map retrieves the upstream asset directory.
func (c *Client) Map(ctx context.Context) ([]AssetMeta, error) {
	var body struct {
		Data []AssetMeta `json:"data"`
	}
	if err := c.get(ctx, "/v1/cryptocurrency/map", nil, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// GetMeta retrieves metadata for a single asset id.
// Returns ErrAssetNotFound when the upstream does not know the id.
func (c *Client) GetMeta(ctx context.Context, assetID string) (*AssetMeta, error) {
	var body struct {
		Data map[string]AssetMeta `json:"data"`
	}
	params := url.Values{"id": {assetID}}
	if err := c.get(ctx, "/v2/cryptocurrency/info", params, &body); err != nil {
		return nil, err
	}
	meta, ok := body.Data[assetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
	}
	return &meta, nil
}

// GetQuote retrieves the current quote for a single asset. Unlike
// FetchPrices this is a single attempt; the intake API maps failures
// straight to an upstream-outage response rather than blocking on retries.
func (c *Client) GetQuote(ctx context.Context, assetID string) (*Quote, error) {
	quotes, err := c.quotesLatest(ctx, []string{assetID})
	if err != nil {
		return nil, err
	}
	quote, ok := quotes[assetID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
	}
	return &quote, nil
}

// FetchPrices retrieves current quotes for the whole id set in one upstream
// request. On rate limiting or a transient network failure it sleeps a fixed
// delay and retries as an explicit bounded loop; once the attempt budget is
// exhausted it fails with ErrUnavailable and the caller must treat the whole
// batch as unevaluated.
func (c *Client) FetchPrices(ctx context.Context, assetIDs []string) (map[string]Quote, error) {
	if len(assetIDs) == 0 {
		return map[string]Quote{}, nil
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		quotes, err := c.quotesLatest(ctx, assetIDs)
		if err == nil {
			return quotes, nil
		}
		lastErr = err

		if !errors.Is(err, ErrRateLimited) && !errors.Is(err, errTransient) {
			return nil, err
		}
		if attempt == c.maxAttempts {
			break
		}

		slog.Warn("Price fetch failed, retrying after fixed delay",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"delay", c.retryDelay,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
	}

	return nil, fmt.Errorf("%w: retries exhausted: %v", ErrUnavailable, lastErr)
}

// quotesLatest performs one batched quote request.
func (c *Client) quotesLatest(ctx context.Context, assetIDs []string) (map[string]Quote, error) {
	params := url.Values{
		"id":      {strings.Join(assetIDs, ",")},
		"convert": {quoteConvertCurrency},
	}

	var body struct {
		Data map[string]struct {
			ID          int    `json:"id"`
			Name        string `json:"name"`
			Symbol      string `json:"symbol"`
			LastUpdated string `json:"last_updated"`
			Quote       map[string]struct {
				Price decimal.Decimal `json:"price"`
			} `json:"quote"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/v2/cryptocurrency/quotes/latest", params, &body); err != nil {
		return nil, err
	}

	quotes := make(map[string]Quote, len(body.Data))
	for id, entry := range body.Data {
		converted, ok := entry.Quote[quoteConvertCurrency]
		if !ok {
			continue
		}
		quotes[id] = Quote{
			AssetID:     id,
			Name:        entry.Name,
			Symbol:      entry.Symbol,
			Price:       converted.Price,
			LastUpdated: entry.LastUpdated,
		}
	}
	return quotes, nil
}

// get performs one GET request and classifies the failure modes.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrRateLimited, path)
	case resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: upstream returned %s", errTransient, strconv.Itoa(resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("price API returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode price API response: %w", err)
	}
	return nil
}
