// Package off is an Open Food Facts product lookup client
package off

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"foodscan/internal/core/lookup"
	perr "foodscan/internal/platform/errors"
	"foodscan/internal/platform/logger"
)

const (
	baseURLDefault = "https://world.openfoodfacts.org"
	defaultTimeout = 10 * time.Second
	defaultUA      = "foodscan"

	// responses are small product documents; anything bigger is garbage
	maxBodyBytes = 4 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client fetches product records from the Open Food Facts v0 read API.
// It implements lookup.Fetcher
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("off"),
	}
}

// FetchProduct looks up a barcode. A missing product is reported with a
// not-found error code; transport failures, non-2xx statuses, and bodies
// that fail to parse are reported as upstream errors
func (c *Client) FetchProduct(ctx context.Context, code string) (*lookup.ProductRecord, error) {
	u := fmt.Sprintf("%s/api/v0/product/%s.json", c.opts.BaseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Upstreamf("off new request: %v", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "off request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("barcode", code).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("off http response")

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 2048))
		return nil, perr.Upstreamf("off unexpected status %d", resp.StatusCode)
	}

	var doc productDoc
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "off decode response")
	}

	if doc.Status != 1 {
		return nil, perr.NotFoundf("product %s not known upstream", code)
	}
	return doc.record(code), nil
}
