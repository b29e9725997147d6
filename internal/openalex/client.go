// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex is the primary catalog client. It issues parameterized
// GET queries against the OpenAlex API, attaches the mailto identity token,
// spaces throttled calls with a courtesy rate limiter, and surfaces non-2xx
// answers as *httputil.StatusError.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/venue-harvester/internal/httputil"
	"github.com/pdiddy/venue-harvester/pkg/types"
)

// DefaultBaseURL is the OpenAlex API root.
const DefaultBaseURL = "https://api.openalex.org"

const (
	defaultTimeout = 30 * time.Second
	defaultDelay   = 200 * time.Millisecond
	serviceName    = "OpenAlex"
)

// ErrNotFound is returned by lookups the catalog answers with HTTP 404.
var ErrNotFound = errors.New("not found in catalog")

// Client issues requests against the catalog.
type Client struct {
	HTTP *http.Client
	// BaseURL defaults to DefaultBaseURL; tests point it at an httptest server.
	BaseURL   string
	Mailto    string
	UserAgent string

	limiter *rate.Limiter
}

// NewClient builds a client from cfg. A zero Delay selects the default
// courtesy delay; a negative Delay disables throttling.
func NewClient(cfg types.CatalogConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay := cfg.Delay
	if delay == 0 {
		delay = defaultDelay
	}
	c := &Client{
		HTTP:      &http.Client{Timeout: timeout},
		BaseURL:   DefaultBaseURL,
		Mailto:    cfg.Mailto,
		UserAgent: cfg.UserAgent,
	}
	if delay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(delay), 1)
	}
	return c
}

// Meta is the catalog's paging block.
type Meta struct {
	Count      int     `json:"count"`
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	NextCursor *string `json:"next_cursor"`
}

// Get issues GET {BaseURL}{path}?params and decodes the JSON body into out.
// When throttle is set the call first waits on the courtesy limiter.
func (c *Client) Get(ctx context.Context, path string, params url.Values, throttle bool, out any) error {
	if throttle && c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if c.Mailto != "" {
		q.Set("mailto", c.Mailto)
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	reqURL := strings.TrimRight(base, "/") + path
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if ua := c.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckStatus(serviceName, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return nil
}

func (c *Client) userAgent() string {
	if c.UserAgent == "" {
		return ""
	}
	if c.Mailto != "" {
		return fmt.Sprintf("%s (mailto:%s)", c.UserAgent, c.Mailto)
	}
	return c.UserAgent
}
