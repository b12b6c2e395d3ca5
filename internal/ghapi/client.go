// Package ghapi provides GitHub API client functionality.
//
// This file (client.go) implements the rate-limited HTTP client used for
// every GitHub REST call. It retries transient failures with exponential
// backoff and blocks when the response headers show the API quota is
// exhausted, resuming once the quota window resets.
package ghapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/woodsj1206/GitHub-Repository-Statistics/internal/state"
)

// Default retry configuration.
const (
	DefaultMaxRetries    = 3
	DefaultBaseDelay     = 2 * time.Second
	DefaultBackoffFactor = 2
)

const requestTimeout = 30 * time.Second

// Client issues authenticated GET requests against the GitHub REST API.
//
// A single Client is shared by all repository workers. Each call reads the
// rate-limit headers of its own response, so concurrent callers that hit
// an exhausted quota each compute the same wait from fresh headers.
type Client struct {
	// APIBase is the API root. Overridden in tests to point at a fake server.
	APIBase string

	MaxRetries    int
	BaseDelay     time.Duration
	BackoffFactor int

	token      string
	httpClient *http.Client

	// Seams for tests; production uses time.Now and a context-aware sleep.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client authenticated with the given personal access
// token.
func NewClient(token string) *Client {
	return &Client{
		APIBase:       BaseURL,
		MaxRetries:    DefaultMaxRetries,
		BaseDelay:     DefaultBaseDelay,
		BackoffFactor: DefaultBackoffFactor,
		token:         token,
		httpClient:    &http.Client{Timeout: requestTimeout},
		now:           time.Now,
		sleep:         sleepContext,
	}
}

// GetJSON fetches the given URL and returns the response body of the first
// 200 response. It attempts the request up to 1+MaxRetries times, sleeping
// BaseDelay * BackoffFactor^(attempt+1) between attempts. All sleeps abort
// early when ctx is cancelled. When every attempt fails the error reports
// the last status; callers degrade to empty data rather than aborting the
// run.
func (c *Client) GetJSON(ctx context.Context, url string) ([]byte, error) {
	body, _, err := c.getJSONWithLink(ctx, url)
	return body, err
}

// getJSONWithLink is GetJSON but also returns the Link header of the
// successful response, which the pagination walker needs to find the next
// page.
func (c *Client) getJSONWithLink(ctx context.Context, url string) ([]byte, string, error) {
	totalAttempts := 1 + c.MaxRetries
	lastStatus := 0

	for attempt := 0; attempt < totalAttempts; attempt++ {
		body, status, link, err := c.doRequest(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			pterm.Warning.Printf("Attempt %d: GET %s failed: %v\n", attempt+1, url, err)
		} else {
			pterm.Debug.Printf("Attempt %d: GET %s -> %d\n", attempt+1, url, status)
			lastStatus = status
			if status == http.StatusOK {
				return body, link, nil
			}
		}

		if attempt < c.MaxRetries {
			backoff := c.backoffDelay(attempt)
			pterm.Debug.Printf("Retrying %s in %v...\n", url, backoff)
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, "", err
			}
		}
	}

	return nil, "", fmt.Errorf("GET %s: no successful response after %d attempts (last status %d)",
		url, totalAttempts, lastStatus)
}

// doRequest performs one attempt: send the request, record API usage,
// honor the rate limit, and return the body, status, and Link header.
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, "", err
	}
	defer resp.Body.Close()

	state.Get().IncrementAPICalls()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, "", fmt.Errorf("reading response body: %w", err)
	}

	// The rate-limit wait happens even for successful responses, before
	// the body is handed back, so the next caller starts with quota.
	if err := c.handleRateLimit(ctx, resp.Header); err != nil {
		return nil, resp.StatusCode, "", err
	}

	return body, resp.StatusCode, resp.Header.Get("Link"), nil
}

// handleRateLimit inspects the rate-limit headers of a response and blocks
// until the quota window resets when no requests remain. Missing or
// unparsable headers are treated as "no limit information" and skipped.
func (c *Client) handleRateLimit(ctx context.Context, headers http.Header) error {
	remaining, remainingOK := headerInt(headers, "X-RateLimit-Remaining")
	reset, resetOK := headerInt(headers, "X-RateLimit-Reset")
	if !remainingOK {
		return nil
	}

	resetTime := time.Unix(reset, 0)
	if limit, ok := headerInt(headers, "X-RateLimit-Limit"); ok {
		state.Get().UpdateRateLimit(limit, remaining, resetTime)
	}

	if remaining > 0 || !resetOK {
		return nil
	}

	wait := resetTime.Sub(c.now()) + time.Second
	if wait <= 0 {
		return nil
	}

	pterm.Warning.Printf("Rate limit exceeded: resuming at %s after waiting %v...\n",
		resetTime.UTC().Format("01/02/2006 15:04:05 MST"), wait.Round(time.Second))
	return c.sleep(ctx, wait)
}

// backoffDelay computes BaseDelay * BackoffFactor^(attempt+1).
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.BaseDelay
	for i := 0; i <= attempt; i++ {
		delay *= time.Duration(c.BackoffFactor)
	}
	return delay
}

// headerInt parses an integer header value.
func headerInt(headers http.Header, name string) (int64, bool) {
	raw := headers.Get(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// sleepContext sleeps for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
