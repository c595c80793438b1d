// Package fetch retrieves remote pages for auditing.
//
// The client layers resty over a retryablehttp transport and verifies that
// responses are actually HTML before handing them to the engine.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// MaxBodySize bounds fetched pages at 10MB, matching the parser's guard.
const MaxBodySize = 10 * 1024 * 1024

// ErrNotHTML is returned when the response body is not an HTML document.
var ErrNotHTML = errors.New("response is not an HTML document")

// Config tunes the fetch client.
type Config struct {
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// DefaultConfig returns production-ready fetch configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		UserAgent:  "pagelens/1.0",
	}
}

// Client fetches pages with retries and content-type verification.
type Client struct {
	resty *resty.Client
}

// New creates a fetch client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 15 * time.Second
	retryClient.Logger = nil // Disable logging

	rc := resty.NewWithClient(retryClient.StandardClient())
	rc.SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml")

	return &Client{resty: rc}
}

// Page fetches a URL and returns its markup and the final URL after
// redirects. Non-HTML responses are rejected.
func (c *Client) Page(ctx context.Context, rawURL string) (markup, finalURL string, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", "", fmt.Errorf("unsupported url scheme %q", parsed.Scheme)
	}

	resp, err := c.resty.R().SetContext(ctx).Get(parsed.String())
	if err != nil {
		return "", "", fmt.Errorf("fetch %s: %w", parsed.Host, err)
	}
	if resp.StatusCode() >= 400 {
		return "", "", fmt.Errorf("fetch %s: status %d", parsed.Host, resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > MaxBodySize {
		return "", "", fmt.Errorf("fetch %s: body exceeds %d bytes", parsed.Host, MaxBodySize)
	}
	if !looksLikeHTML(resp.Header().Get("Content-Type"), body) {
		return "", "", ErrNotHTML
	}

	finalURL = parsed.String()
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		finalURL = resp.RawResponse.Request.URL.String()
	}
	return string(body), finalURL, nil
}

// looksLikeHTML accepts a declared HTML content type or a sniffed one; the
// sniff catches servers that mislabel their responses.
func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "text/html") || strings.Contains(contentType, "application/xhtml") {
		return true
	}
	mt := mimetype.Detect(body)
	return mt.Is("text/html")
}
