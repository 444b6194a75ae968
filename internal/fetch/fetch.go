// Package fetch provides the HTTP plumbing shared by the API clients and
// HTML-to-text cleanup for markup returned by job boards.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "job-autoapply/1.0"

// maxErrorBody bounds how much of a failed response body is kept in errors.
const maxErrorBody = 500

// Result holds the raw response of a request.
type Result struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
}

// Error represents an error during an HTTP exchange.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	if e.Body != "" {
		return fmt.Sprintf("fetch error for %s: %s: %s", e.URL, e.Message, e.Body)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client executes requests with a shared http.Client and fixed headers.
type Client struct {
	http *http.Client
	opts *Options
}

// NewClient creates a Client. A nil opts uses DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Client{
		http: &http.Client{Timeout: opts.Timeout},
		opts: opts,
	}
}

// GetJSON performs a GET and decodes a JSON body into out.
func (c *Client) GetJSON(ctx context.Context, urlStr string, query url.Values, out any) error {
	if len(query) > 0 {
		urlStr += "?" + query.Encode()
	}
	res, err := c.Do(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return err
	}
	return decodeJSON(res, out)
}

// PostJSON sends payload as JSON and decodes the JSON response into out.
func (c *Client) PostJSON(ctx context.Context, urlStr string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Error{URL: urlStr, Message: "failed to encode request body", Cause: err}
	}
	res, err := c.Do(ctx, http.MethodPost, urlStr, body)
	if err != nil {
		return err
	}
	return decodeJSON(res, out)
}

// Do executes a request and returns an *Error for transport failures and
// for any non-2xx status. The result is returned alongside status errors.
func (c *Client) Do(ctx context.Context, method, urlStr string, body []byte) (*Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        bodyBytes,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &Error{
			URL:        urlStr,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
			Body:       truncate(string(bodyBytes), maxErrorBody),
		}
	}

	return result, nil
}

func decodeJSON(res *Result, out any) error {
	if out == nil || len(res.Body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(res.Body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &Error{URL: res.URL, Message: "failed to decode JSON response", StatusCode: res.StatusCode, Cause: err}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
