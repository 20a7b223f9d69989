// Package session provides the HTTP transport shared by every news source
// adapter: a browser-like identity and transparent retry with exponential
// backoff for transient failures.
package session

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/cenkalti/backoff/v5"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is sent with every request. Several of the news sites
// refuse requests that do not look like a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/117.0.0.0 Safari/537.36"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 10 << 20

// retryStatuses are the status codes treated as transient.
var retryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Options configures a Session.
type Options struct {
	UserAgent string
	// Timeout applies to each individual attempt.
	Timeout time.Duration
	// Retries is the number of additional attempts after the first.
	Retries int
	// Backoff is the wait before the first retry; it doubles after each.
	Backoff time.Duration
	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// DefaultOptions returns three retries starting at one second, with a ten
// second timeout per attempt.
func DefaultOptions() Options {
	return Options{
		UserAgent: DefaultUserAgent,
		Timeout:   10 * time.Second,
		Retries:   3,
		Backoff:   1 * time.Second,
	}
}

// Session issues GET requests with a fixed identity and retry policy. It is
// safe for concurrent use.
type Session struct {
	client *http.Client
	opts   Options
	logger *slog.Logger
}

// Response is a fully read HTTP response. URL is the final URL after
// redirects.
type Response struct {
	URL        *url.URL
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s (%s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Retryable reports whether the status is one the session retries.
func (e *StatusError) Retryable() bool {
	return retryStatuses[e.StatusCode]
}

// New creates a session. Zero-valued options fall back to DefaultOptions,
// except Retries which may legitimately be zero.
func New(opts Options) *Session {
	def := DefaultOptions()
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = def.Backoff
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		client: &http.Client{
			Transport: opts.Transport,
			Timeout:   opts.Timeout,
		},
		opts:   opts,
		logger: logger.With("component", "session"),
	}
}

// Get fetches rawURL. Network errors and 429/500/502/503/504 responses are
// retried with exponential backoff; any other non-2xx status returns a
// *StatusError immediately.
func (s *Session) Get(ctx context.Context, rawURL string) (*Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.opts.Backoff
	bo.Multiplier = 2
	bo.MaxInterval = s.opts.Backoff * 16

	attempt := 0
	operation := func() (*Response, error) {
		attempt++
		resp, err := s.do(ctx, rawURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
			if statusErr.Retryable() {
				return nil, statusErr
			}
			return nil, backoff.Permanent(statusErr)
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(s.opts.Retries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			s.logger.Debug("retrying request", "url", rawURL, "attempt", attempt, "wait", wait, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// do performs a single attempt.
func (s *Session) do(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.8,*/*;q=0.7")
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9,en-US;q=0.8,en;q=0.7")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	httpResp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer httpResp.Body.Close()

	reader, err := decompressReader(httpResp, io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	s.logger.Debug("fetch complete",
		"url", rawURL,
		"status", httpResp.StatusCode,
		"size", len(body),
		"duration", time.Since(start),
	)

	return &Response{
		URL:        httpResp.Request.URL,
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

// decompressReader wraps a reader with the decompressor named by
// Content-Encoding.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}

// Document fetches rawURL and parses it as HTML, converting the body to UTF-8
// from whatever charset the page declares. The document's Url is the final
// URL after redirects, so relative links can be resolved against it.
func (s *Session) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	resp, err := s.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(bytes.NewReader(resp.Body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Url = resp.URL
	return doc, nil
}

// JSON fetches rawURL and decodes the body into v.
func (s *Session) JSON(ctx context.Context, rawURL string, v any) error {
	resp, err := s.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == code
}
