// Package sheet fetches a published spreadsheet as CSV text.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	exportURLTemplate = "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s"
	defaultTimeout    = 30 * time.Second
	// DefaultMaxBytes caps how much of a response body is read.
	DefaultMaxBytes int64 = 32 << 20
)

// ErrTransport matches any *TransportError via errors.Is.
var ErrTransport = errors.New("failed to fetch sheet")

// TransportError wraps network failures and non-2xx responses.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: GET %s returned status %d: %v", ErrTransport, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: GET %s: %v", ErrTransport, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Client fetches the raw CSV payload of a sheet.
type Client interface {
	FetchCSV(ctx context.Context) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	// URL is a full CSV export URL. When empty it is built from SheetID and SheetName.
	URL        string
	SheetID    string
	SheetName  string
	Timeout    time.Duration
	MaxBytes   int64
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPClient struct {
	url        string
	maxBytes   int64
	userAgent  string
	httpClient httpDoer
}

// ExportURL returns the gviz CSV export URL of one sheet in a spreadsheet.
func ExportURL(sheetID, sheetName string) string {
	return fmt.Sprintf(exportURLTemplate, url.PathEscape(strings.TrimSpace(sheetID)), url.QueryEscape(strings.TrimSpace(sheetName)))
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	target := strings.TrimSpace(cfg.URL)
	if target == "" {
		if strings.TrimSpace(cfg.SheetID) == "" {
			return nil, errors.New("sheet ID or URL is required")
		}
		name := cfg.SheetName
		if strings.TrimSpace(name) == "" {
			name = "Sheet1"
		}
		target = ExportURL(cfg.SheetID, name)
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid sheet URL %q", target)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &HTTPClient{
		url:        target,
		maxBytes:   maxBytes,
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}, nil
}

// URL returns the address the client fetches.
func (c *HTTPClient) URL() string {
	return c.url
}

// FetchCSV downloads the sheet once. There are no retries; every failure is
// returned as a *TransportError.
func (c *HTTPClient) FetchCSV(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", &TransportError{URL: c.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &TransportError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        errors.New(strings.TrimSpace(string(responseBody))),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return "", &TransportError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > c.maxBytes {
		return "", &TransportError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("response exceeds %d bytes", c.maxBytes)}
	}

	payload, _, err := transform.String(unicode.BOMOverride(unicode.UTF8.NewDecoder()), string(body))
	if err != nil {
		return "", &TransportError{URL: c.url, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}
	return payload, nil
}
