package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/hyp/bioform/internal/config"
	"github.com/hyp/bioform/internal/model"
)

const (
	loginPath  = "/login_check"
	exportPath = "/form/%s/analyze/csv"

	// maxExportSize limits how much of an export body is read.
	maxExportSize = 64 << 20

	// maxRedirects bounds the redirects followed after login.
	maxRedirects = 10

	userAgent = "bioform"
)

// Source provides form exports. Client is the production implementation.
type Source interface {
	Export(ctx context.Context, formID string) (*model.Export, error)
}

// Client downloads exports from the remote form service.
type Client struct {
	baseURL   string
	creds     config.Credentials
	timeout   time.Duration
	retry     config.RetryPolicy
	transport http.RoundTripper
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryPolicy sets the backoff used for transient failures.
func WithRetryPolicy(rp config.RetryPolicy) Option {
	return func(c *Client) {
		c.retry = rp
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the service at baseURL.
func NewClient(baseURL string, creds config.Credentials, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		timeout: config.DefaultTimeout,
		retry: config.RetryPolicy{
			MaxAttempts:       config.DefaultMaxAttempts,
			InitialDelay:      config.DefaultInitialDelay,
			MaxDelay:          config.DefaultMaxDelay,
			BackoffMultiplier: config.DefaultBackoffMultiplier,
		},
		transport: newTransport(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NewClientFromConfig creates a Client using the connection settings of cfg.
func NewClientFromConfig(cfg *config.Config, creds config.Credentials, opts ...Option) (*Client, error) {
	base := []Option{WithTimeout(cfg.Timeout), WithRetryPolicy(cfg.Retry)}
	return NewClient(cfg.BaseURL, creds, append(base, opts...)...)
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 10
	t.MaxIdleConnsPerHost = 2
	t.IdleConnTimeout = 30 * time.Second
	return t
}

// newHTTPClient returns a client with an empty cookie jar, so each export
// runs in its own login session.
func (c *Client) newHTTPClient() (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: c.transport,
		Timeout:   c.timeout,
		Jar:       jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// Export logs in and downloads the CSV export of the given form.
// Transient failures are retried according to the retry policy; the wait
// between attempts is cut short when ctx is done.
func (c *Client) Export(ctx context.Context, formID string) (*model.Export, error) {
	attempts := max(c.retry.MaxAttempts, 1)

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if delay := c.retry.Delay(attempt); delay > 0 {
			c.logger.Warn("retrying form export",
				"form_id", formID,
				"attempt", attempt,
				"delay", delay,
				"error", lastErr,
			)
			if err := sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("export form %s: %w", formID, err)
			}
		}

		exp, err := c.exportOnce(ctx, formID)
		if err == nil {
			c.logger.Info("form export downloaded",
				"form_id", formID,
				"columns", len(exp.Header),
				"rows", len(exp.Rows),
				"attempt", attempt,
			)
			return exp, nil
		}

		var rfe *model.RemoteFetchError
		if !errors.As(err, &rfe) || !rfe.Retryable() {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("export form %s: giving up after %d attempts: %w", formID, attempts, lastErr)
}

func (c *Client) exportOnce(ctx context.Context, formID string) (*model.Export, error) {
	client, err := c.newHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	if err := c.login(ctx, client); err != nil {
		return nil, err
	}

	u := c.baseURL + fmt.Sprintf(exportPath, url.PathEscape(formID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &model.RemoteFetchError{Op: "export", URL: u, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/csv, application/csv;q=0.9, */*;q=0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(ctx, "export", u, err)
	}
	defer resp.Body.Close()

	if err := checkStatus("export", u, resp); err != nil {
		return nil, err
	}
	if isHTML(resp) {
		return nil, &model.RemoteFetchError{
			Op:         "export",
			URL:        u,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: received a web page instead of the export", model.ErrAuthentication),
		}
	}

	exp, err := ParseExport(io.LimitReader(resp.Body, maxExportSize))
	if err != nil {
		if ctx.Err() != nil {
			return nil, &model.RemoteFetchError{Op: "export", URL: u, Err: ctx.Err()}
		}
		return nil, &model.RemoteFetchError{Op: "export", URL: u, StatusCode: resp.StatusCode, Err: err}
	}
	exp.FormID = formID
	return exp, nil
}

func (c *Client) login(ctx context.Context, client *http.Client) error {
	u := c.baseURL + loginPath
	form := url.Values{
		"action":    {"btnlogin"},
		"_username": {c.creds.Username},
		"_password": {c.creds.Password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return &model.RemoteFetchError{Op: "login", URL: u, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("logging in to form service", "url", u)

	resp, err := client.Do(req)
	if err != nil {
		return transportError(ctx, "login", u, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxExportSize))

	return checkStatus("login", u, resp)
}

// checkStatus maps an HTTP error status to a RemoteFetchError.
func checkStatus(op, u string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= http.StatusInternalServerError,
		code == http.StatusTooManyRequests,
		code == http.StatusRequestTimeout:
		return &model.RemoteFetchError{Op: op, URL: u, StatusCode: code, Err: model.ErrRemoteUnavailable}
	case code >= http.StatusBadRequest:
		return &model.RemoteFetchError{Op: op, URL: u, StatusCode: code, Err: model.ErrAuthentication}
	}
	return nil
}

// transportError wraps a failed round trip. A cancelled ctx becomes the
// cause instead of ErrRemoteUnavailable so it is not retried.
func transportError(ctx context.Context, op, u string, err error) error {
	if ctx.Err() != nil {
		return &model.RemoteFetchError{Op: op, URL: u, Err: ctx.Err()}
	}
	return &model.RemoteFetchError{Op: op, URL: u, Err: fmt.Errorf("%w: %w", model.ErrRemoteUnavailable, err)}
}

func isHTML(resp *http.Response) bool {
	return strings.HasPrefix(strings.ToLower(resp.Header.Get("Content-Type")), "text/html")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
