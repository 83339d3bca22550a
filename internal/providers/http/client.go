package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps resty.Client with timeout handling and optional debug logging.
// It never retries: a failed request is reported to the caller as is.
type Client struct {
	resty   *resty.Client
	timeout time.Duration
	debug   bool
	logger  *slog.Logger
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout   time.Duration
	UserAgent string
	Debug     bool
	Logger    *slog.Logger
}

// DefaultClientConfig returns sensible defaults for HTTP client
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:   15 * time.Second,
		UserAgent: "vidstream/1.0",
	}
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config ClientConfig) *Client {
	defaults := DefaultClientConfig()
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	restyClient := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json")

	client := &Client{
		resty:   restyClient,
		timeout: config.Timeout,
		debug:   config.Debug,
		logger:  config.Logger,
	}

	if config.Debug && config.Logger != nil {
		restyClient.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
			client.logRequest(r)
			return nil
		})
		restyClient.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
			client.logResponse(r)
			return nil
		})
	}

	return client
}

// Get performs a GET request with query parameters.
// Unlike a transport failure, a non-2xx status is not an error here: the
// response is returned so callers can decode the error body themselves.
// Transport errors carry the request URL with its api_key redacted.
func (c *Client) Get(ctx context.Context, rawURL string, params map[string]string) (*resty.Response, error) {
	resp, err := c.resty.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("GET request failed for %s: %w", redactURL(rawURL), redactError(err))
	}
	return resp, nil
}

// GetTimeout returns the configured timeout
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// logRequest logs HTTP request details, with the API key redacted
func (c *Client) logRequest(r *resty.Request) {
	params := r.QueryParam
	if params.Has("api_key") {
		params = cloneValues(params)
		params.Set("api_key", "REDACTED")
	}

	c.logger.Debug("HTTP Request",
		"method", r.Method,
		"url", redactURL(r.URL),
		"query", params.Encode(),
	)
}

// logResponse logs HTTP response details
func (c *Client) logResponse(r *resty.Response) {
	c.logger.Debug("HTTP Response",
		"status", r.StatusCode(),
		"url", redactURL(r.Request.URL),
		"time", r.Time(),
	)

	bodyStr := r.String()
	if len(bodyStr) > 1000 {
		bodyStr = bodyStr[:1000] + "... (truncated)"
	}
	c.logger.Debug("Response Body", "body", bodyStr)
}

// redactURL hides the api_key query parameter of raw
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if !q.Has("api_key") {
		return raw
	}
	q.Set("api_key", "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}

// redactError rewrites the URL of a *url.Error so the api_key never reaches
// error messages or logs
func redactError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return &url.Error{Op: uerr.Op, URL: redactURL(uerr.URL), Err: uerr.Err}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
