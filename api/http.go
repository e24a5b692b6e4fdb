package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultAPIAddress is where the hydrus client API listens out of the box.
	DefaultAPIAddress = "127.0.0.1:45869"

	defaultUserAgent = "hydrant/0.1"
	defaultTimeout   = 10 * time.Second
	maxErrorBody     = 4 << 10

	headerAccessKey  = "Hydrus-Client-API-Access-Key"
	headerSessionKey = "Hydrus-Client-API-Session-Key"
)

// HTTPTransport submits requests to a hydrus client API over HTTP. It is
// safe for concurrent use.
type HTTPTransport struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	accessKey  string
	sessionKey string
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *Metrics
}

var _ Transport = (*HTTPTransport)(nil)

// Option configures an HTTPTransport.
type Option func(*HTTPTransport)

// WithAccessKey authenticates every request with a permanent access key.
func WithAccessKey(key string) Option {
	return func(t *HTTPTransport) { t.accessKey = strings.TrimSpace(key) }
}

// WithSessionKey authenticates with a session key instead of the access key.
func WithSessionKey(key string) Option {
	return func(t *HTTPTransport) { t.sessionKey = strings.TrimSpace(key) }
}

// WithHTTPClient sends requests through a copy of c. c itself is not
// modified.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		if c != nil {
			t.http = c
		}
	}
}

// WithTimeout sets the per-request timeout. It overrides the timeout of a
// client passed to WithHTTPClient regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTPTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *HTTPTransport) {
		if ua = strings.TrimSpace(ua); ua != "" {
			t.userAgent = ua
		}
	}
}

// WithLogger logs every request at debug level and failures at warn level.
func WithLogger(l *zap.Logger) Option {
	return func(t *HTTPTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(t *HTTPTransport) { t.metrics = m }
}

// NewHTTPTransport builds a transport for the API at apiURL, which may be a
// bare host:port. An empty apiURL uses DefaultAPIAddress.
func NewHTTPTransport(apiURL string, opts ...Option) (*HTTPTransport, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	t := &HTTPTransport{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	client := *t.http
	if t.timeout > 0 {
		client.Timeout = t.timeout
	}
	t.http = &client
	return t, nil
}

// BaseURL returns the normalised API root.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL.String()
}

// Submit implements Transport.
func (t *HTTPTransport) Submit(ctx context.Context, s Submission) ([]byte, error) {
	path := strings.TrimPrefix(s.Path, "/")
	rel := &url.URL{Path: path}
	if len(s.Query) > 0 {
		rel.RawQuery = s.Query.Encode()
	}
	reqURL := t.baseURL.ResolveReference(rel)

	var body io.Reader = http.NoBody
	if s.Body != nil {
		body = bytes.NewReader(s.Body)
	}
	req, err := http.NewRequestWithContext(ctx, s.Method, reqURL.String(), body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: s.Method, Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	if s.ContentType != "" {
		req.Header.Set("Content-Type", s.ContentType)
	}
	switch {
	case t.sessionKey != "":
		req.Header.Set(headerSessionKey, t.sessionKey)
	case t.accessKey != "":
		req.Header.Set(headerAccessKey, t.accessKey)
	}

	start := time.Now()
	resp, err := t.http.Do(req)
	if err != nil {
		t.metrics.observe(s.Method, path, 0, time.Since(start))
		t.logger.Warn("hydrus api request failed",
			zap.String("method", s.Method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, &Error{Kind: KindTransport, Method: s.Method, Path: path, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	elapsed := time.Since(start)
	t.metrics.observe(s.Method, path, resp.StatusCode, elapsed)
	t.logger.Debug("hydrus api request",
		zap.String("method", s.Method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", elapsed),
	)

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		t.logger.Warn("hydrus api returned error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &Error{
			Kind:   KindTransport,
			Method: s.Method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(detail)),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Method: s.Method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	return payload, nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIAddress
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
