// Package apiclient is the single point of outbound communication with the
// marketplace REST API.
//
// A Client owns the base URL and default headers. Bind it to a session with
// WithSession: the bound view attaches the session's bearer token to every
// request and revokes it when the API answers 401. What happens next (redirect
// to /login or not) is the caller's decision; the client only reports
// domain.ErrAuthExpired.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/metrics"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/domain"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
)

const (
	// DefaultBaseURL is used when no API_URL is configured.
	DefaultBaseURL = "https://mentawai.universitas-digital.web.id/api"

	// ProxyBypassHeader skips the interstitial page of the development tunnel.
	ProxyBypassHeader = "ngrok-skip-browser-warning"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client. A zero Timeout keeps the transport defaults.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient HTTPDoer
}

// Client issues REST calls against the marketplace API.
type Client struct {
	baseURL string
	http    HTTPDoer
	holder  ports.TokenHolder
	log     zerolog.Logger
}

// New builds an unbound Client. Requests made through it carry no
// Authorization header.
func New(cfg Config, log zerolog.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		baseURL: base,
		http:    doer,
		log:     log.With().Str("component", "apiclient").Logger(),
	}
}

// WithSession returns a view of c bound to holder.
func (c *Client) WithSession(holder ports.TokenHolder) *Client {
	bound := *c
	bound.holder = holder
	return &bound
}

// BaseURL returns the API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method string
	path   string
	route  string // path template, used as the metrics label
	query  url.Values
	body   any
	form   []domain.ImageUpload
}

// do executes req and returns the raw body of a 2xx response. Every other
// outcome becomes a *domain.APIError.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		metrics.ObserveUpstream(req.method, req.route, "error", time.Since(start))
		return nil, &domain.APIError{Kind: domain.ErrTransport, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveUpstream(req.method, req.route, strconv.Itoa(resp.StatusCode), time.Since(start))
	if err != nil {
		return nil, &domain.APIError{Kind: domain.ErrTransport, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.expire(ctx, req)
		msg, fields := errorDetails(body)
		return nil, &domain.APIError{Kind: domain.ErrAuthExpired, Status: resp.StatusCode, Message: msg, Fields: fields}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		msg, fields := errorDetails(body)
		return nil, &domain.APIError{Kind: domain.ErrRejected, Status: resp.StatusCode, Message: msg, Fields: fields}
	}

	return body, nil
}

func (c *Client) newRequest(ctx context.Context, req request) (*http.Request, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var (
		body        io.Reader
		contentType = "application/json"
	)
	switch {
	case req.form != nil:
		buf, ct, err := encodeImages(req.form)
		if err != nil {
			return nil, &domain.APIError{Kind: domain.ErrTransport, Err: err}
		}
		body, contentType = buf, ct
	case req.body != nil:
		raw, err := json.Marshal(req.body)
		if err != nil {
			return nil, &domain.APIError{Kind: domain.ErrTransport, Err: fmt.Errorf("encode body: %w", err)}
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.ErrTransport, Err: fmt.Errorf("build request: %w", err)}
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(ProxyBypassHeader, "true")
	if token := c.token(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

func (c *Client) token() string {
	if c.holder == nil {
		return ""
	}
	return c.holder.BearerToken()
}

// expire revokes the bound session's credential. It runs even when the caller
// has gone away, so a late 401 still clears the session.
func (c *Client) expire(ctx context.Context, req request) {
	metrics.UpstreamAuthExpiredTotal.WithLabelValues(req.route).Inc()
	if c.holder == nil {
		return
	}
	if err := c.holder.RevokeToken(context.WithoutCancel(ctx)); err != nil {
		c.log.Warn().Err(err).Str("route", req.route).Msg("failed to revoke token after 401")
		return
	}
	c.log.Info().Str("method", req.method).Str("route", req.route).Msg("session expired by upstream 401")
}

// errorDetails pulls message and field errors out of an error envelope.
func errorDetails(body []byte) (string, map[string][]string) {
	var env domain.Response[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return "", nil
	}
	return env.Message, env.Errors
}

// fetch decodes a single-resource envelope.
func fetch[T any](ctx context.Context, c *Client, req request) (*domain.Response[T], error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out domain.Response[T]
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &domain.APIError{Kind: domain.ErrMalformedEnvelope, Err: err}
	}
	return &out, nil
}

// fetchPage decodes a list envelope. An empty, non-JSON or data-less 2xx body
// is a zero-result page, never an error.
func fetchPage[T any](ctx context.Context, c *Client, req request) (*domain.Page[T], error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return domain.EmptyPage[T](), nil
	}

	var out domain.Page[T]
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Debug().Err(err).Str("route", req.route).Msg("malformed list envelope treated as empty")
		return domain.EmptyPage[T](), nil
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return &out, nil
}
