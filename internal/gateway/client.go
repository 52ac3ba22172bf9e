package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/NordCoder/upwatch/internal/obs"
)

const (
	apiPrefix    = "/api/v1/"
	maxErrorBody = 64 << 10
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client is the only component that talks to the backend. It never reads or
// mutates the session; callers pass the bearer token on every call.
type Client struct {
	hc        *http.Client
	base      string
	userAgent string
	log       *zap.Logger
	tracer    trace.Tracer
}

// NewHTTPClient builds the traced transport used by New when hc is nil.
// A zero timeout leaves the transport defaults in charge.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialTimeout := timeout
	if dialTimeout == 0 {
		dialTimeout = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: obs.HTTPTransport(transport),
	}
}

func New(cfg Config, hc *http.Client, log *zap.Logger) *Client {
	if hc == nil {
		hc = NewHTTPClient(cfg.Timeout)
	}
	return &Client{
		hc:        hc,
		base:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		log:       obs.Component(log, "gateway"),
		tracer:    otel.Tracer("gateway"),
	}
}

type call struct {
	op     Op
	method string
	path   string
	query  url.Values
	token  string
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, cl call) (err error) {
	ctx, span := c.tracer.Start(ctx, "gateway."+string(cl.op),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("gateway.op", string(cl.op))),
	)
	start := time.Now()
	defer func() {
		outcome, msg := Classify(err)
		requestsTotal.WithLabelValues(string(cl.op), outcome.String()).Inc()
		requestDuration.WithLabelValues(string(cl.op)).Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.String("gateway.outcome", outcome.String()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome.String())
			obs.WithTrace(ctx, c.log).Debug("request failed",
				zap.String("op", string(cl.op)),
				zap.String("outcome", outcome.String()),
				zap.String("message", msg),
				zap.Error(err),
			)
		}
		span.End()
	}()

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return &RequestError{Op: cl.op, Message: cl.op.Fallback(), Err: err}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &RequestError{Op: cl.op, Message: cl.op.Fallback(), Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_, _ = io.Copy(io.Discard, resp.Body)
		return unauthorized(cl.op)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &RequestError{Op: cl.op, Status: resp.StatusCode, Message: detail(resp.Body, cl.op)}
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return &RequestError{
			Op:      cl.op,
			Status:  resp.StatusCode,
			Message: cl.op.Fallback(),
			Err:     fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	u := c.base + apiPrefix + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// detail extracts the backend's {"detail": "..."} message, falling back to
// the operation's generic message for any other body.
func detail(r io.Reader, op Op) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return op.Fallback()
	}
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return op.Fallback()
	}
	if s, ok := payload.Detail.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return op.Fallback()
}

func idPath(id int64, suffix string) string {
	p := fmt.Sprintf("endpoints/%d/", id)
	if suffix != "" {
		p += suffix + "/"
	}
	return p
}

// FormatTime renders t the way the backend expects query timestamps.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")
}
