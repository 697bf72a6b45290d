package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/LyraHealth/auto-thunk/codec"
	"github.com/LyraHealth/auto-thunk/id"
	"github.com/LyraHealth/auto-thunk/request"
)

// tracerName is the instrumentation scope name for client spans.
const tracerName = "github.com/LyraHealth/auto-thunk/httpclient"

// HeaderRequestID carries the thunk ID of the call.
const HeaderRequestID = "X-Request-ID"

// Compile-time interface check.
var _ Client = (*HTTP)(nil)

// HTTP is the net/http implementation of Client.
type HTTP struct {
	config Config
	client *http.Client
	codec  codec.Codec
	logger *slog.Logger
	tracer trace.Tracer
}

// Option configures an HTTP client.
type Option func(*HTTP)

// WithHTTPClient sets the underlying *http.Client. Its Timeout is replaced
// by Config.Timeout when that is non-zero.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTP) { c.client = hc }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTP) { c.logger = l }
}

// WithTracer sets the tracer used for client spans. Defaults to the global
// TracerProvider.
func WithTracer(t trace.Tracer) Option {
	return func(c *HTTP) { c.tracer = t }
}

// WithCodec overrides the codec named in Config.
func WithCodec(cd codec.Codec) Option {
	return func(c *HTTP) { c.codec = cd }
}

// New creates an HTTP client.
func New(cfg Config, opts ...Option) *HTTP {
	c := &HTTP{
		config: cfg,
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	if cfg.Timeout > 0 {
		hc := *c.client
		hc.Timeout = cfg.Timeout
		c.client = &hc
	}
	if c.codec == nil {
		c.codec = codec.Get(cfg.Codec)
	}
	if c.config.MaxResponseBytes <= 0 {
		c.config.MaxResponseBytes = DefaultConfig().MaxResponseBytes
	}
	return c
}

// Request performs r and decodes the reply.
func (c *HTTP) Request(ctx context.Context, r *request.Request) (*Response, error) {
	method := strings.ToUpper(r.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.resolveURL(r)
	if err != nil {
		return nil, &Error{Method: method, URL: r.URL, Err: err}
	}

	ctx, span := c.tracer.Start(ctx, "autothunk.http.request",
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", target),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	resp, err := c.do(ctx, method, target, r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if e, ok := AsError(err); ok && e.Response != nil {
			span.SetAttributes(attribute.Int("http.response.status_code", e.Response.Status))
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

func (c *HTTP) do(ctx context.Context, method, target string, r *request.Request) (*Response, error) {
	body, contentType, err := c.encodeBody(r.Data)
	if err != nil {
		return nil, &Error{Method: method, URL: target, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Method: method, URL: target, Err: err}
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", c.codec.ContentType())
	}
	if tid, ok := id.FromContext(ctx); ok && req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, tid.String())
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("http request failed",
			slog.String("method", method),
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return nil, &Error{Method: method, URL: target, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, c.config.MaxResponseBytes+1))
	if err != nil {
		return nil, &Error{Method: method, URL: target, Err: fmt.Errorf("httpclient: read body: %w", err)}
	}
	if int64(len(raw)) > c.config.MaxResponseBytes {
		return nil, &Error{
			Method: method,
			URL:    target,
			Err:    fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, c.config.MaxResponseBytes),
		}
	}

	c.logger.Debug("http request completed",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", res.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	data, decodeErr := c.decodeBody(res.Header.Get("Content-Type"), raw)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		e := NewStatusError(method, target, res.StatusCode, MessageOf(data), data)
		e.Response.Header = res.Header
		return nil, e
	}
	if decodeErr != nil {
		return nil, &Error{Method: method, URL: target, Err: decodeErr}
	}

	return &Response{Status: res.StatusCode, Header: res.Header, Data: data}, nil
}

func (c *HTTP) resolveURL(r *request.Request) (string, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return "", err
	}
	if !u.IsAbs() && c.config.BaseURL != "" {
		base := strings.TrimRight(c.config.BaseURL, "/")
		u, err = url.Parse(base + "/" + strings.TrimLeft(r.URL, "/"))
		if err != nil {
			return "", err
		}
	}

	if len(r.Params) > 0 {
		q := u.Query()
		keys := make([]string, 0, len(r.Params))
		for k := range r.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch v := r.Params[k].(type) {
			case nil:
			case []string:
				for _, s := range v {
					q.Add(k, s)
				}
			case []any:
				for _, e := range v {
					q.Add(k, fmt.Sprint(e))
				}
			default:
				q.Add(k, fmt.Sprint(v))
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func (c *HTTP) encodeBody(data any) (io.Reader, string, error) {
	switch b := data.(type) {
	case nil:
		return nil, "", nil
	case *request.FormData:
		var buf bytes.Buffer
		ct, err := b.Encode(&buf)
		if err != nil {
			return nil, "", err
		}
		return &buf, ct, nil
	case []byte:
		return bytes.NewReader(b), "application/octet-stream", nil
	case io.Reader:
		return b, "application/octet-stream", nil
	}

	encoded, err := c.codec.Marshal(data)
	if err != nil {
		return nil, "", fmt.Errorf("httpclient: encode body: %w", err)
	}
	return bytes.NewReader(encoded), c.codec.ContentType(), nil
}

// decodeBody decodes raw by its content type. Unknown text types come back
// as a string and anything else as bytes.
func (c *HTTP) decodeBody(contentType string, raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if cd := codec.ForContentType(contentType); cd != nil {
		var out any
		if err := cd.Unmarshal(raw, &out); err != nil {
			return string(raw), fmt.Errorf("httpclient: decode %s body: %w", cd.Name(), err)
		}
		return out, nil
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && strings.HasPrefix(mediaType, "text/") {
		return string(raw), nil
	}
	if contentType == "" {
		var out any
		if err := c.codec.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		return string(raw), nil
	}
	return raw, nil
}

// MessageOf extracts a server error message from common body shapes:
// {"message": ...}, {"error": {"message": ...}}, {"error": "..."} and
// RFC 7807 {"detail": ...}.
func MessageOf(data any) string {
	d, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	if s, ok := d["message"].(string); ok && s != "" {
		return s
	}
	switch e := d["error"].(type) {
	case map[string]any:
		if s, ok := e["message"].(string); ok {
			return s
		}
	case string:
		return e
	}
	if s, ok := d["detail"].(string); ok {
		return s
	}
	return ""
}
