package log

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the id generated for every outbound request.
const RequestIDHeader = "X-Request-ID"

// ContextKey type for context keys
type ContextKey string

// RequestIDContextKey lets callers pin the request id of an outbound call.
const RequestIDContextKey ContextKey = "request_id"

// WithRequestID returns ctx carrying id for the next outbound request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, id)
}

// RequestIDFromContext returns the pinned id, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDContextKey).(string)
	return id, ok && id != ""
}

// Transport is an http.RoundTripper that tags each request with an id and
// logs its start and completion.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger *Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = Discard()
	}
	return &Transport{Base: base, Logger: logger.WithComponent(ComponentAPI)}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	requestID, ok := RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	req = req.Clone(ctx)
	req.Header.Set(RequestIDHeader, requestID)

	fields := NewFields().
		WithHTTPRequest(req.Method, req.URL.Path, req.URL.RawQuery).
		WithRequestID(requestID)
	t.Logger.DebugContext(ctx, "API request started", fields.ToSlice()...)

	start := time.Now()
	resp, err := t.Base.RoundTrip(req)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		t.Logger.WarnContext(ctx, "API request failed", fields.WithError(err).WithHTTPResponse(0, duration).ToSlice()...)
		return nil, err
	}

	level := slog.LevelDebug
	switch {
	case resp.StatusCode >= 500:
		level = slog.LevelError
	case resp.StatusCode >= 400:
		level = slog.LevelWarn
	}
	t.Logger.LogContext(ctx, level, "API request completed", fields.WithHTTPResponse(resp.StatusCode, duration).ToSlice()...)
	return resp, nil
}
