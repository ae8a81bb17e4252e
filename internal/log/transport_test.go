package log

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportSetsRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := New(Config{Output: &buf, Level: slog.LevelDebug})
	client := &http.Client{Transport: NewTransport(nil, logger)}

	resp, err := client.Get(srv.URL + "/get-stats")
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, seen)
	assert.Contains(t, buf.String(), "API request completed")
	assert.Contains(t, buf.String(), "status_code=418")
	assert.Contains(t, buf.String(), "component=api")
}

func TestTransportUsesPinnedRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, nil)}
	req, err := http.NewRequestWithContext(WithRequestID(context.Background(), "fixed-id"), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "fixed-id", seen)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
