// Package api is a typed client for the Wealthify finance API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"wealthify/internal/core"
	applog "wealthify/internal/log"
)

// Session is the local session the client reads the bearer token from and
// writes fresh sessions into.
type Session interface {
	Token(ctx context.Context) (string, error)
	Login(ctx context.Context, token string, user core.User) error
	SetUser(ctx context.Context, user core.User) error
	Invalidate(ctx context.Context) error
}

type Client struct {
	baseURL    string
	session    Session
	httpClient *http.Client
	logger     *applog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *applog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient binds a client to baseURL. Paths are appended to it, so a
// trailing slash is added when missing.
func NewClient(baseURL string, session Session, opts ...Option) (*Client, error) {
	if session == nil {
		return nil, errors.New("api: session is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: invalid base URL %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{baseURL: baseURL, session: session}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = applog.Discard()
	}
	c.logger = c.logger.WithComponent(applog.ComponentAPI)
	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: applog.NewTransport(http.DefaultTransport, c.logger)}
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request. body and out may be nil. A 401 clears the session
// before the error is returned, even when ctx has been cancelled meanwhile.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.session.Token(ctx)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Method: method, Path: path, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    messageFrom(payload),
		}
		if apiErr.Kind == KindUnauthorized {
			c.logger.WarnContext(ctx, "Unauthorized response, clearing session",
				applog.FieldPath, path, applog.FieldOperation, applog.OpInvalidate)
			if invErr := c.session.Invalidate(context.WithoutCancel(ctx)); invErr != nil {
				return errors.Join(apiErr, fmt.Errorf("invalidate session: %w", invErr))
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindDecode, StatusCode: resp.StatusCode, Method: method, Path: path, Err: err}
	}
	return nil
}

func messageFrom(payload []byte) string {
	var body errorBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Message
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func idPath(prefix, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("api: %s: empty id", prefix)
	}
	return prefix + "/" + url.PathEscape(id), nil
}
