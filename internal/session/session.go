// Package session keeps the authenticated-user context (bearer token and
// profile) between runs and hands it to the API client.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wealthify/internal/core"
	applog "wealthify/internal/log"
)

// Fixed keys of the two persisted entries.
const (
	TokenKey = "wealthify_token"
	UserKey  = "wealthify_user"
)

// ErrNotFound is returned by a Store for a missing key.
var ErrNotFound = errors.New("session: key not found")

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// State of the session.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Manager reads and writes the session entries of a Store.
type Manager struct {
	store  Store
	logger *applog.Logger
}

func NewManager(store Store, logger *applog.Logger) *Manager {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Manager{store: store, logger: logger.WithComponent(applog.ComponentSession)}
}

// Token returns the cached bearer token, or "" when there is none.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.store.Get(ctx, TokenKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

// User returns the cached profile and whether one exists.
func (m *Manager) User(ctx context.Context) (core.User, bool, error) {
	raw, err := m.store.Get(ctx, UserKey)
	if errors.Is(err, ErrNotFound) {
		return core.User{}, false, nil
	}
	if err != nil {
		return core.User{}, false, fmt.Errorf("read user: %w", err)
	}
	var user core.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return core.User{}, false, fmt.Errorf("decode user: %w", err)
	}
	return user, true, nil
}

// Login stores the token and profile of a fresh session.
func (m *Manager) Login(ctx context.Context, token string, user core.User) error {
	if token == "" {
		return errors.New("login: empty token")
	}
	if err := m.store.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := m.SetUser(ctx, user); err != nil {
		return err
	}
	m.logger.InfoContext(ctx, "Session started", applog.FieldOperation, applog.OpLogin)
	return nil
}

// SetUser refreshes the cached profile.
func (m *Manager) SetUser(ctx context.Context, user core.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("store user: %w", err)
	}
	return nil
}

// Invalidate removes both the token and the profile. Both deletes are
// attempted even if the first fails.
func (m *Manager) Invalidate(ctx context.Context) error {
	var errs []error
	for _, key := range []string{TokenKey, UserKey} {
		if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		m.logger.ErrorContext(ctx, "Failed to clear session", applog.FieldError, err, applog.FieldOperation, applog.OpInvalidate)
		return err
	}
	m.logger.InfoContext(ctx, "Session cleared", applog.FieldOperation, applog.OpInvalidate)
	return nil
}

// State is Authenticated when a profile is cached.
func (m *Manager) State(ctx context.Context) (State, error) {
	_, ok, err := m.User(ctx)
	if err != nil {
		return Unauthenticated, err
	}
	if ok {
		return Authenticated, nil
	}
	return Unauthenticated, nil
}

// Expiry reads the exp claim of the cached token without verifying it. The
// token is opaque to the client, so ok is false when it is not a JWT or
// carries no expiry.
func (m *Manager) Expiry(ctx context.Context) (time.Time, bool, error) {
	token, err := m.Token(ctx)
	if err != nil || token == "" {
		return time.Time{}, false, err
	}
	return TokenExpiry(token)
}

// TokenExpiry extracts the exp claim of an unverified JWT.
func TokenExpiry(token string) (time.Time, bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false, nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false, nil
	}
	return exp.Time, true, nil
}
