package api

import (
	"context"
	"errors"
	"fmt"

	"wealthify/internal/core"
)

// Check hits the API root. It succeeds when the server is up and the cached
// token, if any, is accepted.
func (c *Client) Check(ctx context.Context) error {
	return c.get(ctx, "", nil, nil)
}

// Login creates a session and stores it.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	return c.authenticate(ctx, "login", req)
}

// Register creates an account and stores the returned session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	return c.authenticate(ctx, "register", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return AuthResponse{}, err
	}
	if resp.Token == "" {
		return resp, &Error{Kind: KindDecode, Method: "POST", Path: path, Err: errors.New("response has no token")}
	}
	if err := c.session.Login(ctx, resp.Token, resp.Profile()); err != nil {
		return resp, fmt.Errorf("store session: %w", err)
	}
	return resp, nil
}

func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "verify-otp", req, &resp)
	return resp, err
}

func (c *Client) ResendOTP(ctx context.Context, req ResendOTPRequest) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "resend-otp", req, &resp)
	return resp, err
}

// GetProfile fetches the profile and refreshes the cached copy.
func (c *Client) GetProfile(ctx context.Context) (core.User, error) {
	var env profileEnvelope
	if err := c.get(ctx, "get-profile", nil, &env); err != nil {
		return core.User{}, err
	}
	if err := c.session.SetUser(ctx, env.Data); err != nil {
		return env.Data, fmt.Errorf("cache profile: %w", err)
	}
	return env.Data, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "update-profile", req, &resp)
	return resp, err
}

func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) (MessageResponse, error) {
	var resp MessageResponse
	err := c.post(ctx, "update-password", req, &resp)
	return resp, err
}
