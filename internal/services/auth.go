package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"wealthify/internal/api"
	"wealthify/internal/core"
	applog "wealthify/internal/log"
	"wealthify/internal/session"
)

var (
	ErrMissingCredentials = errors.New("enter email and password")
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingOTP         = errors.New("please enter the OTP sent to your email")
	ErrMissingEmail       = errors.New("please enter email")
	ErrInvalidUsername    = errors.New("invalid user name")

	ErrMissingOldPassword     = errors.New("please enter old password")
	ErrMissingNewPassword     = errors.New("please enter new password")
	ErrMissingConfirmPassword = errors.New("please confirm new password")
	ErrNewPasswordMismatch    = errors.New("new password should match with confirm password")
)

// AuthService covers the login, registration and profile screens.
type AuthService struct {
	api     AuthAPI
	session SessionState
	logger  *applog.Logger
}

func NewAuthService(client AuthAPI, sess SessionState, logger *applog.Logger) *AuthService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &AuthService{api: client, session: sess, logger: logger.WithComponent(applog.ComponentSession)}
}

// Status describes the local session.
type Status struct {
	State     session.State
	User      core.User
	ExpiresAt time.Time
	HasExpiry bool
}

// Status reads the cached session without contacting the server.
func (s *AuthService) Status(ctx context.Context) (Status, error) {
	state, err := s.session.State(ctx)
	if err != nil {
		return Status{}, err
	}
	st := Status{State: state}
	if state == session.Authenticated {
		st.User, _, err = s.session.User(ctx)
		if err != nil {
			return Status{}, err
		}
		st.ExpiresAt, st.HasExpiry, err = s.session.Expiry(ctx)
		if err != nil {
			return Status{}, err
		}
	}
	return st, nil
}

// Check asks the server whether the cached session is still accepted.
func (s *AuthService) Check(ctx context.Context) error {
	return s.api.Check(ctx)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (core.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return core.User{}, ErrMissingCredentials
	}
	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		s.logger.WarnContext(ctx, "Login failed", applog.FieldError, err, applog.FieldOperation, applog.OpLogin)
		return core.User{}, err
	}
	return resp.Profile(), nil
}

func (s *AuthService) Register(ctx context.Context, req api.RegisterRequest) (core.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return core.User{}, ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return core.User{}, ErrPasswordMismatch
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return core.User{}, err
	}
	return resp.Profile(), nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	email, otp = strings.TrimSpace(email), strings.TrimSpace(otp)
	if email == "" {
		return "", ErrMissingEmail
	}
	if otp == "" {
		return "", ErrMissingOTP
	}
	resp, err := s.api.VerifyOTP(ctx, api.VerifyOTPRequest{Email: email, OTP: otp})
	return resp.Message, err
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingEmail
	}
	resp, err := s.api.ResendOTP(ctx, api.ResendOTPRequest{Email: email})
	return resp.Message, err
}

// Logout clears the local session. The server keeps no session state.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Invalidate(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Logged out", applog.FieldOperation, applog.OpLogout)
	return nil
}

func (s *AuthService) Profile(ctx context.Context) (core.User, error) {
	return s.api.GetProfile(ctx)
}

// UpdateUsername renames the user and returns the refreshed profile. The
// email address cannot be changed.
func (s *AuthService) UpdateUsername(ctx context.Context, username string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, ErrInvalidUsername
	}
	if _, err := s.api.UpdateProfile(ctx, api.UpdateProfileRequest{Username: username}); err != nil {
		return core.User{}, err
	}
	return s.api.GetProfile(ctx)
}

func (s *AuthService) ChangePassword(ctx context.Context, req api.UpdatePasswordRequest) (string, error) {
	switch {
	case req.OldPassword == "":
		return "", ErrMissingOldPassword
	case req.NewPassword == "":
		return "", ErrMissingNewPassword
	case req.ConfirmNewPassword == "":
		return "", ErrMissingConfirmPassword
	case req.NewPassword != req.ConfirmNewPassword:
		return "", ErrNewPasswordMismatch
	}
	resp, err := s.api.UpdatePassword(ctx, req)
	return resp.Message, err
}
