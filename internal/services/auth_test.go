package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthify/internal/api"
	"wealthify/internal/core"
	"wealthify/internal/session"
)

func TestLoginValidation(t *testing.T) {
	fake := newFakeAPI()
	svc := NewAuthService(fake, &fakeSession{}, nil)

	_, err := svc.Login(context.Background(), " ", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Login(context.Background(), "a@b.c", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, fake.count("Login"))

	fake.profile = core.User{Username: "ann"}
	user, err := svc.Login(context.Background(), " a@b.c ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, "a@b.c", fake.lastLogin.Email)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		req  api.RegisterRequest
		want error
	}{
		{"missing username", api.RegisterRequest{Email: "a@b.c", Password: "x", ConfirmPassword: "x"}, ErrMissingFields},
		{"missing confirm", api.RegisterRequest{Username: "ann", Email: "a@b.c", Password: "x"}, ErrMissingFields},
		{"mismatch", api.RegisterRequest{Username: "ann", Email: "a@b.c", Password: "x", ConfirmPassword: "y"}, ErrPasswordMismatch},
		{"valid", api.RegisterRequest{Username: "ann", Email: "a@b.c", Password: "x", ConfirmPassword: "x"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeAPI()
			svc := NewAuthService(fake, &fakeSession{}, nil)
			_, err := svc.Register(context.Background(), tt.req)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Zero(t, fake.count("Register"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, fake.count("Register"))
		})
	}
}

func TestOTP(t *testing.T) {
	fake := newFakeAPI()
	svc := NewAuthService(fake, &fakeSession{}, nil)
	ctx := context.Background()

	_, err := svc.VerifyOTP(ctx, "a@b.c", " ")
	assert.ErrorIs(t, err, ErrMissingOTP)
	_, err = svc.ResendOTP(ctx, "")
	assert.ErrorIs(t, err, ErrMissingEmail)

	msg, err := svc.VerifyOTP(ctx, "a@b.c", "1234")
	require.NoError(t, err)
	assert.Equal(t, "ok", msg)
	assert.Equal(t, "1234", fake.lastOTP.OTP)
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	sess := &fakeSession{}
	svc := NewAuthService(newFakeAPI(), sess, nil)

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Unauthenticated, st.State)

	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	sess.user = &core.User{Username: "ann"}
	sess.expiry = exp
	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Authenticated, st.State)
	assert.Equal(t, "ann", st.User.Username)
	assert.True(t, st.HasExpiry)
	assert.Equal(t, exp, st.ExpiresAt)

	require.NoError(t, svc.Logout(ctx))
	assert.True(t, sess.invalidated)
	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Unauthenticated, st.State)
}

func TestUpdateUsername(t *testing.T) {
	fake := newFakeAPI()
	fake.profile = core.User{Username: "old", Email: "a@b.c"}
	svc := NewAuthService(fake, &fakeSession{}, nil)

	_, err := svc.UpdateUsername(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	user, err := svc.UpdateUsername(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "new", user.Username)
	assert.Equal(t, 1, fake.count("GetProfile"))
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		req  api.UpdatePasswordRequest
		want error
	}{
		{api.UpdatePasswordRequest{NewPassword: "n", ConfirmNewPassword: "n"}, ErrMissingOldPassword},
		{api.UpdatePasswordRequest{OldPassword: "o", ConfirmNewPassword: "n"}, ErrMissingNewPassword},
		{api.UpdatePasswordRequest{OldPassword: "o", NewPassword: "n"}, ErrMissingConfirmPassword},
		{api.UpdatePasswordRequest{OldPassword: "o", NewPassword: "n", ConfirmNewPassword: "m"}, ErrNewPasswordMismatch},
	}
	fake := newFakeAPI()
	svc := NewAuthService(fake, &fakeSession{}, nil)
	for _, tt := range tests {
		_, err := svc.ChangePassword(context.Background(), tt.req)
		assert.ErrorIs(t, err, tt.want)
	}
	assert.Zero(t, fake.count("UpdatePassword"))

	_, err := svc.ChangePassword(context.Background(), api.UpdatePasswordRequest{OldPassword: "o", NewPassword: "n", ConfirmNewPassword: "n"})
	require.NoError(t, err)
	assert.Equal(t, "n", fake.lastPwd.NewPassword)
}

func TestAuthPropagatesAPIErrors(t *testing.T) {
	fake := newFakeAPI()
	fake.err = &api.Error{Kind: api.KindValidation, StatusCode: 400, Message: "Invalid credentials"}
	svc := NewAuthService(fake, &fakeSession{}, nil)

	_, err := svc.Login(context.Background(), "a@b.c", "bad")
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", api.UserMessage(err))
}
