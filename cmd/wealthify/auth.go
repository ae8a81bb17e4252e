package main

import (
	"context"
	"fmt"

	"wealthify/internal/api"
)

func runCheck(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("check").Parse(args); err != nil {
		return err
	}
	if err := a.auth.Check(ctx); err != nil {
		return err
	}
	a.out.Message("Session is valid")
	return nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.prompt.fill(email, "Email"); err != nil {
		return err
	}
	if err := a.prompt.fillSecret(password, "Password"); err != nil {
		return err
	}

	user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	a.out.Message(fmt.Sprintf("Welcome back, %s", displayName(user.Username, user.Email)))
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("register")
	req := api.RegisterRequest{}
	fs.StringVar(&req.Username, "username", "", "user name")
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "password (prompted when omitted)")
	fs.StringVar(&req.ConfirmPassword, "confirm", "", "password again (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.prompt.fill(&req.Username, "Username"); err != nil {
		return err
	}
	if err := a.prompt.fill(&req.Email, "Email"); err != nil {
		return err
	}
	if err := a.prompt.fillSecret(&req.Password, "Password"); err != nil {
		return err
	}
	if err := a.prompt.fillSecret(&req.ConfirmPassword, "Confirm password"); err != nil {
		return err
	}

	user, err := a.auth.Register(ctx, req)
	if err != nil {
		return err
	}
	a.out.Message(fmt.Sprintf("Account created for %s. Check %s for the OTP and run `wealthify verify-otp`.",
		displayName(user.Username, req.Username), req.Email))
	return nil
}

func runVerifyOTP(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("verify-otp")
	email := fs.String("email", "", "account email (defaults to the logged in user)")
	otp := fs.String("otp", "", "one-time password from the email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.defaultEmail(ctx, email); err != nil {
		return err
	}
	if err := a.prompt.fill(otp, "OTP"); err != nil {
		return err
	}
	msg, err := a.auth.VerifyOTP(ctx, *email, *otp)
	if err != nil {
		return err
	}
	a.out.Message(msg)
	return nil
}

func runResendOTP(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("resend-otp")
	email := fs.String("email", "", "account email (defaults to the logged in user)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.defaultEmail(ctx, email); err != nil {
		return err
	}
	msg, err := a.auth.ResendOTP(ctx, *email)
	if err != nil {
		return err
	}
	a.out.Message(msg)
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("logout").Parse(args); err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.out.Message("Logged out")
	return nil
}

func runStatus(ctx context.Context, a *app, args []string) error {
	if err := newFlagSet("status").Parse(args); err != nil {
		return err
	}
	st, err := a.auth.Status(ctx)
	if err != nil {
		return err
	}
	a.out.Status(st, a.now())
	return nil
}

func runProfile(ctx context.Context, a *app, args []string) error {
	act, rest := action(args, "show")
	switch act {
	case "show":
		if err := newFlagSet("profile show").Parse(rest); err != nil {
			return err
		}
		user, err := a.auth.Profile(ctx)
		if err != nil {
			return err
		}
		a.out.Profile(user)
		return nil
	case "update":
		fs := newFlagSet("profile update")
		username := fs.String("username", "", "new user name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.prompt.fill(username, "Username"); err != nil {
			return err
		}
		user, err := a.auth.UpdateUsername(ctx, *username)
		if err != nil {
			return err
		}
		a.out.Message("Profile updated")
		a.out.Profile(user)
		return nil
	default:
		return fmt.Errorf("unknown profile action %q: use show or update", act)
	}
}

func runPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var req api.UpdatePasswordRequest
	if err := a.prompt.fillSecret(&req.OldPassword, "Old password"); err != nil {
		return err
	}
	if err := a.prompt.fillSecret(&req.NewPassword, "New password"); err != nil {
		return err
	}
	if err := a.prompt.fillSecret(&req.ConfirmNewPassword, "Confirm new password"); err != nil {
		return err
	}
	msg, err := a.auth.ChangePassword(ctx, req)
	if err != nil {
		return err
	}
	a.out.Message(msg)
	return nil
}

// defaultEmail fills an empty email from the saved session, then prompts.
func (a *app) defaultEmail(ctx context.Context, email *string) error {
	if *email == "" {
		user, ok, err := a.session.User(ctx)
		if err != nil {
			return err
		}
		if ok {
			*email = user.Email
		}
	}
	return a.prompt.fill(email, "Email")
}

func displayName(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
