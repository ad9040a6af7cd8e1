package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/validate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Login prompts for credentials and signs in. The landing screen depends on
// whether the account is verified.
func (a *App) Login(ctx context.Context) error {
	if a.nav.Current().Route != router.Login {
		a.nav.Replace(router.Login, nil)
	}

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	route, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.logger.Debug(ctx, "login landed", "route", string(route))
	fmt.Fprintln(a.out, "Signed in.")
	a.showCurrent(ctx)
	return nil
}

// Signup creates an account. New accounts always land on email
// verification.
func (a *App) Signup(ctx context.Context) error {
	if a.nav.Current().Route != router.Signup {
		a.nav.Replace(router.Signup, nil)
	}

	first, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Repeat password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return &validate.FieldError{Field: "confirmPassword", Message: validate.MsgPasswordMismatch}
	}

	if _, err := a.auth.Signup(ctx, first, last, email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created.")
	a.showCurrent(ctx)
	return nil
}

func (a *App) Verify(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Verification code", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.VerifyEmail(ctx, code); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Email verified.")
	a.showCurrent(ctx)
	return nil
}

func (a *App) Resend(ctx context.Context) error {
	msg, err := a.auth.ResendVerification(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}
