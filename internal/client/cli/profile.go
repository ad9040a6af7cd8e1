package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/services"
)

func (a *App) Profile(ctx context.Context) error {
	if !a.enter(ctx, router.Profile, nil) {
		return nil
	}
	p := a.store.Profile()
	if p == nil {
		return services.ErrNoProfile
	}
	fmt.Fprintf(a.out, "Name:  %s\nEmail: %s\n", p.FullName(), p.Email)
	return nil
}

// EditProfile offers the current values as defaults.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.enter(ctx, router.Profile, nil) {
		return nil
	}
	p := a.store.Profile()
	if p == nil {
		return services.ErrNoProfile
	}

	first, err := GetTextDefault(a.reader, "First name", p.FirstName, a.out)
	if err != nil {
		return err
	}
	last, err := GetTextDefault(a.reader, "Last name", p.LastName, a.out)
	if err != nil {
		return err
	}
	email, err := GetTextDefault(a.reader, "Email", p.Email, a.out)
	if err != nil {
		return err
	}

	if err := a.auth.UpdateProfile(ctx, first, last, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

func (a *App) Password(ctx context.Context) error {
	if !a.enter(ctx, router.Profile, nil) {
		return nil
	}
	pw, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.UpdatePassword(ctx, pw, confirm); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}
