// Package services holds the user-facing flows of the tripcal client:
// sign-in and profile management (AuthService) and the event mutation flow
// (EventService). Screens call these; they validate input, call the backend
// and write the results into the shared state.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/client/validate"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// AuthService defines the account operations.
//
// Login and Signup return the route the user lands on. Every method honors
// context cancellation; a rejected session signs the user out.
type AuthService interface {
	Login(ctx context.Context, email, password string) (router.Route, error)
	Signup(ctx context.Context, firstName, lastName, email, password string) (router.Route, error)
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context, code string) error
	ResendVerification(ctx context.Context) (string, error)
	UpdateProfile(ctx context.Context, firstName, lastName, email string) error
	UpdatePassword(ctx context.Context, newPassword, confirm string) error
}

type authService struct {
	authed
	api      client.Client
	store    *state.Store
	nav      router.Navigator
	language string
	guard    *inflight
}

func NewAuthService(api client.Client, sess Session, store *state.Store, nav router.Navigator, language string, logger logging.Logger) AuthService {
	return &authService{
		authed:   authed{sess: sess, logger: logger},
		api:      api,
		store:    store,
		nav:      nav,
		language: language,
		guard:    newInflight(),
	}
}

// credentialsError hides a 401 from the login endpoint behind the generic
// message: wrong credentials are not an expired session.
func credentialsError(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return &client.ServerError{Message: validate.MsgInvalidCredentials}
	}
	return err
}

func (s *authService) Login(ctx context.Context, email, password string) (router.Route, error) {
	if err := validate.Login(email, password); err != nil {
		return "", err
	}
	release, err := s.guard.acquire("login")
	if err != nil {
		return "", err
	}
	defer release()

	token, err := s.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("login: %w", credentialsError(err))
	}

	profile, err := s.api.GetProfile(ctx, token)
	if err != nil {
		return "", fmt.Errorf("fetch profile: %w", credentialsError(err))
	}

	s.logger.Info(ctx, "signed in", "email", email)
	return s.sess.SignIn(ctx, token, *profile)
}

func (s *authService) Signup(ctx context.Context, firstName, lastName, email, password string) (router.Route, error) {
	if err := validate.Signup(firstName, lastName, email, password); err != nil {
		return "", err
	}
	release, err := s.guard.acquire("signup")
	if err != nil {
		return "", err
	}
	defer release()

	res, err := s.api.Register(ctx, models.Registration{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Language:  s.language,
	})
	if err != nil {
		return "", fmt.Errorf("register: %w", credentialsError(err))
	}

	s.logger.Info(ctx, "account created", "email", email, "activated", res.IsActivated)
	return s.sess.SignIn(ctx, res.Token, res.Profile)
}

// Logout tells the server first and clears local state regardless of the
// outcome.
func (s *authService) Logout(ctx context.Context) error {
	tok, err := s.sess.Token(ctx)
	if err != nil {
		s.logger.Warn(ctx, "logout: could not read token", "error", err)
	}
	if tok != "" {
		if err := s.api.Logout(ctx, tok); err != nil {
			s.logger.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
		}
	}
	s.store.Dispatch(state.SetPendingAddress{})
	return s.sess.SignOut(ctx)
}

func (s *authService) VerifyEmail(ctx context.Context, code string) error {
	if err := validate.VerificationCode(code); err != nil {
		return err
	}
	release, err := s.guard.acquire("verify")
	if err != nil {
		return err
	}
	defer release()

	tok, err := s.token(ctx)
	if err != nil {
		return err
	}

	ok, err := s.api.VerifyEmail(ctx, tok, code)
	if err != nil {
		return s.check(ctx, fmt.Errorf("verify email: %w", err))
	}
	if !ok {
		return ErrInvalidCode
	}

	activated := true
	profile, err := s.api.UpdateProfile(ctx, tok, models.ProfilePatch{IsActivated: &activated})
	if err != nil {
		return s.check(ctx, fmt.Errorf("activate profile: %w", err))
	}

	s.store.Dispatch(state.SetProfile{Profile: *profile})
	s.nav.Replace(router.Home, nil)
	return nil
}

// ResendVerification asks for a new code and returns the server's message.
func (s *authService) ResendVerification(ctx context.Context) (string, error) {
	p := s.store.Profile()
	if p == nil {
		return "", ErrNoProfile
	}
	tok, err := s.token(ctx)
	if err != nil {
		return "", err
	}

	msg, err := s.api.ResendVerification(ctx, tok, p.Email, s.language)
	if err != nil {
		return "", s.check(ctx, fmt.Errorf("resend verification: %w", err))
	}
	return msg, nil
}

func (s *authService) UpdateProfile(ctx context.Context, firstName, lastName, email string) error {
	if err := validate.Profile(firstName, lastName, email); err != nil {
		return err
	}
	release, err := s.guard.acquire("profile")
	if err != nil {
		return err
	}
	defer release()

	tok, err := s.token(ctx)
	if err != nil {
		return err
	}

	profile, err := s.api.UpdateProfile(ctx, tok, models.ProfilePatch{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	})
	if err != nil {
		return s.check(ctx, fmt.Errorf("update profile: %w", err))
	}

	s.store.Dispatch(state.SetProfile{Profile: *profile})
	return nil
}

func (s *authService) UpdatePassword(ctx context.Context, newPassword, confirm string) error {
	if err := validate.PasswordChange(newPassword, confirm); err != nil {
		return err
	}
	release, err := s.guard.acquire("password")
	if err != nil {
		return err
	}
	defer release()

	tok, err := s.token(ctx)
	if err != nil {
		return err
	}

	err = s.api.UpdatePassword(ctx, tok, models.PasswordChange{NewPassword: newPassword, ConfirmPassword: confirm})
	if err != nil {
		return s.check(ctx, fmt.Errorf("update password: %w", err))
	}
	return nil
}
