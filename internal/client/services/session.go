package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// Session is the part of session.Manager the services rely on.
type Session interface {
	Token(ctx context.Context) (string, error)
	SignIn(ctx context.Context, token string, profile models.Profile) (router.Route, error)
	SignOut(ctx context.Context) error
	Expire(ctx context.Context, reason error) error
}

var errNoSession = fmt.Errorf("%w: no session token", client.ErrUnauthorized)

// authed holds what every authenticated flow needs: the token source and
// the forced sign-out on a rejected session.
type authed struct {
	sess   Session
	logger logging.Logger
}

func (a authed) token(ctx context.Context) (string, error) {
	tok, err := a.sess.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if tok == "" {
		return "", a.check(ctx, errNoSession)
	}
	return tok, nil
}

// check signs the user out when err says the server rejected the session,
// and returns err unchanged.
func (a authed) check(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if xerr := a.sess.Expire(ctx, err); xerr != nil {
		a.logger.Error(ctx, "sign-out after rejected session failed", "error", xerr)
	}
	return err
}
