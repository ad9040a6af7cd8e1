package session

import (
	"context"

	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/client/tokenstore"
	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// Decision is the outcome of a gate check. A zero Redirect means the screen
// may render.
type Decision struct {
	Redirect router.Route
	Params   map[string]string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Gate guards the protected screens.
type Gate struct {
	tokens tokenstore.Store
	store  *state.Store
	nav    router.Navigator
	logger logging.Logger
}

func NewGate(tokens tokenstore.Store, store *state.Store, nav router.Navigator, logger logging.Logger) *Gate {
	return &Gate{tokens: tokens, store: store, nav: nav, logger: logger}
}

// Check runs on every protected screen mount. Without a token the user goes
// to the login screen; with an unverified or missing profile, to the
// verification screen.
func (g *Gate) Check(ctx context.Context) Decision {
	token, err := g.tokens.Load(ctx, common.TokenKey)
	if err != nil {
		g.logger.Warn(ctx, "gate could not read token", "error", err)
		token = ""
	}
	if token == "" {
		return Decision{Redirect: router.Login}
	}

	p := g.store.Profile()
	if p == nil || !p.IsActivated {
		return Decision{Redirect: router.EmailVerify, Params: map[string]string{"token": token}}
	}
	return Decision{}
}

// Enter checks route and, when denied, replaces the current screen with the
// redirect. Unprotected routes always pass. It reports whether route may
// render.
func (g *Gate) Enter(ctx context.Context, route router.Route) bool {
	if !route.Protected() {
		return true
	}
	d := g.Check(ctx)
	if d.Allowed() {
		return true
	}
	g.nav.Replace(d.Redirect, d.Params)
	return false
}
