package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/session"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/client/storage"
	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

type env struct {
	api    *fakeClient
	tokens *memTokens
	store  *state.Store
	nav    *router.Router
	sess   *session.Manager
	auth   AuthService
	events EventService
}

func newEnv(t *testing.T, token string) *env {
	t.Helper()
	repos, err := storage.OpenDataDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	e := &env{
		api:    &fakeClient{},
		tokens: &memTokens{},
		store:  state.New(),
		nav:    router.New(router.Login),
	}
	if token != "" {
		require.NoError(t, e.tokens.Save(context.Background(), common.TokenKey, token))
	}
	log := logging.Nop()
	e.sess = session.NewManager(e.api, e.tokens, repos.Metadata, e.store, e.nav, log)
	e.auth = NewAuthService(e.api, e.sess, e.store, e.nav, "en", log)
	e.events = NewEventService(e.api, e.sess, e.store, e.nav, log)
	return e
}

func (e *env) token(t *testing.T) string {
	t.Helper()
	tok, err := e.tokens.Load(context.Background(), common.TokenKey)
	require.NoError(t, err)
	return tok
}

func verified() models.Profile {
	return models.Profile{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", IsActivated: true}
}
