package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

func TestGate_Check(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		profile *models.Profile
		want    router.Route
		wantTok string
	}{
		{name: "no token", want: router.Login},
		{name: "no token with profile", profile: &models.Profile{IsActivated: true}, want: router.Login},
		{name: "no profile", token: "t", want: router.EmailVerify, wantTok: "t"},
		{name: "unverified", token: "t", profile: &models.Profile{}, want: router.EmailVerify, wantTok: "t"},
		{name: "verified", token: "t", profile: &models.Profile{IsActivated: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := newMemTokens()
			if tt.token != "" {
				tokens = newMemTokens(common.TokenKey, tt.token)
			}
			store := state.New()
			if tt.profile != nil {
				store.Dispatch(state.SetProfile{Profile: *tt.profile})
			}

			g := NewGate(tokens, store, router.New(router.Home), logging.Nop())
			d := g.Check(context.Background())
			assert.Equal(t, tt.want, d.Redirect)
			assert.Equal(t, tt.want == "", d.Allowed())
			assert.Equal(t, tt.wantTok, d.Params["token"])
		})
	}
}

func TestGate_Enter(t *testing.T) {
	nav := router.New(router.Home)
	g := NewGate(newMemTokens(), state.New(), nav, logging.Nop())
	ctx := context.Background()

	assert.True(t, g.Enter(ctx, router.Signup))
	assert.Equal(t, router.Home, nav.Current().Route)

	assert.False(t, g.Enter(ctx, router.Timeline))
	assert.Equal(t, router.Login, nav.Current().Route)
}
