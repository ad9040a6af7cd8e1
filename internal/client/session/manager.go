package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/tripcal/internal/client/client"
	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/client/tokenstore"
	"github.com/dmitrijs2005/tripcal/internal/common"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// DefaultInactivityTimeout is how long the app may stay in background before
// the session is dropped.
const DefaultInactivityTimeout = 24 * time.Hour

type Status int

const (
	StatusUnknown Status = iota
	StatusChecking
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

type Manager struct {
	mu sync.Mutex

	api    client.Client
	tokens tokenstore.Store
	meta   metadata.Repository
	store  *state.Store
	nav    router.Navigator
	logger logging.Logger

	inactivity time.Duration
	now        func() time.Time

	statusMu sync.RWMutex
	status   Status
}

type Option func(*Manager)

func WithInactivityTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.inactivity = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(
	api client.Client,
	tokens tokenstore.Store,
	meta metadata.Repository,
	store *state.Store,
	nav router.Navigator,
	logger logging.Logger,
	opts ...Option,
) *Manager {
	m := &Manager{
		api:        api,
		tokens:     tokens,
		meta:       meta,
		store:      store,
		nav:        nav,
		logger:     logger,
		inactivity: DefaultInactivityTimeout,
		now:        time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Manager) Status() Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.statusMu.Lock()
	prev := m.status
	m.status = s
	m.statusMu.Unlock()
	if prev != s {
		m.logger.Debug(context.Background(), "session status changed", "from", prev.String(), "to", s.String())
	}
}

// Token returns the stored session token, or "" when signed out.
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.tokens.Load(ctx, common.TokenKey)
}

// Bootstrap decides the first screen. With no stored token it shows the
// login screen. Otherwise it loads the profile and the event list in
// parallel; if either fails the token is dropped and the login screen shown.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setStatus(StatusChecking)

	token, err := m.tokens.Load(ctx, common.TokenKey)
	if err != nil {
		m.logger.Warn(ctx, "loading session token failed", "error", err)
		token = ""
	}
	if token == "" {
		m.store.Dispatch(state.ClearSession()...)
		m.setStatus(StatusUnauthenticated)
		m.nav.Replace(router.Login, nil)
		return nil
	}

	var (
		profile *models.Profile
		groups  []models.EventGroup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := m.api.GetProfile(gctx, token)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if p == nil {
			return errors.New("get profile: empty response")
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		evs, err := m.api.ListEvents(gctx, token)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		groups = evs
		return nil
	})

	if err := g.Wait(); err != nil {
		m.logger.Warn(ctx, "session check failed, signing out", "error", err)
		if cerr := m.clearLocked(ctx); cerr != nil {
			return errors.Join(err, cerr)
		}
		return err
	}

	m.store.Dispatch(state.SetProfile{Profile: *profile}, state.SetEvents{Groups: groups})
	m.setStatus(StatusAuthenticated)
	m.nav.Replace(landing(profile, token))
	return nil
}

// SignIn stores a fresh token and profile and moves to the first signed-in
// screen, which is the verification screen for unverified accounts.
func (m *Manager) SignIn(ctx context.Context, token string, profile models.Profile) (router.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tokens.Save(ctx, common.TokenKey, token); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}
	m.store.Dispatch(state.SetProfile{Profile: profile})
	m.setStatus(StatusAuthenticated)

	route, params := landing(&profile, token)
	m.nav.Replace(route, params)
	return route, nil
}

// SignOut drops the token and every user-bound slice and shows the login
// screen.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked(ctx)
}

// Expire is SignOut for a session the server no longer accepts.
func (m *Manager) Expire(ctx context.Context, reason error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info(ctx, "session expired", "reason", reason)
	return m.clearLocked(ctx)
}

func (m *Manager) clearLocked(ctx context.Context) error {
	m.store.Dispatch(state.ClearSession()...)
	m.setStatus(StatusUnauthenticated)
	m.nav.Replace(router.Login, nil)

	if err := m.tokens.Delete(ctx, common.TokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Background records when the app left the foreground.
func (m *Manager) Background(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp := strconv.FormatInt(m.now().UnixMilli(), 10)
	if err := m.meta.Set(ctx, common.BackgroundTimeKey, []byte(stamp)); err != nil {
		return fmt.Errorf("save background time: %w", err)
	}
	return nil
}

// Foreground consumes the background timestamp and signs out when the app
// was away for at least the inactivity timeout. It reports whether it did.
func (m *Manager) Foreground(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := m.meta.Get(ctx, common.BackgroundTimeKey)
	if err != nil {
		return false, fmt.Errorf("load background time: %w", err)
	}
	if raw == nil {
		return false, nil
	}
	if err := m.meta.Delete(ctx, common.BackgroundTimeKey); err != nil {
		return false, fmt.Errorf("delete background time: %w", err)
	}

	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		m.logger.Warn(ctx, "ignoring unreadable background time", "value", string(raw))
		return false, nil
	}

	away := m.now().Sub(time.UnixMilli(millis))
	if away < m.inactivity {
		return false, nil
	}

	m.logger.Info(ctx, "inactive too long, signing out", "away", away.Round(time.Second).String())
	if err := m.clearLocked(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// landing is the first screen after a successful sign-in.
func landing(p *models.Profile, token string) (router.Route, map[string]string) {
	if p == nil || !p.IsActivated {
		return router.EmailVerify, map[string]string{"token": token}
	}
	return router.Home, nil
}
