package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tripcal/internal/client/models"
	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/services"
	"github.com/dmitrijs2005/tripcal/internal/client/session"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
)

type fakeAuth struct {
	Err   error
	Route router.Route
	Msg   string

	LastEmail, LastPassword string
	LastFirst, LastLast     string
	LastCode                string
	LastConfirm             string
	Calls                   []string
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Login(ctx context.Context, email, password string) (router.Route, error) {
	f.Calls = append(f.Calls, "login")
	f.LastEmail, f.LastPassword = email, password
	return f.Route, f.Err
}

func (f *fakeAuth) Signup(ctx context.Context, first, last, email, password string) (router.Route, error) {
	f.Calls = append(f.Calls, "signup")
	f.LastFirst, f.LastLast, f.LastEmail, f.LastPassword = first, last, email, password
	return f.Route, f.Err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.Calls = append(f.Calls, "logout")
	return f.Err
}

func (f *fakeAuth) VerifyEmail(ctx context.Context, code string) error {
	f.Calls = append(f.Calls, "verify")
	f.LastCode = code
	return f.Err
}

func (f *fakeAuth) ResendVerification(ctx context.Context) (string, error) {
	f.Calls = append(f.Calls, "resend")
	return f.Msg, f.Err
}

func (f *fakeAuth) UpdateProfile(ctx context.Context, first, last, email string) error {
	f.Calls = append(f.Calls, "profile")
	f.LastFirst, f.LastLast, f.LastEmail = first, last, email
	return f.Err
}

func (f *fakeAuth) UpdatePassword(ctx context.Context, pw, confirm string) error {
	f.Calls = append(f.Calls, "password")
	f.LastPassword, f.LastConfirm = pw, confirm
	return f.Err
}

// fakeEvents mirrors the store and router effects of the real service so
// screens can be checked end to end.
type fakeEvents struct {
	store *state.Store
	nav   router.Navigator

	Err     error
	OpenRet *models.Event
	Options []models.AddressOption

	LastNew    models.NewEvent
	LastDelete models.EventID
	LastQuery  string
	Calls      []string
}

var _ services.EventService = (*fakeEvents)(nil)

func (f *fakeEvents) Refresh(ctx context.Context) error {
	f.Calls = append(f.Calls, "refresh")
	return f.Err
}

func (f *fakeEvents) Open(ctx context.Context, id models.EventID) (*models.Event, error) {
	f.Calls = append(f.Calls, "open")
	if f.Err != nil {
		return nil, f.Err
	}
	f.store.Dispatch(state.SetCurrentEvent{Event: *f.OpenRet})
	f.nav.Push(router.EventDetail, map[string]string{"eventId": id.String()})
	return f.OpenRet, nil
}

func (f *fakeEvents) CloseDetail() {
	f.Calls = append(f.Calls, "close")
	f.store.Dispatch(state.ClearCurrentEvent{})
	f.nav.Back()
}

func (f *fakeEvents) Create(ctx context.Context, ev models.NewEvent) error {
	f.Calls = append(f.Calls, "create")
	f.LastNew = ev
	return f.Err
}

func (f *fakeEvents) Delete(ctx context.Context, id models.EventID) error {
	f.Calls = append(f.Calls, "delete")
	f.LastDelete = id
	if f.Err != nil {
		return f.Err
	}
	f.store.Dispatch(state.ClearCurrentEvent{}, state.SetModal{})
	f.nav.Replace(router.Timeline, nil)
	return nil
}

func (f *fakeEvents) SearchAddress(ctx context.Context, query string) ([]models.AddressOption, error) {
	f.Calls = append(f.Calls, "search")
	f.LastQuery = query
	return f.Options, f.Err
}

func (f *fakeEvents) SelectAddress(opt models.AddressOption) {
	f.Calls = append(f.Calls, "select")
	f.store.Dispatch(state.SetPendingAddress{Address: opt.Formatted})
	if f.nav.Current().Route == router.AddAddress {
		f.nav.Back()
	}
}

type fakeLifecycle struct {
	status  session.Status
	expired bool
	Calls   []string
}

func (f *fakeLifecycle) Status() session.Status { return f.status }

func (f *fakeLifecycle) Bootstrap(ctx context.Context) error {
	f.Calls = append(f.Calls, "bootstrap")
	return nil
}

func (f *fakeLifecycle) Background(ctx context.Context) error {
	f.Calls = append(f.Calls, "background")
	return nil
}

func (f *fakeLifecycle) Foreground(ctx context.Context) (bool, error) {
	f.Calls = append(f.Calls, "foreground")
	return f.expired, nil
}

// fakeGate denies protected routes when deny is set, redirecting like the
// real gate.
type fakeGate struct {
	deny    bool
	nav     router.Navigator
	Entered []router.Route
}

func (g *fakeGate) Enter(ctx context.Context, route router.Route) bool {
	g.Entered = append(g.Entered, route)
	if g.deny && route.Protected() {
		g.nav.Replace(router.Login, nil)
		return false
	}
	return true
}

type testEnv struct {
	app    *App
	auth   *fakeAuth
	events *fakeEvents
	life   *fakeLifecycle
	gate   *fakeGate
	store  *state.Store
	nav    *router.Router
	out    *bytes.Buffer
}

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	store := state.New()
	nav := router.New(router.Home)
	env := &testEnv{
		auth:   &fakeAuth{Route: router.Home},
		events: &fakeEvents{store: store, nav: nav},
		life:   &fakeLifecycle{status: session.StatusAuthenticated},
		gate:   &fakeGate{nav: nav},
		store:  store,
		nav:    nav,
		out:    &bytes.Buffer{},
	}
	env.app = NewApp(Deps{
		Auth:      env.auth,
		Events:    env.events,
		Session:   env.life,
		Gate:      env.gate,
		Store:     store,
		Nav:       nav,
		In:        strings.NewReader(input),
		Out:       env.out,
		WeekStart: time.Monday,
		Location:  time.UTC,
	})
	env.app.now = func() time.Time { return testNow }
	env.app.anchor = testNow
	return env
}

func ptime(t time.Time) *time.Time { return &t }

func sampleGroups() []models.EventGroup {
	temp := 21.4
	return []models.EventGroup{{
		Date: "2025-03-04",
		Events: []models.Event{{
			ID:            "1",
			Title:         "Museum",
			StartDatetime: ptime(time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)),
			EndDatetime:   ptime(time.Date(2025, 3, 4, 19, 30, 0, 0, time.UTC)),
			Address:       "1 Main St",
			TravelMode:    models.TravelModeWalking,
			Weather:       "Clear",
			Temperature:   &temp,
		}},
	}}
}
