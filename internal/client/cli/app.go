package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/tripcal/internal/client/router"
	"github.com/dmitrijs2005/tripcal/internal/client/services"
	"github.com/dmitrijs2005/tripcal/internal/client/session"
	"github.com/dmitrijs2005/tripcal/internal/client/state"
	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// Lifecycle is the part of the session manager the front end drives.
type Lifecycle interface {
	Status() session.Status
	Bootstrap(ctx context.Context) error
	Background(ctx context.Context) error
	Foreground(ctx context.Context) (bool, error)
}

// Gate is consulted before a protected screen renders.
type Gate interface {
	Enter(ctx context.Context, route router.Route) bool
}

// Deps is everything the App needs; main builds it.
type Deps struct {
	Auth      services.AuthService
	Events    services.EventService
	Session   Lifecycle
	Gate      Gate
	Store     *state.Store
	Nav       router.Navigator
	Logger    logging.Logger
	In        io.Reader
	Out       io.Writer
	WeekStart time.Weekday
	Location  *time.Location
}

type App struct {
	auth      services.AuthService
	events    services.EventService
	sess      Lifecycle
	gate      Gate
	store     *state.Store
	nav       router.Navigator
	logger    logging.Logger
	reader    *bufio.Reader
	out       io.Writer
	weekStart time.Weekday
	loc       *time.Location
	now       func() time.Time
	anchor    time.Time
}

func NewApp(d Deps) *App {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	a := &App{
		auth:      d.Auth,
		events:    d.Events,
		sess:      d.Session,
		gate:      d.Gate,
		store:     d.Store,
		nav:       d.Nav,
		logger:    logger,
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
		weekStart: d.WeekStart,
		loc:       loc,
		now:       time.Now,
	}
	a.anchor = a.now().In(loc)
	return a
}

// Run checks the stored session, then serves commands until exit. The
// background time is recorded on the way out.
func (a *App) Run(ctx context.Context) error {
	unsubscribe := a.store.Subscribe(state.SliceModal, a.renderModal)
	defer unsubscribe()

	stop := watchLifecycle(ctx, a.sess, a.out, a.logger)
	defer stop()

	if expired, err := a.sess.Foreground(ctx); err != nil {
		a.logger.Warn(ctx, "inactivity check failed", "error", err)
	} else if expired {
		fmt.Fprintln(a.out, services.MsgSessionExpired)
	}

	if err := a.sess.Bootstrap(ctx); err != nil {
		a.logger.Warn(ctx, "stored session rejected", "error", err)
	}

	fmt.Fprintln(a.out, "tripcal (type 'help' for commands)")
	a.showCurrent(ctx)

	runREPL(ctx, a, a.status, a.reader)

	bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.sess.Background(bctx); err != nil {
		return fmt.Errorf("record background time: %w", err)
	}
	return nil
}

func (a *App) isSignedIn() bool {
	return a.sess.Status() == session.StatusAuthenticated && a.store.Profile() != nil
}

// status is the prompt suffix: the current screen and who is signed in.
func (a *App) status() string {
	s := string(a.nav.Current().Route)
	if p := a.store.Profile(); p != nil {
		s = fmt.Sprintf("%s %s", p.FullName(), s)
	}
	return s
}

// enter shows route if the gate lets it through. Denied routes have already
// been replaced by the gate's redirect.
func (a *App) enter(ctx context.Context, route router.Route, params map[string]string) bool {
	if !a.gate.Enter(ctx, route) {
		a.showCurrent(ctx)
		return false
	}
	switch cur := a.nav.Current().Route; {
	case cur == route:
	case isTab(cur) && isTab(route):
		a.nav.Replace(route, params)
	default:
		a.nav.Push(route, params)
	}
	return true
}

// isTab reports whether r is one of the tab bar screens, which replace each
// other instead of stacking.
func isTab(r router.Route) bool {
	switch r {
	case router.Home, router.Timeline, router.Calendar, router.Profile:
		return true
	}
	return false
}

// showCurrent prints a one-line hint for the screen the router is on.
func (a *App) showCurrent(ctx context.Context) {
	switch a.nav.Current().Route {
	case router.Login:
		fmt.Fprintln(a.out, "Please log in ('login') or create an account ('signup').")
	case router.EmailVerify:
		fmt.Fprintln(a.out, "Check your inbox and enter the code with 'verify' ('resend' for a new one).")
	case router.Home, router.Timeline:
		a.renderTimeline(ctx)
	}
}

// usageError is shown verbatim to the user.
type usageError string

func (e usageError) Error() string { return string(e) }

// message picks what the user sees for err.
func message(err error) string {
	var ue usageError
	if errors.As(err, &ue) {
		return string(ue)
	}
	return services.UserMessage(err)
}
