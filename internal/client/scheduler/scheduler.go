// Package scheduler refreshes the event list in the background while a
// session is signed in.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/tripcal/internal/logging"
)

// DefaultSchedule refreshes every five minutes.
const DefaultSchedule = "@every 5m"

// Refresher is what the scheduler runs; services.EventService satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler runs Refresh on a cron schedule. A tick is skipped when active
// reports false or the previous run is still going.
type Scheduler struct {
	cron    *cron.Cron
	target  Refresher
	active  func() bool
	logger  logging.Logger
	spec    string
	entryID cron.EntryID

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func New(spec string, target Refresher, active func() bool, logger logging.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", spec, err)
	}

	s := &Scheduler{
		target: target,
		active: active,
		logger: logger,
		spec:   spec,
	}
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	id, err := s.cron.AddFunc(spec, s.tick)
	if err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", spec, err)
	}
	s.entryID = id
	return s, nil
}

// Start begins ticking. Runs use a context derived from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Debug(ctx, "refresh scheduler started", "schedule", s.spec)
}

// Stop cancels a running refresh and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

// Next is the time of the next tick; zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	if s.active != nil && !s.active() {
		return
	}
	if err := s.target.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "scheduled refresh failed", "error", err)
		return
	}
	s.logger.Debug(ctx, "scheduled refresh done")
}
