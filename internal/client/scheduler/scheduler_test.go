package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/tripcal/internal/logging"
)

type fakeRefresher struct {
	calls atomic.Int32
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestNew_RejectsBadSpec(t *testing.T) {
	_, err := New("every now and then", &fakeRefresher{}, nil, logging.Nop())
	require.Error(t, err)
}

func TestNew_DefaultSpec(t *testing.T) {
	s, err := New("", &fakeRefresher{}, nil, logging.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, s.spec)
}

func TestRun_SkipsWhenInactive(t *testing.T) {
	r := &fakeRefresher{}
	active := false
	s, err := New("@every 1h", r, func() bool { return active }, logging.Nop())
	require.NoError(t, err)

	s.run(context.Background())
	assert.Zero(t, r.calls.Load())

	active = true
	s.run(context.Background())
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestRun_ErrorIsLoggedNotFatal(t *testing.T) {
	r := &fakeRefresher{err: errors.New("offline")}
	s, err := New("@every 1h", r, nil, logging.Nop())
	require.NoError(t, err)

	s.run(context.Background())
	assert.EqualValues(t, 1, r.calls.Load())
}

func TestStartStop_Ticks(t *testing.T) {
	r := &fakeRefresher{}
	s, err := New("@every 1s", r, nil, logging.Nop())
	require.NoError(t, err)

	s.Start(context.Background())
	assert.False(t, s.Next().IsZero())
	require.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
}
