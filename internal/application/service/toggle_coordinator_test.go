package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = 20 * time.Millisecond

func TestSchedule_RunsAfterDelay(t *testing.T) {
	c := NewToggleCoordinator(testDelay)

	var ran atomic.Int32
	ch := c.Schedule(context.Background(), 1, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}, nil)

	require.NoError(t, <-ch)
	assert.Equal(t, int32(1), ran.Load())
	assert.Equal(t, 0, c.PendingCount())
}

func TestSchedule_BurstCollapsesToLastAction(t *testing.T) {
	c := NewToggleCoordinator(testDelay)
	ctx := context.Background()

	var ran atomic.Int32
	action := func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}

	first := c.Schedule(ctx, 1, action, nil)
	second := c.Schedule(ctx, 1, action, nil)
	third := c.Schedule(ctx, 1, action, nil)

	assert.ErrorIs(t, <-first, ErrSuperseded)
	assert.ErrorIs(t, <-second, ErrSuperseded)
	require.NoError(t, <-third)
	assert.Equal(t, int32(1), ran.Load())
}

func TestSchedule_DistinctIDsRunIndependently(t *testing.T) {
	c := NewToggleCoordinator(testDelay)
	ctx := context.Background()

	var ran atomic.Int32
	action := func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}

	a := c.Schedule(ctx, 1, action, nil)
	b := c.Schedule(ctx, 2, action, nil)

	require.NoError(t, <-a)
	require.NoError(t, <-b)
	assert.Equal(t, int32(2), ran.Load())
}

func TestSchedule_QuiescenceFiresOncePerBurst(t *testing.T) {
	c := NewToggleCoordinator(testDelay)
	ctx := context.Background()

	// Hold every action until all three are in flight so the pending map
	// stays non-empty while any of them finishes early.
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(3)
	action := func(ctx context.Context) error {
		started.Done()
		<-release
		return nil
	}

	var quiescent atomic.Int32
	onQuiescent := func(ctx context.Context) error {
		quiescent.Add(1)
		return nil
	}

	results := []<-chan error{
		c.Schedule(ctx, 1, action, onQuiescent),
		c.Schedule(ctx, 2, action, onQuiescent),
		c.Schedule(ctx, 3, action, onQuiescent),
	}

	started.Wait()
	close(release)
	for _, ch := range results {
		require.NoError(t, <-ch)
	}

	assert.Equal(t, int32(1), quiescent.Load())
}

func TestSchedule_ActionErrorPropagates(t *testing.T) {
	c := NewToggleCoordinator(testDelay)
	boom := errors.New("boom")

	ch := c.Schedule(context.Background(), 1, func(ctx context.Context) error {
		return boom
	}, nil)

	assert.ErrorIs(t, <-ch, boom)
}

func TestSchedule_QuiescenceErrorOnlyWhenActionSucceeded(t *testing.T) {
	c := NewToggleCoordinator(testDelay)
	boom := errors.New("action failed")
	qerr := errors.New("refresh failed")

	onQuiescent := func(ctx context.Context) error { return qerr }

	ch := c.Schedule(context.Background(), 1, func(ctx context.Context) error {
		return boom
	}, onQuiescent)
	assert.ErrorIs(t, <-ch, boom)

	ch = c.Schedule(context.Background(), 1, func(ctx context.Context) error {
		return nil
	}, onQuiescent)
	assert.ErrorIs(t, <-ch, qerr)
}

func TestSchedule_StartedActionRunsToCompletion(t *testing.T) {
	c := NewToggleCoordinator(testDelay)
	ctx := context.Background()

	started := make(chan struct{})
	var ran atomic.Int32
	first := c.Schedule(ctx, 1, func(ctx context.Context) error {
		close(started)
		time.Sleep(2 * testDelay)
		ran.Add(1)
		return nil
	}, nil)

	// Schedule again only once the first action is past its checkpoint.
	<-started
	second := c.Schedule(ctx, 1, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}, nil)

	require.NoError(t, <-first)
	require.NoError(t, <-second)
	assert.Equal(t, int32(2), ran.Load())
}

func TestSchedule_CallerCancellation(t *testing.T) {
	c := NewToggleCoordinator(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	ch := c.Schedule(ctx, 1, func(ctx context.Context) error {
		t.Error("action must not run")
		return nil
	}, nil)

	cancel()
	assert.ErrorIs(t, <-ch, context.Canceled)
	assert.Equal(t, 0, c.PendingCount())
}

func TestCancelAll_DropsPendingActions(t *testing.T) {
	c := NewToggleCoordinator(time.Hour)
	ctx := context.Background()

	a := c.Schedule(ctx, 1, func(ctx context.Context) error {
		t.Error("action must not run")
		return nil
	}, nil)
	b := c.Schedule(ctx, 2, func(ctx context.Context) error {
		t.Error("action must not run")
		return nil
	}, nil)

	c.CancelAll()

	assert.ErrorIs(t, <-a, ErrSuperseded)
	assert.ErrorIs(t, <-b, ErrSuperseded)
	assert.Equal(t, 0, c.PendingCount())
}
