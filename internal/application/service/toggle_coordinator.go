package service

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is delivered for a debounced action that was replaced by a
// later Schedule call for the same id before it started.
var ErrSuperseded = errors.New("superseded by a later schedule for the same id")

// ToggleCoordinator collapses rapid repeated actions on the same entity id
// into a single effect. Each Schedule call resets the id's debounce timer
// and cancels the previous not-yet-started action for that id; an action
// that has begun execution always runs to completion. After an action
// finishes, if no entries remain pending for any id, the quiescence
// callback runs exactly once — one reconciling refresh per burst, however
// many ids the burst touched.
type ToggleCoordinator struct {
	delay time.Duration

	mu      sync.Mutex
	pending map[int]*pendingJob
}

type pendingJob struct {
	cancel context.CancelFunc
}

// NewToggleCoordinator creates a coordinator with the given debounce window.
func NewToggleCoordinator(delay time.Duration) *ToggleCoordinator {
	return &ToggleCoordinator{
		delay:   delay,
		pending: make(map[int]*pendingJob),
	}
}

// Schedule queues action to run after the debounce window elapses with no
// further Schedule call for id. The returned channel receives exactly one
// value: the action's error (possibly wrapped quiescence error), nil on
// success, or ErrSuperseded if a later call replaced this one first.
//
// onQuiescent may be nil. It runs after the action when the pending map is
// globally empty; its error is reported only when the action itself
// succeeded.
func (c *ToggleCoordinator) Schedule(
	ctx context.Context,
	id int,
	action func(context.Context) error,
	onQuiescent func(context.Context) error,
) <-chan error {
	result := make(chan error, 1)

	waitCtx, cancel := context.WithCancel(ctx)
	job := &pendingJob{cancel: cancel}

	c.mu.Lock()
	if prev, ok := c.pending[id]; ok {
		prev.cancel()
	}
	c.pending[id] = job
	c.mu.Unlock()

	go func() {
		defer cancel()

		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-waitCtx.Done():
			// Cancelled while still pending. Distinguish replacement from
			// caller cancellation.
			c.remove(id, job)
			if ctx.Err() != nil {
				result <- ctx.Err()
			} else {
				result <- ErrSuperseded
			}
			return
		case <-timer.C:
		}

		// Past the cancellation checkpoint: the action runs on the caller's
		// context and is not interrupted by later schedules for the same id.
		err := action(ctx)

		quiet := c.remove(id, job)
		if quiet && onQuiescent != nil {
			if qerr := onQuiescent(ctx); qerr != nil && err == nil {
				err = qerr
			}
		}
		result <- err
	}()

	return result
}

// remove drops the job from the pending map if it is still the live entry
// for id, and reports whether the map is now globally empty.
func (c *ToggleCoordinator) remove(id int, job *pendingJob) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending[id] == job {
		delete(c.pending, id)
	}
	return len(c.pending) == 0
}

// CancelAll cancels every pending (not-yet-started) action. Running actions
// are unaffected. Used on logout.
func (c *ToggleCoordinator) CancelAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, job := range c.pending {
		job.cancel()
	}
}

// PendingCount reports the number of live entries, for diagnostics.
func (c *ToggleCoordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
