package core

// action_limiter.go caps how many row actions run at once.
//
// Actions write to the backend, so a burst of clicks across sessions can
// pile up writes against one kind. The limiter hands out a fixed number of
// slots; a caller that cannot get one within the queue wait fails with
// ErrTooManyActions instead of queueing forever. Drain blocks shutdown
// until running actions finish.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyActions is returned when no action slot frees up in time.
var ErrTooManyActions = errors.New("too many concurrent actions")

const (
	defaultActionSlots     = 8
	defaultActionQueueWait = 5 * time.Second
)

// ActionLimiter is a counting semaphore for row actions.
type ActionLimiter struct {
	slots chan struct{}
	wait  time.Duration

	mu      sync.Mutex
	running int
	idle    chan struct{} // closed while running == 0
}

// NewActionLimiter allows slots concurrent actions, each waiting at most
// wait for its turn. Non-positive values fall back to the defaults.
func NewActionLimiter(slots int, wait time.Duration) *ActionLimiter {
	if slots <= 0 {
		slots = defaultActionSlots
	}
	if wait <= 0 {
		wait = defaultActionQueueWait
	}
	idle := make(chan struct{})
	close(idle)
	return &ActionLimiter{
		slots: make(chan struct{}, slots),
		wait:  wait,
		idle:  idle,
	}
}

// Acquire takes a slot. Every successful Acquire must be paired with
// Release.
func (l *ActionLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.mu.Lock()
		if l.running == 0 {
			l.idle = make(chan struct{})
		}
		l.running++
		l.mu.Unlock()
		return nil
	case <-timer.C:
		return ErrTooManyActions
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (l *ActionLimiter) Release() {
	l.mu.Lock()
	l.running--
	if l.running == 0 {
		close(l.idle)
	}
	l.mu.Unlock()
	<-l.slots
}

// Running returns the number of actions holding a slot.
func (l *ActionLimiter) Running() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Slots returns the configured capacity.
func (l *ActionLimiter) Slots() int { return cap(l.slots) }

// Drain waits until no action is running or ctx ends.
func (l *ActionLimiter) Drain(ctx context.Context) error {
	for {
		l.mu.Lock()
		idle := l.idle
		l.mu.Unlock()

		select {
		case <-idle:
			// A new action may have started between the close and this wakeup.
			if l.Running() == 0 {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
