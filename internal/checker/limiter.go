package checker

// limiter.go bounds concurrent validation runs with a semaphore. A run
// decodes the whole file into memory, so unbounded parallelism would
// let a handful of 5 MB uploads exhaust the process. Requests that
// cannot get a slot within maxWait fail with ErrTooManyChecks.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyChecks is returned when every slot is occupied and the wait
// timeout expires. Clients should retry after a short delay.
var ErrTooManyChecks = errors.New("too many concurrent checks, please try again later")

const (
	defaultMaxConcurrentChecks = 4
	defaultMaxWaitTime         = 10 * time.Second
)

// checkLimiter is a counting semaphore over validation runs.
type checkLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

func newCheckLimiter(maxConcurrent int, maxWait time.Duration) *checkLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentChecks
	}
	if maxWait <= 0 {
		maxWait = defaultMaxWaitTime
	}
	return &checkLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// acquire blocks until a slot is free, the wait timeout expires, or ctx
// is cancelled. Callers must release exactly once per successful
// acquire.
func (l *checkLimiter) acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyChecks
	}
}

func (l *checkLimiter) release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.semaphore
}

func (l *checkLimiter) activeCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// waitForDrain blocks until no run is active or ctx is cancelled. Used
// during graceful shutdown.
func (l *checkLimiter) waitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.activeCount() == 0 {
				return nil
			}
		}
	}
}
