package session

import (
	"context"
	"time"
)

// Ticker is an owned, cancellable background task calling fn on every tick.
type Ticker struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartTicker runs fn every interval until Stop is called or ctx is done.
func StartTicker(ctx context.Context, interval time.Duration, fn func()) *Ticker {
	ctx, cancel := context.WithCancel(ctx)
	t := &Ticker{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				fn()
			}
		}
	}()

	return t
}

// Stop cancels the task and waits for its goroutine to exit. Safe to call
// more than once and on a nil Ticker.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}
	t.cancel()
	<-t.done
}

// Running reports whether the task is still active.
func (t *Ticker) Running() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}
