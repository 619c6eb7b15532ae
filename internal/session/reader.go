package session

import (
	"context"
	"sync"

	terrors "github.com/flashingpumpkin/terminus/internal/errors"
)

// Reader is a single-slot request/response channel between the input field
// and the REPL. At most one read may be waiting at a time.
type Reader struct {
	mu      sync.Mutex
	pending chan string   // Slot of the waiting read, nil when idle
	armed   chan struct{} // Closed while a read is waiting
}

// NewReader creates an idle Reader.
func NewReader() *Reader {
	return &Reader{armed: make(chan struct{})}
}

// ReadLine blocks until the next submitted line. A second concurrent call
// fails with ErrReadPending rather than displacing the first waiter.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.pending != nil {
		r.mu.Unlock()
		return "", terrors.ErrReadPending
	}
	slot := make(chan string, 1)
	r.pending = slot
	close(r.armed)
	r.mu.Unlock()

	select {
	case line := <-slot:
		return line, nil
	case <-ctx.Done():
		r.mu.Lock()
		if r.pending == slot {
			r.disarm()
		}
		r.mu.Unlock()
		// A submit may have won the race for the slot.
		select {
		case line := <-slot:
			return line, nil
		default:
		}
		return "", ctx.Err()
	}
}

// disarm clears the slot. Must be called with r.mu held.
func (r *Reader) disarm() {
	r.pending = nil
	r.armed = make(chan struct{})
}

// Submit fulfils the waiting read with line. Returns false, dropping the
// line, when nobody is waiting.
func (r *Reader) Submit(line string) bool {
	r.mu.Lock()
	slot := r.pending
	if slot == nil {
		r.mu.Unlock()
		return false
	}
	r.disarm()
	slot <- line // Buffered; never blocks
	r.mu.Unlock()
	return true
}

// SubmitWait waits for a read to become pending, then fulfils it.
func (r *Reader) SubmitWait(ctx context.Context, line string) error {
	for {
		if r.Submit(line) {
			return nil
		}
		if err := r.WaitPending(ctx); err != nil {
			return err
		}
	}
}

// WaitPending blocks until a read is waiting.
func (r *Reader) WaitPending(ctx context.Context) error {
	r.mu.Lock()
	armed := r.armed
	r.mu.Unlock()

	select {
	case <-armed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending reports whether a read is waiting.
func (r *Reader) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil
}
