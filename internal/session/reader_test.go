package session

import (
	"context"
	"errors"
	"testing"
	"time"

	terrors "github.com/flashingpumpkin/terminus/internal/errors"
)

func TestReader_SubmitWithoutReaderIsDropped(t *testing.T) {
	r := NewReader()

	if r.Submit("lost") {
		t.Error("Submit() with no pending read should return false")
	}
	if r.Pending() {
		t.Error("reader should be idle")
	}
}

func TestReader_ReadLineReceivesSubmit(t *testing.T) {
	r := NewReader()
	got := make(chan string, 1)

	go func() {
		line, _ := r.ReadLine(context.Background())
		got <- line
	}()
	waitPending(t, r)

	if !r.Submit("hello") {
		t.Fatal("Submit() should fulfil the pending read")
	}
	if line := <-got; line != "hello" {
		t.Errorf("ReadLine() = %q, want hello", line)
	}
	if r.Pending() {
		t.Error("slot should be cleared after the read is fulfilled")
	}
}

func TestReader_RejectsConcurrentRead(t *testing.T) {
	r := NewReader()
	got := make(chan string, 1)

	go func() {
		line, _ := r.ReadLine(context.Background())
		got <- line
	}()
	waitPending(t, r)

	_, err := r.ReadLine(context.Background())
	if !errors.Is(err, terrors.ErrReadPending) {
		t.Fatalf("second ReadLine() error = %v, want ErrReadPending", err)
	}

	// The first waiter is untouched.
	r.Submit("first")
	select {
	case line := <-got:
		if line != "first" {
			t.Errorf("first reader got %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first reader was never resumed")
	}
}

func TestReader_CancelClearsSlot(t *testing.T) {
	r := NewReader()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		_, err := r.ReadLine(ctx)
		errCh <- err
	}()
	waitPending(t, r)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadLine() error = %v, want context.Canceled", err)
	}
	if r.Pending() {
		t.Error("cancelled read should release the slot")
	}
	if r.Submit("late") {
		t.Error("Submit() after cancel should be dropped")
	}
}

func TestReader_SubmitWaitBlocksUntilRead(t *testing.T) {
	r := NewReader()
	done := make(chan error, 1)

	go func() { done <- r.SubmitWait(context.Background(), "queued") }()

	line, err := r.ReadLine(context.Background())
	if err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	if line != "queued" {
		t.Errorf("ReadLine() = %q, want queued", line)
	}
	if err := <-done; err != nil {
		t.Errorf("SubmitWait() error = %v", err)
	}
}

func TestReader_SubmitWaitHonoursContext(t *testing.T) {
	r := NewReader()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := r.SubmitWait(ctx, "never"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("SubmitWait() error = %v, want DeadlineExceeded", err)
	}
}
