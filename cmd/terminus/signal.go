package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// setupSignalHandler creates a context that is cancelled when SIGINT or SIGTERM is received.
// It returns the context and a cleanup function that should be deferred.
// On the first signal, the context is cancelled for graceful shutdown.
// On a second signal before cleanup, the process exits immediately.
func setupSignalHandler(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	stopped := make(chan struct{})
	var once sync.Once

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)

		// First signal: cancel context for graceful shutdown
		select {
		case <-sigChan:
			cancel()
		case <-stopped:
			return
		}

		// Second signal: force exit
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nForce exit")
			os.Exit(130)
		case <-stopped:
		}
	}()

	return ctx, func() {
		once.Do(func() { close(stopped) })
		cancel()
	}
}
