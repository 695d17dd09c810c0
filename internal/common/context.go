package common

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithInterrupt creates a context that is cancelled when an interrupt signal
// (SIGINT or SIGTERM) is received. Returns the context and a cleanup function
// that should be called when done (typically via defer).
func WithInterrupt(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
			// Context was cancelled by other means, exit goroutine
		}
	}()

	cleanup := func() {
		signal.Stop(sigChan)
		cancel()
	}

	return ctx, cleanup
}
