// Package cli holds process-level helpers shared by the scan-report
// subcommands: interrupt handling and logger setup.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// SignalContext returns a context cancelled on SIGINT/SIGTERM, so a
// running report (notably a headless Chrome conversion) stops early.
// If a second signal arrives within gracePeriod the process exits with
// status 1.
//
// Usage:
//
//	ctx, cancel := cli.SignalContext(5 * time.Second)
//	defer cancel()
//	res, err := pipeline.Run(ctx, job)
func SignalContext(gracePeriod time.Duration) (context.Context, context.CancelFunc) {
	return watchSignals(gracePeriod, nil, os.Stderr, os.Exit)
}

// watchSignals is SignalContext with injectable signal source, output
// and exit function. A nil sigs subscribes to the real signals.
func watchSignals(gracePeriod time.Duration, sigs chan os.Signal, stderr io.Writer, exit func(int)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	subscribed := sigs == nil
	if subscribed {
		sigs = make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	}

	go func() {
		defer func() {
			if subscribed {
				signal.Stop(sigs)
			}
		}()

		select {
		case <-ctx.Done():
			return
		case sig := <-sigs:
			fmt.Fprintf(stderr, "\n%s received, stopping (repeat to force)...\n", sig)
			cancel()
		}

		timer := time.NewTimer(gracePeriod)
		defer timer.Stop()
		select {
		case <-sigs:
			exit(1)
		case <-timer.C:
		}
	}()

	return ctx, cancel
}
