// Package worker implements the long-running cooperative loops that drive
// the kernel: each repeatedly attempts to fire a small set
// of transitions, with timed delays and probabilistic choice, generalizing
// the shape common to every task_* function in original_source/tasks.c
// (fixed-cadence outer loop via vTaskDelayUntil, in-progress activity
// duration via a plain delay) into one reusable Go loop.
package worker

import (
	"context"
	"time"
)

// Step is one iteration of a worker's loop. It returns the delay to wait
// before the next iteration: workers with a busy/idle cadence (the QC
// worker, the packager) return a shorter delay after an iteration that
// fired something and a longer one after an iteration that didn't.
type Step func(ctx context.Context) time.Duration

// Run drives step in a loop until ctx is canceled, sleeping for whatever
// duration each step call returns. It returns ctx.Err() on cancellation.
func Run(ctx context.Context, step Step) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		delay := step(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// sleep blocks for d or until ctx is canceled, whichever comes first. Used
// to model an in-progress activity's duration without blocking the kernel:
// the token stays held in an intermediate place for the duration of this
// sleep.
func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
