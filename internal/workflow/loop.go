package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud"
)

// RunState is the terminal state of a provisioning run.
type RunState int

const (
	// StateSucceeded means an attempt returned an instance id.
	StateSucceeded RunState = iota
	// StateFailedFatal means an attempt failed with a non-retryable error
	// (or a backoff wait was interrupted); no further attempts were made.
	StateFailedFatal
	// StateFailedExhausted means every attempt up to the configured maximum was a
	// transient capacity failure. Surfaced distinctly from StateFailedFatal so an
	// operator can tell "still out of capacity" apart from "request is broken".
	StateFailedExhausted
)

func (s RunState) String() string {
	switch s {
	case StateSucceeded:
		return "succeeded"
	case StateFailedFatal:
		return "failed-fatal"
	case StateFailedExhausted:
		return "failed-exhausted"
	default:
		return "unknown"
	}
}

// ProvisionResult summarizes one provisioning run.
type ProvisionResult struct {
	State      RunState
	InstanceID string
	Attempts   int
	Err        error
}

// Loop drives launch attempts until success, a fatal error, or attempt exhaustion.
// Exactly one attempt is in flight at any time; the only suspension point is the
// backoff wait between attempts.
type Loop struct {
	Launcher cloud.Launcher
	Policy   cloud.RetryPolicy
	Logger   *slog.Logger

	// Sleep suspends between attempts. Left nil, it waits for the given duration
	// while honoring context cancellation. Tests inject a recording fake.
	Sleep func(ctx context.Context, d time.Duration) error
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run replays the identical launch spec until a terminal state is reached.
//
// Per iteration: increment the attempt counter and invoke the launcher.
//   - Success ends the run immediately, regardless of remaining attempt budget.
//   - A fatal failure ends the run immediately; the error is propagated untouched.
//   - A retryable failure on the final attempt ends the run as exhausted, with no
//     trailing wait. Otherwise the loop sleeps for the current delay, advances the
//     delay through the policy, and tries again.
func (l *Loop) Run(ctx context.Context, spec cloud.LaunchSpec) ProvisionResult {
	sleep := l.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	attempt := 0
	currentDelay := l.Policy.InitialDelay

	for attempt < l.Policy.MaxAttempts {
		attempt++
		l.Logger.Info("Launching instance",
			"attempt", attempt,
			"max_attempts", l.Policy.MaxAttempts)

		outcome := l.Launcher.Launch(ctx, spec)

		switch outcome.Kind {
		case cloud.OutcomeSuccess:
			l.Logger.Info("Instance launched successfully", "instance_id", outcome.InstanceID)
			return ProvisionResult{State: StateSucceeded, InstanceID: outcome.InstanceID, Attempts: attempt}

		case cloud.OutcomeFatal:
			l.Logger.Error("Non-retryable launch failure", "attempt", attempt, "error", outcome.Err)
			return ProvisionResult{State: StateFailedFatal, Attempts: attempt, Err: outcome.Err}

		case cloud.OutcomeRetryable:
			if attempt == l.Policy.MaxAttempts {
				l.Logger.Error("Max launch attempts reached, giving up",
					"attempts", attempt,
					"last_reason", outcome.Reason)
				return ProvisionResult{
					State:    StateFailedExhausted,
					Attempts: attempt,
					Err: fmt.Errorf("no capacity after %d attempts (last reason: %s)",
						attempt, outcome.Reason),
				}
			}

			nextDelay := l.Policy.NextDelay(currentDelay)
			l.Logger.Warn("Capacity shortage reported, scheduling retry",
				"attempt", attempt,
				"reason", outcome.Reason,
				"wait", currentDelay,
				"next_wait", nextDelay)

			if err := sleep(ctx, currentDelay); err != nil {
				return ProvisionResult{
					State:    StateFailedFatal,
					Attempts: attempt,
					Err:      fmt.Errorf("interrupted during backoff after attempt %d: %w", attempt, err),
				}
			}
			currentDelay = nextDelay
		}
	}

	// Unreachable while MaxAttempts > 0; kept so the function is total for a
	// zero-value policy.
	return ProvisionResult{
		State: StateFailedExhausted,
		Err:   fmt.Errorf("no launch attempts performed (max_attempts=%d)", l.Policy.MaxAttempts),
	}
}
