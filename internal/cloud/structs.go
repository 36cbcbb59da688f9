package cloud

import (
	"context"
	"time"
)

// RetryPolicy defines the parameters for the exponential backoff and retry mechanism.
// It is built once from configuration at process start and never mutated; the delay
// sequence it produces is non-decreasing and bounded above by MaxDelay.
type RetryPolicy struct {
	// MaxAttempts is the total number of launch attempts, including the first one.
	// The provisioning loop never runs the operation more than MaxAttempts times.
	MaxAttempts int

	// InitialDelay is the wait time between the first and second attempt.
	// Subsequent delays grow geometrically (InitialDelay * BackoffMultiplier^n).
	InitialDelay time.Duration

	// MaxDelay is the hard limit for the sleep duration between attempts.
	// Even if the exponential calculation exceeds this value, the wait time will be capped here.
	MaxDelay time.Duration

	// BackoffMultiplier controls the growth rate of the delay sequence.
	// A multiplier of 1.0 keeps the delay constant at InitialDelay.
	BackoffMultiplier float64
}

// NextDelay computes the delay that follows the given one: current * multiplier,
// capped at MaxDelay. The caller sleeps for the *current* delay first; the returned
// value only takes effect before the attempt after that.
func (p RetryPolicy) NextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * p.BackoffMultiplier)
	if next > p.MaxDelay {
		next = p.MaxDelay
	}
	return next
}

// LaunchSpec describes the single instance to create. It is built once per run from
// validated configuration and treated as read-only by every attempt, so a retry is a
// true repeat of the same request rather than a mutation of it.
type LaunchSpec struct {
	CompartmentID      string
	ImageID            string
	Shape              string
	SubnetID           string
	AvailabilityDomain string
	DisplayName        string

	// Sizing parameters, required when Shape is a flexible class.
	OCPUs       *float32
	MemoryInGBs *float32

	BootVolumeSizeInGBs *int64
	AssignPublicIP      *bool

	// SSHAuthorizedKeys holds the resolved OpenSSH public key material, if any.
	SSHAuthorizedKeys string
}

// OutcomeKind discriminates the three possible results of a single launch attempt.
type OutcomeKind int

const (
	// OutcomeSuccess means the provider accepted the request and returned an instance id.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeRetryable means the provider reported a transient capacity shortage.
	OutcomeRetryable
	// OutcomeFatal means the request was rejected for any other reason, or the call
	// itself failed unexpectedly; the run must not retry.
	OutcomeFatal
)

// AttemptOutcome is the tagged result of exactly one launch attempt. Only the field
// matching Kind is populated; the provisioning loop consumes it immediately.
type AttemptOutcome struct {
	Kind OutcomeKind

	// InstanceID is the opaque provider identifier. Set when Kind == OutcomeSuccess.
	InstanceID string

	// Reason is the provider's capacity message. Set when Kind == OutcomeRetryable.
	Reason string

	// Err carries the full original error detail. Set when Kind == OutcomeFatal.
	Err error
}

// SuccessOutcome builds the outcome for a provider-accepted launch.
func SuccessOutcome(instanceID string) AttemptOutcome {
	return AttemptOutcome{Kind: OutcomeSuccess, InstanceID: instanceID}
}

// RetryableOutcome builds the outcome for a transient capacity failure.
func RetryableOutcome(reason string) AttemptOutcome {
	return AttemptOutcome{Kind: OutcomeRetryable, Reason: reason}
}

// FatalOutcome builds the outcome for a non-retryable failure. The error must not be
// summarized: it is the only evidence available when debugging a malformed request.
func FatalOutcome(err error) AttemptOutcome {
	return AttemptOutcome{Kind: OutcomeFatal, Err: err}
}

// Launcher performs exactly one remote create-instance call per invocation.
// Implementations classify provider errors themselves and never retry internally.
type Launcher interface {
	Launch(ctx context.Context, spec LaunchSpec) AttemptOutcome
}
