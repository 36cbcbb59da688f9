package cloud

import (
	"testing"
	"time"
)

func TestRetryPolicy_NextDelay(t *testing.T) {
	tests := []struct {
		name    string
		policy  RetryPolicy
		current time.Duration
		want    time.Duration
	}{
		{
			name:    "Doubles Below Cap",
			policy:  RetryPolicy{MaxDelay: 20 * time.Second, BackoffMultiplier: 2.0},
			current: 5 * time.Second,
			want:    10 * time.Second,
		},
		{
			name:    "Capped At MaxDelay",
			policy:  RetryPolicy{MaxDelay: 20 * time.Second, BackoffMultiplier: 2.0},
			current: 15 * time.Second,
			want:    20 * time.Second,
		},
		{
			name:    "Stays At Cap",
			policy:  RetryPolicy{MaxDelay: 20 * time.Second, BackoffMultiplier: 2.0},
			current: 20 * time.Second,
			want:    20 * time.Second,
		},
		{
			name:    "Multiplier One Keeps Delay Constant",
			policy:  RetryPolicy{MaxDelay: 300 * time.Second, BackoffMultiplier: 1.0},
			current: 5 * time.Second,
			want:    5 * time.Second,
		},
		{
			name:    "Fractional Multiplier",
			policy:  RetryPolicy{MaxDelay: 300 * time.Second, BackoffMultiplier: 1.5},
			current: 10 * time.Second,
			want:    15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.NextDelay(tt.current)
			if got != tt.want {
				t.Errorf("NextDelay(%v) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestRetryPolicy_DelaySequenceIsMonotonicAndBounded(t *testing.T) {
	policies := []RetryPolicy{
		{MaxAttempts: 30, InitialDelay: 5 * time.Second, MaxDelay: 300 * time.Second, BackoffMultiplier: 1.5},
		{MaxAttempts: 30, InitialDelay: 5 * time.Second, MaxDelay: 20 * time.Second, BackoffMultiplier: 2.0},
		{MaxAttempts: 30, InitialDelay: 2 * time.Second, MaxDelay: 2 * time.Second, BackoffMultiplier: 3.0},
		{MaxAttempts: 30, InitialDelay: 7 * time.Second, MaxDelay: 60 * time.Second, BackoffMultiplier: 1.0},
	}

	for _, policy := range policies {
		delay := policy.InitialDelay
		for i := 0; i < policy.MaxAttempts; i++ {
			next := policy.NextDelay(delay)
			if next < delay {
				t.Errorf("policy %+v: delay decreased from %v to %v at step %d", policy, delay, next, i)
			}
			if next > policy.MaxDelay {
				t.Errorf("policy %+v: delay %v exceeds max %v at step %d", policy, next, policy.MaxDelay, i)
			}
			delay = next
		}
	}
}
