package vss

import (
	"time"

	"github.com/tarantool/go-vss/retry"
)

// RetryConfig parametrizes the default retry policy.
type RetryConfig struct {
	// BaseDelay is the first delay; every next one is doubled.
	BaseDelay time.Duration
	// MaxAttempts bounds the number of attempts, including the first one.
	MaxAttempts int
	// MaxTotalDelay bounds the sum of all delays.
	MaxTotalDelay time.Duration
	// MaxJitter bounds the random addition to every delay.
	MaxJitter time.Duration
}

// DefaultRetryConfig returns the configuration used by DefaultRetryPolicy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		BaseDelay:     10 * time.Millisecond,
		MaxAttempts:   10,
		MaxTotalDelay: 15 * time.Second,
		MaxJitter:     10 * time.Millisecond,
	}
}

// NewRetryPolicy builds an exponential backoff policy bounded by cfg which
// retries only errors accepted by IsRetryable.
func NewRetryPolicy(cfg RetryConfig) retry.Policy[error] {
	policy := retry.ExponentialBackoff[error](cfg.BaseDelay)
	policy = retry.WithMaxAttempts(policy, cfg.MaxAttempts)
	policy = retry.WithMaxTotalDelay(policy, cfg.MaxTotalDelay)
	policy = retry.WithMaxJitter(policy, cfg.MaxJitter)

	return retry.SkipRetryOnError(policy, func(err error) bool {
		return !IsRetryable(err)
	})
}

// DefaultRetryPolicy returns NewRetryPolicy(DefaultRetryConfig()).
func DefaultRetryPolicy() retry.Policy[error] {
	return NewRetryPolicy(DefaultRetryConfig())
}
