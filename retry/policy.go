// Package retry provides retry policies and a loop executing an operation under a policy.
//
// A [Policy] is generic over the error type it classifies, so the decision which
// failures are transient lives in one place and can be tested on its own.
package retry

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tarantool/go-option"
)

const maxDelay = time.Duration(math.MaxInt64)

// Context describes the state of a retry sequence after a failed attempt.
type Context[E error] struct {
	// AttemptsMade is the number of attempts made so far, including the failed one.
	AttemptsMade int
	// AccumulatedDelay is the sum of all delays waited so far.
	AccumulatedDelay time.Duration
	// Err is the error of the failed attempt.
	Err E
}

// Policy decides whether a failed attempt is retried and after what delay.
// Implementations must be safe for concurrent use.
type Policy[E error] interface {
	// NextDelay returns the delay before the next attempt, or None to give up.
	NextDelay(rc Context[E]) option.Generic[time.Duration]
}

// PolicyFunc is an adapter to use ordinary functions as a Policy.
type PolicyFunc[E error] func(rc Context[E]) option.Generic[time.Duration]

// NextDelay implements Policy interface.
func (f PolicyFunc[E]) NextDelay(rc Context[E]) option.Generic[time.Duration] {
	return f(rc)
}

// ExponentialBackoff retries forever, doubling the delay on every attempt:
// base, 2*base, 4*base and so on. Combine it with WithMaxAttempts or
// WithMaxTotalDelay to bound it.
func ExponentialBackoff[E error](base time.Duration) Policy[E] {
	return PolicyFunc[E](func(rc Context[E]) option.Generic[time.Duration] {
		shift := max(rc.AttemptsMade-1, 0)

		delay := base << shift
		if delay < base || delay>>shift != base {
			delay = maxDelay
		}

		return option.Some(delay)
	})
}

// Fixed retries forever with the same delay.
func Fixed[E error](delay time.Duration) Policy[E] {
	return PolicyFunc[E](func(Context[E]) option.Generic[time.Duration] {
		return option.Some(delay)
	})
}

// WithMaxAttempts gives up once maxAttempts attempts have been made.
func WithMaxAttempts[E error](inner Policy[E], maxAttempts int) Policy[E] {
	return PolicyFunc[E](func(rc Context[E]) option.Generic[time.Duration] {
		if rc.AttemptsMade >= maxAttempts {
			return option.None[time.Duration]()
		}

		return inner.NextDelay(rc)
	})
}

// WithMaxTotalDelay gives up once the accumulated delay would exceed maxTotalDelay.
func WithMaxTotalDelay[E error](inner Policy[E], maxTotalDelay time.Duration) Policy[E] {
	return PolicyFunc[E](func(rc Context[E]) option.Generic[time.Duration] {
		delay, ok := inner.NextDelay(rc).Get()
		if !ok || rc.AccumulatedDelay+delay > maxTotalDelay {
			return option.None[time.Duration]()
		}

		return option.Some(delay)
	})
}

// WithMaxJitter adds a random delay in [0, maxJitter) to every delay of inner.
func WithMaxJitter[E error](inner Policy[E], maxJitter time.Duration) Policy[E] {
	return PolicyFunc[E](func(rc Context[E]) option.Generic[time.Duration] {
		delay, ok := inner.NextDelay(rc).Get()
		if !ok {
			return option.None[time.Duration]()
		}

		if maxJitter > 0 {
			delay += rand.N(maxJitter) //nolint:gosec
		}

		return option.Some(delay)
	})
}

// SkipRetryOnError gives up on errors for which skip returns true.
func SkipRetryOnError[E error](inner Policy[E], skip func(err E) bool) Policy[E] {
	return PolicyFunc[E](func(rc Context[E]) option.Generic[time.Duration] {
		if skip(rc.Err) {
			return option.None[time.Duration]()
		}

		return inner.NextDelay(rc)
	})
}
