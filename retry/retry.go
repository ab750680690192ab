package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tarantool/go-vss/internal/options"
)

// Terminal is implemented by errors which must never be retried,
// whatever the policy says.
type Terminal interface {
	Terminal() bool
}

// IsTerminal reports whether err or any error it wraps is terminal.
func IsTerminal(err error) bool {
	var terminal Terminal

	return errors.As(err, &terminal) && terminal.Terminal()
}

// Operation is a single attempt.
type Operation[T any] func(ctx context.Context) (T, error)

type doOptions[E error] struct {
	notify func(rc Context[E], delay time.Duration)
}

// WithNotify registers a callback invoked before waiting for the next attempt.
func WithNotify[E error](notify func(rc Context[E], delay time.Duration)) options.OptionCallback[doOptions[E]] {
	return func(opts *doOptions[E]) {
		opts.notify = notify
	}
}

// Do runs op until it succeeds or the policy gives up, and returns the last error.
//
// Attempts are strictly sequential. Terminal errors and errors that are not
// of the policy's error type E are returned at once. Waiting between attempts
// is aborted when ctx is done.
func Do[T any, E error](
	ctx context.Context,
	policy Policy[E],
	op Operation[T],
	dOpts ...options.OptionCallback[doOptions[E]],
) (T, error) {
	var (
		zero        T
		attempts    int
		accumulated time.Duration
	)

	opts := options.ApplyOptions[doOptions[E]](nil, dOpts)

	for {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		attempts++

		if IsTerminal(err) {
			return zero, err
		}

		var typed E
		if !errors.As(err, &typed) {
			return zero, err
		}

		rc := Context[E]{
			AttemptsMade:     attempts,
			AccumulatedDelay: accumulated,
			Err:              typed,
		}

		delay, ok := policy.NextDelay(rc).Get()
		if !ok {
			return zero, err
		}

		if opts.notify != nil {
			opts.notify(rc, delay)
		}

		if waitErr := sleep(ctx, delay); waitErr != nil {
			return zero, fmt.Errorf("%w (retry aborted: %w)", err, waitErr)
		}

		accumulated += delay
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
