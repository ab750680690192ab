package retry_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarantool/go-option"

	"github.com/tarantool/go-vss/retry"
)

var errTransient = errors.New("transient")

type terminalError struct{}

func (terminalError) Error() string  { return "terminal" }
func (terminalError) Terminal() bool { return true }

type codeError struct {
	code int
}

func (e *codeError) Error() string { return fmt.Sprintf("code %d", e.code) }

func delays[E error](policy retry.Policy[E], err E, attempts int) []option.Generic[time.Duration] {
	var (
		out         []option.Generic[time.Duration]
		accumulated time.Duration
	)

	for i := 1; i <= attempts; i++ {
		next := policy.NextDelay(retry.Context[E]{AttemptsMade: i, AccumulatedDelay: accumulated, Err: err})
		out = append(out, next)
		accumulated += next.UnwrapOr(0)
	}

	return out
}

func TestExponentialBackoff(t *testing.T) {
	t.Parallel()

	policy := retry.ExponentialBackoff[error](10 * time.Millisecond)

	assert.Equal(t, []option.Generic[time.Duration]{
		option.Some(10 * time.Millisecond),
		option.Some(20 * time.Millisecond),
		option.Some(40 * time.Millisecond),
		option.Some(80 * time.Millisecond),
	}, delays(policy, errTransient, 4))
}

func TestExponentialBackoff_Overflow(t *testing.T) {
	t.Parallel()

	policy := retry.ExponentialBackoff[error](time.Second)

	delay, ok := policy.NextDelay(retry.Context[error]{AttemptsMade: 200, AccumulatedDelay: 0, Err: errTransient}).Get()
	require.True(t, ok)
	assert.Positive(t, delay)
}

func TestWithMaxAttempts(t *testing.T) {
	t.Parallel()

	policy := retry.WithMaxAttempts(retry.Fixed[error](time.Millisecond), 3)

	assert.Equal(t, []option.Generic[time.Duration]{
		option.Some(time.Millisecond),
		option.Some(time.Millisecond),
		option.None[time.Duration](),
	}, delays(policy, errTransient, 3))
}

func TestWithMaxTotalDelay(t *testing.T) {
	t.Parallel()

	policy := retry.WithMaxTotalDelay(retry.ExponentialBackoff[error](10*time.Millisecond), 35*time.Millisecond)

	// 10 + 20 = 30 fits, 30 + 40 does not.
	assert.Equal(t, []option.Generic[time.Duration]{
		option.Some(10 * time.Millisecond),
		option.Some(20 * time.Millisecond),
		option.None[time.Duration](),
	}, delays(policy, errTransient, 3))
}

func TestWithMaxJitter(t *testing.T) {
	t.Parallel()

	policy := retry.WithMaxJitter(retry.Fixed[error](10*time.Millisecond), 5*time.Millisecond)

	for _, next := range delays(policy, errTransient, 50) {
		delay, ok := next.Get()
		require.True(t, ok)
		assert.GreaterOrEqual(t, delay, 10*time.Millisecond)
		assert.Less(t, delay, 15*time.Millisecond)
	}

	stopped := retry.WithMaxJitter(retry.WithMaxAttempts(retry.Fixed[error](0), 1), time.Second)
	assert.False(t, stopped.NextDelay(retry.Context[error]{AttemptsMade: 1, AccumulatedDelay: 0, Err: errTransient}).IsSome())
}

func TestSkipRetryOnError(t *testing.T) {
	t.Parallel()

	policy := retry.SkipRetryOnError(retry.Fixed[*codeError](time.Millisecond), func(err *codeError) bool {
		return err.code < 500
	})

	assert.False(t, policy.NextDelay(retry.Context[*codeError]{AttemptsMade: 1, AccumulatedDelay: 0, Err: &codeError{code: 400}}).IsSome())
	assert.True(t, policy.NextDelay(retry.Context[*codeError]{AttemptsMade: 1, AccumulatedDelay: 0, Err: &codeError{code: 503}}).IsSome())
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	t.Parallel()

	var (
		calls    atomic.Int32
		notified []int
	)

	result, err := retry.Do(context.Background(), retry.Fixed[error](time.Millisecond),
		func(context.Context) (string, error) {
			if calls.Add(1) < 3 {
				return "", errTransient
			}

			return "ok", nil
		},
		retry.WithNotify(func(rc retry.Context[error], delay time.Duration) {
			notified = append(notified, rc.AttemptsMade)
			assert.Equal(t, time.Millisecond, delay)
			assert.ErrorIs(t, rc.Err, errTransient)
		}),
	)

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []int{1, 2}, notified)
}

func TestDo_GivesUpWithLastError(t *testing.T) {
	t.Parallel()

	var calls int

	_, err := retry.Do(context.Background(), retry.WithMaxAttempts(retry.Fixed[error](0), 4),
		func(context.Context) (int, error) {
			calls++
			return 0, fmt.Errorf("attempt %d: %w", calls, errTransient)
		})

	require.EqualError(t, err, "attempt 4: transient")
	assert.Equal(t, 4, calls)
}

func TestDo_TerminalErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls int

	_, err := retry.Do(context.Background(), retry.Fixed[error](0),
		func(context.Context) (int, error) {
			calls++
			return 0, fmt.Errorf("wrapped: %w", terminalError{})
		})

	require.ErrorAs(t, err, new(terminalError))
	assert.True(t, retry.IsTerminal(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ForeignErrorTypeIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls int

	_, err := retry.Do(context.Background(), retry.Fixed[*codeError](0),
		func(context.Context) (int, error) {
			calls++
			if calls == 1 {
				return 0, &codeError{code: 503}
			}

			return 0, errTransient
		})

	require.ErrorIs(t, err, errTransient)
	assert.Equal(t, 2, calls)
}

func TestDo_ContextCanceledDuringWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var calls int

	_, err := retry.Do(ctx, retry.Fixed[error](time.Hour),
		func(context.Context) (int, error) {
			calls++

			cancel()

			return 0, errTransient
		})

	require.ErrorIs(t, err, errTransient)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, retry.IsTerminal(nil))
	assert.False(t, retry.IsTerminal(errTransient))
	assert.True(t, retry.IsTerminal(terminalError{}))
}
