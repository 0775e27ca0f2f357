package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, InitialBackoff: time.Millisecond}
}

func alwaysRetry(error) bool { return true }
func neverRetry(error) bool  { return false }

func TestDo_SucceedsFirstTry(t *testing.T) {
	got, err := Do(context.Background(), fastPolicy(3), alwaysRetry, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastPolicy(3), alwaysRetry, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(3), alwaysRetry, func() (int, error) {
		calls++
		return 0, errors.New("still down")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentErrorAbortsImmediately(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastPolicy(5), neverRetry, func() (int, error) {
		calls++
		return 0, errors.New("bad request")
	})
	require.Error(t, err)
	var perm *PermanentError
	assert.ErrorAs(t, err, &perm)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := Policy{MaxAttempts: 5, InitialBackoff: time.Hour}
	_, err := Do(ctx, policy, alwaysRetry, func() (int, error) {
		return 0, errors.New("transient")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_OnRetryCallback(t *testing.T) {
	var attempts []int
	policy := fastPolicy(3)
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		attempts = append(attempts, attempt)
	}

	_, _ = Do(context.Background(), policy, alwaysRetry, func() (int, error) {
		return 0, errors.New("transient")
	})
	assert.Equal(t, []int{1, 2}, attempts, "no callback after the final attempt")
}
