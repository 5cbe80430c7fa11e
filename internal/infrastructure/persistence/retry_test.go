package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/infrastructure/config"
)

func testRetryConfig(attempts int) config.RetryConfig {
	return config.RetryConfig{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}
}

func TestDefaultTransientClassifier(t *testing.T) {
	assert.True(t, DefaultTransientClassifier(&pgconn.PgError{Code: "40001"}))
	assert.True(t, DefaultTransientClassifier(&pgconn.PgError{Code: "40P01"}))
	assert.True(t, DefaultTransientClassifier(&pgconn.PgError{Code: "08006"}))

	// Constraint violations and business rejections are not transient.
	assert.False(t, DefaultTransientClassifier(&pgconn.PgError{Code: "23505"}))
	assert.False(t, DefaultTransientClassifier(shared.ErrInsufficientStock))
	assert.False(t, DefaultTransientClassifier(errors.New("boom")))
}

func TestDefaultTransientClassifier_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("tx failed"), &pgconn.PgError{Code: "40001"})
	assert.True(t, DefaultTransientClassifier(wrapped))
}

func TestRetryRunner_SucceedsFirstAttempt(t *testing.T) {
	runner := NewRetryRunner(testRetryConfig(3), nil)
	calls := 0

	err := runner.Do(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryRunner_RetriesTransientError(t *testing.T) {
	runner := NewRetryRunner(testRetryConfig(3), nil)
	calls := 0

	err := runner.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryRunner_ExhaustsAttempts(t *testing.T) {
	runner := NewRetryRunner(testRetryConfig(3), nil)
	calls := 0
	transient := &pgconn.PgError{Code: "40P01"}

	err := runner.Do(context.Background(), func() error {
		calls++
		return transient
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}

func TestRetryRunner_DoesNotRetryDomainErrors(t *testing.T) {
	runner := NewRetryRunner(testRetryConfig(5), nil)
	calls := 0

	err := runner.Do(context.Background(), func() error {
		calls++
		return shared.ErrInsufficientStock
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Equal(t, 1, calls)
}

func TestRetryRunner_StopsOnCancelledContext(t *testing.T) {
	runner := NewRetryRunner(config.RetryConfig{
		MaxAttempts: 10,
		BaseDelay:   time.Hour,
		MaxDelay:    time.Hour,
	}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := runner.Do(ctx, func() error {
		calls++
		return &pgconn.PgError{Code: "40001"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryRunner_CustomClassifier(t *testing.T) {
	marker := errors.New("flaky")
	runner := NewRetryRunner(testRetryConfig(3), func(err error) bool {
		return errors.Is(err, marker)
	})
	calls := 0

	err := runner.Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return marker
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
