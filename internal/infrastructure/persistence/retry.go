package persistence

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/warehousing/backend/internal/infrastructure/config"
)

// TransientClassifier reports whether an error is a transient database
// failure worth retrying. Domain errors are never transient; a retried
// business rejection would just fail again.
type TransientClassifier func(err error) bool

// SQLSTATE codes that indicate a retriable condition.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
	sqlstateConnectionClass      = "08"
)

// DefaultTransientClassifier classifies PostgreSQL serialization
// failures, deadlocks, and connection-class errors as transient.
func DefaultTransientClassifier(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == sqlstateSerializationFailure || pgErr.Code == sqlstateDeadlockDetected {
			return true
		}
		return strings.HasPrefix(pgErr.Code, sqlstateConnectionClass)
	}
	return false
}

// RetryRunner re-executes a function on transient database failures
// with jittered exponential backoff. The function must be safe to run
// again from scratch: each attempt is a fresh transaction.
type RetryRunner struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
	isTransient TransientClassifier
}

// NewRetryRunner creates a runner from retry configuration. A nil
// classifier falls back to DefaultTransientClassifier.
func NewRetryRunner(cfg config.RetryConfig, classifier TransientClassifier) *RetryRunner {
	if classifier == nil {
		classifier = DefaultTransientClassifier
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryRunner{
		maxAttempts: maxAttempts,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
		isTransient: classifier,
	}
}

// Do runs fn until it succeeds, fails with a non-transient error, or
// the attempt budget is exhausted. The last error is returned as-is so
// callers can still unwrap it.
func (r *RetryRunner) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil || !r.isTransient(err) {
			return err
		}
		if attempt >= r.maxAttempts {
			return err
		}
		if waitErr := r.wait(ctx, attempt); waitErr != nil {
			return err
		}
	}
}

// wait sleeps for the backoff delay of the given attempt, bounded by
// maxDelay, with full jitter. Returns early when the context is done.
func (r *RetryRunner) wait(ctx context.Context, attempt int) error {
	delay := r.baseDelay << (attempt - 1)
	if delay > r.maxDelay || delay <= 0 {
		delay = r.maxDelay
	}
	if delay > 0 {
		// Jitter within [delay/2, delay] to spread out competing retries.
		delay = delay/2 + time.Duration(rand.Int63n(int64(delay/2)+1))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
