package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "fleet-rental/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// RetryPolicy bounds every attempt with Timeout and retries transient
// failures Retries times, sleeping Backoff in between.
type RetryPolicy struct {
	Timeout time.Duration
	Backoff time.Duration
	Retries int
}

func WithRetry(ctx context.Context, policy RetryPolicy, logger *zap.Logger, op func(ctx context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = runAttempt(ctx, policy.Timeout, op)
		if err == nil || !IsRetryable(err) || ctx.Err() != nil {
			break
		}
		if attempt >= policy.Retries {
			return fmt.Errorf("%w: %v", apperrors.ErrDependencyUnavailable, err)
		}

		logger.Warn("transient database failure, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", policy.Backoff),
			zap.Error(err),
		)

		timer := time.NewTimer(policy.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", apperrors.ErrDependencyUnavailable, ctx.Err())
		case <-timer.C:
		}
	}

	if err != nil && ctx.Err() != nil && IsRetryable(err) {
		return fmt.Errorf("%w: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return err
}

func runAttempt(ctx context.Context, timeout time.Duration, op func(ctx context.Context) error) error {
	if timeout <= 0 {
		return op(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return op(attemptCtx)
}

// IsRetryable reports connection failures, serialization failures, deadlocks
// and timeouts. Domain errors are never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrInvalidRange) ||
		errors.Is(err, apperrors.ErrDuplicate) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, apperrors.ErrDependencyUnavailable) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"): // connection exception
			return true
		case pgErr.Code == "40001", pgErr.Code == "40P01": // serialization failure, deadlock
			return true
		case pgErr.Code == "57P01", pgErr.Code == "57P03": // admin shutdown, cannot connect now
			return true
		}
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
