package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TxManagerInterface interface {
	// RunInTransaction commits fn's writes atomically; transient failures are
	// retried per the manager's policy with a fresh transaction. fn must use the
	// ctx it is given, which carries the per-attempt timeout.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error
	// RunQuery applies the same timeout and retry policy to read-only work.
	RunQuery(ctx context.Context, fn func(ctx context.Context) error) error
}

type TxManager struct {
	pool   *pgxpool.Pool
	policy RetryPolicy
	logger *zap.Logger
}

func NewTxManager(pool *pgxpool.Pool, policy RetryPolicy, logger *zap.Logger) TxManagerInterface {
	return &TxManager{pool: pool, policy: policy, logger: logger}
}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return WithRetry(ctx, m.policy, m.logger, func(attemptCtx context.Context) error {
		return WithTx(attemptCtx, m.pool, func(tx pgx.Tx) error {
			return fn(attemptCtx, tx)
		})
	})
}

func (m *TxManager) RunQuery(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithRetry(ctx, m.policy, m.logger, fn)
}
