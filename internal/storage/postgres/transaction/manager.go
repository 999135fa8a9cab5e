package transaction

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/logger"
	"github.com/MikeMC777/ordenes-skincare/internal/metric"
	"github.com/MikeMC777/ordenes-skincare/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	_defaultMaxAttempts    = 3
	_defaultBaseRetryDelay = 10 * time.Millisecond
	_defaultMaxRetryDelay  = 100 * time.Millisecond

	_backoffMultiplier = 2
)

type Manager interface {
	// ExecuteInTransaction runs fn in one ReadCommitted transaction. fn may run
	// more than once when Postgres reports a serialization failure, a deadlock
	// or a dropped connection; any error rolls back everything fn did.
	ExecuteInTransaction(
		ctx context.Context,
		operation string,
		fn func(tx postgres.QueryExecuter) error,
	) error
}

// beginner is the slice of *pgxpool.Pool the manager needs.
type beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var _ beginner = (*pgxpool.Pool)(nil)

type manager struct {
	db      beginner
	log     logger.Logger
	metrics metric.Transaction

	maxAttempts    int
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
}

func NewManager(
	pool *postgres.Postgres,
	log logger.Logger,
	metrics metric.Transaction,
	opts ...Option,
) (Manager, error) {
	return newManager(pool.Pool, log, metrics, opts...)
}

func newManager(db beginner, log logger.Logger, metrics metric.Transaction, opts ...Option) (*manager, error) {
	tm := &manager{
		db:      db,
		log:     log,
		metrics: metrics,

		maxAttempts:    _defaultMaxAttempts,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
	}

	for _, opt := range opts {
		opt(tm)
	}
	if err := tm.validate(); err != nil {
		return nil, fmt.Errorf("storage.postgres.transaction.NewManager: %w", err)
	}
	return tm, nil
}

func (tm *manager) ExecuteInTransaction(
	ctx context.Context,
	operation string,
	fn func(tx postgres.QueryExecuter) error,
) error {
	const op = "storage.postgres.transaction.ExecuteInTransaction"

	return tm.withRetry(ctx, operation, func() error {
		tx, err := tm.db.BeginTx(ctx, pgx.TxOptions{
			IsoLevel:   pgx.ReadCommitted,
			AccessMode: pgx.ReadWrite,
		})
		if err != nil {
			return fmt.Errorf("%s: begin tx: %w", op, err)
		}
		defer tm.safelyRollback(ctx, tx, operation)

		if err = fn(&postgres.TxQueryExecuter{Tx: tx}); err != nil {
			return err
		}

		if err = tx.Commit(ctx); err != nil {
			return fmt.Errorf("%s: commit: %w", op, err)
		}
		return nil
	})
}

func (tm *manager) safelyRollback(ctx context.Context, tx pgx.Tx, operation string) {
	rollbackCtx := context.WithoutCancel(ctx)
	if err := tx.Rollback(rollbackCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		tm.log.Ctx(ctx).Errorw("rollback failed",
			"operation", "storage.postgres.transaction.safelyRollback",
			"transaction", operation,
			"error", err,
		)
	}
}

func (tm *manager) withRetry(ctx context.Context, operation string, fn func() error) error {
	const op = "storage.postgres.transaction.withRetry"

	start := time.Now()
	defer func() {
		tm.metrics.ObserveDuration(operation, time.Since(start))
	}()

	var lastErr error
	currentBackoff := tm.baseRetryDelay
	for attempt := 1; attempt <= tm.maxAttempts; attempt++ {
		if attempt > 1 {
			jitter := time.Duration(rand.Int64N(int64(currentBackoff * _backoffMultiplier)))
			if jitter > tm.maxRetryDelay {
				jitter = tm.maxRetryDelay
			}

			tm.log.Ctx(ctx).Infow("retrying transaction",
				"operation", op,
				"transaction", operation,
				"attempt", attempt,
				"max_attempts", tm.maxAttempts,
				"retry_after", jitter.String(),
				"error", lastErr,
			)

			timer := time.NewTimer(jitter)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				tm.metrics.IncrementFailures(operation)
				return fmt.Errorf("%s: %s: %w", op, operation, ctx.Err())
			}
			currentBackoff = min(currentBackoff*_backoffMultiplier, tm.maxRetryDelay)
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			tm.metrics.IncrementFailures(operation)
			return err
		}

		tm.metrics.IncrementRetries(operation)
		lastErr = err
	}

	tm.metrics.IncrementFailures(operation)
	return fmt.Errorf("%s: max attempts (%d) exceeded for %s: %w", op, tm.maxAttempts, operation, lastErr)
}

func isRetryableError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40P01", "40001", "08000", "08003", "08006", "08001", "08004", "08007", "08P01":
			return true
		}
		return false
	}

	return errors.Is(err, pgx.ErrTxClosed)
}

// HandleError tags err with the transaction and the step that produced it.
func HandleError(operation, step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %s: %w", operation, step, err)
}
