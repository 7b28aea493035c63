package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bazaar/config"
	"bazaar/shared/constant"
)

// TxFunc is the unit of work run inside a transaction. Returning an error rolls it back.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Transactor interface {
	WithTransaction(ctx context.Context, isolation sql.IsolationLevel, fn TxFunc) error
}

type transactorImpl struct {
	db       *sqlx.DB
	maxRetry int
	wait     time.Duration
}

func NewTransactor(conn *Connection, cfg *config.Config) Transactor {
	maxRetry := cfg.DB.Postgres.TxMaxRetry
	if maxRetry < 1 {
		maxRetry = 1
	}

	return &transactorImpl{
		db:       conn.Write,
		maxRetry: maxRetry,
		wait:     time.Duration(cfg.DB.Postgres.TxRetryWaitMS) * time.Millisecond,
	}
}

// WithTransaction runs fn in a fresh transaction, retrying the whole unit when the
// database aborts it for a serialization failure or deadlock.
func (t *transactorImpl) WithTransaction(ctx context.Context, isolation sql.IsolationLevel, fn TxFunc) error {
	var err error

	for attempt := range t.maxRetry {
		err = t.run(ctx, isolation, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}

		log.Warn().Err(err).Int("attempt", attempt+1).Msg("transaction aborted by concurrent update, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("transaction retry cancelled: %w", ctx.Err())
		case <-time.After(t.wait * time.Duration(attempt+1)):
		}
	}

	return err
}

func (t *transactorImpl) run(ctx context.Context, isolation sql.IsolationLevel, fn TxFunc) (err error) {
	tx, err := t.db.BeginTxx(ctx, &sql.TxOptions{Isolation: isolation})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// IsRetryable reports errors after which the whole transaction can be replayed.
func IsRetryable(err error) bool {
	code := pqCode(err)

	return code == constant.PqErrorCodeSerializationFailed || code == constant.PqErrorCodeDeadlockDetected
}

// IsExclusionViolation reports a rejected row from an EXCLUDE constraint.
func IsExclusionViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == constant.PqErrorCodeUniqueViolation
}
