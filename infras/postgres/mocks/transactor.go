package mocks

import (
	"context"
	"database/sql"

	"bazaar/infras/postgres"
)

type Transactor struct {
	Isolations []sql.IsolationLevel
}

// WithTransaction implements postgres.Transactor without a database; repositories are mocked.
func (t *Transactor) WithTransaction(ctx context.Context, isolation sql.IsolationLevel, fn postgres.TxFunc) error {
	t.Isolations = append(t.Isolations, isolation)

	return fn(ctx, nil)
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

var _ postgres.Transactor = (*Transactor)(nil)
