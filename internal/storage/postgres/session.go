package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"sportify/internal/storage/uow"
	"sportify/pkg/platform/sentinel"
)

// Session is a uow.Session over one sqlx transaction.
type Session struct {
	tx   *sqlx.Tx
	once sync.Once
	done bool
}

// Tx exposes the transaction to repositories bound to this session.
func (s *Session) Tx() *sqlx.Tx {
	return s.tx
}

func (s *Session) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.tx.Commit(); err != nil {
		// A failed COMMIT already ended the transaction server side.
		s.done = true
		return mapError(err)
	}
	s.done = true
	return nil
}

func (s *Session) Rollback(_ context.Context) error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return mapError(err)
	}
	return nil
}

// Close rolls back a transaction that was never finished. The connection
// itself returns to the pool when the transaction ends.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		if !s.done {
			err = s.Rollback(context.Background())
		}
	})
	return err
}

// sessionTx resolves the sqlx transaction behind a uow.Session. Repository
// constructors call it from their registry factories.
func sessionTx(s uow.Session) (*sqlx.Tx, error) {
	ps, ok := s.(*Session)
	if !ok {
		return nil, fmt.Errorf("postgres: session is %T: %w", s, sentinel.ErrInvalidState)
	}
	return ps.tx, nil
}
