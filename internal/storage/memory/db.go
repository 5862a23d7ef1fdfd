// Package memory is an in-process storage backend with the same unit of work
// semantics as postgres. A session holds the database exclusively, works on a
// copy of the tables it touches and swaps them in on commit.
package memory

import (
	"context"
	"fmt"
	"sync"

	"sportify/internal/storage/uow"
	"sportify/pkg/platform/sentinel"
)

type tableData struct {
	rows map[int64]any
	seq  int64
}

func (t *tableData) clone() *tableData {
	c := &tableData{rows: make(map[int64]any, len(t.rows)), seq: t.seq}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

// DB is the committed state plus a one-slot semaphore serializing sessions.
type DB struct {
	sem    chan struct{}
	tables map[string]*tableData
}

// NewDB returns an empty database.
func NewDB() *DB {
	return &DB{
		sem:    make(chan struct{}, 1),
		tables: make(map[string]*tableData),
	}
}

// NewSession waits for exclusive access or for ctx to end.
func (d *DB) NewSession(ctx context.Context) (uow.Session, error) {
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("memory: acquire session: %w", ctx.Err())
	}
	return &Session{db: d, work: make(map[string]*tableData)}, nil
}

// Ping always succeeds; it lets the health endpoint treat backends alike.
func (d *DB) Ping(context.Context) error {
	return nil
}

// Session is a uow.Session over a private working copy.
type Session struct {
	db   *DB
	work map[string]*tableData
	done bool
	once sync.Once
}

func (s *Session) table(name string) (*tableData, error) {
	if s.done {
		return nil, fmt.Errorf("memory: session finished: %w", sentinel.ErrInvalidState)
	}
	if td, ok := s.work[name]; ok {
		return td, nil
	}
	td := &tableData{rows: make(map[int64]any)}
	if committed, ok := s.db.tables[name]; ok {
		td = committed.clone()
	}
	s.work[name] = td
	return td, nil
}

func (s *Session) Commit(ctx context.Context) error {
	if s.done {
		return fmt.Errorf("memory: commit: %w", sentinel.ErrInvalidState)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for name, td := range s.work {
		s.db.tables[name] = td
	}
	s.done = true
	s.work = nil
	return nil
}

func (s *Session) Rollback(context.Context) error {
	s.done = true
	s.work = nil
	return nil
}

// Close discards unfinished work and releases the database.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.done = true
		s.work = nil
		<-s.db.sem
	})
	return nil
}

func session(s uow.Session) (*Session, error) {
	ms, ok := s.(*Session)
	if !ok {
		return nil, fmt.Errorf("memory: session is %T: %w", s, sentinel.ErrInvalidState)
	}
	return ms, nil
}
