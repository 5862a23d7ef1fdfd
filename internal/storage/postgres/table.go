package postgres

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"

	"sportify/internal/storage"
	"sportify/internal/storage/uow"
	"sportify/pkg/platform/sentinel"
)

// Mapping describes how an entity E with identity ID is stored as record R.
// R is a struct with `db` tags covering every column of Table, including
// id, created_at and updated_at.
type Mapping[E any, ID ~int64, R any] struct {
	Table string
	// Columns written on insert and update, excluding id and timestamps.
	Columns []string
	OrderBy string
	// UniqueColumns are the only columns Exists accepts.
	UniqueColumns []string
	ToRecord      func(*E) R
	ToEntity      func(R) (*E, error)
}

// Table is a generic storage.Repository over one table, bound to a session
// transaction. Entity repositories embed it and add their own finders.
type Table[E any, ID ~int64, R any] struct {
	tx *sqlx.Tx
	m  Mapping[E, ID, R]
}

// NewTable binds mapping m to the transaction behind session.
func NewTable[E any, ID ~int64, R any](session uow.Session, m Mapping[E, ID, R]) (*Table[E, ID, R], error) {
	tx, err := sessionTx(session)
	if err != nil {
		return nil, err
	}
	return &Table[E, ID, R]{tx: tx, m: m}, nil
}

var _ storage.Repository[struct{}, int64] = (*Table[struct{}, int64, struct{}])(nil)

// Find loads one entity with an arbitrary query.
func (t *Table[E, ID, R]) Find(ctx context.Context, query string, args ...any) (*E, error) {
	var rec R
	if err := t.tx.GetContext(ctx, &rec, query, args...); err != nil {
		return nil, t.wrap("find", mapError(err))
	}
	return t.m.ToEntity(rec)
}

// FindAll loads entities with an arbitrary query.
func (t *Table[E, ID, R]) FindAll(ctx context.Context, query string, args ...any) ([]*E, error) {
	var recs []R
	if err := t.tx.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, t.wrap("select", mapError(err))
	}
	out := make([]*E, 0, len(recs))
	for _, rec := range recs {
		e, err := t.m.ToEntity(rec)
		if err != nil {
			return nil, t.wrap("map record", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (t *Table[E, ID, R]) GetByID(ctx context.Context, id ID) (*E, error) {
	return t.Find(ctx, "SELECT * FROM "+t.m.Table+" WHERE id = $1", int64(id))
}

func (t *Table[E, ID, R]) GetAll(ctx context.Context) ([]*E, error) {
	q := "SELECT * FROM " + t.m.Table
	if t.m.OrderBy != "" {
		q += " ORDER BY " + t.m.OrderBy
	}
	return t.FindAll(ctx, q)
}

func (t *Table[E, ID, R]) Create(ctx context.Context, entity *E) (*E, error) {
	cols := strings.Join(t.m.Columns, ", ")
	binds := ":" + strings.Join(t.m.Columns, ", :")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *", t.m.Table, cols, binds)
	return t.namedOne(ctx, "insert", q, t.m.ToRecord(entity))
}

// CreateMany inserts in order and stops at the first failure. Postgres aborts
// the transaction on error, so the owning unit of work must roll back.
func (t *Table[E, ID, R]) CreateMany(ctx context.Context, entities []*E) ([]*E, error) {
	out := make([]*E, 0, len(entities))
	for i, e := range entities {
		created, err := t.Create(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, created)
	}
	return out, nil
}

// Update locks the row, applies patch and writes it back. Nothing is written
// for an empty patch.
func (t *Table[E, ID, R]) Update(ctx context.Context, id ID, patch storage.Patch[E]) (*E, error) {
	current, err := t.Find(ctx, "SELECT * FROM "+t.m.Table+" WHERE id = $1 FOR UPDATE", int64(id))
	if err != nil {
		return nil, err
	}
	if patch == nil || patch.IsEmpty() {
		return current, nil
	}
	if err := patch.Apply(current); err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(t.m.Columns)+1)
	for _, c := range t.m.Columns {
		sets = append(sets, c+" = :"+c)
	}
	sets = append(sets, "updated_at = now()")
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id RETURNING *", t.m.Table, strings.Join(sets, ", "))
	return t.namedOne(ctx, "update", q, t.m.ToRecord(current))
}

// Delete removes the row and returns the snapshot the database held.
func (t *Table[E, ID, R]) Delete(ctx context.Context, id ID) (*E, error) {
	return t.Find(ctx, "DELETE FROM "+t.m.Table+" WHERE id = $1 RETURNING *", int64(id))
}

func (t *Table[E, ID, R]) Exists(ctx context.Context, key storage.UniqueKey) (bool, error) {
	if !slices.Contains(t.m.UniqueColumns, key.Field) {
		return false, fmt.Errorf("%s: %q is not a unique key", t.m.Table, key.Field)
	}
	var exists bool
	q := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", t.m.Table, key.Field)
	if err := t.tx.GetContext(ctx, &exists, q, key.Value); err != nil {
		return false, t.wrap("exists", mapError(err))
	}
	return exists, nil
}

func (t *Table[E, ID, R]) namedOne(ctx context.Context, op, query string, arg R) (*E, error) {
	rows, err := sqlx.NamedQueryContext(ctx, t.tx, query, arg)
	if err != nil {
		return nil, t.wrap(op, mapError(err))
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, t.wrap(op, mapError(err))
		}
		return nil, t.wrap(op, sentinel.ErrNotFound)
	}
	var rec R
	if err := rows.StructScan(&rec); err != nil {
		return nil, t.wrap(op, err)
	}
	return t.m.ToEntity(rec)
}

func (t *Table[E, ID, R]) wrap(op string, err error) error {
	return fmt.Errorf("%s %s: %w", t.m.Table, op, err)
}
