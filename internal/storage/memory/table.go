package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sportify/internal/storage"
	"sportify/internal/storage/uow"
	"sportify/pkg/platform/sentinel"
)

// Mapping describes how an entity is kept in a memory table. Rows are stored
// by value so callers never share state with the table.
type Mapping[E any, ID ~int64] struct {
	Table string
	GetID func(*E) ID
	SetID func(*E, ID)
	// Stamp sets storage-assigned timestamps.
	Stamp func(e *E, now time.Time, created bool)
	// Unique maps a unique key name to the normalized value it indexes.
	Unique map[string]func(*E) string
	// Less orders GetAll; identity order is used when nil.
	Less func(a, b *E) bool
}

// Table is a generic storage.Repository bound to a memory session.
type Table[E any, ID ~int64] struct {
	s   *Session
	m   Mapping[E, ID]
	now func() time.Time
}

// NewTable binds mapping m to session.
func NewTable[E any, ID ~int64](s uow.Session, m Mapping[E, ID]) (*Table[E, ID], error) {
	ms, err := session(s)
	if err != nil {
		return nil, err
	}
	return &Table[E, ID]{s: ms, m: m, now: func() time.Time { return time.Now().UTC() }}, nil
}

var _ storage.Repository[struct{}, int64] = (*Table[struct{}, int64])(nil)

func (t *Table[E, ID]) data() (*tableData, error) {
	return t.s.table(t.m.Table)
}

func (t *Table[E, ID]) GetByID(_ context.Context, id ID) (*E, error) {
	td, err := t.data()
	if err != nil {
		return nil, err
	}
	row, ok := td.rows[int64(id)]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", t.m.Table, id, sentinel.ErrNotFound)
	}
	e := row.(E)
	return &e, nil
}

func (t *Table[E, ID]) GetAll(ctx context.Context) ([]*E, error) {
	return t.Filter(ctx, nil)
}

// Filter returns copies of the rows matching keep (all rows when nil), in
// GetAll order.
func (t *Table[E, ID]) Filter(_ context.Context, keep func(*E) bool) ([]*E, error) {
	td, err := t.data()
	if err != nil {
		return nil, err
	}
	out := make([]*E, 0, len(td.rows))
	for _, row := range td.rows {
		e := row.(E)
		if keep == nil || keep(&e) {
			out = append(out, &e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if t.m.Less != nil {
			if t.m.Less(out[i], out[j]) {
				return true
			}
			if t.m.Less(out[j], out[i]) {
				return false
			}
		}
		return t.m.GetID(out[i]) < t.m.GetID(out[j])
	})
	return out, nil
}

// FindOne returns the first row matching keep in GetAll order.
func (t *Table[E, ID]) FindOne(ctx context.Context, keep func(*E) bool) (*E, error) {
	rows, err := t.Filter(ctx, keep)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", t.m.Table, sentinel.ErrNotFound)
	}
	return rows[0], nil
}

func (t *Table[E, ID]) Create(_ context.Context, entity *E) (*E, error) {
	td, err := t.data()
	if err != nil {
		return nil, err
	}
	if err := t.checkUnique(td, entity, 0); err != nil {
		return nil, err
	}
	e := *entity
	td.seq++
	t.m.SetID(&e, ID(td.seq))
	if t.m.Stamp != nil {
		t.m.Stamp(&e, t.now(), true)
	}
	td.rows[td.seq] = e
	return &e, nil
}

func (t *Table[E, ID]) CreateMany(ctx context.Context, entities []*E) ([]*E, error) {
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

func (t *Table[E, ID]) Update(ctx context.Context, id ID, patch storage.Patch[E]) (*E, error) {
	current, err := t.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch == nil || patch.IsEmpty() {
		return current, nil
	}
	if err := patch.Apply(current); err != nil {
		return nil, err
	}
	td, err := t.data()
	if err != nil {
		return nil, err
	}
	if err := t.checkUnique(td, current, int64(id)); err != nil {
		return nil, err
	}
	if t.m.Stamp != nil {
		t.m.Stamp(current, t.now(), false)
	}
	td.rows[int64(id)] = *current
	out := *current
	return &out, nil
}

func (t *Table[E, ID]) Delete(ctx context.Context, id ID) (*E, error) {
	snapshot, err := t.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	td, err := t.data()
	if err != nil {
		return nil, err
	}
	delete(td.rows, int64(id))
	return snapshot, nil
}

func (t *Table[E, ID]) Exists(_ context.Context, key storage.UniqueKey) (bool, error) {
	val, ok := t.m.Unique[key.Field]
	if !ok {
		return false, fmt.Errorf("%s: %q is not a unique key", t.m.Table, key.Field)
	}
	td, err := t.data()
	if err != nil {
		return false, err
	}
	for _, row := range td.rows {
		e := row.(E)
		if val(&e) == key.Value {
			return true, nil
		}
	}
	return false, nil
}

// checkUnique rejects e when another row (other than self) holds one of its
// unique keys.
func (t *Table[E, ID]) checkUnique(td *tableData, e *E, self int64) error {
	for name, val := range t.m.Unique {
		want := val(e)
		for rowID, row := range td.rows {
			if rowID == self {
				continue
			}
			other := row.(E)
			if val(&other) == want {
				return fmt.Errorf("%w: %s_%s_key", sentinel.ErrConflict, t.m.Table, name)
			}
		}
	}
	return nil
}
