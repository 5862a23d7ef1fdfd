package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportify/internal/storage"
	"sportify/pkg/platform/sentinel"
)

type gadget struct {
	ID        int64
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var gadgetMapping = Mapping[gadget, int64]{
	Table: "gadgets",
	GetID: func(g *gadget) int64 { return g.ID },
	SetID: func(g *gadget, id int64) { g.ID = id },
	Stamp: func(g *gadget, now time.Time, created bool) {
		if created {
			g.CreatedAt = now
		}
		g.UpdatedAt = now
	},
	Unique: map[string]func(*gadget) string{
		"code": func(g *gadget) string { return g.Code },
	},
	Less: func(a, b *gadget) bool { return a.Code < b.Code },
}

type codePatch struct{ code *string }

func (p codePatch) IsEmpty() bool { return p.code == nil }

func (p codePatch) Apply(g *gadget) error {
	if strings.TrimSpace(*p.code) == "" {
		return errors.New("code is required")
	}
	g.Code = *p.code
	return nil
}

func begin(t *testing.T, db *DB) (*Session, *Table[gadget, int64]) {
	t.Helper()
	s, err := db.NewSession(context.Background())
	require.NoError(t, err)
	table, err := NewTable(s, gadgetMapping)
	require.NoError(t, err)
	return s.(*Session), table
}

func TestTableCRUD(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	s, table := begin(t, db)
	defer s.Close()

	created, err := table.Create(ctx, &gadget{Code: "B"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = table.Create(ctx, &gadget{Code: "A"})
	require.NoError(t, err)

	t.Run("duplicate unique key conflicts", func(t *testing.T) {
		_, err := table.Create(ctx, &gadget{Code: "B"})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("get all is ordered", func(t *testing.T) {
		all, err := table.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "A", all[0].Code)
		assert.Equal(t, "B", all[1].Code)
	})

	t.Run("returned entities are copies", func(t *testing.T) {
		got, err := table.GetByID(ctx, 1)
		require.NoError(t, err)
		got.Code = "mutated"
		again, err := table.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "B", again.Code)
	})

	t.Run("empty patch returns entity unchanged", func(t *testing.T) {
		got, err := table.Update(ctx, 1, codePatch{})
		require.NoError(t, err)
		assert.Equal(t, "B", got.Code)
	})

	t.Run("update cannot steal a unique key", func(t *testing.T) {
		a := "A"
		_, err := table.Update(ctx, 1, codePatch{code: &a})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("failed patch leaves row intact", func(t *testing.T) {
		blank := " "
		_, err := table.Update(ctx, 1, codePatch{code: &blank})
		require.Error(t, err)
		got, err := table.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "B", got.Code)
	})

	t.Run("update missing row", func(t *testing.T) {
		c := "C"
		_, err := table.Update(ctx, 42, codePatch{code: &c})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("exists checks unique keys only", func(t *testing.T) {
		ok, err := table.Exists(ctx, storage.Key("code", "A"))
		require.NoError(t, err)
		assert.True(t, ok)
		_, err = table.Exists(ctx, storage.Key("id", "1"))
		assert.Error(t, err)
	})

	t.Run("delete returns snapshot", func(t *testing.T) {
		gone, err := table.Delete(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "A", gone.Code)
		_, err = table.Delete(ctx, 2)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestSessionIsolation(t *testing.T) {
	ctx := context.Background()
	db := NewDB()

	t.Run("rollback discards writes", func(t *testing.T) {
		s, table := begin(t, db)
		_, err := table.Create(ctx, &gadget{Code: "X"})
		require.NoError(t, err)
		require.NoError(t, s.Rollback(ctx))
		require.NoError(t, s.Close())

		s2, table2 := begin(t, db)
		defer s2.Close()
		all, err := table2.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("commit publishes writes", func(t *testing.T) {
		s, table := begin(t, db)
		_, err := table.Create(ctx, &gadget{Code: "X"})
		require.NoError(t, err)
		require.NoError(t, s.Commit(ctx))
		require.NoError(t, s.Close())

		s2, table2 := begin(t, db)
		defer s2.Close()
		ok, err := table2.Exists(ctx, storage.Key("code", "X"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("batch failure leaves nothing after rollback", func(t *testing.T) {
		s, table := begin(t, db)
		_, err := table.CreateMany(ctx, []*gadget{{Code: "Y"}, {Code: "X"}})
		require.ErrorIs(t, err, sentinel.ErrConflict)
		require.NoError(t, s.Rollback(ctx))
		require.NoError(t, s.Close())

		s2, table2 := begin(t, db)
		defer s2.Close()
		ok, err := table2.Exists(ctx, storage.Key("code", "Y"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("finished session rejects access", func(t *testing.T) {
		s, table := begin(t, db)
		require.NoError(t, s.Commit(ctx))
		_, err := table.GetAll(ctx)
		assert.ErrorIs(t, err, sentinel.ErrInvalidState)
		require.NoError(t, s.Close())
		require.NoError(t, s.Close())
	})
}

func TestSessionsAreExclusive(t *testing.T) {
	db := NewDB()
	s, _ := begin(t, db)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := db.NewSession(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, s.Close())
	next, err := db.NewSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, next.Close())
}
