package storage

import "context"

// Repository is the persistence contract shared by every aggregate. It runs
// inside a unit of work session and never commits on its own.
//
// Absent rows surface as sentinel.ErrNotFound and taken unique keys as
// sentinel.ErrConflict, both wrapped so callers use errors.Is.
type Repository[E any, ID ~int64] interface {
	GetByID(ctx context.Context, id ID) (*E, error)
	GetAll(ctx context.Context) ([]*E, error)
	Create(ctx context.Context, entity *E) (*E, error)
	// CreateMany inserts all entities or, on the first failure, returns the
	// error and leaves rollback to the owning unit of work.
	CreateMany(ctx context.Context, entities []*E) ([]*E, error)
	// Update applies patch to the stored entity. An empty patch returns the
	// entity unchanged without writing.
	Update(ctx context.Context, id ID, patch Patch[E]) (*E, error)
	// Delete removes the row and returns its pre-delete snapshot.
	Delete(ctx context.Context, id ID) (*E, error)
	// Exists checks a unique key without materializing the entity.
	Exists(ctx context.Context, key UniqueKey) (bool, error)
}

// Patch is a partial update. Apply mutates only the supplied fields and
// re-validates the entity invariants.
type Patch[E any] interface {
	IsEmpty() bool
	Apply(entity *E) error
}

// UniqueKey names a unique column and the normalized value to look up.
type UniqueKey struct {
	Field string
	Value string
}

// Key builds a UniqueKey.
func Key(field, value string) UniqueKey {
	return UniqueKey{Field: field, Value: value}
}
