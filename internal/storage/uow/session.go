package uow

import "context"

//go:generate mockgen -source=session.go -destination=mocks/mocks.go -package=mocks Session,SessionFactory

// Session is one storage transaction. Backends (postgres, memory) implement it;
// repositories are bound to a session through the Registry.
type Session interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	// Close releases the session. It must be safe after Commit or Rollback.
	Close() error
}

// SessionFactory opens sessions. It is the explicit connection factory passed
// down from main; there is no package-level engine.
type SessionFactory interface {
	NewSession(ctx context.Context) (Session, error)
}
