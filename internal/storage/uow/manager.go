package uow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sportify/internal/platform/metrics"
	dErrors "sportify/pkg/domain-errors"
)

const defaultTimeout = 5 * time.Second

// Manager opens units of work against one SessionFactory and runs callbacks
// inside them.
type Manager struct {
	sessions SessionFactory
	registry *Registry
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// WithTimeout bounds a Run whose context carries no deadline.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// NewManager constructs a Manager.
func NewManager(sessions SessionFactory, registry *Registry, opts ...Option) *Manager {
	m := &Manager{
		sessions: sessions,
		registry: registry,
		timeout:  defaultTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin opens a session and wraps it in an OPEN unit of work. The caller owns
// Commit/Rollback and must Close it.
func (m *Manager) Begin(ctx context.Context) (*UnitOfWork, error) {
	session, err := m.sessions.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return New(session, m.registry), nil
}

// Run executes fn inside a fresh unit of work. fn's success commits; an error,
// a panic or a cancelled context rolls back. The unit of work is closed on
// every path and a panic is re-raised after cleanup.
func (m *Manager) Run(ctx context.Context, fn func(ctx context.Context, u *UnitOfWork) error) (err error) {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	u, err := m.Begin(ctx)
	if err != nil {
		return err
	}

	// Cleanup must survive a cancelled request context.
	cleanupCtx := context.WithoutCancel(ctx)
	defer func() {
		if p := recover(); p != nil {
			m.rollback(cleanupCtx, u, "panic")
			m.close(cleanupCtx, u)
			panic(p)
		}
		m.close(cleanupCtx, u)
		m.observe(start)
	}()

	if err := fn(ctx, u); err != nil {
		m.rollback(cleanupCtx, u, "error")
		return err
	}
	if err := ctx.Err(); err != nil {
		m.rollback(cleanupCtx, u, "cancelled")
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if err := u.Commit(ctx); err != nil {
		m.rollback(cleanupCtx, u, "commit_failed")
		return err
	}
	if m.metrics != nil {
		m.metrics.IncrementUnitOfWorkCommitted()
	}
	return nil
}

func (m *Manager) rollback(ctx context.Context, u *UnitOfWork, reason string) {
	if u.State() != StateOpen {
		return
	}
	if err := u.Rollback(ctx); err != nil {
		m.logger.ErrorContext(ctx, "unit of work rollback failed",
			"reason", reason,
			"error", err,
		)
	}
	if m.metrics != nil {
		m.metrics.IncrementUnitOfWorkRolledBack(reason)
	}
}

func (m *Manager) close(ctx context.Context, u *UnitOfWork) {
	if err := u.Close(); err != nil {
		m.logger.ErrorContext(ctx, "unit of work close failed", "error", err)
	}
}

func (m *Manager) observe(start time.Time) {
	if m.metrics != nil {
		m.metrics.ObserveUnitOfWork(start)
	}
}
