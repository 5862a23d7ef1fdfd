package uow_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sportify/internal/storage/uow"
	"sportify/internal/storage/uow/mocks"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/sentinel"
)

type widgetRepo interface{ Name() string }

type gadgetRepo interface{ Name() string }

type fakeRepo struct {
	session uow.Session
	name    string
}

func (r *fakeRepo) Name() string { return r.name }

// UnitOfWorkSuite covers the lifecycle state machine and guarded execution.
type UnitOfWorkSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	session  *mocks.MockSession
	sessions *mocks.MockSessionFactory
	registry *uow.Registry
	builds   int
}

func TestUnitOfWorkSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkSuite))
}

func (s *UnitOfWorkSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.session = mocks.NewMockSession(s.ctrl)
	s.sessions = mocks.NewMockSessionFactory(s.ctrl)
	s.registry = uow.NewRegistry()
	s.builds = 0
	uow.Register(s.registry, func(sess uow.Session) (widgetRepo, error) {
		s.builds++
		return &fakeRepo{session: sess, name: "widget"}, nil
	})
}

func (s *UnitOfWorkSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *UnitOfWorkSuite) newManager() *uow.Manager {
	return uow.NewManager(s.sessions, s.registry)
}

func (s *UnitOfWorkSuite) TestGetCachesOneInstancePerType() {
	u := uow.New(s.session, s.registry)

	first, err := uow.Get[widgetRepo](u)
	s.Require().NoError(err)
	second, err := uow.Get[widgetRepo](u)
	s.Require().NoError(err)

	s.Same(first, second)
	s.Equal(1, s.builds)
	s.Same(s.session, first.(*fakeRepo).session)
}

func (s *UnitOfWorkSuite) TestGetUnregisteredType() {
	u := uow.New(s.session, s.registry)

	_, err := uow.Get[gadgetRepo](u)
	s.Require().ErrorIs(err, uow.ErrNotRegistered)
	s.Contains(err.Error(), "gadgetRepo")
}

func (s *UnitOfWorkSuite) TestStateTransitions() {
	s.Run("commit then close", func() {
		s.session.EXPECT().Commit(gomock.Any()).Return(nil)
		s.session.EXPECT().Close().Return(nil)

		u := uow.New(s.session, s.registry)
		s.Equal(uow.StateOpen, u.State())
		s.Require().NoError(u.Commit(context.Background()))
		s.Equal(uow.StateCommitted, u.State())
		s.Require().NoError(u.Close())
		s.Equal(uow.StateClosed, u.State())
	})

	s.Run("rollback then close", func() {
		s.session.EXPECT().Rollback(gomock.Any()).Return(nil)
		s.session.EXPECT().Close().Return(nil)

		u := uow.New(s.session, s.registry)
		s.Require().NoError(u.Rollback(context.Background()))
		s.Equal(uow.StateRolledBack, u.State())
		s.Require().NoError(u.Close())
	})

	s.Run("close while open rolls back", func() {
		s.session.EXPECT().Rollback(gomock.Any()).Return(nil)
		s.session.EXPECT().Close().Return(nil)

		u := uow.New(s.session, s.registry)
		s.Require().NoError(u.Close())
		s.Equal(uow.StateClosed, u.State())
	})

	s.Run("closed is terminal", func() {
		s.session.EXPECT().Commit(gomock.Any()).Return(nil)
		s.session.EXPECT().Close().Return(nil).Times(1)

		u := uow.New(s.session, s.registry)
		s.Require().NoError(u.Commit(context.Background()))
		s.Require().NoError(u.Close())
		s.Require().NoError(u.Close())

		s.ErrorIs(u.Commit(context.Background()), sentinel.ErrInvalidState)
		s.ErrorIs(u.Rollback(context.Background()), sentinel.ErrInvalidState)
		_, err := uow.Get[widgetRepo](u)
		s.ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("commit after rollback is rejected", func() {
		s.session.EXPECT().Rollback(gomock.Any()).Return(nil)

		u := uow.New(s.session, s.registry)
		s.Require().NoError(u.Rollback(context.Background()))
		s.ErrorIs(u.Commit(context.Background()), sentinel.ErrInvalidState)
	})

	s.Run("failed commit stays open", func() {
		s.session.EXPECT().Commit(gomock.Any()).Return(sentinel.ErrConflict)

		u := uow.New(s.session, s.registry)
		s.ErrorIs(u.Commit(context.Background()), sentinel.ErrConflict)
		s.Equal(uow.StateOpen, u.State())
	})
}

func (s *UnitOfWorkSuite) TestRunCommitsOnSuccess() {
	gomock.InOrder(
		s.sessions.EXPECT().NewSession(gomock.Any()).Return(s.session, nil),
		s.session.EXPECT().Commit(gomock.Any()).Return(nil),
		s.session.EXPECT().Close().Return(nil),
	)

	err := s.newManager().Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
		_, err := uow.Get[widgetRepo](u)
		return err
	})
	s.NoError(err)
}

func (s *UnitOfWorkSuite) TestRunRollsBackOnError() {
	failure := errors.New("second write failed")
	gomock.InOrder(
		s.sessions.EXPECT().NewSession(gomock.Any()).Return(s.session, nil),
		s.session.EXPECT().Rollback(gomock.Any()).Return(nil),
		s.session.EXPECT().Close().Return(nil),
	)

	err := s.newManager().Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
		return failure
	})
	s.ErrorIs(err, failure)
}

func (s *UnitOfWorkSuite) TestRunRollsBackAndRepanics() {
	gomock.InOrder(
		s.sessions.EXPECT().NewSession(gomock.Any()).Return(s.session, nil),
		s.session.EXPECT().Rollback(gomock.Any()).Return(nil),
		s.session.EXPECT().Close().Return(nil),
	)

	s.PanicsWithValue("boom", func() {
		_ = s.newManager().Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
			panic("boom")
		})
	})
}

func (s *UnitOfWorkSuite) TestRunRollsBackWhenCancelledDuringWork() {
	gomock.InOrder(
		s.sessions.EXPECT().NewSession(gomock.Any()).Return(s.session, nil),
		s.session.EXPECT().Rollback(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			// rollback must not inherit the cancellation
			s.NoError(ctx.Err())
			return nil
		}),
		s.session.EXPECT().Close().Return(nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	err := s.newManager().Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		cancel()
		return nil
	})
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *UnitOfWorkSuite) TestRunRollsBackWhenCommitFails() {
	gomock.InOrder(
		s.sessions.EXPECT().NewSession(gomock.Any()).Return(s.session, nil),
		s.session.EXPECT().Commit(gomock.Any()).Return(sentinel.ErrConflict),
		s.session.EXPECT().Rollback(gomock.Any()).Return(nil),
		s.session.EXPECT().Close().Return(nil),
	)

	err := s.newManager().Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
		return nil
	})
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *UnitOfWorkSuite) TestRunRejectsCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.newManager().Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		called = true
		return nil
	})
	s.False(called)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
}

func (s *UnitOfWorkSuite) TestRunAppliesDefaultDeadline() {
	s.sessions.EXPECT().NewSession(gomock.Any()).Return(s.session, nil)
	s.session.EXPECT().Commit(gomock.Any()).Return(nil)
	s.session.EXPECT().Close().Return(nil)

	mgr := uow.NewManager(s.sessions, s.registry, uow.WithTimeout(time.Minute))
	err := mgr.Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
		_, ok := ctx.Deadline()
		s.True(ok)
		return nil
	})
	s.NoError(err)
}

func (s *UnitOfWorkSuite) TestRunPropagatesOpenFailure() {
	s.sessions.EXPECT().NewSession(gomock.Any()).Return(nil, sentinel.ErrUnavailable)

	err := s.newManager().Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
		s.Fail("callback must not run without a session")
		return nil
	})
	s.ErrorIs(err, sentinel.ErrUnavailable)
}
