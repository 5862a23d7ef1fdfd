// Package service implements the sport use cases.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sportify/internal/sport/models"
	"sportify/internal/sport/ports"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/sentinel"
	"sportify/pkg/requestcontext"
)

type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context, u *uow.UnitOfWork) error) error
}

type Service struct {
	runner Runner
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(runner Runner, opts ...Option) *Service {
	s := &Service{runner: runner, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func repository(u *uow.UnitOfWork) (ports.SportRepository, error) {
	repo, err := uow.Get[ports.SportRepository](u)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open sport repository")
	}
	return repo, nil
}

// checkNameFree fails with a conflict when another sport already uses name.
func checkNameFree(ctx context.Context, repo ports.SportRepository, name string, self id.SportID) error {
	holder, err := repo.FindByName(ctx, name)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check sport name")
	case holder.ID != self:
		return duplicate(name)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in models.SportInput) (*models.Sport, error) {
	teamBased := true
	if in.TeamBased != nil {
		teamBased = *in.TeamBased
	}
	sport, err := models.NewSport(in.Name, teamBased)
	if err != nil {
		return nil, toValidation(err)
	}

	var created *models.Sport
	err = s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if err := checkNameFree(ctx, repo, sport.Name, 0); err != nil {
			return err
		}
		created, err = repo.Create(ctx, sport)
		return err
	})
	if err != nil {
		return nil, translate(err, sport.Name, "failed to create sport")
	}

	s.logger.InfoContext(ctx, "sport created",
		"request_id", requestcontext.RequestID(ctx),
		"sport_id", created.ID,
		"name", created.Name,
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, sportID id.SportID) (*models.Sport, error) {
	var sport *models.Sport
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		sport, err = repo.GetByID(ctx, sportID)
		return err
	})
	if err != nil {
		return nil, translate(err, "", "failed to load sport")
	}
	return sport, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Sport, error) {
	var sports []*models.Sport
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		sports, err = repo.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err, "", "failed to list sports")
	}
	return sports, nil
}

func (s *Service) Update(ctx context.Context, sportID id.SportID, patch models.SportPatch) (*models.Sport, error) {
	var updated *models.Sport
	name := ""
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			name = *patch.Name
			if err := checkNameFree(ctx, repo, name, sportID); err != nil {
				return err
			}
		}
		updated, err = repo.Update(ctx, sportID, patch)
		return err
	})
	if err != nil {
		return nil, translate(err, name, "failed to update sport")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, sportID id.SportID) (*models.Sport, error) {
	var deleted *models.Sport
	detached := 0
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		refs, err := uow.Get[ports.SportReferences](u)
		switch {
		case errors.Is(err, uow.ErrNotRegistered):
		case err != nil:
			return err
		default:
			if detached, err = refs.DetachSport(ctx, sportID); err != nil {
				return err
			}
		}
		deleted, err = repo.Delete(ctx, sportID)
		return err
	})
	if err != nil {
		return nil, translate(err, "", "failed to delete sport")
	}

	s.logger.InfoContext(ctx, "sport deleted",
		"request_id", requestcontext.RequestID(ctx),
		"sport_id", deleted.ID,
		"references_detached", detached,
	)
	return deleted, nil
}

func translate(err error, name, internalMsg string) error {
	if de, ok := dErrors.As(err); ok {
		if de.Code == dErrors.CodeInvariantViolation {
			return dErrors.New(dErrors.CodeValidation, de.Message)
		}
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "sport not found")
	case errors.Is(err, sentinel.ErrConflict):
		if name == "" {
			return dErrors.Wrap(err, dErrors.CodeConflict, "sport name already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeConflict, duplicate(name).Error())
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}

func duplicate(name string) error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("sport '%s' already exists", name))
}

func toValidation(err error) error {
	if de, ok := dErrors.As(err); ok && de.Code == dErrors.CodeInvariantViolation {
		return dErrors.New(dErrors.CodeValidation, de.Message)
	}
	return err
}
