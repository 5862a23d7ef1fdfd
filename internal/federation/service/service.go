// Package service implements the federation use cases. Writes check the
// referenced country, sport and parent federation inside the same unit of
// work as the write itself.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	countryports "sportify/internal/country/ports"
	"sportify/internal/federation/models"
	"sportify/internal/federation/ports"
	sportports "sportify/internal/sport/ports"
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

func repository(u *uow.UnitOfWork) (ports.FederationRepository, error) {
	repo, err := uow.Get[ports.FederationRepository](u)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open federation repository")
	}
	return repo, nil
}

func (s *Service) Create(ctx context.Context, in models.FederationInput) (*models.Federation, error) {
	fed, err := models.NewFederation(in, requestcontext.Now(ctx))
	if err != nil {
		return nil, translate(err, "")
	}

	var created *models.Federation
	err = s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if err := checkNameFree(ctx, repo, fed.Name, 0); err != nil {
			return err
		}
		if err := checkReferences(ctx, u, fed.CountryID, fed.SportID, fed.ParentID); err != nil {
			return err
		}
		created, err = repo.Create(ctx, fed)
		return err
	})
	if err != nil {
		return nil, translate(err, fed.Name)
	}

	s.logger.InfoContext(ctx, "federation created",
		"request_id", requestcontext.RequestID(ctx),
		"federation_id", created.ID,
		"level", created.Level,
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, fedID id.FederationID) (*models.Federation, error) {
	var fed *models.Federation
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		fed, err = repo.GetByID(ctx, fedID)
		return err
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return fed, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Federation, error) {
	var feds []*models.Federation
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		feds, err = repo.GetAll(ctx)
		return err
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return feds, nil
}

// Children lists the direct children of an existing federation.
func (s *Service) Children(ctx context.Context, fedID id.FederationID) ([]*models.Federation, error) {
	var children []*models.Federation
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if _, err := repo.GetByID(ctx, fedID); err != nil {
			return err
		}
		children, err = repo.Children(ctx, fedID)
		return err
	})
	if err != nil {
		return nil, translate(err, "")
	}
	return children, nil
}

// Update applies a partial update. A new parent must exist and must not be
// the federation itself or one of its descendants.
func (s *Service) Update(ctx context.Context, fedID id.FederationID, patch models.FederationPatch) (*models.Federation, error) {
	var updated *models.Federation
	name := ""
	patch.AsOf = requestcontext.Now(ctx)
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		current, err := repo.GetByID(ctx, fedID)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}
		if err := patch.Apply(current); err != nil {
			return err
		}
		if patch.Name != nil {
			name = current.Name
			if err := checkNameFree(ctx, repo, name, fedID); err != nil {
				return err
			}
		}
		countryRef, sportRef := patch.CountryID, patch.SportID
		if patch.DetachCountry {
			countryRef = nil
		}
		if patch.DetachSport {
			sportRef = nil
		}
		if err := checkReferences(ctx, u, countryRef, sportRef, nil); err != nil {
			return err
		}
		if patch.ParentID != nil && !patch.DetachParent {
			if err := checkParent(ctx, repo, fedID, *patch.ParentID); err != nil {
				return err
			}
		}
		updated, err = repo.Update(ctx, fedID, patch)
		return err
	})
	if err != nil {
		return nil, translate(err, name)
	}
	return updated, nil
}

// Delete removes a federation after detaching its children, all in one unit
// of work.
func (s *Service) Delete(ctx context.Context, fedID id.FederationID) (*models.Federation, error) {
	var deleted *models.Federation
	detached := 0
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		children, err := repo.Children(ctx, fedID)
		if err != nil {
			return err
		}
		for _, child := range children {
			if _, err := repo.Update(ctx, child.ID, models.FederationPatch{DetachParent: true}); err != nil {
				return fmt.Errorf("detach federation %d: %w", child.ID, err)
			}
		}
		detached = len(children)
		deleted, err = repo.Delete(ctx, fedID)
		return err
	})
	if err != nil {
		return nil, translate(err, "")
	}

	s.logger.InfoContext(ctx, "federation deleted",
		"request_id", requestcontext.RequestID(ctx),
		"federation_id", deleted.ID,
		"children_detached", detached,
	)
	return deleted, nil
}

func checkNameFree(ctx context.Context, repo ports.FederationRepository, name string, self id.FederationID) error {
	holder, err := repo.FindByName(ctx, name)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check federation name")
	case holder.ID != self:
		return duplicate(name)
	}
	return nil
}

// checkReferences verifies that each non-nil reference points at a stored row.
func checkReferences(ctx context.Context, u *uow.UnitOfWork, countryID *id.CountryID, sportID *id.SportID, parentID *id.FederationID) error {
	if countryID != nil {
		countries, err := uow.Get[countryports.CountryRepository](u)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to open country repository")
		}
		if _, err := countries.GetByID(ctx, *countryID); err != nil {
			return missing(err, "country_id", countryID.String())
		}
	}
	if sportID != nil {
		sports, err := uow.Get[sportports.SportRepository](u)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to open sport repository")
		}
		if _, err := sports.GetByID(ctx, *sportID); err != nil {
			return missing(err, "sport_id", sportID.String())
		}
	}
	if parentID != nil {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if _, err := repo.GetByID(ctx, *parentID); err != nil {
			return missing(err, "parent_federation_id", parentID.String())
		}
	}
	return nil
}

func checkParent(ctx context.Context, repo ports.FederationRepository, child, parent id.FederationID) error {
	if _, err := repo.GetByID(ctx, parent); err != nil {
		return missing(err, "parent_federation_id", parent.String())
	}
	h, err := repo.Hierarchy(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load federation hierarchy")
	}
	if h.WouldCycle(child, parent) {
		return dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("parent_federation_id %s would make federation %s its own ancestor", parent, child))
	}
	return nil
}

func missing(err error, field, value string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s %s does not exist", field, value))
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check "+field)
}

func duplicate(name string) error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("federation '%s' already exists", name))
}

func translate(err error, name string) error {
	if de, ok := dErrors.As(err); ok {
		if de.Code == dErrors.CodeInvariantViolation {
			return dErrors.New(dErrors.CodeValidation, de.Message)
		}
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "federation not found")
	case errors.Is(err, sentinel.ErrConflict):
		if name == "" {
			return dErrors.Wrap(err, dErrors.CodeConflict, "federation name already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeConflict, duplicate(name).Error())
	case errors.Is(err, sentinel.ErrInvalidReference):
		return dErrors.Wrap(err, dErrors.CodeValidation, "referenced record does not exist")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "federation storage failure")
	}
}
