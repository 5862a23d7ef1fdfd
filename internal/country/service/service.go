package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sportify/internal/country/metrics"
	"sportify/internal/country/models"
	"sportify/internal/country/ports"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/sentinel"
	"sportify/pkg/requestcontext"
)

// Runner executes a callback inside a unit of work; *uow.Manager implements it.
type Runner interface {
	Run(ctx context.Context, fn func(ctx context.Context, u *uow.UnitOfWork) error) error
}

// Service implements the country use cases. Each call runs in its own unit of work.
type Service struct {
	runner  Runner
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(runner Runner, opts ...Option) *Service {
	s := &Service{runner: runner, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func repository(u *uow.UnitOfWork) (ports.CountryRepository, error) {
	repo, err := uow.Get[ports.CountryRepository](u)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open country repository")
	}
	return repo, nil
}

// Create persists a new country after checking its ISO code is free. The
// unique constraint still guards the race between check and insert.
func (s *Service) Create(ctx context.Context, in models.CountryInput) (*models.Country, error) {
	start := time.Now()
	country, err := models.NewCountry(in.Name, in.ISOCode)
	if err != nil {
		return nil, toValidation(err)
	}

	var created *models.Country
	err = s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByISOCode(ctx, country.ISOCode)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check ISO code")
		}
		if taken {
			return duplicate(country.ISOCode)
		}
		created, err = repo.Create(ctx, country)
		if err != nil {
			return translate(err, country.ISOCode, "failed to create country")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, country.ISOCode, "failed to create country")
	}

	s.logger.InfoContext(ctx, "country created",
		"request_id", requestcontext.RequestID(ctx),
		"country_id", created.ID,
		"iso_code", created.ISOCode.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementCreated(1)
		s.metrics.ObserveCreate(start)
	}
	return created, nil
}

// CreateMany persists every country or none. All inputs are validated, and
// ISO codes checked against each other and storage, before anything is written.
func (s *Service) CreateMany(ctx context.Context, inputs []models.CountryInput) ([]*models.Country, error) {
	start := time.Now()
	if len(inputs) == 0 {
		return []*models.Country{}, nil
	}

	countries := make([]*models.Country, 0, len(inputs))
	seen := make(map[models.ISOCode]int, len(inputs))
	for i, in := range inputs {
		c, err := models.NewCountry(in.Name, in.ISOCode)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("countries[%d]: %s", i, validationMessage(err)))
		}
		if first, ok := seen[c.ISOCode]; ok {
			return nil, dErrors.New(dErrors.CodeConflict,
				fmt.Sprintf("countries[%d]: ISO code '%s' duplicates countries[%d]", i, c.ISOCode, first))
		}
		seen[c.ISOCode] = i
		countries = append(countries, c)
	}

	var created []*models.Country
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		for _, c := range countries {
			taken, err := repo.ExistsByISOCode(ctx, c.ISOCode)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check ISO code")
			}
			if taken {
				return duplicate(c.ISOCode)
			}
		}
		created, err = repo.CreateMany(ctx, countries)
		if err != nil {
			return translate(err, models.ISOCode{}, "failed to create countries")
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, models.ISOCode{}, "failed to create countries")
	}

	s.logger.InfoContext(ctx, "countries created",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(created),
	)
	if s.metrics != nil {
		s.metrics.IncrementCreated(len(created))
		s.metrics.ObserveBulkSize(len(created))
		s.metrics.ObserveCreate(start)
	}
	return created, nil
}

// Get returns one country.
func (s *Service) Get(ctx context.Context, countryID id.CountryID) (*models.Country, error) {
	var country *models.Country
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		country, err = repo.GetByID(ctx, countryID)
		return err
	})
	if err != nil {
		return nil, translate(err, models.ISOCode{}, "failed to load country")
	}
	return country, nil
}

// List returns countries sorted by name.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*models.Country, error) {
	var countries []*models.Country
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		countries, err = repo.List(ctx, activeOnly)
		return err
	})
	if err != nil {
		return nil, translate(err, models.ISOCode{}, "failed to list countries")
	}
	return countries, nil
}

// Update applies a partial update. A new ISO code must not belong to another
// country; an empty update returns the country unchanged.
func (s *Service) Update(ctx context.Context, countryID id.CountryID, upd models.CountryUpdate) (*models.Country, error) {
	patch, err := upd.ToPatch()
	if err != nil {
		return nil, toValidation(err)
	}

	var updated *models.Country
	var code models.ISOCode
	err = s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if patch.ISOCode != nil {
			code = *patch.ISOCode
			holder, err := repo.FindByISOCode(ctx, code)
			switch {
			case err == nil && holder.ID != countryID:
				return duplicate(code)
			case err != nil && !errors.Is(err, sentinel.ErrNotFound):
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check ISO code")
			}
		}
		updated, err = repo.Update(ctx, countryID, patch)
		return err
	})
	if err != nil {
		return nil, translate(err, code, "failed to update country")
	}

	s.logger.InfoContext(ctx, "country updated",
		"request_id", requestcontext.RequestID(ctx),
		"country_id", updated.ID,
		"changed", !patch.IsEmpty(),
	)
	return updated, nil
}

// Delete removes a country and returns what was stored.
func (s *Service) Delete(ctx context.Context, countryID id.CountryID) (*models.Country, error) {
	var deleted *models.Country
	detached := 0
	err := s.runner.Run(ctx, func(ctx context.Context, u *uow.UnitOfWork) error {
		repo, err := repository(u)
		if err != nil {
			return err
		}
		if detached, err = detachReferences(ctx, u, countryID); err != nil {
			return err
		}
		deleted, err = repo.Delete(ctx, countryID)
		return err
	})
	if err != nil {
		return nil, translate(err, models.ISOCode{}, "failed to delete country")
	}

	s.logger.InfoContext(ctx, "country deleted",
		"request_id", requestcontext.RequestID(ctx),
		"country_id", deleted.ID,
		"iso_code", deleted.ISOCode.String(),
		"references_detached", detached,
	)
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	return deleted, nil
}

// detachReferences clears links to the country held by other aggregates. A
// deployment without any registered referrer has nothing to clear.
func detachReferences(ctx context.Context, u *uow.UnitOfWork, countryID id.CountryID) (int, error) {
	refs, err := uow.Get[ports.CountryReferences](u)
	switch {
	case errors.Is(err, uow.ErrNotRegistered):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return refs.DetachCountry(ctx, countryID)
}
