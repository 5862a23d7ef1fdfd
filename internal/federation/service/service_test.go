package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	countrymodels "sportify/internal/country/models"
	countryservice "sportify/internal/country/service"
	countrystore "sportify/internal/country/store"
	"sportify/internal/federation/models"
	"sportify/internal/federation/store"
	sportmodels "sportify/internal/sport/models"
	sportservice "sportify/internal/sport/service"
	sportstore "sportify/internal/sport/store"
	"sportify/internal/storage/memory"
	"sportify/internal/storage/uow"
	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/requestcontext"
)

type FederationServiceSuite struct {
	suite.Suite
	ctx       context.Context
	service   *Service
	countries *countryservice.Service
	sports    *sportservice.Service
}

func TestFederationServiceSuite(t *testing.T) {
	suite.Run(t, new(FederationServiceSuite))
}

func (s *FederationServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := uow.NewRegistry()
	countrystore.RegisterMemory(reg)
	sportstore.RegisterMemory(reg)
	store.RegisterMemory(reg)
	mgr := uow.NewManager(memory.NewDB(), reg, uow.WithLogger(logger))
	s.service = New(mgr, WithLogger(logger))
	s.countries = countryservice.New(mgr, countryservice.WithLogger(logger))
	s.sports = sportservice.New(mgr, sportservice.WithLogger(logger))
}

func (s *FederationServiceSuite) create(name, level string, parent *id.FederationID) *models.Federation {
	f, err := s.service.Create(s.ctx, models.FederationInput{Name: name, Level: level, ParentID: parent})
	s.Require().NoError(err)
	return f
}

func (s *FederationServiceSuite) TestCreateChecksReferences() {
	br, err := s.countries.Create(s.ctx, countrymodels.CountryInput{Name: "Brazil", ISOCode: "BR"})
	s.Require().NoError(err)

	cbf, err := s.service.Create(s.ctx, models.FederationInput{Name: "CBF", Level: "national", CountryID: &br.ID})
	s.Require().NoError(err)
	s.Equal(br.ID, *cbf.CountryID)

	missingCountry := id.CountryID(77)
	_, err = s.service.Create(s.ctx, models.FederationInput{Name: "AFA", Level: "national", CountryID: &missingCountry})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(err.Error(), "country_id 77 does not exist")

	missingSport := id.SportID(3)
	_, err = s.service.Create(s.ctx, models.FederationInput{Name: "AFA", Level: "national", SportID: &missingSport})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	missingParent := id.FederationID(99)
	_, err = s.service.Create(s.ctx, models.FederationInput{Name: "AFA", Level: "national", ParentID: &missingParent})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *FederationServiceSuite) TestCreateRejectsDuplicateNameAndBadLevel() {
	s.create("FIFA", "world", nil)

	_, err := s.service.Create(s.ctx, models.FederationInput{Name: "FIFA", Level: "world"})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = s.service.Create(s.ctx, models.FederationInput{Name: "UEFA", Level: "galactic"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *FederationServiceSuite) TestReparentingCannotCreateCycle() {
	fifa := s.create("FIFA", "world", nil)
	conmebol := s.create("CONMEBOL", "continental", &fifa.ID)
	cbf := s.create("CBF", "national", &conmebol.ID)

	_, err := s.service.Update(s.ctx, fifa.ID, models.FederationPatch{ParentID: &cbf.ID})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Contains(err.Error(), "own ancestor")

	_, err = s.service.Update(s.ctx, cbf.ID, models.FederationPatch{ParentID: &cbf.ID})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	moved, err := s.service.Update(s.ctx, cbf.ID, models.FederationPatch{ParentID: &fifa.ID})
	s.Require().NoError(err)
	s.Equal(fifa.ID, *moved.ParentID)

	root, err := s.service.Update(s.ctx, cbf.ID, models.FederationPatch{DetachParent: true})
	s.Require().NoError(err)
	s.True(root.IsRoot())
}

func (s *FederationServiceSuite) TestUpdate() {
	fifa := s.create("FIFA", "world", nil)
	s.create("UEFA", "continental", &fifa.ID)

	unchanged, err := s.service.Update(s.ctx, fifa.ID, models.FederationPatch{})
	s.Require().NoError(err)
	s.Equal(fifa.UpdatedAt, unchanged.UpdatedAt)

	taken := "UEFA"
	_, err = s.service.Update(s.ctx, fifa.ID, models.FederationPatch{Name: &taken})
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	continental := models.LevelContinental
	got, err := s.service.Update(s.ctx, fifa.ID, models.FederationPatch{Level: &continental})
	s.Require().NoError(err)
	s.Equal(models.LevelContinental, got.Level)

	_, err = s.service.Update(s.ctx, 404, models.FederationPatch{Level: &continental})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *FederationServiceSuite) TestChildrenAndDelete() {
	fifa := s.create("FIFA", "world", nil)
	s.create("UEFA", "continental", &fifa.ID)
	s.create("CONMEBOL", "continental", &fifa.ID)

	children, err := s.service.Children(s.ctx, fifa.ID)
	s.Require().NoError(err)
	s.Require().Len(children, 2)
	s.Equal("CONMEBOL", children[0].Name)

	_, err = s.service.Children(s.ctx, 404)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	deleted, err := s.service.Delete(s.ctx, fifa.ID)
	s.Require().NoError(err)
	s.Equal("FIFA", deleted.Name)

	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 2)
	for _, f := range all {
		s.True(f.IsRoot(), "%s should be detached", f.Name)
	}

	_, err = s.service.Delete(s.ctx, fifa.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *FederationServiceSuite) TestDeletingLinkedRowsClearsFederationReferences() {
	br, err := s.countries.Create(s.ctx, countrymodels.CountryInput{Name: "Brazil", ISOCode: "BR"})
	s.Require().NoError(err)
	football, err := s.sports.Create(s.ctx, sportmodels.SportInput{Name: "Football"})
	s.Require().NoError(err)
	cbf, err := s.service.Create(s.ctx, models.FederationInput{
		Name: "CBF", Level: "national", CountryID: &br.ID, SportID: &football.ID,
	})
	s.Require().NoError(err)
	fifa := s.create("FIFA", "world", nil)

	s.Run("country delete clears country_id", func() {
		_, err := s.countries.Delete(s.ctx, br.ID)
		s.Require().NoError(err)

		got, err := s.service.Get(s.ctx, cbf.ID)
		s.Require().NoError(err)
		s.Nil(got.CountryID)
		s.Require().NotNil(got.SportID)
		s.Equal(football.ID, *got.SportID)
	})

	s.Run("sport delete clears sport_id", func() {
		_, err := s.sports.Delete(s.ctx, football.ID)
		s.Require().NoError(err)

		got, err := s.service.Get(s.ctx, cbf.ID)
		s.Require().NoError(err)
		s.Nil(got.SportID)
	})

	s.Run("unlinked federations are untouched", func() {
		got, err := s.service.Get(s.ctx, fifa.ID)
		s.Require().NoError(err)
		s.Equal(fifa.UpdatedAt, got.UpdatedAt)
	})
}

func (s *FederationServiceSuite) TestUpdateChecksFoundedDateAgainstRequestClock() {
	cbf := s.create("CBF", "national", nil)

	// after the request clock of 2025-06-01 but long before the wall clock
	later := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.service.Update(s.ctx, cbf.ID, models.FederationPatch{FoundedDate: &later})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	founded := time.Date(1914, 6, 8, 0, 0, 0, 0, time.UTC)
	got, err := s.service.Update(s.ctx, cbf.ID, models.FederationPatch{FoundedDate: &founded})
	s.Require().NoError(err)
	s.Equal(founded, *got.FoundedDate)
}
