package handler

import (
	"strings"
	"time"

	"sportify/internal/federation/models"
	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/validation"
)

const dateLayout = time.DateOnly

type CreateFederationRequest struct {
	Name               string  `json:"name" validate:"required,min=2,max=150"`
	Level              string  `json:"level" validate:"required,oneof=municipal regional state national continental world"`
	ParentFederationID *int64  `json:"parent_federation_id" validate:"omitempty,gt=0"`
	CountryID          *int64  `json:"country_id" validate:"omitempty,gt=0"`
	SportID            *int64  `json:"sport_id" validate:"omitempty,gt=0"`
	FoundedDate        *string `json:"founded_date"`

	foundedDate *time.Time
}

func (r *CreateFederationRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
}

func (r *CreateFederationRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	d, err := parseDate(r.FoundedDate)
	if err != nil {
		return err
	}
	r.foundedDate = d
	return nil
}

func (r *CreateFederationRequest) toInput() models.FederationInput {
	return models.FederationInput{
		Name:        r.Name,
		Level:       r.Level,
		ParentID:    typedID[id.FederationID](r.ParentFederationID),
		CountryID:   typedID[id.CountryID](r.CountryID),
		SportID:     typedID[id.SportID](r.SportID),
		FoundedDate: r.foundedDate,
	}
}

// UpdateFederationRequest is a partial update. detach_parent turns the
// federation into a root.
type UpdateFederationRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=2,max=150"`
	Level              *string `json:"level" validate:"omitempty,oneof=municipal regional state national continental world"`
	ParentFederationID *int64  `json:"parent_federation_id" validate:"omitempty,gt=0"`
	DetachParent       bool    `json:"detach_parent"`
	CountryID          *int64  `json:"country_id" validate:"omitempty,gt=0"`
	SportID            *int64  `json:"sport_id" validate:"omitempty,gt=0"`
	FoundedDate        *string `json:"founded_date"`

	foundedDate *time.Time
}

func (r *UpdateFederationRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Level != nil {
		level := strings.ToLower(strings.TrimSpace(*r.Level))
		r.Level = &level
	}
}

func (r *UpdateFederationRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.DetachParent && r.ParentFederationID != nil {
		return dErrors.New(dErrors.CodeValidation, "parent_federation_id and detach_parent are mutually exclusive")
	}
	d, err := parseDate(r.FoundedDate)
	if err != nil {
		return err
	}
	r.foundedDate = d
	return nil
}

func (r *UpdateFederationRequest) toPatch() models.FederationPatch {
	p := models.FederationPatch{
		Name:         r.Name,
		ParentID:     typedID[id.FederationID](r.ParentFederationID),
		DetachParent: r.DetachParent,
		CountryID:    typedID[id.CountryID](r.CountryID),
		SportID:      typedID[id.SportID](r.SportID),
		FoundedDate:  r.foundedDate,
	}
	if r.Level != nil {
		level := models.Level(*r.Level)
		p.Level = &level
	}
	return p
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "founded_date must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

func typedID[T ~int64](v *int64) *T {
	if v == nil {
		return nil
	}
	out := T(*v)
	return &out
}
