package handler

import (
	"strings"

	"sportify/internal/country/models"
	"sportify/pkg/platform/validation"
)

// CreateCountryRequest is the body of POST /countries and one item of a bulk create.
type CreateCountryRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	ISOCode string `json:"iso_code" validate:"required,len=2,alpha"`
}

func (r *CreateCountryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ISOCode = strings.ToUpper(strings.TrimSpace(r.ISOCode))
}

func (r *CreateCountryRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateCountryRequest) toInput() models.CountryInput {
	return models.CountryInput{Name: r.Name, ISOCode: r.ISOCode}
}

// BulkCreateCountriesRequest is the body of POST /countries/bulk.
type BulkCreateCountriesRequest struct {
	Countries []CreateCountryRequest `json:"countries" validate:"required,min=1,max=500,dive"`
}

func (r *BulkCreateCountriesRequest) Normalize() {
	for i := range r.Countries {
		r.Countries[i].Normalize()
	}
}

func (r *BulkCreateCountriesRequest) Validate() error {
	return validation.Struct(r)
}

func (r *BulkCreateCountriesRequest) toInputs() []models.CountryInput {
	out := make([]models.CountryInput, 0, len(r.Countries))
	for i := range r.Countries {
		out = append(out, r.Countries[i].toInput())
	}
	return out
}

// UpdateCountryRequest is the body of PUT and PATCH /countries/{id}.
// Omitted fields keep their stored value.
type UpdateCountryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	ISOCode  *string `json:"iso_code" validate:"omitempty,len=2,alpha"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateCountryRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.ISOCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*r.ISOCode))
		r.ISOCode = &code
	}
}

func (r *UpdateCountryRequest) Validate() error {
	return validation.Struct(r)
}

func (r *UpdateCountryRequest) toUpdate() models.CountryUpdate {
	return models.CountryUpdate{Name: r.Name, ISOCode: r.ISOCode, IsActive: r.IsActive}
}
