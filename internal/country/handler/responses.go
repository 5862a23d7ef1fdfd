package handler

import (
	"time"

	"sportify/internal/country/models"
)

// CountryResponse is the wire form of a country.
type CountryResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	ISOCode   string     `json:"iso_code"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CountryEnvelope wraps a single country with a human readable message.
type CountryEnvelope struct {
	Message string          `json:"message,omitempty"`
	Country CountryResponse `json:"country"`
}

// CountryListResponse is returned by list and bulk create.
type CountryListResponse struct {
	Countries []CountryResponse `json:"countries"`
	Total     int               `json:"total"`
	Message   string            `json:"message"`
}

func toResponse(c *models.Country) CountryResponse {
	return CountryResponse{
		ID:        int64(c.ID),
		Name:      c.Name,
		ISOCode:   c.ISOCode.String(),
		IsActive:  c.IsActive,
		CreatedAt: timePtr(c.CreatedAt),
		UpdatedAt: timePtr(c.UpdatedAt),
	}
}

func toListResponse(cs []*models.Country, message string) CountryListResponse {
	out := make([]CountryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toResponse(c))
	}
	return CountryListResponse{Countries: out, Total: len(out), Message: message}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
