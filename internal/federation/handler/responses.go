package handler

import (
	"time"

	"sportify/internal/federation/models"
)

type FederationResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Level              string    `json:"level"`
	ParentFederationID *int64    `json:"parent_federation_id"`
	CountryID          *int64    `json:"country_id"`
	SportID            *int64    `json:"sport_id"`
	FoundedDate        *string   `json:"founded_date"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type FederationListResponse struct {
	Federations []FederationResponse `json:"federations"`
	Total       int                  `json:"total"`
	Message     string               `json:"message"`
}

func toResponse(f *models.Federation) FederationResponse {
	resp := FederationResponse{
		ID:                 int64(f.ID),
		Name:               f.Name,
		Level:              f.Level.String(),
		ParentFederationID: rawID(f.ParentID),
		CountryID:          rawID(f.CountryID),
		SportID:            rawID(f.SportID),
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
	if f.FoundedDate != nil {
		d := f.FoundedDate.Format(dateLayout)
		resp.FoundedDate = &d
	}
	return resp
}

func toList(feds []*models.Federation, message string) FederationListResponse {
	out := make([]FederationResponse, 0, len(feds))
	for _, f := range feds {
		out = append(out, toResponse(f))
	}
	return FederationListResponse{Federations: out, Total: len(out), Message: message}
}

func rawID[T ~int64](v *T) *int64 {
	if v == nil {
		return nil
	}
	out := int64(*v)
	return &out
}
