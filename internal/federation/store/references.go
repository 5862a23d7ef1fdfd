package store

import (
	"context"
	"fmt"

	countryports "sportify/internal/country/ports"
	"sportify/internal/federation/models"
	"sportify/internal/federation/ports"
	sportports "sportify/internal/sport/ports"
	id "sportify/pkg/domain"
)

// References clears federation links to a country or sport about to be
// deleted. The memory backend has no foreign keys to do it.
type References struct {
	repo ports.FederationRepository
}

var (
	_ countryports.CountryReferences = References{}
	_ sportports.SportReferences     = References{}
)

func NewReferences(repo ports.FederationRepository) References {
	return References{repo: repo}
}

func (r References) DetachCountry(ctx context.Context, countryID id.CountryID) (int, error) {
	linked, err := r.repo.ByCountry(ctx, countryID)
	if err != nil {
		return 0, err
	}
	return r.detach(ctx, linked, models.FederationPatch{DetachCountry: true})
}

func (r References) DetachSport(ctx context.Context, sportID id.SportID) (int, error) {
	linked, err := r.repo.BySport(ctx, sportID)
	if err != nil {
		return 0, err
	}
	return r.detach(ctx, linked, models.FederationPatch{DetachSport: true})
}

func (r References) detach(ctx context.Context, linked []*models.Federation, patch models.FederationPatch) (int, error) {
	for _, f := range linked {
		if _, err := r.repo.Update(ctx, f.ID, patch); err != nil {
			return 0, fmt.Errorf("detach federation %d: %w", f.ID, err)
		}
	}
	return len(linked), nil
}
