// Package models holds the federation aggregate and its hierarchy.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	id "sportify/pkg/domain"
	dErrors "sportify/pkg/domain-errors"
)

const (
	MinNameLength = 2
	MaxNameLength = 150
)

// Federation is a governing body. Federations form a forest through ParentID;
// CountryID and SportID are optional references checked on write.
type Federation struct {
	ID          id.FederationID
	Name        string
	Level       Level
	ParentID    *id.FederationID
	CountryID   *id.CountryID
	SportID     *id.SportID
	FoundedDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FederationInput is the raw data for a new federation.
type FederationInput struct {
	Name        string
	Level       string
	ParentID    *id.FederationID
	CountryID   *id.CountryID
	SportID     *id.SportID
	FoundedDate *time.Time
}

// NewFederation validates in and builds a federation that is not yet
// persisted. now bounds the founding date.
func NewFederation(in FederationInput, now time.Time) (*Federation, error) {
	name, err := validateName(in.Name)
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(in.Level)
	if err != nil {
		return nil, err
	}
	founded, err := validateFounded(in.FoundedDate, now)
	if err != nil {
		return nil, err
	}
	return &Federation{
		Name:        name,
		Level:       level,
		ParentID:    in.ParentID,
		CountryID:   in.CountryID,
		SportID:     in.SportID,
		FoundedDate: founded,
	}, nil
}

func validateName(name string) (string, error) {
	clean := strings.TrimSpace(name)
	n := utf8.RuneCountInString(clean)
	switch {
	case n == 0:
		return "", dErrors.New(dErrors.CodeInvariantViolation, "federation name cannot be empty")
	case n < MinNameLength:
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("federation name must be at least %d characters", MinNameLength))
	case n > MaxNameLength:
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("federation name cannot exceed %d characters", MaxNameLength))
	}
	return clean, nil
}

// validateFounded truncates to a calendar date and rejects dates after now.
func validateFounded(d *time.Time, now time.Time) (*time.Time, error) {
	if d == nil {
		return nil, nil
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if day.After(now) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "founded_date cannot be in the future")
	}
	return &day, nil
}

// IsRoot reports whether the federation has no parent.
func (f *Federation) IsRoot() bool {
	return f.ParentID == nil
}

func (f *Federation) String() string {
	return fmt.Sprintf("%s (%s)", f.Name, f.Level)
}

// FederationPatch is a partial update. Each Detach flag clears its link and
// wins over the matching id field. AsOf is the clock FoundedDate is checked
// against; zero means the wall clock.
type FederationPatch struct {
	Name          *string
	Level         *Level
	ParentID      *id.FederationID
	DetachParent  bool
	CountryID     *id.CountryID
	DetachCountry bool
	SportID       *id.SportID
	DetachSport   bool
	FoundedDate   *time.Time
	AsOf          time.Time
}

func (p FederationPatch) IsEmpty() bool {
	return p.Name == nil && p.Level == nil && p.ParentID == nil && !p.DetachParent &&
		p.CountryID == nil && !p.DetachCountry && p.SportID == nil && !p.DetachSport &&
		p.FoundedDate == nil
}

// Apply mutates f. f is untouched when a field is invalid.
func (p FederationPatch) Apply(f *Federation) error {
	next := *f
	if p.Name != nil {
		name, err := validateName(*p.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if p.Level != nil {
		if !p.Level.IsValid() {
			return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("invalid federation level %q", *p.Level))
		}
		next.Level = *p.Level
	}
	switch {
	case p.DetachParent:
		next.ParentID = nil
	case p.ParentID != nil:
		if *p.ParentID == f.ID {
			return dErrors.New(dErrors.CodeInvariantViolation, "federation cannot be its own parent")
		}
		parent := *p.ParentID
		next.ParentID = &parent
	}
	switch {
	case p.DetachCountry:
		next.CountryID = nil
	case p.CountryID != nil:
		c := *p.CountryID
		next.CountryID = &c
	}
	switch {
	case p.DetachSport:
		next.SportID = nil
	case p.SportID != nil:
		s := *p.SportID
		next.SportID = &s
	}
	if p.FoundedDate != nil {
		asOf := p.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}
		founded, err := validateFounded(p.FoundedDate, asOf.UTC())
		if err != nil {
			return err
		}
		next.FoundedDate = founded
	}
	*f = next
	return nil
}
