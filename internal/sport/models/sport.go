// Package models holds the sport aggregate.
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
	MaxNameLength = 100
)

// Sport is a discipline federations govern. Names are unique ignoring case.
type Sport struct {
	ID        id.SportID
	Name      string
	TeamBased bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSport builds a sport that is not yet persisted.
func NewSport(name string, teamBased bool) (*Sport, error) {
	clean, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Sport{Name: clean, TeamBased: teamBased}, nil
}

func validateName(name string) (string, error) {
	clean := strings.TrimSpace(name)
	n := utf8.RuneCountInString(clean)
	switch {
	case n == 0:
		return "", dErrors.New(dErrors.CodeInvariantViolation, "sport name cannot be empty")
	case n < MinNameLength:
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("sport name must be at least %d characters", MinNameLength))
	case n > MaxNameLength:
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("sport name cannot exceed %d characters", MaxNameLength))
	}
	return clean, nil
}

// NameKey is the case-folded name uniqueness is checked against.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Sport) Rename(name string) error {
	clean, err := validateName(name)
	if err != nil {
		return err
	}
	s.Name = clean
	return nil
}

// SportInput is the raw data for a new sport.
type SportInput struct {
	Name      string
	TeamBased *bool
}

// SportPatch is a partial update; nil fields are left as is.
type SportPatch struct {
	Name      *string
	TeamBased *bool
}

func (p SportPatch) IsEmpty() bool {
	return p.Name == nil && p.TeamBased == nil
}

func (p SportPatch) Apply(s *Sport) error {
	if p.Name != nil {
		if err := s.Rename(*p.Name); err != nil {
			return err
		}
	}
	if p.TeamBased != nil {
		s.TeamBased = *p.TeamBased
	}
	return nil
}
