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

// Country is the aggregate for a member country.
//
// Invariants:
//   - Name is trimmed and 2 to 100 characters long
//   - ISOCode is a valid alpha-2 code and unique across countries
//   - ID and timestamps are assigned by storage; zero until persisted
//
// Two countries are the same country when their ISO codes match, whatever
// their IDs.
type Country struct {
	ID        id.CountryID
	Name      string
	ISOCode   ISOCode
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCountry builds an active, not yet persisted country.
func NewCountry(name, isoCode string) (*Country, error) {
	code, err := ParseISOCode(isoCode)
	if err != nil {
		return nil, err
	}
	clean, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Country{Name: clean, ISOCode: code, IsActive: true}, nil
}

func validateName(name string) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "country name cannot be empty")
	}
	n := utf8.RuneCountInString(clean)
	if n < MinNameLength {
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("country name must be at least %d characters", MinNameLength))
	}
	if n > MaxNameLength {
		return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("country name cannot exceed %d characters", MaxNameLength))
	}
	return clean, nil
}

// Rename validates and applies a new name. On error the name is unchanged.
func (c *Country) Rename(name string) error {
	clean, err := validateName(name)
	if err != nil {
		return err
	}
	c.Name = clean
	return nil
}

func (c *Country) Activate() {
	c.IsActive = true
}

func (c *Country) Deactivate() {
	c.IsActive = false
}

// SameCountry compares by ISO code.
func (c *Country) SameCountry(other *Country) bool {
	if c == nil || other == nil {
		return false
	}
	return c.ISOCode == other.ISOCode
}

func (c *Country) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.ISOCode)
}
