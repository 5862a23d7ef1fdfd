package domain

import (
	"strconv"
	"strings"

	dErrors "sportify/pkg/domain-errors"
)

// Typed identities keep a CountryID from being passed where a FederationID
// is expected. All are storage-assigned positive integers.
type (
	CountryID    int64
	SportID      int64
	FederationID int64
)

// maxIDDigits bounds the accepted input before strconv sees it.
const maxIDDigits = 19

func parsePositive(s, label string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	if len(s) > maxIDDigits || strings.TrimSpace(s) != s {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	return n, nil
}

// ParseCountryID parses a decimal path parameter into a CountryID.
func ParseCountryID(s string) (CountryID, error) {
	n, err := parsePositive(s, "country id")
	return CountryID(n), err
}

// ParseSportID parses a decimal path parameter into a SportID.
func ParseSportID(s string) (SportID, error) {
	n, err := parsePositive(s, "sport id")
	return SportID(n), err
}

// ParseFederationID parses a decimal path parameter into a FederationID.
func ParseFederationID(s string) (FederationID, error) {
	n, err := parsePositive(s, "federation id")
	return FederationID(n), err
}

func (id CountryID) String() string    { return strconv.FormatInt(int64(id), 10) }
func (id SportID) String() string      { return strconv.FormatInt(int64(id), 10) }
func (id FederationID) String() string { return strconv.FormatInt(int64(id), 10) }

// IsNil reports whether the identity has not been assigned yet.
func (id CountryID) IsNil() bool    { return id == 0 }
func (id SportID) IsNil() bool      { return id == 0 }
func (id FederationID) IsNil() bool { return id == 0 }
