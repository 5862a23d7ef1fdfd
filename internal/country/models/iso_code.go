package models

import (
	"strings"
	"unicode/utf8"

	dErrors "sportify/pkg/domain-errors"
)

// ISOCode is an ISO 3166-1 alpha-2 country code such as BR or DE.
// The zero value is not a valid code; build one with ParseISOCode.
type ISOCode struct {
	value string
}

// ParseISOCode trims and upper-cases raw, then requires exactly two ASCII letters.
func ParseISOCode(raw string) (ISOCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if utf8.RuneCountInString(code) != 2 {
		return ISOCode{}, dErrors.New(dErrors.CodeInvariantViolation, "ISO code must be exactly 2 characters")
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return ISOCode{}, dErrors.New(dErrors.CodeInvariantViolation, "ISO code must contain only alphabetic characters")
		}
	}
	return ISOCode{value: code}, nil
}

func (c ISOCode) String() string {
	return c.value
}

func (c ISOCode) IsZero() bool {
	return c.value == ""
}
