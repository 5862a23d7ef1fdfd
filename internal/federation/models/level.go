package models

import (
	"fmt"
	"strings"

	dErrors "sportify/pkg/domain-errors"
)

// Level is the geographic reach of a federation.
type Level string

const (
	LevelMunicipal   Level = "municipal"
	LevelRegional    Level = "regional"
	LevelState       Level = "state"
	LevelNational    Level = "national"
	LevelContinental Level = "continental"
	LevelWorld       Level = "world"
)

var levels = []Level{LevelMunicipal, LevelRegional, LevelState, LevelNational, LevelContinental, LevelWorld}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if l.IsValid() {
		return l, nil
	}
	return "", dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("invalid federation level %q", s))
}

func (l Level) IsValid() bool {
	for _, v := range levels {
		if v == l {
			return true
		}
	}
	return false
}

func (l Level) String() string { return string(l) }
