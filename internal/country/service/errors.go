package service

import (
	"errors"
	"fmt"

	"sportify/internal/country/models"
	dErrors "sportify/pkg/domain-errors"
	"sportify/pkg/platform/sentinel"
)

// translate maps storage sentinels and invariant violations escaping a unit of
// work onto domain codes. Already coded errors pass through, except invariant
// violations which the API reports as validation failures.
func translate(err error, code models.ISOCode, internalMsg string) error {
	if de, ok := dErrors.As(err); ok {
		if de.Code == dErrors.CodeInvariantViolation {
			return dErrors.New(dErrors.CodeValidation, de.Message)
		}
		return err
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "country not found")
	case errors.Is(err, sentinel.ErrConflict):
		if code.IsZero() {
			return dErrors.Wrap(err, dErrors.CodeConflict, "country ISO code already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeConflict, duplicateMessage(code))
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
	}
}

func duplicateMessage(code models.ISOCode) string {
	return fmt.Sprintf("country with ISO code '%s' already exists", code)
}

func duplicate(code models.ISOCode) error {
	return dErrors.New(dErrors.CodeConflict, duplicateMessage(code))
}

// toValidation converts a constructor invariant violation into a validation error.
func toValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, validationMessage(err))
	}
	return err
}

func validationMessage(err error) string {
	if de, ok := dErrors.As(err); ok {
		return de.Message
	}
	return err.Error()
}
