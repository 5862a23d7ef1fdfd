package sentinel

import "errors"

// Sentinel errors for storage facts. Repositories and sessions return these
// (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: no row matches the identity
// - ErrConflict: a unique key is already taken
// - ErrInvalidState: a session or unit of work is used outside its open state
// - ErrInvalidReference: a foreign key points at a missing row
// - ErrUnavailable: the backing store cannot be reached
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidReference = errors.New("invalid reference")
	ErrUnavailable      = errors.New("unavailable")
)
