package server

import (
	"github.com/go-errors/errors"
)

var (
	// ErrNotFound is returned for an unknown username or challenge id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAuthentication is returned when the proof relation does not
	// hold for the submitted response. The pending challenge is consumed
	// either way, so a failed proof cannot be retried against the same
	// challenge.
	ErrInvalidAuthentication = errors.New("authentication verification failed")

	// ErrPrecondition indicates a pending challenge whose user record lacks
	// the commitment randomness r1/r2. The challenge issuance path always
	// populates both, so this only occurs if server state was corrupted; it
	// is surfaced as an internal error.
	ErrPrecondition = errors.New("challenge has no associated commitment randomness")
)
