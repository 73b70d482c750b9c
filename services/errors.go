package services

import "errors"

// Error kinds surfaced to callers. Services wrap these with context via
// fmt.Errorf("...: %w", ...); controllers and socket handlers classify with
// errors.Is and never retry on the caller's behalf.
var (
	// ErrNotFound means the referenced entity does not exist (or is outside
	// its read-visibility window).
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller identity does not hold the required
	// relationship to the entity.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means the entity is already in a terminal or non-matching
	// state for the attempted operation.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition means the requested target state is not legal from
	// the current state.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrValidation means the payload is structurally malformed.
	ErrValidation = errors.New("validation error")
)

func isConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
