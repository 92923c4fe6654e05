package version

import (
	"errors"
	"fmt"
)

// ErrInvalidVersion is matched by every parse failure via errors.Is.
var ErrInvalidVersion = errors.New("invalid version")

// Reasons reported by InvalidError.
const (
	ReasonEmpty         = "empty version"
	ReasonNoMajor       = "no major version"
	ReasonNoMinor       = "no minor version"
	ReasonNoPatch       = "no patch version"
	ReasonEmptyBuild    = "build cannot be empty"
	ReasonEmptySuffix   = "suffix cannot be empty"
	ReasonTooMany       = "too many components"
	ReasonNonNumeric    = "segment does not start with a number"
	ReasonEmptySegment  = "empty segment"
	ReasonEmptySep      = "separator cannot be empty"
	ReasonInvalidSuffix = "invalid suffix"
)

// InvalidError describes a version string that could not be parsed.
type InvalidError struct {
	// Input is the offending literal as given by the caller.
	Input string
	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidVersion) match any InvalidError.
func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalidVersion
}

func invalid(input, reason string) error {
	return &InvalidError{Input: input, Reason: reason}
}
