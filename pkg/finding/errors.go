package finding

import "errors"

// Sentinel errors for finding parse failures.
// Callers should use errors.Is() to check for these.
var (
	// ErrMalformedFinding indicates the header line of a finding document
	// does not carry a bracketed identifier.
	ErrMalformedFinding = errors.New("finding: malformed finding")

	// ErrInvalidStatus indicates the status marker holds a value that is
	// not a known resolution status.
	ErrInvalidStatus = errors.New("finding: invalid status")

	// ErrInvalidID indicates a finding identifier is not of the form
	// <signature>-<index>.
	ErrInvalidID = errors.New("finding: invalid identifier")

	// ErrInvalidSeverity indicates an unknown severity signature or name.
	ErrInvalidSeverity = errors.New("finding: invalid severity")
)
