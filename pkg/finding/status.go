package finding

import (
	"fmt"
	"strings"
)

// Status is the resolution status of a finding.
type Status string

const (
	StatusAcknowledged      Status = "Acknowledged"
	StatusUnresolved        Status = "Unresolved"
	StatusDisputed          Status = "Disputed"
	StatusResolved          Status = "Resolved"
	StatusPartiallyResolved Status = "Partially Resolved"
)

// Statuses returns every known status.
func Statuses() []Status {
	return []Status{
		StatusAcknowledged,
		StatusUnresolved,
		StatusDisputed,
		StatusResolved,
		StatusPartiallyResolved,
	}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the status as written in finding documents.
func (s Status) String() string {
	return string(s)
}

// ParseStatus parses the value of a status marker. Surrounding whitespace
// is ignored; the value itself must match a known status exactly.
func ParseStatus(value string) (Status, error) {
	value = strings.TrimSpace(value)
	for _, known := range Statuses() {
		if value == string(known) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}
