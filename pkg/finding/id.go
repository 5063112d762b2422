package finding

import (
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a finding within its severity, e.g. H-01.
type ID struct {
	Severity Severity
	// Index is 1-based and numbered per severity.
	Index int
}

// ParseID parses "H-01" or "[H-01]".
func ParseID(raw string) (ID, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(strings.ReplaceAll(s, "[", ""), "]", "")
	if strings.Count(s, "-") != 1 {
		return ID{}, fmt.Errorf("%w: %q must contain exactly one '-'", ErrInvalidID, raw)
	}
	sig, num, _ := strings.Cut(s, "-")
	sev, err := ParseSignature(sig)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q: %w", ErrInvalidID, raw, err)
	}
	num = strings.TrimSpace(num)
	if num == "" || strings.IndexFunc(num, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return ID{}, fmt.Errorf("%w: index %q is not a number", ErrInvalidID, num)
	}
	index, err := strconv.Atoi(num)
	if err != nil {
		return ID{}, fmt.Errorf("%w: index %q: %w", ErrInvalidID, num, err)
	}
	return ID{Severity: sev, Index: index}, nil
}

// FormatIndex zero-pads indexes below 10 to two digits.
func FormatIndex(index int) string {
	if index < 10 {
		return "0" + strconv.Itoa(index)
	}
	return strconv.Itoa(index)
}

// String returns the identifier without brackets, e.g. "H-01".
func (id ID) String() string {
	return id.Severity.Signature() + "-" + FormatIndex(id.Index)
}

// Bracketed returns the identifier as it appears in headings, e.g. "[H-01]".
func (id ID) Bracketed() string {
	return "[" + id.String() + "]"
}

// Filename returns the on-disk file name of the finding, e.g. "[H-01].md".
func (id ID) Filename() string {
	return id.Bracketed() + ".md"
}
