package finding

import (
	"fmt"
	"strings"
)

// Severity is the ranked classification of a finding.
// The numeric value is the rank: a greater value is more severe.
type Severity int

const (
	Gas Severity = iota + 1
	QA
	Low
	Medium
	High
	Critical
)

// severityInfo holds the two textual forms of a severity.
// signature is used in filenames and identifiers, display in rendered text.
type severityInfo struct {
	signature string
	display   string
	name      string
}

var severityTable = map[Severity]severityInfo{
	Gas:      {signature: "GAS", display: "GAS", name: "gas"},
	QA:       {signature: "QA", display: "QA", name: "qa"},
	Low:      {signature: "L", display: "Low", name: "low"},
	Medium:   {signature: "M", display: "Medium", name: "medium"},
	High:     {signature: "H", display: "High", name: "high"},
	Critical: {signature: "C", display: "Critical", name: "critical"},
}

// Severities returns every severity in ascending rank order.
func Severities() []Severity {
	return []Severity{Gas, QA, Low, Medium, High, Critical}
}

// Descending returns every severity from Critical down to Gas.
func Descending() []Severity {
	return []Severity{Critical, High, Medium, Low, QA, Gas}
}

// IsValid reports whether s is a recognized severity level.
func (s Severity) IsValid() bool {
	_, ok := severityTable[s]
	return ok
}

// Rank returns the numeric rank, Gas=1 through Critical=6.
func (s Severity) Rank() int {
	return int(s)
}

// Signature returns the folder/id signature: GAS, QA, L, M, H or C.
func (s Severity) Signature() string {
	return severityTable[s].signature
}

// Display returns the label used in rendered text: GAS, QA, Low, Medium,
// High or Critical.
func (s Severity) Display() string {
	return severityTable[s].display
}

// Name returns the lowercase command-line name of the severity.
func (s Severity) Name() string {
	return severityTable[s].name
}

// String returns the display label.
func (s Severity) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return s.Display()
}

// ParseSignature converts a folder/id signature back to a severity.
// Matching is case-insensitive.
func ParseSignature(sig string) (Severity, error) {
	sig = strings.ToUpper(strings.TrimSpace(sig))
	for _, s := range Severities() {
		if severityTable[s].signature == sig {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: signature %q", ErrInvalidSeverity, sig)
}

// ParseDisplay converts a display label back to a severity.
func ParseDisplay(label string) (Severity, error) {
	for _, s := range Severities() {
		if severityTable[s].display == label {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: label %q", ErrInvalidSeverity, label)
}

// ParseName converts a command-line name such as "high" or "gas" to a severity.
func ParseName(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Severities() {
		if severityTable[s].name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}

// Names returns the command-line names in ascending rank order.
func Names() []string {
	names := make([]string, 0, len(severityTable))
	for _, s := range Severities() {
		names = append(names, s.Name())
	}
	return names
}
