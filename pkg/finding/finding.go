package finding

import (
	"fmt"
	"strings"

	"github.com/Wardens-OSS-Club/compiloor/pkg/placeholder"
)

const (
	// StatusMarker starts the line that records a finding's status.
	StatusMarker = "## _STATUS_="

	// UnsetStatus is the scaffold value of a status marker that was never
	// filled in. It is read as Resolved.
	UnsetStatus = "{{resolution_status}}"

	// UntitledTitle replaces an empty finding title.
	UntitledTitle = "-"
)

// Finding is one parsed finding document.
type Finding struct {
	ID     ID
	Title  string
	Status Status

	// Body is the Markdown source with the header line normalized and the
	// status marker line removed.
	Body string

	// Fragment is the rendered body wrapped in the anchor container that
	// legend and summary links point at. Until the severity section is
	// numbered, the container id carries a placeholder.SeverityIndex token.
	Fragment string
}

// Severity returns the severity encoded in the finding's identifier.
func (f *Finding) Severity() Severity {
	return f.ID.Severity
}

// Heading returns the section heading text of the finding, e.g.
// "[H-01] Reentrancy in withdraw".
func (f *Finding) Heading() string {
	return f.ID.Bracketed() + " " + f.Title
}

// PlainTitle returns the title with backticks removed, as used in the legend
// and the summary table.
func (f *Finding) PlainTitle() string {
	return strings.ReplaceAll(f.Title, "`", "")
}

// Markdown serializes the finding back to its on-disk document form.
func (f *Finding) Markdown() string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(f.Body, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(StatusMarker)
	sb.WriteString(string(f.Status))
	sb.WriteString("\n")
	return sb.String()
}

// wrapFragment wraps rendered HTML in the container addressed by
// #section-<section>-<severity index>-<finding index>.
func wrapFragment(section string, id ID, rendered string) string {
	return fmt.Sprintf(
		"\n<div id=\"section-%s-%s-%d\" class=\"finding\">\n%s\n</div>\n",
		section, placeholder.SeverityIndex(id.Severity.Rank()), id.Index, rendered,
	)
}
