package table

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
)

// Table titles.
const (
	InformationTitle   = "Protocol Summary"
	FindingsCountTitle = "Findings Count"
	SummaryTitle       = "Summary of Findings"
)

// InfoRow is one row of the protocol information table.
type InfoRow struct {
	// Token is the template variable that stands for the bold label.
	Token string
	Label string
	Key   string
}

// InfoRows lists the protocol information rows in table order.
var InfoRows = []InfoRow{
	{Token: "[[protocol_protocol_name_bold]]", Label: "Protocol Name", Key: config.KeyProtocolName},
	{Token: "[[protocol_repository_bold]]", Label: "Repository", Key: config.KeyRepository},
	{Token: "[[protocol_date_bold]]", Label: "Date", Key: config.KeyDate},
	{Token: "[[protocol_type_bold]]", Label: "Protocol Type", Key: config.KeyType},
	{Token: "[[protocol_sloc_bold]]", Label: "SLOC", Key: config.KeySLOC},
}

// Bold returns the rendered label of r.
func (r InfoRow) Bold() string {
	return "<b>" + r.Label + "</b>"
}

// InlineRenderer renders a short Markdown value to inline HTML.
type InlineRenderer interface {
	RenderInline(source string) (string, error)
}

// SeverityClassification returns the impact/likelihood matrix.
func SeverityClassification() Table {
	return Table{
		Columns: []string{"Severity", "Impact: High", "Impact: Medium", "Impact: Low"},
		Rows: [][]string{
			{"Likelihood: High", "Critical", "High", "Medium"},
			{"Likelihood: Medium", "High", "Medium", "Low"},
			{"Likelihood: Low", "Medium", "Low", "Low"},
		},
	}
}

// Information returns the protocol summary built from cfg. Rows whose
// value is config.Unset are left out; values are rendered from Markdown.
func Information(cfg config.Config, r InlineRenderer) (Table, error) {
	t := Table{Title: InformationTitle}
	for _, row := range InfoRows {
		value := cfg.Value(row.Key)
		if value == config.Unset {
			continue
		}
		rendered, err := r.RenderInline(value)
		if err != nil {
			return Table{}, fmt.Errorf("render %s: %w", row.Key, err)
		}
		t.Rows = append(t.Rows, []string{row.Bold(), strings.TrimSpace(rendered)})
	}
	return t, nil
}

// FindingsCount returns the per-severity counts, highest severity first,
// followed by the total.
func FindingsCount(c *finding.Collection) Table {
	var rows [][]string
	for _, s := range finding.Severities() {
		if n := c.Count(s); n > 0 {
			rows = append(rows, []string{s.Display(), strconv.Itoa(n)})
		}
	}
	slices.Reverse(rows)
	rows = append(rows, []string{"<b>Total Findings</b>", fmt.Sprintf("<b>%d</b>", c.Total())})

	return Table{
		Title:            FindingsCountTitle,
		Columns:          []string{"Severity", "Amount"},
		Rows:             rows,
		HighlightLastRow: true,
	}
}

// FindingsSummary returns one row per finding in the given order.
func FindingsSummary(findings []*finding.Finding) Table {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{
			f.ID.Bracketed(),
			html.EscapeString(f.PlainTitle()),
			f.Severity().Display(),
			f.Status.String(),
		})
	}
	return Table{
		Title:   SummaryTitle,
		Columns: []string{"ID", "Title", "Severity", "Status"},
		Rows:    rows,
	}
}

// LinkFindingIDs replaces every bracketed finding id in rendered with a
// link to the finding's section. indexes maps each severity to its section
// index.
func LinkFindingIDs(rendered, section string, findings []*finding.Finding, indexes map[finding.Severity]int) string {
	for _, f := range findings {
		id := f.ID.Bracketed()
		g := finding.Group{Severity: f.Severity(), Index: indexes[f.Severity()]}
		link := fmt.Sprintf(`<a href="#%s">%s</a>`, g.FindingAnchor(section, f.ID.Index), id)
		rendered = strings.ReplaceAll(rendered, id, link)
	}
	return rendered
}
