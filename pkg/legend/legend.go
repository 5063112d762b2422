// Package legend builds the findings legend: one entry per severity
// section and one per finding, each carrying a page-number placeholder
// that is filled in after the PDF is rendered.
package legend

import (
	"fmt"
	"html"
	"strings"

	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/placeholder"
)

// Legend is the built legend fragment and the section index assigned to
// every severity present.
type Legend struct {
	HTML    string
	Indexes map[finding.Severity]int
}

// Build walks findings, which must be ordered by descending severity with
// each severity contiguous, and emits the legend for section.
func Build(section string, findings []*finding.Finding) Legend {
	var (
		sb       strings.Builder
		indexes  = make(map[finding.Severity]int)
		current  finding.Severity
		sevIndex int
		position int
	)

	for _, f := range findings {
		if f.Severity() != current {
			current = f.Severity()
			sevIndex++
			position = 0
			indexes[current] = sevIndex

			if sevIndex > 1 {
				sb.WriteString("<div>")
			}
			group := finding.Group{Severity: current, Index: sevIndex}
			fmt.Fprintf(&sb, severityEntry,
				group.Anchor(section),
				html.EscapeString(group.Heading(section)),
				placeholder.PageToken(group.Number(section)),
			)
		}

		position++
		group := finding.Group{Severity: current, Index: sevIndex}
		fmt.Fprintf(&sb, findingEntry,
			group.FindingAnchor(section, position),
			f.ID.Bracketed(),
			html.EscapeString(f.PlainTitle()),
			placeholder.PageToken(f.ID.String()),
		)
	}

	// Severity sections after the first open a nesting div that stays open
	// until the end of the legend.
	if sevIndex > 1 {
		sb.WriteString(strings.Repeat("</div>", sevIndex-1))
	}

	return Legend{HTML: sb.String(), Indexes: indexes}
}

const severityEntry = `
<div class="sub-paragraph">
    <a href="#%s">
        <div class="section-wrapper">
            <p>%s</p>
            %s
        </div>
    </a>
</div>
`

const findingEntry = `
<div class="sub-sub-paragraph">
    <a href="#%s">
        <div class="section-wrapper">
            <p class="legend-section-heading">%s %s</p>
            <p class="page-number">%s</p>
        </div>
    </a>
</div>
`
