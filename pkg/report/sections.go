package report

import (
	"fmt"
	"strings"

	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/placeholder"
)

// StaticHeadings are the fixed section headings of the report template.
var StaticHeadings = []string{
	"1. About",
	"2. Disclaimer",
	"3. Introduction",
	"4. About",
	"5. Risk Classification",
	"5.1. Impact",
	"5.2. Likelihood",
	"5.3. Action required for severity levels",
	"6. Security Assessment Summary",
	"7. Executive Summary",
	"8. Findings",
}

// Positions in StaticHeadings completed with the author and the protocol
// name.
const (
	authorHeading   = 0
	protocolHeading = 3
)

// FindingsSection is the rendered findings section.
type FindingsSection struct {
	// HTML holds one block per non-empty severity, Critical first.
	HTML string

	// Headings is StaticHeadings followed by every finding heading and
	// severity heading in the order they appear.
	Headings []string
}

// BuildFindings renders the findings of c under section. author and
// protocol complete the "About" headings.
func BuildFindings(section string, c *finding.Collection, author, protocol string) FindingsSection {
	headings := make([]string, len(StaticHeadings))
	copy(headings, StaticHeadings)
	headings[authorHeading] += " " + author
	headings[protocolHeading] += " " + protocol

	var blocks []string
	for _, g := range c.Groups() {
		fragments := make([]string, 0, len(g.Findings))
		for i, f := range g.Findings {
			headings = append(headings, f.Heading())
			if i == 0 {
				headings = append(headings, g.Heading(section))
			}
			fragments = append(fragments, f.Fragment)
		}

		block := fmt.Sprintf(severityBlock,
			g.Anchor(section), g.Heading(section), strings.Join(fragments, "\n"))
		block = strings.ReplaceAll(block,
			placeholder.SeverityIndex(g.Severity.Rank()), fmt.Sprint(g.Index))
		blocks = append(blocks, block)
	}

	return FindingsSection{
		HTML:     strings.Join(blocks, "\n"),
		Headings: headings,
	}
}

const severityBlock = `
<div id="%s" class="page-break-after">
    <h2 class="paragraph-subheading">%s</h2>
    <div>
%s
    </div>
</div>
`
