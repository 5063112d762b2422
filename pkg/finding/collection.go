package finding

import (
	"cmp"
	"fmt"
	"slices"
)

// Collection holds findings grouped by severity, each group ordered by
// ascending index.
type Collection struct {
	bySeverity map[Severity][]*Finding
}

// Group is one non-empty severity section of the report.
type Group struct {
	Severity Severity

	// Index is the 1-based position of the group among the non-empty
	// severities in descending rank.
	Index int

	Findings []*Finding
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{bySeverity: make(map[Severity][]*Finding)}
}

// Add inserts f, keeping its severity group sorted by index.
func (c *Collection) Add(f *Finding) {
	s := f.Severity()
	list := append(c.bySeverity[s], f)
	slices.SortStableFunc(list, func(a, b *Finding) int {
		return cmp.Compare(a.ID.Index, b.ID.Index)
	})
	c.bySeverity[s] = list
}

// Total returns the number of findings.
func (c *Collection) Total() int {
	n := 0
	for _, list := range c.bySeverity {
		n += len(list)
	}
	return n
}

// Count returns the number of findings of severity s.
func (c *Collection) Count(s Severity) int {
	return len(c.bySeverity[s])
}

// Of returns the findings of severity s.
func (c *Collection) Of(s Severity) []*Finding {
	return c.bySeverity[s]
}

// Groups returns the non-empty severities, Critical first, numbered from 1.
func (c *Collection) Groups() []Group {
	var groups []Group
	for _, s := range Descending() {
		list := c.bySeverity[s]
		if len(list) == 0 {
			continue
		}
		groups = append(groups, Group{Severity: s, Index: len(groups) + 1, Findings: list})
	}
	return groups
}

// Ordered returns every finding in report order.
func (c *Collection) Ordered() []*Finding {
	var out []*Finding
	for _, g := range c.Groups() {
		out = append(out, g.Findings...)
	}
	return out
}

// Number returns the section number of the group, e.g. "8.2".
func (g Group) Number(section string) string {
	return fmt.Sprintf("%s.%d", section, g.Index)
}

// Heading returns the section heading of the group, e.g.
// "8.2. High Findings".
func (g Group) Heading(section string) string {
	return fmt.Sprintf("%s. %s Findings", g.Number(section), g.Severity.Display())
}

// Anchor returns the element id of the group section, e.g. "section-8-2".
func (g Group) Anchor(section string) string {
	return fmt.Sprintf("section-%s-%d", section, g.Index)
}

// FindingAnchor returns the element id of the position-th finding of the
// group, counting from 1.
func (g Group) FindingAnchor(section string, position int) string {
	return fmt.Sprintf("%s-%d", g.Anchor(section), position)
}
