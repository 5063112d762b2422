package pagination

import "strings"

// PageText is the normalized text of one page.
type PageText struct {
	Index int
	Text  string
}

// Match binds a heading to the page it starts on.
type Match struct {
	Heading string
	Page    int
}

// Strategy decides which page each heading belongs to. Headings arrive
// already truncated; the result lists each bound heading once, in the
// order the bindings were made.
type Strategy interface {
	Map(pages []PageText, headings []string) []Match
}

// OccurrenceStrategy binds a heading to the page of its N-th sighting.
// Headings are printed in the legend and the summary table before the
// section itself, so the first sightings are references, not the section.
type OccurrenceStrategy struct {
	// Heading is N for section headings such as "8.1. High Findings".
	Heading int

	// Finding is N for finding headings, which start with '['.
	Finding int
}

// DefaultStrategy binds section headings on their second sighting and
// finding headings on their third.
var DefaultStrategy = OccurrenceStrategy{Heading: 2, Finding: 3}

func (s OccurrenceStrategy) threshold(heading string) int {
	if strings.HasPrefix(heading, "[") {
		return s.Finding
	}
	return s.Heading
}

// Map implements Strategy.
func (s OccurrenceStrategy) Map(pages []PageText, headings []string) []Match {
	var matches []Match
	seen := make(map[string]int)
	bound := make(map[string]bool)

	for _, p := range pages {
		for _, h := range headings {
			if h == "" || bound[h] || !strings.Contains(p.Text, h) {
				continue
			}
			seen[h]++
			if seen[h] < s.threshold(h) {
				continue
			}
			bound[h] = true
			matches = append(matches, Match{Heading: h, Page: p.Index})
		}
	}
	return matches
}
