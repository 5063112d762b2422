package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pagesOf(texts ...string) []PageText {
	pages := make([]PageText, len(texts))
	for i, text := range texts {
		pages[i] = PageText{Index: i + 1, Text: text}
	}
	return pages
}

func TestOccurrenceStrategySectionHeadingSecondSighting(t *testing.T) {
	t.Parallel()

	pages := pagesOf(
		"Contents 8.1. High Findings {{[8.1]_page}}",
		"intro",
		"8.1. High Findings body",
		"8.1. High Findings again",
	)
	got := DefaultStrategy.Map(pages, []string{"8.1. High Findings"})
	assert.Equal(t, []Match{{Heading: "8.1. High Findings", Page: 3}}, got)
}

func TestOccurrenceStrategyFindingHeadingThirdSighting(t *testing.T) {
	t.Parallel()

	pages := pagesOf(
		"Contents [H-01] Reentrancy",
		"Summary [H-01] Reentrancy",
		"[H-01] Reentrancy details",
	)
	got := DefaultStrategy.Map(pages, []string{"[H-01] Reentrancy"})
	assert.Equal(t, []Match{{Heading: "[H-01] Reentrancy", Page: 3}}, got)
}

func TestOccurrenceStrategyCountsPagesNotRepeats(t *testing.T) {
	t.Parallel()

	pages := pagesOf(
		"8.1. High Findings 8.1. High Findings",
		"other",
	)
	got := DefaultStrategy.Map(pages, []string{"8.1. High Findings"})
	assert.Empty(t, got)
}

func TestOccurrenceStrategyOrderAndUnseen(t *testing.T) {
	t.Parallel()

	pages := pagesOf(
		"A B [X-1] t",
		"B",
		"A [X-1] t",
		"[X-1] t",
	)
	got := DefaultStrategy.Map(pages, []string{"A", "B", "", "[X-1] t", "missing"})
	assert.Equal(t, []Match{
		{Heading: "B", Page: 2},
		{Heading: "A", Page: 3},
		{Heading: "[X-1] t", Page: 4},
	}, got)
}

func TestOccurrenceStrategyCustomThresholds(t *testing.T) {
	t.Parallel()

	s := OccurrenceStrategy{Heading: 1, Finding: 1}
	got := s.Map(pagesOf("A [F] x"), []string{"A", "[F] x"})
	assert.Equal(t, []Match{{Heading: "A", Page: 1}, {Heading: "[F] x", Page: 1}}, got)
}
