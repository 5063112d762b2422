package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRemovesEmptyElements(t *testing.T) {
	t.Parallel()

	out, err := Clean(`<html><body><h1></h1><p></p><ul></ul><h3>kept</h3><p>text</p></body></html>`)
	require.NoError(t, err)

	assert.NotContains(t, out, "<h1></h1>")
	assert.NotContains(t, out, "<p></p>")
	assert.NotContains(t, out, "<ul></ul>")
	assert.Contains(t, out, "<h3>kept</h3>")
	assert.Contains(t, out, "<p>text</p>")
}

func TestCleanKeepsElementsWithAttributes(t *testing.T) {
	t.Parallel()

	out, err := Clean(`<p class="spacer"></p><div></div>`)
	require.NoError(t, err)

	assert.Contains(t, out, `<p class="spacer"></p>`)
	assert.Contains(t, out, "<div></div>")
}

func TestCleanWrapsFragment(t *testing.T) {
	t.Parallel()

	out, err := Clean("<p>x</p>")
	require.NoError(t, err)
	assert.Equal(t, "<html><head></head><body><p>x</p></body></html>", out)
}
