package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects console output for the duration of a test. UI state is
// global, so these tests do not run in parallel.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		SetSilent(false)
	})
	return &buf
}

func TestPrintMessages(t *testing.T) {
	buf := capture(t)

	PrintSuccess("report written")
	PrintWarning("finding without title")
	PrintError("not initialized")
	PrintInfo("compiling")

	out := buf.String()
	assert.Contains(t, out, "[+] report written")
	assert.Contains(t, out, "[!] finding without title")
	assert.Contains(t, out, "[X] not initialized")
	assert.Contains(t, out, "compiling")
}

func TestSilentKeepsErrors(t *testing.T) {
	buf := capture(t)
	SetSilent(true)

	PrintSuccess("hidden")
	PrintInfo("hidden")
	PrintSection("hidden")
	PrintError("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrintSection(t *testing.T) {
	buf := capture(t)

	PrintSection("Findings")
	assert.Contains(t, buf.String(), "> Findings")
	assert.Contains(t, buf.String(), strings.Repeat("-", 60))
}

func TestPrintPathAndConfigLine(t *testing.T) {
	buf := capture(t)

	PrintPath("Report", "reports/report-09-03-2024-10-00-00/final.pdf")
	PrintConfigLine("Run", "abc")
	assert.Contains(t, buf.String(), "final.pdf")
	assert.Contains(t, buf.String(), "Run:")
}

func TestFindingsTable(t *testing.T) {
	out := FindingsTable([]SeverityCount{
		{Severity: "Critical", Count: 1},
		{Severity: "High", Count: 2},
		{Severity: "GAS", Count: 0},
	})

	for _, want := range []string{"Severity", "Findings", "Critical", "High", "GAS", "Total", "3"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Critical"), strings.Index(out, "Total"))
}

func TestPrintFindingsTable(t *testing.T) {
	buf := capture(t)

	PrintFindingsTable([]SeverityCount{{Severity: "Low", Count: 4}})
	assert.Contains(t, buf.String(), "Low")
}

func TestSeverityStyleKnownNames(t *testing.T) {
	for _, name := range []string{"Critical", "High", "Medium", "Low", "QA", "GAS"} {
		assert.NotEqual(t, SeverityStyle("unknown").GetBackground(), SeverityStyle(name).GetBackground(), name)
	}
}

func TestVersionString(t *testing.T) {
	assert.Contains(t, VersionString(), "compiloor "+Version)
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "compiloor/"+Version, UserAgent())
}

func TestActivityWithoutTerminal(t *testing.T) {
	if StderrIsTerminal() {
		t.Skip("stderr is a terminal")
	}
	buf := capture(t)

	a := StartActivity("Rendering PDF")
	a.Stop()
	a.Stop()
	assert.Contains(t, buf.String(), "Rendering PDF...")
}

func TestDefaultSpinner(t *testing.T) {
	s := DefaultSpinner()
	require.NotEmpty(t, s.Frames)
	assert.Positive(t, s.Interval)
	if !UnicodeTerminal() {
		assert.Equal(t, lineSpinner.Frames, s.Frames)
	}
}

func TestSanitizeString(t *testing.T) {
	if UnicodeTerminal() {
		t.Skip("stderr renders unicode")
	}
	assert.Equal(t, "done ", SanitizeString("done ✔"))
	assert.Equal(t, "café", SanitizeString("café"))
	assert.Equal(t, "+", Icon("✔", "+"))
}
