package finding

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    Severity
		want int
	}{
		{Gas, 1},
		{QA, 2},
		{Low, 3},
		{Medium, 4},
		{High, 5},
		{Critical, 6},
	}
	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.s.Rank())
		})
	}
}

func TestSeveritySignatureRoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range Severities() {
		got, err := ParseSignature(s.Signature())
		require.NoError(t, err)
		assert.Equal(t, s, got, "signature %q", s.Signature())

		fromDisplay, err := ParseDisplay(s.Display())
		require.NoError(t, err)
		assert.Equal(t, s.Signature(), fromDisplay.Signature())

		fromName, err := ParseName(s.Name())
		require.NoError(t, err)
		assert.Equal(t, s, fromName)
	}
}

func TestSeverityLabelsAreDistinct(t *testing.T) {
	t.Parallel()

	sigs := make(map[string]bool)
	labels := make(map[string]bool)
	for _, s := range Severities() {
		assert.False(t, sigs[s.Signature()], "duplicate signature %q", s.Signature())
		assert.False(t, labels[s.Display()], "duplicate label %q", s.Display())
		sigs[s.Signature()] = true
		labels[s.Display()] = true
	}
	assert.Len(t, sigs, 6)
}

func TestParseSignatureRejectsUnknown(t *testing.T) {
	t.Parallel()

	for _, sig := range []string{"X", "", "HIGH", "Low"} {
		_, err := ParseSignature(sig)
		assert.ErrorIs(t, err, ErrInvalidSeverity, "signature %q", sig)
	}
}

func TestParseSignatureIgnoresCase(t *testing.T) {
	t.Parallel()

	s, err := ParseSignature("gas")
	require.NoError(t, err)
	assert.Equal(t, Gas, s)
}

func TestSeverityInvalid(t *testing.T) {
	t.Parallel()

	assert.False(t, Severity(0).IsValid())
	assert.False(t, Severity(7).IsValid())
	assert.Equal(t, "Severity(7)", Severity(7).String())
}

func TestDescendingIsReverseOfSeverities(t *testing.T) {
	t.Parallel()

	asc := Severities()
	desc := Descending()
	require.Len(t, desc, len(asc))
	for i := range asc {
		assert.Equal(t, asc[i], desc[len(desc)-1-i])
	}
	assert.True(t, sort.SliceIsSorted(desc, func(i, j int) bool { return desc[i] > desc[j] }))
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses() {
		got, err := ParseStatus(" " + string(s) + " ")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, value := range []string{"partially resolved", "RESOLVED", "Partially  Resolved", "-"} {
		_, err := ParseStatus(value)
		assert.ErrorIs(t, err, ErrInvalidStatus, value)
	}

	_, err := ParseStatus("Fixed")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
