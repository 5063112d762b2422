package finding

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"malformed", ErrMalformedFinding, "finding: malformed finding"},
		{"status", ErrInvalidStatus, "finding: invalid status"},
		{"identifier", ErrInvalidID, "finding: invalid identifier"},
		{"severity", ErrInvalidSeverity, "finding: invalid severity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Error(t, tt.err)
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrMalformedFinding, ErrInvalidStatus, ErrInvalidID, ErrInvalidSeverity}
	for i := range sentinels {
		for j := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, sentinels[i], sentinels[j])
		}
	}
}

func TestParseErrorsWrapSentinels(t *testing.T) {
	t.Parallel()

	_, err := NewParser(nil).Parse("# [M-01] Title\n\n## _STATUS_=Fixed\n")
	wrapped := fmt.Errorf("load [M-01].md: %w", err)
	assert.ErrorIs(t, wrapped, ErrInvalidStatus)
	assert.False(t, errors.Is(wrapped, ErrInvalidID))

	_, err = ParseID("M01")
	assert.ErrorIs(t, fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", err)), ErrInvalidID)
}
