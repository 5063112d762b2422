package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
)

func newWorkspace(t *testing.T, opts ...Option) *Workspace {
	t.Helper()
	w := New(filepath.Join(t.TempDir(), DefaultRoot), opts...)
	require.NoError(t, w.Init(false))
	return w
}

func TestNewDefaultRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultRoot, New("").Root())
}

func TestInitCreatesLayout(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t)

	for _, dir := range []string{w.FindingsPath(), w.SectionsPath(), w.ReportsPath()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.True(t, w.IsInitialized())

	cfg, err := config.Load(w.ConfigPath(), w.SectionsPath())
	require.NoError(t, err)
	assert.Empty(t, cfg.Missing())
}

func TestInitAlreadyInitialized(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t)
	assert.ErrorIs(t, w.Init(false), ErrAlreadyInitialized)
}

func TestInitForceResets(t *testing.T) {
	t.Parallel()

	w := newWorkspace(t)
	_, err := w.AddFinding(finding.High, "")
	require.NoError(t, err)

	require.NoError(t, w.Init(true))
	n, err := w.Count(finding.High)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEnsureInitialized(t *testing.T) {
	t.Parallel()

	w := New(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, w.EnsureInitialized(), ErrNotInitialized)

	_, err := w.AddFinding(finding.Low, "")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestNewReportPath(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	w := newWorkspace(t, WithClock(func() time.Time { return at }))

	first, err := w.NewReportPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.ReportsPath(), "report-09-03-2024-14-05-07", ReportFile), first)

	second, err := w.NewReportPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.ReportsPath(), "report-09-03-2024-14-05-07-01", ReportFile), second)

	third, err := w.NewReportPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.ReportsPath(), "report-09-03-2024-14-05-07-02", ReportFile), third)
}
