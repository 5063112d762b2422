package compile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/fetch"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/pagination"
	"github.com/Wardens-OSS-Club/compiloor/pkg/workspace"
)

const (
	templateURL   = "https://example.com/template.html"
	stylesheetURL = "https://example.com/style.css"
)

const reportTemplate = `<html><head>{{stylesheet}}</head><body>
<h1>{{config.title}}</h1>
{{findings_legend}}
{{findings_summary_table}}
{{findings}}
</body></html>`

type fakeFetcher struct {
	bodies map[string]string
	calls  []string
}

func (f *fakeFetcher) Text(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	body, ok := f.bodies[url]
	if !ok {
		return "", fmt.Errorf("%w: 404", fetch.ErrFetch)
	}
	return body, nil
}

type fakeRasterizer struct {
	document string
	path     string
	err      error
}

func (r *fakeRasterizer) RenderPDF(_ context.Context, document, path string) error {
	if r.err != nil {
		return r.err
	}
	r.document, r.path = document, path
	return os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644)
}

// pageDocument serves fixed page texts and records what was stamped.
type pageDocument struct {
	pages  []string
	stamps int
	saved  bool
}

func (d *pageDocument) NumPages() int                     { return len(d.pages) }
func (d *pageDocument) Text(i int) (string, error)        { return d.pages[i], nil }
func (d *pageDocument) Size(int) (pagination.Size, error) { return pagination.Size{W: 595, H: 842}, nil }
func (d *pageDocument) DeletePages([]int) error           { return nil }
func (d *pageDocument) AddStamp(int, pagination.Stamp)    { d.stamps++ }
func (d *pageDocument) Save() error                       { d.saved = true; return nil }

func (d *pageDocument) Find(i int, needle string) (pagination.Rect, bool, error) {
	return pagination.Rect{W: 10, H: 10}, strings.Contains(d.pages[i], needle), nil
}

func setup(t *testing.T) *workspace.Workspace {
	t.Helper()

	ws := workspace.New(filepath.Join(t.TempDir(), workspace.DefaultRoot),
		workspace.WithClock(func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }))
	require.NoError(t, ws.Init(false))

	values := config.BaseValues()
	values[config.KeyAuthor] = "Wardens"
	values[config.KeyProtocolName] = "Vault"
	values[config.KeyTemplateURL] = templateURL
	values[config.KeyStylesheetURL] = stylesheetURL
	require.NoError(t, config.Write(ws.ConfigPath(), config.New(values)))

	require.NoError(t, os.WriteFile(filepath.Join(ws.FindingsPath(), "[H-01].md"),
		[]byte("# [H-01] Reentrancy\n\nbody\n"), 0o644))
	return ws
}

func fetcher() *fakeFetcher {
	return &fakeFetcher{bodies: map[string]string{
		templateURL:   reportTemplate,
		stylesheetURL: "body { margin: 0; }",
	}}
}

func TestRun(t *testing.T) {
	t.Parallel()

	ws := setup(t)
	f := fetcher()
	r := &fakeRasterizer{}
	doc := &pageDocument{pages: []string{
		"Security Review",
		"8.1. High Findings {{[8.1]_page}} [H-01] Reentrancy {{[H-01]_page}}",
		"[H-01] Reentrancy",
		"8.1. High Findings [H-01] Reentrancy",
	}}

	var opened string
	p := New(ws,
		WithFetcher(f),
		WithRasterizer(r),
		WithOpener(func(path string) (pagination.Document, error) {
			opened = path
			return doc, nil
		}),
	)
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{templateURL, stylesheetURL}, f.calls)
	assert.Contains(t, r.document, "<style>body { margin: 0; }</style>")
	assert.Contains(t, r.document, "Reentrancy")
	assert.Equal(t, filepath.Join(ws.ReportsPath(), "report-09-03-2024-10-00-00", workspace.ReportFile), res.Path)
	assert.Equal(t, res.Path, opened)
	assert.Equal(t, res.Path, r.path)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, res.Findings.Total())
	assert.Contains(t, res.Outcome.Rewritten, "{{[8.1]_page}}")
	assert.Contains(t, res.Outcome.Rewritten, "{{[H-01]_page}}")
	assert.True(t, doc.saved)
}

func TestRunNotInitialized(t *testing.T) {
	t.Parallel()

	ws := workspace.New(filepath.Join(t.TempDir(), "missing"))
	_, err := New(ws).Run(context.Background())
	require.ErrorIs(t, err, workspace.ErrNotInitialized)
}

func TestRunInvalidTemplateURL(t *testing.T) {
	t.Parallel()

	ws := workspace.New(filepath.Join(t.TempDir(), workspace.DefaultRoot))
	require.NoError(t, ws.Init(false))

	f := fetcher()
	_, err := New(ws, WithFetcher(f)).Run(context.Background())
	require.ErrorIs(t, err, config.ErrInvalidURL)
	assert.Empty(t, f.calls)
}

func TestRunMissingConfigKeys(t *testing.T) {
	t.Parallel()

	ws := setup(t)
	require.NoError(t, config.Write(ws.ConfigPath(), config.New(map[string]string{
		config.KeyProtocolName:  "Vault",
		config.KeyAuthor:        "Wardens",
		config.KeyTemplateURL:   templateURL,
		config.KeyStylesheetURL: stylesheetURL,
	})))

	f := fetcher()
	r := &fakeRasterizer{}
	_, err := New(ws, WithFetcher(f), WithRasterizer(r)).Run(context.Background())
	require.ErrorIs(t, err, config.ErrMissingKey)
	assert.Contains(t, err.Error(), config.KeyDate)
	assert.Contains(t, err.Error(), config.KeySLOC)
	assert.Empty(t, f.calls)
	assert.Empty(t, r.path)
}

func TestRunEmptyFindings(t *testing.T) {
	t.Parallel()

	ws := setup(t)
	require.NoError(t, os.Remove(filepath.Join(ws.FindingsPath(), "[H-01].md")))

	_, err := New(ws, WithFetcher(fetcher())).Run(context.Background())
	require.ErrorIs(t, err, workspace.ErrEmptyFindings)
}

func TestRunFetchFailure(t *testing.T) {
	t.Parallel()

	ws := setup(t)
	f := &fakeFetcher{bodies: map[string]string{templateURL: reportTemplate}}
	r := &fakeRasterizer{}

	_, err := New(ws, WithFetcher(f), WithRasterizer(r)).Run(context.Background())
	require.ErrorIs(t, err, fetch.ErrFetch)
	assert.Empty(t, r.path)

	entries, err := os.ReadDir(ws.ReportsPath())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunFetchFailureSkipsFindings(t *testing.T) {
	t.Parallel()

	ws := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(ws.FindingsPath(), "[M-01].md"),
		[]byte("# no identifier here\n"), 0o644))

	f := &fakeFetcher{bodies: map[string]string{}}
	_, err := New(ws, WithFetcher(f)).Run(context.Background())
	require.ErrorIs(t, err, fetch.ErrFetch)
	assert.NotErrorIs(t, err, finding.ErrMalformedFinding)
	assert.Equal(t, []string{templateURL}, f.calls)
}

func TestRunRasterizeFailure(t *testing.T) {
	t.Parallel()

	ws := setup(t)
	boom := errors.New("chrome crashed")

	opened := false
	_, err := New(ws,
		WithFetcher(fetcher()),
		WithRasterizer(&fakeRasterizer{err: boom}),
		WithOpener(func(string) (pagination.Document, error) {
			opened = true
			return nil, nil
		}),
	).Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.False(t, opened)
}
