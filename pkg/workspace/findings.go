package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"go.uber.org/zap"

	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
)

// ignoredEntries are OS metadata files that do not count as findings.
var ignoredEntries = map[string]bool{
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
}

const scaffoldText = `# [{{ .ID }}]{{ with .Title | trim }} {{ . }}{{ end }}

## Severity

**Impact:**

**Likelihood:**

## Description

## Recommendations

{{ .Marker }}{{ .Unset }}
`

var scaffold = template.Must(template.New("finding").Funcs(sprig.TxtFuncMap()).Parse(scaffoldText))

// Parser parses raw finding documents.
type Parser interface {
	Parse(raw string) (*finding.Finding, error)
}

// Count returns the number of finding files of severity s.
func (w *Workspace) Count(s finding.Severity) (int, error) {
	entries, err := os.ReadDir(w.FindingsPath())
	if err != nil {
		return 0, fmt.Errorf("read findings: %w", err)
	}
	prefix := "[" + s.Signature() + "-"
	n := 0
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".md") {
			n++
		}
	}
	return n, nil
}

// AddFinding writes a new finding scaffold of severity s and returns its
// path. The index is the number of existing findings of s plus one; after
// a deletion this can name an existing file, which is then overwritten.
func (w *Workspace) AddFinding(s finding.Severity, title string) (string, error) {
	if err := w.EnsureInitialized(); err != nil {
		return "", err
	}
	n, err := w.Count(s)
	if err != nil {
		return "", err
	}
	id := finding.ID{Severity: s, Index: n + 1}

	var sb strings.Builder
	err = scaffold.Execute(&sb, map[string]string{
		"ID":     id.String(),
		"Title":  title,
		"Marker": finding.StatusMarker,
		"Unset":  finding.UnsetStatus,
	})
	if err != nil {
		return "", fmt.Errorf("render scaffold: %w", err)
	}

	path := filepath.Join(w.FindingsPath(), id.Filename())
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Debug("added finding", zap.Stringer("id", id), zap.String("path", path))
	return path, nil
}

// NotEmpty returns ErrEmptyFindings when the findings directory holds
// nothing but OS metadata files.
func (w *Workspace) NotEmpty() error {
	entries, err := os.ReadDir(w.FindingsPath())
	if err != nil {
		return fmt.Errorf("read findings: %w", err)
	}
	for _, e := range entries {
		if !ignoredEntries[e.Name()] {
			return nil
		}
	}
	return ErrEmptyFindings
}

// LoadAll parses every finding, reading indexes 1..Count(s) of each
// severity from the lowest rank up.
func (w *Workspace) LoadAll(p Parser) (*finding.Collection, error) {
	if err := w.NotEmpty(); err != nil {
		return nil, err
	}

	c := finding.NewCollection()
	for _, s := range finding.Severities() {
		n, err := w.Count(s)
		if err != nil {
			return nil, err
		}
		for i := 1; i <= n; i++ {
			id := finding.ID{Severity: s, Index: i}
			path := filepath.Join(w.FindingsPath(), id.Filename())
			raw, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read finding %s: %w", id, err)
			}
			f, err := p.Parse(string(raw))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			if f.ID != id {
				w.logger.Warn("finding header does not match file name",
					zap.String("path", path), zap.Stringer("header", f.ID))
			}
			c.Add(f)
		}
	}

	w.logger.Debug("loaded findings", zap.Int("total", c.Total()))
	return c, nil
}
