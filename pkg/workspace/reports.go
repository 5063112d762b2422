package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReportFile is the name of the compiled PDF inside a report directory.
const ReportFile = "final.pdf"

const timestampLayout = "02-01-2006-15-04-05"

// NewReportPath creates a fresh report directory under reports/ and
// returns the path of the PDF to write there. The directory is named after
// the current time; if that name is taken a two-digit counter is appended.
func (w *Workspace) NewReportPath() (string, error) {
	if err := os.MkdirAll(w.ReportsPath(), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", w.ReportsPath(), err)
	}

	base := "report-" + w.now().Format(timestampLayout)
	name := base
	for n := 1; ; n++ {
		dir := filepath.Join(w.ReportsPath(), name)
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			return filepath.Join(dir, ReportFile), nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
		name = fmt.Sprintf("%s-%02d", base, n)
	}
}
