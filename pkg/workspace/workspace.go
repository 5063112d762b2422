// Package workspace manages the report directory: its layout, finding
// files and generated report paths.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
)

// Layout of a report directory.
const (
	DefaultRoot = "compiloor-report"
	ConfigFile  = "config.json"
	FindingsDir = "findings"
	SectionsDir = "sections"
	ReportsDir  = "reports"
)

// Workspace is a report directory on disk.
type Workspace struct {
	root   string
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithClock sets the time source used to name reports.
func WithClock(now func() time.Time) Option {
	return func(w *Workspace) { w.now = now }
}

// New returns the workspace rooted at root. An empty root means
// DefaultRoot.
func New(root string, opts ...Option) *Workspace {
	if root == "" {
		root = DefaultRoot
	}
	w := &Workspace{root: root, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) Root() string         { return w.root }
func (w *Workspace) ConfigPath() string   { return filepath.Join(w.root, ConfigFile) }
func (w *Workspace) FindingsPath() string { return filepath.Join(w.root, FindingsDir) }
func (w *Workspace) SectionsPath() string { return filepath.Join(w.root, SectionsDir) }
func (w *Workspace) ReportsPath() string  { return filepath.Join(w.root, ReportsDir) }
func (w *Workspace) SettingsPath() string { return filepath.Join(w.root, config.SettingsFile) }

// IsInitialized reports whether the root holds a config file.
func (w *Workspace) IsInitialized() bool {
	info, err := os.Stat(w.ConfigPath())
	return err == nil && !info.IsDir()
}

// EnsureInitialized returns ErrNotInitialized unless the root is
// initialized.
func (w *Workspace) EnsureInitialized() error {
	if !w.IsInitialized() {
		return fmt.Errorf("%w: %s", ErrNotInitialized, w.root)
	}
	return nil
}

// Init creates the directory layout and a config file with the base
// schema. With force, an existing root is removed first.
func (w *Workspace) Init(force bool) error {
	_, err := os.Stat(w.root)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, w.root)
	case err == nil:
		w.logger.Debug("removing existing report directory", zap.String("root", w.root))
		if err := os.RemoveAll(w.root); err != nil {
			return fmt.Errorf("remove %s: %w", w.root, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", w.root, err)
	}

	for _, dir := range []string{w.FindingsPath(), w.SectionsPath(), w.ReportsPath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := config.WriteBase(w.ConfigPath()); err != nil {
		return fmt.Errorf("write %s: %w", w.ConfigPath(), err)
	}

	w.logger.Debug("initialized report directory", zap.String("root", w.root))
	return nil
}
