package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the optional tool settings file in the report root.
const SettingsFile = "compiloor.yaml"

// Settings tunes the compile pipeline. Every field has a default, so the
// settings file only needs the values it overrides.
type Settings struct {
	// Section is the report section index that holds the findings.
	Section string `yaml:"section"`

	// HeadingLimit truncates section headings before they are searched for
	// in the rendered PDF.
	HeadingLimit int `yaml:"heading_limit"`

	// Occurrences sets on which sighting a heading is bound to a page.
	Occurrences OccurrenceSettings `yaml:"occurrences"`

	PageNumberSize   float64 `yaml:"page_number_size"`
	LegendNumberSize float64 `yaml:"legend_number_size"`

	// Color of page numbers, as #rrggbb.
	Color string `yaml:"color"`

	Browser BrowserSettings `yaml:"browser"`

	// FetchLimit caps template and stylesheet downloads, in bytes.
	FetchLimit int64 `yaml:"fetch_limit"`
}

// OccurrenceSettings holds the page-lookup thresholds.
type OccurrenceSettings struct {
	Heading int `yaml:"heading"`
	Finding int `yaml:"finding"`
}

// BrowserSettings configures the headless browser used for rasterizing.
type BrowserSettings struct {
	// ExecPath overrides Chrome discovery.
	ExecPath string        `yaml:"exec_path"`
	Timeout  time.Duration `yaml:"timeout"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		Section:      "8",
		HeadingLimit: 38,
		Occurrences: OccurrenceSettings{
			Heading: 2,
			Finding: 3,
		},
		PageNumberSize:   14,
		LegendNumberSize: 20,
		Color:            "#212529",
		Browser: BrowserSettings{
			Timeout: 2 * time.Minute,
		},
		FetchLimit: 10 * 1024 * 1024,
	}
}

// LoadSettings reads path over the defaults. A missing file yields the
// defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, path, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate reports the first unusable value.
func (s Settings) Validate() error {
	switch {
	case s.Section == "":
		return fmt.Errorf("%w: section is empty", ErrInvalidSettings)
	case s.HeadingLimit <= 0:
		return fmt.Errorf("%w: heading_limit must be positive", ErrInvalidSettings)
	case s.Occurrences.Heading <= 0 || s.Occurrences.Finding <= 0:
		return fmt.Errorf("%w: occurrences must be positive", ErrInvalidSettings)
	case s.PageNumberSize <= 0 || s.LegendNumberSize <= 0:
		return fmt.Errorf("%w: font sizes must be positive", ErrInvalidSettings)
	case !hexColor.MatchString(s.Color):
		return fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidSettings, s.Color)
	case s.Browser.Timeout < 0:
		return fmt.Errorf("%w: browser.timeout is negative", ErrInvalidSettings)
	case s.FetchLimit <= 0:
		return fmt.Errorf("%w: fetch_limit must be positive", ErrInvalidSettings)
	}
	return nil
}
