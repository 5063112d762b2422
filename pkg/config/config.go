// Package config loads the report configuration: the flat key/value
// settings of config.json merged with the Markdown files of sections/.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Keys of config.json.
const (
	KeyTitle                     = "title"
	KeyAuthor                    = "author"
	KeyDate                      = "date"
	KeyCompanyName               = "company_name"
	KeyProtocolName              = "protocol_name"
	KeyRepository                = "repository"
	KeyType                      = "type"
	KeyCommit                    = "commit"
	KeySLOC                      = "sloc"
	KeyAboutAuthor               = "about_author_content"
	KeyDisclaimer                = "disclaimer_content"
	KeyIntroduction              = "introduction_content"
	KeyAboutProtocol             = "about_protocol_content"
	KeySecurityAssessmentSummary = "security_assessment_summary_content"
	KeyTemplateURL               = "template_url"
	KeyStylesheetURL             = "stylesheet_url"
	KeyCoverImageURL             = "cover_img_url"
)

// Unset is the value of an informational key that has not been filled in.
const Unset = "-"

// ContentMarker marks keys whose values are Markdown.
const ContentMarker = "_content"

// RequiredKeys lists every key of the base schema in schema order.
var RequiredKeys = []string{
	KeyTitle, KeyAuthor, KeyDate, KeyCompanyName, KeyProtocolName,
	KeyRepository, KeyType, KeyCommit, KeySLOC,
	KeyAboutAuthor, KeyDisclaimer, KeyIntroduction, KeyAboutProtocol,
	KeySecurityAssessmentSummary,
	KeyTemplateURL, KeyStylesheetURL, KeyCoverImageURL,
}

// Config is an immutable snapshot of the report configuration.
type Config struct {
	values map[string]string
}

// New returns a Config holding a copy of values.
func New(values map[string]string) Config {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Config{values: cp}
}

// Get returns the value of key and whether it is set.
func (c Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value returns the value of key, or "" when unset.
func (c Config) Value(key string) string {
	return c.values[key]
}

// Keys returns all keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of keys.
func (c Config) Len() int { return len(c.values) }

// With returns a copy of c with key set to value.
func (c Config) With(key, value string) Config {
	next := New(c.values)
	next.values[key] = value
	return next
}

// Missing returns the required keys absent from c.
func (c Config) Missing() []string {
	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := c.values[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// CheckRequired fails with ErrMissingKey naming every absent required key.
func (c Config) CheckRequired() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingKey, strings.Join(missing, ", "))
	}
	return nil
}

// IsContentKey reports whether the value of key is Markdown.
func IsContentKey(key string) bool {
	return strings.Contains(key, ContentMarker)
}

func (c Config) TemplateURL() string   { return c.values[KeyTemplateURL] }
func (c Config) StylesheetURL() string { return c.values[KeyStylesheetURL] }
func (c Config) Author() string        { return c.values[KeyAuthor] }
func (c Config) ProtocolName() string  { return c.values[KeyProtocolName] }

// ValidateTemplateURLs checks that template_url and stylesheet_url are
// absolute URLs.
func (c Config) ValidateTemplateURLs() error {
	templateOK := isAbsoluteURL(c.TemplateURL())
	stylesheetOK := isAbsoluteURL(c.StylesheetURL())

	switch {
	case !templateOK && !stylesheetOK:
		return fmt.Errorf("%w: template_url and stylesheet_url are invalid", ErrInvalidURL)
	case !templateOK:
		return fmt.Errorf("%w: template_url is invalid: %q", ErrInvalidURL, c.TemplateURL())
	case !stylesheetOK:
		return fmt.Errorf("%w: stylesheet_url is invalid: %q", ErrInvalidURL, c.StylesheetURL())
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Load reads the config file at configPath and merges in every *.md file
// of sectionsDir under its base name. A missing sections directory is not
// an error.
func Load(configPath, sectionsDir string) (Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrReadConfig, configPath, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = stringify(v)
	}

	entries, err := os.ReadDir(sectionsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(sectionsDir, e.Name()))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrReadConfig, err)
		}
		values[strings.TrimSuffix(e.Name(), ".md")] = string(content)
	}

	return Config{values: values}, nil
}

// stringify flattens a decoded JSON value into its config string form.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t, json.Deterministic(true))
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// BaseValues returns the values written by init.
func BaseValues() map[string]string {
	values := make(map[string]string, len(RequiredKeys))
	for _, k := range RequiredKeys {
		values[k] = Unset
	}
	values[KeyTitle] = "Security Review"
	values[KeyTemplateURL] = ""
	values[KeyStylesheetURL] = ""
	values[KeyCoverImageURL] = ""
	return values
}

// WriteBase writes the base schema to path.
func WriteBase(path string) error {
	return Write(path, New(BaseValues()))
}

// Write stores c at path as JSON with sorted keys.
func Write(path string, c Config) error {
	data, err := json.Marshal(c.values, json.Deterministic(true), jsontext.WithIndent("    "))
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
