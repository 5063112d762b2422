package finding

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultSection is the report section that holds the findings.
const DefaultSection = "8"

// Renderer turns Markdown into an HTML fragment.
type Renderer interface {
	Render(source string) (string, error)
}

// Parser parses finding documents.
type Parser struct {
	renderer Renderer
	section  string
	logger   *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSection sets the findings section index used in fragment anchors.
func WithSection(section string) Option {
	return func(p *Parser) { p.section = section }
}

// WithLogger sets the logger used for parse warnings.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a parser that renders bodies with r.
func NewParser(r Renderer, opts ...Option) *Parser {
	p := &Parser{renderer: r, section: DefaultSection, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses one raw finding document.
func (p *Parser) Parse(raw string) (*Finding, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")
	first := lines[0]

	if !strings.Contains(first, "[") || !strings.Contains(first, "]") {
		return nil, fmt.Errorf("%w: %s", ErrMalformedFinding, first)
	}

	head, title, _ := strings.Cut(first, "]")
	open := strings.LastIndex(head, "[")
	if open < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMalformedFinding, first)
	}
	id, err := ParseID(head[open+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedFinding, first, err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		p.logger.Warn("finding title is missing", zap.String("line", first))
		title = UntitledTitle
		lines[0] = head + "] " + UntitledTitle
	}

	status, body, err := extractStatus(strings.Join(lines, "\n"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	f := &Finding{
		ID:     id,
		Title:  title,
		Status: status,
		Body:   body,
	}

	if p.renderer != nil {
		rendered, err := p.renderer.Render(body)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", id, err)
		}
		f.Fragment = wrapFragment(p.section, id, rendered)
	}
	return f, nil
}

// extractStatus reads the status marker, if any, and removes its line from
// the body. A missing marker means Unresolved; an empty, "-" or unset
// marker means Resolved.
func extractStatus(body string) (Status, string, error) {
	idx := strings.Index(body, StatusMarker)
	if idx < 0 {
		return StatusUnresolved, body, nil
	}

	value, rest, _ := strings.Cut(body[idx+len(StatusMarker):], "\n")
	value = strings.TrimSpace(value)

	var status Status
	switch value {
	case UnsetStatus, "", "-":
		status = StatusResolved
	default:
		var err error
		status, err = ParseStatus(value)
		if err != nil {
			return "", "", err
		}
	}

	cleaned := strings.TrimRight(body[:idx]+rest, "\n") + "\n"
	return status, cleaned, nil
}
