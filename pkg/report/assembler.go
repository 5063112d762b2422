package report

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/placeholder"
)

// Renderer renders Markdown to HTML.
type Renderer interface {
	Render(source string) (string, error)
	RenderInline(source string) (string, error)
}

// Input is everything a report is assembled from.
type Input struct {
	Template   string
	Stylesheet string
	Config     config.Config
	Findings   *finding.Collection
}

// Result is the assembled report.
type Result struct {
	HTML string

	// Headings are the section headings in document order, used to look up
	// page numbers in the rendered PDF.
	Headings []string
}

// BuildContext accumulates state while the stages run. Stages read the
// inputs and rewrite HTML; the legend stage also records Indexes.
type BuildContext struct {
	Config          config.Config
	Section         string
	Stylesheet      string
	Findings        *finding.Collection
	Ordered         []*finding.Finding
	FindingsSection FindingsSection
	Renderer        Renderer

	// HTML is the template as substituted so far.
	HTML string

	// Indexes maps each severity present to its section index. Nil until
	// the legend stage has run.
	Indexes map[finding.Severity]int
}

// Stage is one named step of the assembly.
type Stage struct {
	Name string
	Run  func(*BuildContext) error
}

// Assembler turns a template, a config and findings into report HTML.
type Assembler struct {
	renderer Renderer
	section  string
	logger   *zap.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSection sets the findings section index.
func WithSection(section string) Option {
	return func(a *Assembler) { a.section = section }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAssembler creates an assembler rendering Markdown with r.
func NewAssembler(r Renderer, opts ...Option) *Assembler {
	a := &Assembler{renderer: r, section: finding.DefaultSection, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Stages returns the assembly stages in the order they run.
func (a *Assembler) Stages() []Stage {
	return []Stage{
		{Name: "sections", Run: substituteSections},
		{Name: "config", Run: substituteConfig},
		{Name: "labels", Run: boldInfoLabels},
		{Name: "legend", Run: insertLegend},
		{Name: "tables", Run: insertTables},
		{Name: "no-wrap", Run: noWrapIDColumns},
	}
}

// Assemble runs every stage over in.
func (a *Assembler) Assemble(in Input) (*Result, error) {
	for _, key := range []string{config.KeyAuthor, config.KeyProtocolName} {
		if _, ok := in.Config.Get(key); !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
		}
	}

	ctx := &BuildContext{
		Config:     in.Config,
		Section:    a.section,
		Stylesheet: in.Stylesheet,
		Findings:   in.Findings,
		Ordered:    in.Findings.Ordered(),
		Renderer:   a.renderer,
		HTML:       in.Template,
	}
	ctx.FindingsSection = BuildFindings(a.section, in.Findings, in.Config.Author(), in.Config.ProtocolName())

	for _, stage := range a.Stages() {
		if err := stage.Run(ctx); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		a.logger.Debug("assembly stage done", zap.String("stage", stage.Name))
	}

	if left := placeholder.NewEngine(placeholder.HTML).Extract(ctx.HTML); len(left) > 0 {
		a.logger.Warn("template tokens left unsubstituted", zap.Strings("tokens", left))
	}

	return &Result{HTML: ctx.HTML, Headings: ctx.FindingsSection.Headings}, nil
}
