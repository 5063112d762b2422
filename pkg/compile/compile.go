// Package compile runs a report build end to end: it reads the workspace,
// assembles the HTML report, rasterizes it to PDF and resolves page numbers.
package compile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Wardens-OSS-Club/compiloor/pkg/browser"
	"github.com/Wardens-OSS-Club/compiloor/pkg/config"
	"github.com/Wardens-OSS-Club/compiloor/pkg/fetch"
	"github.com/Wardens-OSS-Club/compiloor/pkg/finding"
	"github.com/Wardens-OSS-Club/compiloor/pkg/markdown"
	"github.com/Wardens-OSS-Club/compiloor/pkg/pagination"
	"github.com/Wardens-OSS-Club/compiloor/pkg/report"
	"github.com/Wardens-OSS-Club/compiloor/pkg/ui"
	"github.com/Wardens-OSS-Club/compiloor/pkg/workspace"
)

// Fetcher downloads the report template and stylesheet.
type Fetcher interface {
	Text(ctx context.Context, url string) (string, error)
}

// Rasterizer prints an HTML document to a PDF file.
type Rasterizer interface {
	RenderPDF(ctx context.Context, document, path string) error
}

// Opener opens a rendered PDF for pagination.
type Opener func(path string) (pagination.Document, error)

// Pipeline compiles the report of one workspace.
type Pipeline struct {
	ws         *workspace.Workspace
	fetcher    Fetcher
	rasterizer Rasterizer
	open       Opener
	logger     *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// WithRasterizer replaces the headless-browser rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(p *Pipeline) { p.rasterizer = r }
}

// WithOpener replaces how the rendered PDF is opened.
func WithOpener(o Opener) Option {
	return func(p *Pipeline) { p.open = o }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline for ws. Collaborators not given as options are
// built from the workspace settings when Run starts.
func New(ws *workspace.Workspace, opts ...Option) *Pipeline {
	p := &Pipeline{ws: ws, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result describes a finished compile.
type Result struct {
	RunID    string
	Path     string
	Findings *finding.Collection
	Outcome  *pagination.Outcome
	Duration time.Duration
}

// Run compiles the report. Any error aborts the run; a PDF written before
// the failure is left on disk.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))

	if err := p.ws.EnsureInitialized(); err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(p.ws.SettingsPath())
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p.ws.ConfigPath(), p.ws.SectionsPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckRequired(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateTemplateURLs(); err != nil {
		return nil, err
	}

	fetcher := p.fetcher
	if fetcher == nil {
		fetcher = fetch.New(
			fetch.WithMaxBodySize(settings.FetchLimit),
			fetch.WithUserAgent(ui.UserAgent()),
			fetch.WithLogger(log),
		)
	}
	tmpl, err := fetcher.Text(ctx, cfg.TemplateURL())
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	stylesheet, err := fetcher.Text(ctx, cfg.StylesheetURL())
	if err != nil {
		return nil, fmt.Errorf("stylesheet: %w", err)
	}

	if err := p.ws.NotEmpty(); err != nil {
		return nil, err
	}

	md := markdown.New()
	parser := finding.NewParser(md, finding.WithSection(settings.Section), finding.WithLogger(log))
	findings, err := p.ws.LoadAll(parser)
	if err != nil {
		return nil, err
	}
	log.Info("loaded findings", zap.Int("count", findings.Total()))

	assembler := report.NewAssembler(md, report.WithSection(settings.Section), report.WithLogger(log))
	assembled, err := assembler.Assemble(report.Input{
		Template:   tmpl,
		Stylesheet: stylesheet,
		Config:     cfg,
		Findings:   findings,
	})
	if err != nil {
		return nil, err
	}

	path, err := p.ws.NewReportPath()
	if err != nil {
		return nil, err
	}

	rasterizer := p.rasterizer
	if rasterizer == nil {
		rasterizer = browser.New(
			browser.WithExecPath(settings.Browser.ExecPath),
			browser.WithTimeout(settings.Browser.Timeout),
			browser.WithLogger(log),
		)
	}
	if err := rasterizer.RenderPDF(ctx, assembled.HTML, path); err != nil {
		return nil, err
	}
	log.Info("rendered pdf", zap.String("path", path))

	open := p.open
	if open == nil {
		open = func(path string) (pagination.Document, error) {
			return pagination.OpenPDF(path, log)
		}
	}
	doc, err := open(path)
	if err != nil {
		return nil, err
	}

	resolver := pagination.NewResolver(
		pagination.WithStrategy(pagination.OccurrenceStrategy{
			Heading: settings.Occurrences.Heading,
			Finding: settings.Occurrences.Finding,
		}),
		pagination.WithHeadingLimit(settings.HeadingLimit),
		pagination.WithFontSizes(settings.PageNumberSize, settings.LegendNumberSize),
		pagination.WithColor(settings.Color),
		pagination.WithLogger(log),
	)
	outcome, err := resolver.Resolve(doc, assembled.Headings)
	if err != nil {
		return nil, fmt.Errorf("resolve page numbers: %w", err)
	}
	if len(outcome.Unresolved) > 0 {
		log.Warn("page numbers left unresolved", zap.Strings("tokens", outcome.Unresolved))
	}

	res := &Result{
		RunID:    runID,
		Path:     path,
		Findings: findings,
		Outcome:  outcome,
		Duration: time.Since(start),
	}
	log.Info("compiled report",
		zap.String("path", path),
		zap.Int("pages_removed", len(outcome.Deleted)),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
