// Package browser rasterizes the assembled report HTML to PDF with
// headless Chrome.
package browser

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper size in inches.
const (
	A4Width  = 8.27
	A4Height = 11.69
)

// readyExpression is true once the document, its images and its fonts have
// finished loading.
const readyExpression = `document.readyState === "complete" &&
	Array.from(document.images).every(img => img.complete) &&
	(!document.fonts || document.fonts.status === "loaded")`

// Rasterizer prints HTML documents to PDF.
type Rasterizer struct {
	execPath    string
	timeout     time.Duration
	loadTimeout time.Duration
	logger      *zap.Logger
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithExecPath sets the Chrome executable. When unset, chromedp finds one.
func WithExecPath(path string) Option {
	return func(r *Rasterizer) { r.execPath = path }
}

// WithTimeout bounds a whole rasterization. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Rasterizer) { r.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Rasterizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Rasterizer.
func New(opts ...Option) *Rasterizer {
	r := &Rasterizer{
		timeout:     2 * time.Minute,
		loadTimeout: 30 * time.Second,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderPDF cleans document, loads it into a blank page with screen media
// emulation, and writes an A4 PDF with backgrounds to path.
func (r *Rasterizer) RenderPDF(ctx context.Context, document, path string) error {
	cleaned, err := Clean(document)
	if err != nil {
		return err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer r.shutdown(browserCtx, browserCancel, allocCancel)

	start := time.Now()
	var ready bool
	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		emulation.SetEmulatedMedia().WithMedia("screen"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, cleaned).Do(ctx)
		}),
		chromedp.Poll(readyExpression, &ready, chromedp.WithPollingTimeout(r.loadTimeout)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(A4Width).
				WithPaperHeight(A4Height).
				Do(ctx)
			pdf = buf
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("browser: print to pdf: %w", err)
	}

	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("browser: write %s: %w", path, err)
	}
	r.logger.Debug("rasterized report",
		zap.String("path", path),
		zap.Int("bytes", len(pdf)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// shutdown cancels the browser contexts and force-kills Chrome if that
// does not finish within five seconds.
func (r *Rasterizer) shutdown(browserCtx context.Context, browserCancel, allocCancel context.CancelFunc) {
	var proc *os.Process
	if c := chromedp.FromContext(browserCtx); c != nil && c.Browser != nil {
		proc = c.Browser.Process()
	}

	done := make(chan struct{})
	go func() {
		browserCancel()
		allocCancel()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		r.logger.Warn("browser shutdown timed out, killing chrome")
		killProcessTree(proc)
	}
}
