package pagination

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Wardens-OSS-Club/compiloor/pkg/placeholder"
)

// Defaults of the resolver.
const (
	DefaultHeadingLimit     = 38
	DefaultPageNumberSize   = 14
	DefaultLegendNumberSize = 20
	DefaultColor            = "#212529"
)

// footerFraction is the share of the page height used by the footer.
const footerFraction = 25

// Resolver numbers the pages of a rendered report and fills in the
// legend's page-number placeholders.
type Resolver struct {
	strategy         Strategy
	headingLimit     int
	pageNumberSize   float64
	legendNumberSize float64
	color            string
	logger           *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrategy replaces the heading-to-page strategy.
func WithStrategy(s Strategy) Option {
	return func(r *Resolver) {
		if s != nil {
			r.strategy = s
		}
	}
}

// WithHeadingLimit sets the length headings are truncated to.
func WithHeadingLimit(n int) Option {
	return func(r *Resolver) { r.headingLimit = n }
}

// WithFontSizes sets the size of footer numbers and of legend numbers.
func WithFontSizes(pageNumber, legendNumber float64) Option {
	return func(r *Resolver) {
		r.pageNumberSize = pageNumber
		r.legendNumberSize = legendNumber
	}
}

// WithColor sets the color of stamped numbers, as #rrggbb.
func WithColor(color string) Option {
	return func(r *Resolver) { r.color = color }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		strategy:         DefaultStrategy,
		headingLimit:     DefaultHeadingLimit,
		pageNumberSize:   DefaultPageNumberSize,
		legendNumberSize: DefaultLegendNumberSize,
		color:            DefaultColor,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Outcome reports what Resolve did.
type Outcome struct {
	// Deleted are the indexes of the blank pages removed.
	Deleted []int

	// Headings are the headings as searched for, after truncation.
	Headings []string

	// Matches are the headings bound to a page, in binding order.
	Matches []Match

	// Rewritten are the placeholder tokens replaced with a page number.
	Rewritten []string

	// Unresolved are the placeholder tokens of bound headings that were
	// not found on any page.
	Unresolved []string
}

// Resolve edits doc in place and saves it. headings are the section
// headings in document order.
func (r *Resolver) Resolve(doc Document, headings []string) (*Outcome, error) {
	out := &Outcome{}

	if err := r.removeBlankPages(doc, out); err != nil {
		return nil, err
	}
	if err := r.stampFooters(doc); err != nil {
		return nil, err
	}

	out.Headings = make([]string, len(headings))
	for i, h := range headings {
		out.Headings[i] = truncateHeading(h, r.headingLimit)
	}

	// The cover page is neither numbered nor searched.
	pages := make([]PageText, 0, doc.NumPages())
	for i := 1; i < doc.NumPages(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageText{Index: i, Text: normalizeText(text)})
	}
	out.Matches = r.strategy.Map(pages, out.Headings)

	for _, m := range out.Matches {
		token := placeholder.PageTokenForHeading(m.Heading)
		ok, err := r.rewritePlaceholder(doc, token, m.Page)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Rewritten = append(out.Rewritten, token)
		} else {
			r.logger.Debug("placeholder not found", zap.String("token", token), zap.String("heading", m.Heading))
			out.Unresolved = append(out.Unresolved, token)
		}
	}

	if err := doc.Save(); err != nil {
		return nil, err
	}
	r.logger.Debug("pagination resolved",
		zap.Int("deleted", len(out.Deleted)),
		zap.Int("bound", len(out.Matches)),
		zap.Int("rewritten", len(out.Rewritten)),
	)
	return out, nil
}

func (r *Resolver) removeBlankPages(doc Document, out *Outcome) error {
	for i := 0; i < doc.NumPages(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			out.Deleted = append(out.Deleted, i)
		}
	}
	if len(out.Deleted) == 0 {
		return nil
	}
	if err := doc.DeletePages(out.Deleted); err != nil {
		return fmt.Errorf("delete blank pages: %w", err)
	}
	return nil
}

func (r *Resolver) stampFooters(doc Document) error {
	for i := 1; i < doc.NumPages(); i++ {
		size, err := doc.Size(i)
		if err != nil {
			return err
		}
		doc.AddStamp(i, Stamp{
			Box:      Rect{X: 0, Y: 0, W: size.W, H: size.H / footerFraction},
			Text:     strconv.Itoa(i),
			FontSize: r.pageNumberSize,
			Color:    r.color,
			Align:    AlignCenter,
		})
	}
	return nil
}

// rewritePlaceholder covers the first occurrence of token with the page
// number. Only the first page holding the token is rewritten.
func (r *Resolver) rewritePlaceholder(doc Document, token string, page int) (bool, error) {
	for i := 0; i < doc.NumPages(); i++ {
		box, ok, err := doc.Find(i, token)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		doc.AddStamp(i, Stamp{
			Box:      box,
			Text:     strconv.Itoa(page),
			FontSize: r.legendNumberSize,
			Color:    r.color,
			Align:    AlignRight,
			Cover:    true,
		})
		return true, nil
	}
	return false, nil
}
