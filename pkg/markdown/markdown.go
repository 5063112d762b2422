// Package markdown renders finding bodies and report sections from Markdown
// to HTML, with syntax-highlighted code blocks.
package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const (
	// DefaultLanguage highlights code blocks that do not name a language.
	DefaultLanguage = "solidity"

	// DefaultWrapWidth is the longest code line left unwrapped.
	DefaultWrapWidth = 80

	// CodeBlockClass is the class of the container around highlighted code.
	CodeBlockClass = "code-border no-underline-heading"
)

// Renderer converts Markdown to HTML.
type Renderer struct {
	md              goldmark.Markdown
	style           *chroma.Style
	formatter       *chromahtml.Formatter
	defaultLanguage string
	wrapWidth       int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithDefaultLanguage sets the lexer used for code blocks without a language.
func WithDefaultLanguage(lang string) Option {
	return func(r *Renderer) { r.defaultLanguage = lang }
}

// WithWrapWidth sets the code line length above which lines are wrapped.
// Zero disables wrapping.
func WithWrapWidth(width int) Option {
	return func(r *Renderer) { r.wrapWidth = width }
}

// New creates a Renderer with GitHub-flavored Markdown enabled.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		defaultLanguage: DefaultLanguage,
		wrapWidth:       DefaultWrapWidth,
		style:           codeStyle(),
		formatter:       chromahtml.New(chromahtml.Standalone(false), chromahtml.WithClasses(false)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{r: r}, 100)),
		),
	)
	return r
}

// codeStyle returns the default Pygments palette with Error tokens in plain
// black instead of a red border.
func codeStyle() *chroma.Style {
	base := styles.Get("pygments")
	style, err := base.Builder().Add(chroma.Error, "#000000").Build()
	if err != nil {
		return base
	}
	return style
}

// Render converts source to an HTML fragment.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderInline renders source and drops the paragraph wrapper when the
// result is a single paragraph. Used for table cells.
func (r *Renderer) RenderInline(source string) (string, error) {
	out, err := r.Render(source)
	if err != nil {
		return "", err
	}
	return UnwrapParagraph(out), nil
}

// UnwrapParagraph strips the <p> wrapper from html when it is exactly one
// paragraph. Anything else is returned unchanged.
func UnwrapParagraph(html string) string {
	trimmed := strings.TrimSpace(html)
	if strings.HasPrefix(trimmed, "<p>") && strings.HasSuffix(trimmed, "</p>") &&
		strings.Count(trimmed, "<p>") == 1 {
		return strings.TrimSuffix(strings.TrimPrefix(trimmed, "<p>"), "</p>")
	}
	return html
}

// highlight writes code as highlighted HTML inside the code container.
func (r *Renderer) highlight(w io.Writer, code, lang string) error {
	if lang == "" {
		lang = r.defaultLanguage
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	code = strings.TrimSpace(code)
	if r.wrapWidth > 0 {
		lines := strings.Split(code, "\n")
		for i, line := range lines {
			lines[i] = wrapCodeLine(line, r.wrapWidth)
		}
		code = strings.Join(lines, "\n")
	}

	iterator, err := lexer.Tokenise(nil, code+"\n")
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", lang, err)
	}
	if _, err := fmt.Fprintf(w, `<div class="%s">`, CodeBlockClass); err != nil {
		return err
	}
	if err := r.formatter.Format(w, r.style, iterator); err != nil {
		return err
	}
	_, err = io.WriteString(w, "</div>\n")
	return err
}

// codeBlockRenderer overrides goldmark's code block rendering with chroma.
type codeBlockRenderer struct {
	r *Renderer
}

func (c *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, c.renderCode)
	reg.Register(ast.KindCodeBlock, c.renderCode)
}

func (c *codeBlockRenderer) renderCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var lang string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		lang = string(fenced.Language(source))
	}

	var code bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	if err := c.r.highlight(w, code.String(), lang); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}
