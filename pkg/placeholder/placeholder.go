// Package placeholder provides the token grammars used while compiling a report.
//
// Report compilation substitutes tokens in two phases that must never see
// each other's tokens:
//
//   - HTML stage: {{name}}, {{config.<key>}}, {{<name>_table}} and
//     {{findings_legend}} are replaced before rasterization. Table- and
//     fragment-internal values use the [[name]] grammar.
//   - PDF stage: {{[<key>]_page}} tokens survive into the PDF and are rewritten
//     with physical page numbers once pagination is known.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"
)

// Grammar describes how a token is delimited.
type Grammar struct {
	Prefix string
	Suffix string
	// NamePattern is the regular expression a token name must match.
	NamePattern string
}

var (
	// HTML is the {{name}} grammar substituted into the report template.
	HTML = Grammar{Prefix: "{{", Suffix: "}}", NamePattern: `[A-Za-z_][A-Za-z0-9_.\-]*`}

	// Variable is the [[name]] grammar used inside generated tables and
	// finding fragments.
	Variable = Grammar{Prefix: "[[", Suffix: "]]", NamePattern: `[A-Za-z0-9_]+`}

	// Page is the {{[key]_page}} grammar resolved after rasterization.
	Page = Grammar{Prefix: "{{[", Suffix: "]_page}}", NamePattern: `[^\[\]\s{}]+`}
)

// Token returns name wrapped in the grammar's delimiters.
func (g Grammar) Token(name string) string {
	return g.Prefix + name + g.Suffix
}

// Engine finds and substitutes tokens of a single grammar.
type Engine struct {
	grammar Grammar
	regex   *regexp.Regexp
}

// NewEngine creates an engine for g.
func NewEngine(g Grammar) *Engine {
	pattern := regexp.QuoteMeta(g.Prefix) + `(` + g.NamePattern + `)` + regexp.QuoteMeta(g.Suffix)
	return &Engine{grammar: g, regex: regexp.MustCompile(pattern)}
}

// Grammar returns the grammar the engine was built for.
func (e *Engine) Grammar() Grammar {
	return e.grammar
}

// Token returns the token for name.
func (e *Engine) Token(name string) string {
	return e.grammar.Token(name)
}

// Replace substitutes every occurrence of the token for name with value.
func (e *Engine) Replace(s, name, value string) string {
	return strings.ReplaceAll(s, e.grammar.Token(name), value)
}

// Process replaces every token whose name is in values in a single pass.
// Unknown tokens are left untouched.
func (e *Engine) Process(s string, values map[string]string) string {
	return e.regex.ReplaceAllStringFunc(s, func(match string) string {
		name := e.regex.FindStringSubmatch(match)[1]
		if val, ok := values[name]; ok {
			return val
		}
		return match
	})
}

// Extract returns the distinct token names in s in order of first appearance.
func (e *Engine) Extract(s string) []string {
	matches := e.regex.FindAllStringSubmatch(s, -1)
	var names []string
	seen := make(map[string]bool)
	for _, match := range matches {
		if len(match) > 1 && !seen[match[1]] {
			names = append(names, match[1])
			seen[match[1]] = true
		}
	}
	return names
}

// HasPlaceholders reports whether s contains a token of this grammar.
func (e *Engine) HasPlaceholders(s string) bool {
	return e.regex.MatchString(s)
}

// Count returns the number of tokens in s.
func (e *Engine) Count(s string) int {
	return len(e.regex.FindAllString(s, -1))
}

// Config returns the HTML-stage token for a config key: {{config.<key>}}.
func Config(key string) string {
	return HTML.Token("config." + key)
}

// SeverityIndex returns the variable that a finding fragment carries until
// the index of its severity section is known.
func SeverityIndex(rank int) string {
	return Variable.Token(strconv.Itoa(rank) + "_severity_index")
}

// PageToken returns the PDF-stage token for key, e.g. {{[8.1]_page}}.
func PageToken(key string) string {
	return Page.Token(key)
}

// PageTokenForHeading derives the page-number token that belongs to a section
// heading. The first whitespace-delimited word of the heading is the key, with
// a trailing '.' removed: "8.1. High Findings" maps to {{[8.1]_page}} and
// "[H-01] Reentrancy" maps to {{[H-01]_page}}.
func PageTokenForHeading(heading string) string {
	fields := strings.Fields(heading)
	if len(fields) == 0 {
		return ""
	}
	key := strings.TrimSuffix(fields[0], ".")
	if strings.ContainsAny(key, "[]") {
		return "{{" + key + "_page}}"
	}
	return PageToken(key)
}
