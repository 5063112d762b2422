// Package table renders the report's HTML tables.
package table

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Table is a titled grid of HTML cells.
type Table struct {
	// Title is rendered as a heading above the table when set.
	Title string

	// Columns are the header cells. No header row is rendered when empty.
	Columns []string

	// Rows hold cell contents as HTML fragments.
	Rows [][]string

	// HighlightLastRow marks the last row with the bold-text class.
	HighlightLastRow bool
}

// Render returns the table wrapped in its table-wrapper container.
func (t Table) Render() (string, error) {
	wrapper := element(atom.Div, "class", "table-wrapper")

	if t.Title != "" {
		heading := element(atom.H3, "class", "no-underline-heading")
		heading.AppendChild(&html.Node{Type: html.TextNode, Data: t.Title})
		wrapper.AppendChild(heading)
	}

	tbl := element(atom.Table)
	wrapper.AppendChild(tbl)

	if len(t.Columns) > 0 {
		thead := element(atom.Thead)
		row, err := buildRow(atom.Th, t.Columns)
		if err != nil {
			return "", err
		}
		thead.AppendChild(row)
		tbl.AppendChild(thead)
	}

	tbody := element(atom.Tbody)
	for i, cells := range t.Rows {
		row, err := buildRow(atom.Td, cells)
		if err != nil {
			return "", err
		}
		if t.HighlightLastRow && i == len(t.Rows)-1 {
			row.Attr = append(row.Attr, html.Attribute{Key: "class", Val: "bold-text"})
		}
		tbody.AppendChild(row)
	}
	tbl.AppendChild(tbody)

	var sb strings.Builder
	if err := html.Render(&sb, wrapper); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return sb.String(), nil
}

func buildRow(cellTag atom.Atom, cells []string) (*html.Node, error) {
	tr := element(atom.Tr)
	for _, content := range cells {
		cell := element(cellTag)
		nodes, err := html.ParseFragment(strings.NewReader(content), cell)
		if err != nil {
			return nil, fmt.Errorf("parse cell %q: %w", content, err)
		}
		for _, n := range nodes {
			cell.AppendChild(n)
		}
		tr.AppendChild(cell)
	}
	return tr, nil
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}
