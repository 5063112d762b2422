package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// emptyRemovable are the elements dropped by Clean when they have no
// content and no attributes.
var emptyRemovable = map[atom.Atom]bool{
	atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true,
	atom.P: true, atom.Ul: true,
}

// Clean parses document and removes empty headings, paragraphs and lists
// left behind by Markdown rendering and template substitution.
func Clean(document string) (string, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	var empty []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && emptyRemovable[n.DataAtom] &&
			n.FirstChild == nil && len(n.Attr) == 0 {
			empty = append(empty, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, n := range empty {
		n.Parent.RemoveChild(n)
	}

	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return sb.String(), nil
}
