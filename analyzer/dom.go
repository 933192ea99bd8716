package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document is the read-only DOM handle shared by all analyzers. It wraps
// a parsed goquery document together with the raw markup it came from;
// no method mutates the tree.
type Document struct {
	doc *goquery.Document
	raw string
}

// ParseHTML parses raw markup into a Document.
func ParseHTML(rawHTML string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc, raw: rawHTML}, nil
}

// Root exposes the underlying goquery document for selector queries.
func (d *Document) Root() *goquery.Document {
	return d.doc
}

// Count returns the number of elements matching the selector.
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// Text returns the trimmed text content of the first match.
func (d *Document) Text(selector string) string {
	return strings.TrimSpace(d.doc.Find(selector).First().Text())
}

// Attr returns the named attribute of the first match.
func (d *Document) Attr(selector, name string) (string, bool) {
	return d.doc.Find(selector).First().Attr(name)
}

// MetaContent returns the content attribute of a meta tag selected by
// name or property.
func (d *Document) MetaContent(key string) string {
	sel := fmt.Sprintf("meta[name='%s'], meta[property='%s']", key, key)
	content, _ := d.doc.Find(sel).First().Attr("content")
	return strings.TrimSpace(content)
}

// heading is one h1-h6 element in document order.
type heading struct {
	level int
	text  string
}

// headings returns every h1-h6 in document order.
func (d *Document) headings() []heading {
	var hs []heading
	d.doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if len(name) == 2 && name[0] == 'h' {
			hs = append(hs, heading{
				level: int(name[1] - '0'),
				text:  strings.TrimSpace(s.Text()),
			})
		}
	})
	return hs
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// ExtractText pulls the readable body text: scripts, styles and embedded
// frames are stripped, the main content container is preferred over the
// whole body, and whitespace is collapsed.
func (d *Document) ExtractText() string {
	clone := d.doc.Selection.Clone()
	clone.Find("script, style, noscript, iframe").Remove()

	container := clone.Find("main").First()
	if container.Length() == 0 {
		container = clone.Find("article").First()
	}
	if container.Length() == 0 {
		container = clone.Find(".content").First()
	}
	if container.Length() == 0 {
		container = clone.Find("body").First()
	}
	if container.Length() == 0 {
		container = clone
	}
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(container.Text()), " ")
}

// maxNestingDepth walks the raw markup and reports the deepest element
// nesting level.
func maxNestingDepth(rawHTML string) int {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return 0
	}
	var walk func(n *html.Node, depth int) int
	walk = func(n *html.Node, depth int) int {
		deepest := depth
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if d := walk(c, depth+1); d > deepest {
				deepest = d
			}
		}
		return deepest
	}
	return walk(node, 0)
}
