// Package trafilatura implements content extraction using go-trafilatura's
// boilerplate-removal heuristics. It is an alternative to the selector-based
// goquery extractor for sites where structural selectors misfire.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/docrag"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements docrag.Extractor at compile time.
var _ docrag.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as a Document.
func (e *Extractor) Extract(rawHTML string, url string) (*docrag.Document, error) {
	if rawHTML == "" {
		return nil, docrag.Errorf(docrag.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	text := strings.Join(strings.Fields(result.ContentText), " ")
	headings := extractHeadings(rawHTML)

	return &docrag.Document{
		Text: text,
		Metadata: docrag.DocumentMetadata{
			URL:         url,
			Title:       result.Metadata.Title,
			Headings:    headings,
			WordCount:   len(strings.Fields(text)),
			ContentType: contentType(url),
		},
	}, nil
}

// extractHeadings walks the raw HTML and collects h1-h6 in document order.
// Trafilatura discards heading structure, so this re-parses the source.
func extractHeadings(rawHTML string) []docrag.Heading {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var headings []docrag.Heading
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isHeading(n.Data) {
			headings = append(headings, docrag.Heading{
				Level: int(n.Data[1] - '0'),
				Text:  strings.TrimSpace(nodeText(n)),
			})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return headings
}

func isHeading(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// contentType infers the page's content type from URL path segments.
// Structural cues are left to the selector-based extractor.
func contentType(url string) string {
	switch {
	case strings.Contains(url, "/docs/"):
		return docrag.ContentTypeDocumentation
	case strings.Contains(url, "/blog/"), strings.Contains(url, "/posts/"):
		return docrag.ContentTypeBlog
	case strings.Contains(url, "/api/"):
		return docrag.ContentTypeAPIReference
	case strings.Contains(url, "/tutorial/"):
		return docrag.ContentTypeTutorial
	}
	return docrag.ContentTypeGeneral
}
