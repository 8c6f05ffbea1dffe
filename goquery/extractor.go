// Package goquery implements HTML content and link extraction using
// CSS selectors via PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docrag"
)

// contentSelectors are tried in order; the first match becomes the content
// root. The list covers Docusaurus and similar documentation site layouts,
// falling back to body.
var contentSelectors = []string{
	`[role="main"]`,
	".main-wrapper",
	".container",
	".main-content",
	".content",
	".docs-content",
	".theme-doc-markdown",
	"main",
	".article",
	".post-content",
	"body",
}

// Ensure Extractor implements docrag.Extractor at compile time.
var _ docrag.Extractor = (*Extractor)(nil)

// Extractor extracts main page content as whitespace-joined text with
// structural metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as a Document.
func (e *Extractor) Extract(html string, url string) (*docrag.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	headings := extractHeadings(doc)
	content := findContentRoot(doc)
	text := flattenText(content)

	return &docrag.Document{
		Text: text,
		Metadata: docrag.DocumentMetadata{
			URL:         url,
			Title:       title,
			Headings:    headings,
			WordCount:   len(strings.Fields(text)),
			ContentType: contentType(url, doc),
		},
	}, nil
}

// findContentRoot returns the page's main content selection. Selectors for
// the detected framework are tried first, then the generic priority list,
// falling back to the document itself when even body is absent.
func findContentRoot(doc *goquery.Document) *goquery.Selection {
	if framework := DetectFramework(doc); framework != FrameworkUnknown {
		for _, selector := range frameworkContentSelectors[framework] {
			if sel := doc.Find(selector).First(); sel.Length() > 0 {
				return sel
			}
		}
	}
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// flattenText joins the text nodes of a selection with single spaces.
func flattenText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// extractHeadings collects h1-h6 elements in document order.
func extractHeadings(doc *goquery.Document) []docrag.Heading {
	var headings []docrag.Heading
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if len(name) != 2 {
			return
		}
		headings = append(headings, docrag.Heading{
			Level: int(name[1] - '0'),
			Text:  strings.TrimSpace(sel.Text()),
		})
	})
	return headings
}

// contentType infers the page's content type from URL path segments first,
// then from structural cues.
func contentType(url string, doc *goquery.Document) string {
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

	if doc.Find("article").Length() > 0 {
		return docrag.ContentTypeArticle
	}

	hasDocClass := false
	doc.Find("div[class]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		class, _ := sel.Attr("class")
		if strings.Contains(strings.ToLower(class), "doc") {
			hasDocClass = true
			return false
		}
		return true
	})
	if hasDocClass {
		return docrag.ContentTypeDocumentation
	}

	return docrag.ContentTypeGeneral
}
