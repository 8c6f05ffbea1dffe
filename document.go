package docrag

// Content types inferred from a page's URL and structure.
const (
	ContentTypeDocumentation = "documentation"
	ContentTypeBlog          = "blog"
	ContentTypeAPIReference  = "api_reference"
	ContentTypeTutorial      = "tutorial"
	ContentTypeArticle       = "article"
	ContentTypeGeneral       = "general"
)

// Heading is a single heading element (h1-h6) in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// DocumentMetadata describes the page a document was extracted from.
type DocumentMetadata struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Headings    []Heading `json:"headings"`
	WordCount   int       `json:"wordCount"`
	ContentType string    `json:"contentType"`
}

// Map returns the metadata as a payload map using the keys stored alongside
// vectors. Headings are flattened to their text to keep payload values scalar
// or lists of scalars.
func (m DocumentMetadata) Map() map[string]any {
	headings := make([]string, 0, len(m.Headings))
	for _, h := range m.Headings {
		headings = append(headings, h.Text)
	}
	return map[string]any{
		"url":          m.URL,
		"title":        m.Title,
		"headings":     headings,
		"word_count":   m.WordCount,
		"content_type": m.ContentType,
	}
}

// Document represents the text content extracted from one fetched page.
// It is immutable once produced by an Extractor.
type Document struct {
	Text     string           `json:"text"`
	Metadata DocumentMetadata `json:"metadata"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Metadata.URL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	return nil
}

// Extractor extracts the main content of an HTML page as a Document,
// removing boilerplate structure (scripts, styles, chrome).
type Extractor interface {
	// Extract processes raw HTML and returns the main content as
	// whitespace-joined text plus structural metadata. The url is recorded
	// in the metadata and used for content type inference.
	Extract(html string, url string) (*Document, error)
}
