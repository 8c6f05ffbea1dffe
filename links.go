package docrag

// LinkExtractor extracts anchor targets from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns the absolute URLs of all anchors,
	// resolved against baseURL, fragment-stripped, limited to the same host,
	// deduplicated in document order.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
