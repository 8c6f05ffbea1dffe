package mock

import "github.com/fwojciec/docrag"

var _ docrag.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docrag.Extractor.
type Extractor struct {
	ExtractFn func(html, url string) (*docrag.Document, error)
}

func (e *Extractor) Extract(html, url string) (*docrag.Document, error) {
	return e.ExtractFn(html, url)
}

var _ docrag.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docrag.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
