// Package crawl provides depth-bounded discovery of documentation URLs and
// concurrency-bounded fetching of discovered pages.
package crawl

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/fwojciec/docrag/bloom"
)

// Frontier configuration for Bloom filter sizing.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Extensions of binary and document files that are not content pages.
var excludedExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".zip", ".exe", ".doc", ".docx",
}

// Administrative paths that are never crawled.
var excludedPathRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/admin`),
	regexp.MustCompile(`(?i)/login`),
	regexp.MustCompile(`(?i)/logout`),
	regexp.MustCompile(`(?i)/auth`),
	regexp.MustCompile(`(?i)/dashboard`),
}

// Frontier tracks visited and discovered URLs for one crawl run and enforces
// domain scope. Visited URLs are always a subset of discovered URLs. The
// frontier lives for a single run and is not persisted.
//
// Frontier is safe for concurrent use by multiple goroutines. A Bloom filter
// short-circuits membership checks for URLs that were definitely never seen;
// exact sets back it so false positives cannot drop URLs.
type Frontier struct {
	mu         sync.Mutex
	scopeHost  string
	seen       *bloom.Filter
	visited    map[string]struct{}
	discovered map[string]struct{}
}

// NewFrontier creates a Frontier scoped to the host of baseURL.
func NewFrontier(baseURL string) (*Frontier, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Frontier{
		scopeHost:  base.Host,
		seen:       bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		visited:    make(map[string]struct{}),
		discovered: make(map[string]struct{}),
	}, nil
}

// Normalize strips the URL fragment; URLs differing only by fragment are
// the same page.
func Normalize(rawURL string) string {
	if idx := strings.Index(rawURL, "#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

// Valid reports whether a URL may enter the frontier: http(s) scheme, same
// host as the crawl scope, not a binary/document download, not an
// administrative page.
func (f *Frontier) Valid(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host != f.scopeHost {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, ext := range excludedExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	for _, re := range excludedPathRes {
		if re.MatchString(rawURL) {
			return false
		}
	}

	return true
}

// AddDiscovered adds a normalized URL to the discovered set.
// Returns false if the URL was already discovered.
func (f *Frontier) AddDiscovered(rawURL string) bool {
	u := Normalize(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Test(u) {
		if _, ok := f.discovered[u]; ok {
			return false
		}
	}
	f.seen.Add(u)
	f.discovered[u] = struct{}{}
	return true
}

// MarkVisited records that a URL's page has been fetched.
// The URL is added to the discovered set as well, preserving the
// visited-subset-of-discovered invariant.
func (f *Frontier) MarkVisited(rawURL string) {
	u := Normalize(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.visited[u] = struct{}{}
	f.seen.Add(u)
	f.discovered[u] = struct{}{}
}

// Visited reports whether a URL's page has already been fetched.
func (f *Frontier) Visited(rawURL string) bool {
	u := Normalize(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.visited[u]
	return ok
}

// Discovered returns the discovered URLs in lexical order.
func (f *Frontier) Discovered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	urls := make([]string, 0, len(f.discovered))
	for u := range f.discovered {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// VisitedCount returns the number of pages fetched so far.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}
