package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies a documentation site generator.
type Framework string

// Recognized documentation frameworks.
const (
	FrameworkUnknown    Framework = "unknown"
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// frameworkContentSelectors maps a detected framework to the selectors that
// hold its main content, tried before the generic selector list.
var frameworkContentSelectors = map[Framework][]string{
	FrameworkDocusaurus: {".theme-doc-markdown", "article", "main"},
	FrameworkMkDocs:     {".md-content", "article", "main"},
	FrameworkSphinx:     {`[role="main"]`, ".document", ".body"},
	FrameworkVitePress:  {".VPDoc", "#VPContent", "main"},
	FrameworkVuePress:   {".theme-default-content", "main"},
	FrameworkGitBook:    {"main", "article"},
	FrameworkNextra:     {"article", "main"},
}

// DetectFramework identifies the documentation framework a page was generated
// with. It checks the meta generator tag first, then framework-specific CSS
// classes, data attributes, and structural markers unique to each generator.
// Returns FrameworkUnknown when no marker matches.
func DetectFramework(doc *goquery.Document) Framework {
	if framework := detectFromMetaGenerator(doc); framework != FrameworkUnknown {
		return framework
	}

	has := func(selector string) bool {
		return doc.Find(selector).Length() > 0
	}

	// __docusaurus_skipToContent_fallback is highly specific
	if has("#__docusaurus_skipToContent_fallback") ||
		has(".theme-doc-sidebar-container") ||
		has("[data-rh]") && has("[data-theme]") {
		return FrameworkDocusaurus
	}

	// data-md-color-* attributes are unique to MkDocs Material
	if has("[data-md-color-scheme]") ||
		has("[data-md-component]") ||
		has(".md-nav--primary") {
		return FrameworkMkDocs
	}

	// Sphinx markers, including the ReadTheDocs theme
	if has(".toctree-wrapper") ||
		has(".wy-nav-side") ||
		has(".wy-menu-vertical") ||
		has(".sphinxsidebar") {
		return FrameworkSphinx
	}

	// VitePress before VuePress since VitePress is a VuePress successor
	if has("#VPContent") ||
		has(".VPDoc") ||
		has(".VPDocAsideOutline") {
		return FrameworkVitePress
	}

	if has(".theme-default-content") ||
		has(".sidebar-links") ||
		has(".vuepress-navbar") {
		return FrameworkVuePress
	}

	if has("[data-testid='space.sidebar']") ||
		has("[data-testid='page.desktopTableOfContents']") ||
		hasGitBookClasses(doc) {
		return FrameworkGitBook
	}

	if has(".nextra-navbar") ||
		has(".nextra-sidebar") ||
		has(".nextra-toc") {
		return FrameworkNextra
	}

	return FrameworkUnknown
}

func detectFromMetaGenerator(doc *goquery.Document) Framework {
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})

	if generator == "" {
		return FrameworkUnknown
	}

	switch {
	case strings.Contains(generator, "sphinx"):
		return FrameworkSphinx
	case strings.Contains(generator, "gitbook"):
		return FrameworkGitBook
	case strings.Contains(generator, "docusaurus"):
		return FrameworkDocusaurus
	case strings.Contains(generator, "mkdocs"):
		return FrameworkMkDocs
	case strings.Contains(generator, "vitepress"):
		return FrameworkVitePress
	case strings.Contains(generator, "vuepress"):
		return FrameworkVuePress
	case strings.Contains(generator, "nextra"):
		return FrameworkNextra
	}

	return FrameworkUnknown
}

// hasGitBookClasses checks the html element for GitBook's distinctive class
// combination: circular-corners, theme-clean, tint. At least two must match.
func hasGitBookClasses(doc *goquery.Document) bool {
	htmlClass := ""
	doc.Find("html").Each(func(_ int, s *goquery.Selection) {
		if class, exists := s.Attr("class"); exists {
			htmlClass = class
		}
	})

	if htmlClass == "" {
		return false
	}

	count := 0
	for _, marker := range []string{"circular-corners", "theme-clean", "tint"} {
		if strings.Contains(htmlClass, marker) {
			count++
		}
	}
	return count >= 2
}
