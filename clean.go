package docrag

import (
	"regexp"
	"strings"
)

var (
	paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)
	whitespaceRunRe  = regexp.MustCompile(`\s+`)
	unsafeCharRe     = regexp.MustCompile(`[^\w\s\-.!?;:,()\[\]{}'"/]`)

	// Boilerplate found on documentation sites that isn't meaningful content.
	boilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Last updated.*`),
		regexp.MustCompile(`(?i)Edit this page.*`),
		regexp.MustCompile(`(?i)Was this page helpful\?.*`),
		regexp.MustCompile(`(?i)Found an issue\?.*`),
		regexp.MustCompile(`(?i)\s+\d+\s+stars\s+\d+\s+forks`),
		regexp.MustCompile(`(?i)©\s+\d{4}.*`),
		regexp.MustCompile(`(?i)Did you know we.*`),
		regexp.MustCompile(`(?i)Learn more about.*`),
		regexp.MustCompile(`(?i)Get started with.*`),
	}
)

// Clean normalizes extracted page text for chunking and embedding.
// The pipeline is fixed and ordered: whitespace collapse (paragraph breaks
// preserved as double newlines), unsafe character stripping, boilerplate
// removal, paragraph re-normalization. Empty input yields empty output.
func Clean(content string) string {
	if content == "" {
		return ""
	}

	content = normalizeWhitespace(content)
	content = stripUnsafeChars(content)
	content = removeBoilerplate(content)
	content = normalizeParagraphs(content)

	return strings.TrimSpace(content)
}

// normalizeWhitespace collapses whitespace runs to single spaces within
// paragraphs while keeping paragraph breaks as double newlines.
func normalizeWhitespace(content string) string {
	paragraphs := paragraphBreakRe.Split(content, -1)
	out := paragraphs[:0]
	for _, p := range paragraphs {
		p = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(p, " "))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}

func stripUnsafeChars(content string) string {
	content = unsafeCharRe.ReplaceAllString(content, " ")

	// Normalize doubled quote marks
	content = strings.ReplaceAll(content, "''", `"`)
	content = strings.ReplaceAll(content, "``", `"`)

	return content
}

func removeBoilerplate(content string) string {
	for _, re := range boilerplateRes {
		content = re.ReplaceAllString(content, "")
	}
	return strings.TrimSpace(content)
}

// normalizeParagraphs collapses consecutive blank lines so paragraphs are
// separated by exactly one blank line.
func normalizeParagraphs(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	prevEmpty := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !prevEmpty {
				out = append(out, "")
				prevEmpty = true
			}
			continue
		}
		out = append(out, line)
		prevEmpty = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
