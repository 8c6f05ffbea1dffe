package docrag_test

import (
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentMetadata_Map(t *testing.T) {
	t.Parallel()

	meta := docrag.DocumentMetadata{
		URL:   "https://docs.example.com/guide",
		Title: "Guide",
		Headings: []docrag.Heading{
			{Level: 1, Text: "Guide"},
			{Level: 2, Text: "Installation"},
		},
		WordCount:   120,
		ContentType: docrag.ContentTypeDocumentation,
	}

	got := meta.Map()

	assert.Equal(t, "https://docs.example.com/guide", got["url"])
	assert.Equal(t, "Guide", got["title"])
	assert.Equal(t, []string{"Guide", "Installation"}, got["headings"])
	assert.Equal(t, 120, got["word_count"])
	assert.Equal(t, "documentation", got["content_type"])
}

func TestDocumentMetadata_Map_NoHeadings(t *testing.T) {
	t.Parallel()

	got := docrag.DocumentMetadata{URL: "https://example.com"}.Map()

	assert.Equal(t, []string{}, got["headings"])
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	doc := &docrag.Document{
		Text:     "content",
		Metadata: docrag.DocumentMetadata{URL: "https://example.com"},
	}
	require.NoError(t, doc.Validate())

	doc.Metadata.URL = ""
	err := doc.Validate()
	require.Error(t, err)
	assert.Equal(t, docrag.EINVALID, docrag.ErrorCode(err))
	assert.Equal(t, "document source URL required", docrag.ErrorMessage(err))
}
