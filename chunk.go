package docrag

import (
	"fmt"
	"strings"
)

// Metadata keys added to each chunk on top of the document metadata.
const (
	MetaChunkPosition = "chunk_position"
	MetaTotalSegments = "total_content_segments"
	MetaChunkSize     = "chunk_size_config"
	MetaChunkOverlap  = "chunk_overlap_config"
)

// Chunk is a bounded-size span of document text, the unit of embedding
// and storage.
type Chunk struct {
	ID            string         `json:"chunkId"`
	Text          string         `json:"text"`
	Metadata      map[string]any `json:"metadata"`
	Position      int            `json:"position"`
	TotalSegments int            `json:"totalSegments"`
}

// Chunker splits cleaned text into overlapping, bounded-size chunks.
// Size is the word budget per chunk; Overlap is the word budget of the
// window carried from one chunk into the next.
type Chunker struct {
	Size    int
	Overlap int
}

// Split breaks text into chunks of at most Size words by whole sentences.
// A sentence that alone exceeds the budget still forms a chunk on its own.
// Each chunk's metadata is the given metadata augmented with position
// fields; ids increase monotonically as chunk_0, chunk_1, and so on.
// Empty text yields no chunks.
func (c Chunker) Split(text string, metadata map[string]any) []Chunk {
	if text == "" {
		return nil
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []Chunk
	var current string
	var currentLen int

	emit := func(position int) {
		chunks = append(chunks, Chunk{
			ID:            fmt.Sprintf("chunk_%d", len(chunks)),
			Text:          current,
			Metadata:      c.chunkMetadata(metadata, position, len(sentences)),
			Position:      position,
			TotalSegments: len(sentences),
		})
	}

	idx := 0
	for idx < len(sentences) {
		sentence := sentences[idx]
		sentenceLen := wordCount(sentence)

		// An empty chunk always accepts at least one sentence so a single
		// oversized sentence cannot stall the loop.
		if currentLen+sentenceLen <= c.Size || current == "" {
			if current != "" {
				current += " " + sentence
			} else {
				current = sentence
			}
			currentLen += sentenceLen
			idx++
			continue
		}

		emit(idx)

		if c.Overlap > 0 && idx > 0 {
			overlap := c.overlapWindow(sentences, idx)
			if len(overlap) > 0 {
				current = strings.Join(overlap, " ") + " " + sentence
			} else {
				current = sentence
			}
			currentLen = wordCount(current)
		} else {
			current = sentence
			currentLen = sentenceLen
		}
		idx++
	}

	if current != "" {
		emit(idx)
	}

	return chunks
}

// overlapWindow walks backward from the sentence that triggered a chunk seal,
// up to 5 sentences, accumulating sentences in original order while their
// combined word count stays within the overlap budget.
func (c Chunker) overlapWindow(sentences []string, idx int) []string {
	var window []string
	words := 0

	lowest := idx - 5
	if lowest < 0 {
		lowest = 0
	}
	for i := idx - 1; i >= lowest; i-- {
		n := wordCount(sentences[i])
		if words+n > c.Overlap {
			break
		}
		window = append([]string{sentences[i]}, window...)
		words += n
	}

	return window
}

func (c Chunker) chunkMetadata(metadata map[string]any, position, total int) map[string]any {
	m := make(map[string]any, len(metadata)+4)
	for k, v := range metadata {
		m[k] = v
	}
	m[MetaChunkPosition] = position
	m[MetaTotalSegments] = total
	m[MetaChunkSize] = c.Size
	m[MetaChunkOverlap] = c.Overlap
	return m
}

// SplitSentences splits text into sentence-like units on sentence
// terminators (., !, ?) followed by whitespace. Empty fragments are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0

	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if isTerminator(runes[i]) && isSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
