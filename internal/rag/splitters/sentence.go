package splitters

import (
	"regexp"
	"strings"

	"docuchat/internal/rag/interfaces"
)

// sentenceBoundary matches a sentence terminator followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// SentenceSplitter accumulates whole sentences into chunks, so every
// chunk boundary falls on a sentence boundary. When a chunk closes, the
// next one is seeded with up to the last three sentences of the closed
// chunk, as long as their combined length fits the overlap budget.
type SentenceSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewSentenceSplitter creates a new SentenceSplitter.
func NewSentenceSplitter(chunkSize, chunkOverlap int) *SentenceSplitter {
	return &SentenceSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

// Split returns the ordered chunks of text, sentences joined by a single
// space within each chunk.
func (s *SentenceSplitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentSize := 0

	for _, sentence := range sentences {
		size := len(sentence)

		if currentSize+size > s.ChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			// Seed the next chunk from the tail of the closed one:
			// scan the last three sentences newest first, stop at the
			// first one that would blow the overlap budget.
			var overlap []string
			overlapSize := 0
			start := len(current) - 3
			if start < 0 {
				start = 0
			}
			tail := current[start:]
			for i := len(tail) - 1; i >= 0; i-- {
				prev := tail[i]
				if overlapSize+len(prev) > s.ChunkOverlap {
					break
				}
				overlap = append([]string{prev}, overlap...)
				overlapSize += len(prev)
			}

			current = overlap
			currentSize = overlapSize
		}

		current = append(current, sentence)
		currentSize += size
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// splitSentences cuts text right after each boundary terminator, keeping
// the punctuation with its sentence and dropping the trailing whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// compile-time check to ensure SentenceSplitter implements the Splitter interface
var _ interfaces.Splitter = (*SentenceSplitter)(nil)
