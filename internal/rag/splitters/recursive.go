package splitters

import (
	"strings"

	"docuchat/internal/rag/interfaces"
)

// recursiveSeparators is the priority list applied coarsest first:
// paragraph break, line break, sentence terminator, whitespace.
var recursiveSeparators = []string{"\n\n", "\n", ".", " "}

// RecursiveSplitter splits text on a priority list of separators. Runs
// that exceed the chunk size are re-split with the remaining, finer
// separators so every emitted chunk independently respects the bound
// (except text containing no separators at all, which passes through).
type RecursiveSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewRecursiveSplitter creates a new RecursiveSplitter.
func NewRecursiveSplitter(chunkSize, chunkOverlap int) *RecursiveSplitter {
	return &RecursiveSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

// Split returns the ordered chunks of text. After the chunk list is
// final, each chunk (except the last) gets a prefix of its successor
// appended as overlap. The overlap is appended rather than subtracted
// from the next chunk's start, so boundary text can be duplicated across
// recursion tiers; that behavior is intentional and must not change.
func (s *RecursiveSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw := s.splitBySeparator(text, recursiveSeparators)

	chunks := make([]string, 0, len(raw))
	for i, chunk := range raw {
		chunks = append(chunks, chunk)

		if i < len(raw)-1 && s.ChunkOverlap > 0 {
			next := raw[i+1]
			if len(next) > s.ChunkOverlap {
				chunks[len(chunks)-1] = chunks[len(chunks)-1] + "\n" + overlapPrefix(next, s.ChunkOverlap)
			}
		}
	}

	return chunks
}

// splitBySeparator splits text on the first separator that actually
// occurs, greedily packing the pieces back together up to ChunkSize.
// A buffer that would overflow is flushed through the finer separators,
// as is the piece that caused the overflow.
func (s *RecursiveSplitter) splitBySeparator(text string, separators []string) []string {
	if len(separators) == 0 {
		return []string{text}
	}

	separator := separators[0]
	splits := strings.Split(text, separator)

	if len(splits) == 1 {
		return s.splitBySeparator(text, separators[1:])
	}

	var results []string
	current := ""

	for _, piece := range splits {
		if piece == "" {
			continue
		}

		potential := piece
		if current != "" {
			potential = current + separator + piece
		}

		if len(potential) > s.ChunkSize {
			if current != "" {
				results = append(results, s.splitBySeparator(current, separators[1:])...)
			}
			results = append(results, s.splitBySeparator(piece, separators[1:])...)
			current = ""
		} else {
			current = potential
		}
	}

	if current != "" {
		results = append(results, s.splitBySeparator(current, separators[1:])...)
	}

	return results
}

// compile-time check to ensure RecursiveSplitter implements the Splitter interface
var _ interfaces.Splitter = (*RecursiveSplitter)(nil)
