package splitters

import (
	"errors"
	"fmt"

	"docuchat/internal/rag/interfaces"
)

// ErrInvalidStrategy is returned when the requested chunking strategy is
// not one of the supported names.
var ErrInvalidStrategy = errors.New("invalid chunking strategy")

const (
	StrategyRecursive = "recursive"
	StrategySentence  = "sentence"
)

// New returns the splitter implementing the named strategy.
func New(strategy string, chunkSize, chunkOverlap int) (interfaces.Splitter, error) {
	switch strategy {
	case StrategyRecursive:
		return NewRecursiveSplitter(chunkSize, chunkOverlap), nil
	case StrategySentence:
		return NewSentenceSplitter(chunkSize, chunkOverlap), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
}

// overlapPrefix returns a prefix of s at most n bytes long, cut back to
// the nearest rune boundary so multi-byte sequences are never split.
func overlapPrefix(s string, n int) string {
	if n >= len(s) {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
