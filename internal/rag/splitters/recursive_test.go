package splitters

import (
	"reflect"
	"strings"
	"testing"
)

func TestRecursiveSplit_EmptyInput(t *testing.T) {
	s := NewRecursiveSplitter(100, 10)

	if got := s.Split(""); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
	if got := s.Split("   \n\t  "); got != nil {
		t.Errorf("Split(whitespace) = %v, want nil", got)
	}
}

func TestRecursiveSplit_ParagraphBoundaries(t *testing.T) {
	s := NewRecursiveSplitter(5, 0)

	got := s.Split("aaa\n\nbbb\n\nccc")
	want := []string{"aaa", "bbb", "ccc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestRecursiveSplit_GreedyPacking(t *testing.T) {
	// All three paragraphs fit a single budget, so they stay together.
	s := NewRecursiveSplitter(10, 0)

	got := s.Split("aa\n\nbb\n\ncc")
	if len(got) != 1 {
		t.Fatalf("Split() produced %d chunks, want 1: %v", len(got), got)
	}
	for _, part := range []string{"aa", "bb", "cc"} {
		if !strings.Contains(got[0], part) {
			t.Errorf("chunk %q is missing %q", got[0], part)
		}
	}
}

func TestRecursiveSplit_NoSeparatorPassthrough(t *testing.T) {
	// Text with no separator at all cannot be cut and passes through
	// whole, even past the size bound.
	s := NewRecursiveSplitter(3, 0)

	got := s.Split("abcdefghij")
	want := []string{"abcdefghij"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestRecursiveSplit_SizeBoundWithoutOverlap(t *testing.T) {
	s := NewRecursiveSplitter(20, 0)

	text := "one two three four five six seven eight nine ten eleven twelve"
	for i, chunk := range s.Split(text) {
		if len(chunk) > 20 {
			t.Errorf("chunk %d exceeds size bound: %d bytes (%q)", i, len(chunk), chunk)
		}
	}
}

func TestRecursiveSplit_OverlapAppendedToPredecessor(t *testing.T) {
	s := NewRecursiveSplitter(4, 2)

	got := s.Split("aaaa\n\nbbbb")
	want := []string{"aaaa\nbb", "bbbb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestRecursiveSplit_ShortSuccessorSkipsOverlap(t *testing.T) {
	// A successor no longer than the overlap budget contributes nothing.
	s := NewRecursiveSplitter(4, 4)

	got := s.Split("aaaa\n\nbbbb")
	want := []string{"aaaa", "bbbb"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestRecursiveSplit_ContentPreserved(t *testing.T) {
	s := NewRecursiveSplitter(15, 0)

	text := "alpha beta\n\ngamma delta\n\nepsilon"
	joined := strings.Join(s.Split(text), " ")
	for _, word := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		if !strings.Contains(joined, word) {
			t.Errorf("output %q is missing word %q", joined, word)
		}
	}
}

func TestOverlapPrefix_RuneBoundary(t *testing.T) {
	// "héllo": the é is two bytes, a 2-byte cut would land mid-rune.
	got := overlapPrefix("héllo", 2)
	if got != "h" {
		t.Errorf("overlapPrefix() = %q, want %q", got, "h")
	}

	if got := overlapPrefix("abc", 10); got != "abc" {
		t.Errorf("overlapPrefix() with large n = %q, want full string", got)
	}
}
