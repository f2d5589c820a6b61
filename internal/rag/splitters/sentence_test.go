package splitters

import (
	"errors"
	"reflect"
	"testing"
)

func TestSplitSentences_KeepsTerminators(t *testing.T) {
	got := splitSentences("One. Two! Three?")
	want := []string{"One.", "Two!", "Three?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitSentences() = %v, want %v", got, want)
	}
}

func TestSplitSentences_TrailingRemainder(t *testing.T) {
	got := splitSentences("Done. And an unterminated tail")
	want := []string{"Done.", "And an unterminated tail"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitSentences() = %v, want %v", got, want)
	}
}

func TestSentenceSplit_EmptyInput(t *testing.T) {
	s := NewSentenceSplitter(100, 10)

	if got := s.Split(""); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
	if got := s.Split("  \n "); got != nil {
		t.Errorf("Split(whitespace) = %v, want nil", got)
	}
}

func TestSentenceSplit_OneSentencePerChunk(t *testing.T) {
	s := NewSentenceSplitter(5, 0)

	got := s.Split("One. Two. Three.")
	want := []string{"One.", "Two.", "Three."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSentenceSplit_SentencesJoinedWithSpace(t *testing.T) {
	s := NewSentenceSplitter(100, 0)

	got := s.Split("One.  Two.\nThree.")
	want := []string{"One. Two. Three."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSentenceSplit_OverlapSeedsNextChunk(t *testing.T) {
	// Each sentence is 5 bytes. The first chunk closes after two
	// sentences; the overlap budget of 6 fits exactly one of them.
	s := NewSentenceSplitter(10, 6)

	got := s.Split("Aaaa. Bbbb. Cccc.")
	want := []string{"Aaaa. Bbbb.", "Bbbb. Cccc."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestSentenceSplit_ZeroOverlapSeedsNothing(t *testing.T) {
	s := NewSentenceSplitter(10, 0)

	got := s.Split("Aaaa. Bbbb. Cccc.")
	want := []string{"Aaaa. Bbbb.", "Cccc."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v, want %v", got, want)
	}
}

func TestNew_StrategySelection(t *testing.T) {
	if _, err := New(StrategyRecursive, 100, 10); err != nil {
		t.Errorf("New(recursive) returned error: %v", err)
	}
	if _, err := New(StrategySentence, 100, 10); err != nil {
		t.Errorf("New(sentence) returned error: %v", err)
	}

	_, err := New("semantic", 100, 10)
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Errorf("New(semantic) error = %v, want ErrInvalidStrategy", err)
	}
}
