package segment

import (
	"reflect"
	"testing"
)

func TestParagraphsJoinsLinesWithSpaces(t *testing.T) {
	lines := []string{"first line", "second line", "", "next paragraph"}
	got := Paragraphs(lines)
	want := []string{"first line second line", "next paragraph"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected paragraphs: %#v", got)
	}
}

func TestParagraphsFlushesFinalParagraph(t *testing.T) {
	got := Paragraphs([]string{"no trailing blank"})
	if len(got) != 1 || got[0] != "no trailing blank" {
		t.Fatalf("expected final paragraph to be captured, got %#v", got)
	}
}

func TestParagraphsBlankOnlyInput(t *testing.T) {
	if got := Paragraphs([]string{"", "", ""}); len(got) != 0 {
		t.Fatalf("expected no paragraphs, got %#v", got)
	}
	if got := Paragraphs(nil); len(got) != 0 {
		t.Fatalf("expected no paragraphs for empty input, got %#v", got)
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "the fox jumps.", []string{"the fox jumps"}},
		{"multiple delimiters", "One. Two! Three?", []string{"One", "Two", "Three"}},
		{"internal punctuation kept", "first, second. third", []string{"first, second", "third"}},
		{"no terminator", "unterminated", []string{"unterminated"}},
		{"only delimiters", ". ! ?", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sentences(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Sentences(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPhrases(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"delimiters stripped", "hello, world; foo", []string{"hello", "world", "foo"}},
		{"internal spaces retained", "the quick fox, brown dog", []string{"the quick fox", "brown dog"}},
		{"starts at letter", "  - dashed start", []string{"dashed start"}},
		{"no letters", "123 ,;: 456", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Phrases(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Phrases(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"simple", "the quick fox", []string{"the", "quick", "fox"}},
		{"hyphenated", "well-known co-op", []string{"well-known", "co-op"}},
		{"trailing hyphen kept", "broken- word", []string{"broken-", "word"}},
		{"leading hyphen skipped", "-dash", []string{"dash"}},
		{"digits split words", "ab1cd", []string{"ab", "cd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Words(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegmentationPreservesSourceOrder(t *testing.T) {
	paragraph := "the quick brown fox, the lazy dog. end"
	var words []string
	for _, sentence := range Sentences(paragraph) {
		for _, phrase := range Phrases(sentence) {
			words = append(words, Words(phrase)...)
		}
	}
	want := []string{"the", "quick", "brown", "fox", "the", "lazy", "dog", "end"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("unexpected word order: %#v", words)
	}
}
