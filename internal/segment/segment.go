// Package segment splits text into the paragraph/sentence/phrase/word
// hierarchy. Each level strips its own delimiters; units are emitted in
// source order.
package segment

import "strings"

// IsLetter reports whether b is an ASCII letter.
func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsSentenceDelim reports whether b terminates a sentence.
func IsSentenceDelim(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// IsPhraseDelim reports whether b separates phrases within a sentence.
func IsPhraseDelim(b byte) bool {
	return b == ',' || b == ':' || b == ';'
}

// IsWordChar reports whether b may appear inside a word.
func IsWordChar(b byte) bool {
	return IsLetter(b) || b == '-'
}

// Paragraphs joins maximal runs of non-blank lines into paragraph
// strings, one space between lines. Blank lines delimit; an
// unterminated final paragraph is still emitted.
func Paragraphs(lines []string) []string {
	var paragraphs []string
	var b strings.Builder
	inside := false
	for _, line := range lines {
		if line == "" {
			if inside {
				paragraphs = append(paragraphs, b.String())
				b.Reset()
				inside = false
			}
			continue
		}
		if inside {
			b.WriteByte(' ')
		}
		b.WriteString(line)
		inside = true
	}
	if inside {
		paragraphs = append(paragraphs, b.String())
	}
	return paragraphs
}

// Sentences splits a paragraph on `. ! ?`, delimiters stripped.
// Leading delimiters and spaces are skipped before each sentence.
func Sentences(paragraph string) []string {
	var sentences []string
	i := 0
	for i < len(paragraph) {
		for i < len(paragraph) && (IsSentenceDelim(paragraph[i]) || paragraph[i] == ' ') {
			i++
		}
		if i >= len(paragraph) {
			break
		}
		start := i
		for i < len(paragraph) && !IsSentenceDelim(paragraph[i]) {
			i++
		}
		sentences = append(sentences, paragraph[start:i])
	}
	return sentences
}

// Phrases splits a sentence on `, : ;`, delimiters stripped. A phrase
// starts at the next letter, so punctuation and whitespace before the
// first word are not part of it.
func Phrases(sentence string) []string {
	var phrases []string
	i := 0
	for i < len(sentence) {
		for i < len(sentence) && !IsLetter(sentence[i]) {
			i++
		}
		if i >= len(sentence) {
			break
		}
		start := i
		for i < len(sentence) && !IsPhraseDelim(sentence[i]) {
			i++
		}
		phrases = append(phrases, sentence[start:i])
	}
	return phrases
}

// Words emits maximal runs of letters and hyphens starting at a
// letter. A trailing hyphen stays attached to its word.
func Words(phrase string) []string {
	var words []string
	i := 0
	for i < len(phrase) {
		for i < len(phrase) && !IsLetter(phrase[i]) {
			i++
		}
		if i >= len(phrase) {
			break
		}
		start := i
		for i < len(phrase) && IsWordChar(phrase[i]) {
			i++
		}
		words = append(words, phrase[start:i])
	}
	return words
}
