// Package analyze aggregates segmentation results into text statistics.
package analyze

import (
	"github.com/verte-zerg/stylo/internal/dict"
	"github.com/verte-zerg/stylo/internal/segment"
)

// Analysis accumulates counts and character totals over one full
// traversal of the segmentation hierarchy. It is a plain value; no
// state outlives the traversal that produced it.
type Analysis struct {
	Paragraphs int
	Sentences  int
	Phrases    int
	Words      int
	OddWords   int

	ParagraphChars int
	SentenceChars  int
	PhraseChars    int
	WordChars      int
	OddWordChars   int

	Frequencies map[string]int
	Odd         map[string]struct{}
}

// Run segments the input lines and aggregates statistics in a single
// depth-first pass. Words absent from the dictionary under both the
// verbatim and case-folded lookup are recorded as odd.
func Run(lines []string, d *dict.Dictionary) *Analysis {
	a := &Analysis{
		Frequencies: make(map[string]int),
		Odd:         make(map[string]struct{}),
	}
	for _, paragraph := range segment.Paragraphs(lines) {
		a.Paragraphs++
		a.ParagraphChars += len(paragraph)
		for _, sentence := range segment.Sentences(paragraph) {
			a.Sentences++
			// +1 compensates the stripped sentence terminator.
			a.SentenceChars += len(sentence) + 1
			for _, phrase := range segment.Phrases(sentence) {
				a.Phrases++
				a.PhraseChars += len(phrase)
				for _, word := range segment.Words(phrase) {
					a.Words++
					a.WordChars += len(word)
					a.Frequencies[word]++
					if !d.Contains(word) {
						if _, seen := a.Odd[word]; !seen {
							a.Odd[word] = struct{}{}
							a.OddWords++
							a.OddWordChars += len(word)
						}
					}
				}
			}
		}
	}
	return a
}
