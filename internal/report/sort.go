// Package report orders analysis results and renders the three output
// reports.
package report

import (
	"sort"

	"github.com/verte-zerg/stylo/internal/model"
)

// SortByFrequency flattens a frequency table into entries ordered by
// count descending, ties broken by ascending word. The ordering is
// total, so re-sorting the output is a no-op.
func SortByFrequency(frequencies map[string]int) []model.WordCount {
	entries := make([]model.WordCount, 0, len(frequencies))
	for word, count := range frequencies {
		entries = append(entries, model.WordCount{Word: word, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// SortOddWords returns the odd-word set in ascending byte order.
func SortOddWords(odd map[string]struct{}) []string {
	words := make([]string, 0, len(odd))
	for word := range odd {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
