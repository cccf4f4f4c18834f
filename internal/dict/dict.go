// Package dict loads the reference dictionary and answers word lookups.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Dictionary is an immutable set of known words. Lookups try the
// verbatim word first, then a case-folded form; the fold direction
// follows the case convention of the loaded word list.
type Dictionary struct {
	words     map[string]struct{}
	foldUpper bool
}

// Load reads one word per line from the provided file path.
func Load(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dictionary.
			_ = cerr
		}
	}()

	words := make(map[string]struct{})
	upper, lower := 0, 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		words[word] = struct{}{}
		for i := 0; i < len(word); i++ {
			switch ch := word[i]; {
			case ch >= 'A' && ch <= 'Z':
				upper++
			case ch >= 'a' && ch <= 'z':
				lower++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary is empty")
	}
	return &Dictionary{words: words, foldUpper: upper > lower}, nil
}

// Len returns the number of distinct dictionary words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word matches the dictionary verbatim or
// under the dictionary's case fold.
func (d *Dictionary) Contains(word string) bool {
	if _, ok := d.words[word]; ok {
		return true
	}
	_, ok := d.words[d.fold(word)]
	return ok
}

func (d *Dictionary) fold(word string) string {
	if d.foldUpper {
		return strings.ToUpper(word)
	}
	return strings.ToLower(word)
}
