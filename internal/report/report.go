package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/stylo/internal/analyze"
	"github.com/verte-zerg/stylo/internal/model"
)

// StdinBase is the report base name when input comes from stdin.
const StdinBase = "stdin"

// WriteStats renders the per-level statistics report: one line per
// level with its count and the applicable two-decimal averages.
// Zero-count levels report 0.00 averages instead of dividing by zero.
func WriteStats(w io.Writer, a *analyze.Analysis) error {
	lines := []string{
		fmt.Sprintf("paragraphs %d average length %.2f sentences %.2f words %.2f characters",
			a.Paragraphs, avg(a.Sentences, a.Paragraphs), avg(a.Words, a.Paragraphs), avg(a.ParagraphChars, a.Paragraphs)),
		fmt.Sprintf("sentences %d average length %.2f phrases %.2f words %.2f characters",
			a.Sentences, avg(a.Phrases, a.Sentences), avg(a.Words, a.Sentences), avg(a.SentenceChars, a.Sentences)),
		fmt.Sprintf("phrases %d average length %.2f words %.2f characters",
			a.Phrases, avg(a.Words, a.Phrases), avg(a.PhraseChars, a.Phrases)),
		fmt.Sprintf("words %d average length %.2f characters",
			a.Words, avg(a.WordChars, a.Words)),
		fmt.Sprintf("oddwords %d average length %.2f characters",
			a.OddWords, avg(a.OddWordChars, a.OddWords)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderStats returns the statistics report as a string.
func RenderStats(a *analyze.Analysis) string {
	var b strings.Builder
	// strings.Builder writes cannot fail.
	_ = WriteStats(&b, a)
	return b.String()
}

// WriteWords renders one `<word> <count>` line per frequency entry.
func WriteWords(w io.Writer, entries []model.WordCount) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "%s %d\n", entry.Word, entry.Count); err != nil {
			return err
		}
	}
	return nil
}

// WriteOddWords renders one odd word per line.
func WriteOddWords(w io.Writer, words []string) error {
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
	}
	return nil
}

// BaseName derives the report base name from an input path: the file
// name with at most one trailing extension removed. An empty path
// (stdin input) maps to StdinBase.
func BaseName(inputPath string) string {
	if inputPath == "" {
		return StdinBase
	}
	name := filepath.Base(inputPath)
	if ext := filepath.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// OutputPaths returns the stats, words, and oddwords report paths for
// a base name inside outDir.
func OutputPaths(outDir, base string) (statsPath, wordsPath, oddPath string) {
	statsPath = filepath.Join(outDir, base+"-stats.txt")
	wordsPath = filepath.Join(outDir, base+"-words.txt")
	oddPath = filepath.Join(outDir, base+"-oddwords.txt")
	return statsPath, wordsPath, oddPath
}

func avg(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
