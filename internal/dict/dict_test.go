package dict

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDict(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dictionary: %v", err)
	}
	return path
}

func TestLoadAndContains(t *testing.T) {
	d, err := Load(writeDict(t, "the\nquick\nbrown\nfox\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Len() != 4 {
		t.Fatalf("expected 4 words, got %d", d.Len())
	}
	if !d.Contains("the") {
		t.Fatalf("expected verbatim match for 'the'")
	}
	if !d.Contains("Quick") {
		t.Fatalf("expected case-folded match for 'Quick'")
	}
	if d.Contains("jumps") {
		t.Fatalf("did not expect 'jumps' in dictionary")
	}
}

func TestFoldFollowsDictionaryCase(t *testing.T) {
	d, err := Load(writeDict(t, "THE\nQUICK\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !d.Contains("the") {
		t.Fatalf("expected uppercase fold to match 'the'")
	}
	if !d.Contains("Quick") {
		t.Fatalf("expected uppercase fold to match 'Quick'")
	}
}

func TestLoadSkipsBlankLinesAndTrims(t *testing.T) {
	d, err := Load(writeDict(t, "  the  \n\n fox\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", d.Len())
	}
	if !d.Contains("fox") {
		t.Fatalf("expected trimmed 'fox' to match")
	}
}

func TestLoadEmptyDictionary(t *testing.T) {
	if _, err := Load(writeDict(t, "\n\n")); err == nil {
		t.Fatalf("expected error for empty dictionary")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing dictionary")
	}
}
