package report

import (
	"reflect"
	"testing"
)

func TestFormatTableAlignment(t *testing.T) {
	headers := []string{"Input", "Words"}
	rows := [][]string{
		{"book.txt", "1200"},
		{"a", "7"},
	}
	lines := FormatTable(headers, rows, map[int]bool{1: true})
	want := []string{
		"Input    Words",
		"book.txt  1200",
		"a            7",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected table:\n%#v", lines)
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := FormatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil for empty table, got %#v", lines)
	}
}
