package wordfreq

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuildDictionaryOrderAndFilter(t *testing.T) {
	data := packValue([]any{
		"cB", // header
		[]any{5.0, []any{"hello", "go-1", "a"}},
		[]any{4.0, []any{"world", "hello"}},
	})
	archive := writeTestArchive(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": data,
	})

	words, err := BuildDictionary(archive, "en", 10)
	if err != nil {
		t.Fatalf("BuildDictionary failed: %v", err)
	}
	// "go-1" is filtered (non-letter), duplicates dropped, scores
	// ordered descending.
	want := []string{"hello", "a", "world"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("unexpected words: %#v", words)
	}
}

func TestBuildDictionaryLimit(t *testing.T) {
	data := packValue([]any{
		[]any{5.0, []any{"one", "two", "three"}},
	})
	archive := writeTestArchive(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": data,
	})
	words, err := BuildDictionary(archive, "en", 2)
	if err != nil {
		t.Fatalf("BuildDictionary failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
}

func TestBuildDictionaryFallsBackToSmall(t *testing.T) {
	data := packValue([]any{
		[]any{1.0, []any{"small"}},
	})
	archive := writeTestArchive(t, map[string][]byte{
		"wordfreq/data/small_fr.msgpack": data,
	})
	words, err := BuildDictionary(archive, "fr", 5)
	if err != nil {
		t.Fatalf("BuildDictionary failed: %v", err)
	}
	if len(words) != 1 || words[0] != "small" {
		t.Fatalf("unexpected words: %#v", words)
	}
}

func TestBuildDictionaryMissingLanguage(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack": packValue([]any{[]any{1.0, []any{"x"}}}),
	})
	if _, err := BuildDictionary(archive, "de", 5); err == nil {
		t.Fatalf("expected error for missing language")
	}
}

func TestReadCatalog(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"wordfreq/data/large_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/small_en.msgpack.gz":         []byte("x"),
		"wordfreq/data/large_pt-br.msgpack.gz":      []byte("x"),
		"wordfreq/data/_chinese_mapping.msgpack.gz": []byte("x"),
		"wordfreq/data/jieba_zh.txt":                []byte("x"),
	})
	catalog, err := ReadCatalog(archive)
	if err != nil {
		t.Fatalf("ReadCatalog failed: %v", err)
	}
	if !reflect.DeepEqual(catalog.Languages(), []string{"en", "pt-br"}) {
		t.Fatalf("unexpected languages: %#v", catalog.Languages())
	}
	if !reflect.DeepEqual(catalog["en"], []string{"large", "small"}) {
		t.Fatalf("unexpected sizes for en: %#v", catalog["en"])
	}
}

func TestWriteAttribution(t *testing.T) {
	archive := writeTestArchive(t, map[string][]byte{
		"wordfreq-1.0.0.dist-info/LICENSE": []byte("Apache License"),
	})
	outDir := t.TempDir()
	if err := WriteAttribution(archive, outDir); err != nil {
		t.Fatalf("WriteAttribution failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "ATTRIBUTION.txt")); err != nil {
		t.Fatalf("expected ATTRIBUTION.txt: %v", err)
	}
	license, err := os.ReadFile(filepath.Join(outDir, "LICENSE.txt"))
	if err != nil {
		t.Fatalf("expected LICENSE.txt: %v", err)
	}
	if string(license) != "Apache License" {
		t.Fatalf("unexpected license contents: %s", string(license))
	}
}

func TestUnpackRoundTrip(t *testing.T) {
	payload := []any{"header", []any{3.5, []any{"alpha", "beta"}}, true, nil, int64(-7)}
	decoded, err := unpack(bytes.NewReader(packValue(payload)))
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, payload) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", decoded, payload)
	}
}

// Minimal msgpack encoder for test fixtures.
func packValue(value any) []byte {
	var buf bytes.Buffer
	pack(&buf, value)
	return buf.Bytes()
}

func pack(buf *bytes.Buffer, value any) {
	switch v := value.(type) {
	case nil:
		buf.WriteByte(0xc0)
	case bool:
		if v {
			buf.WriteByte(0xc3)
		} else {
			buf.WriteByte(0xc2)
		}
	case int64:
		if v >= 0 && v <= 0x7f {
			buf.WriteByte(byte(v))
			return
		}
		buf.WriteByte(0xd3)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v))
		buf.Write(tmp[:])
	case float64:
		buf.WriteByte(0xcb)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], math.Float64bits(v))
		buf.Write(tmp[:])
	case string:
		if len(v) > 31 {
			panic("fixture string too long")
		}
		buf.WriteByte(0xa0 | byte(len(v)))
		buf.WriteString(v)
	case []any:
		if len(v) > 15 {
			panic("fixture array too long")
		}
		buf.WriteByte(0x90 | byte(len(v)))
		for _, item := range v {
			pack(buf, item)
		}
	default:
		panic("unsupported type in test msgpack encoder")
	}
}

func writeTestArchive(t *testing.T, files map[string][]byte) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "wordfreq-*.whl")
	if err != nil {
		t.Fatalf("failed to create temp wheel: %v", err)
	}
	defer func() {
		_ = tmpFile.Close()
	}()

	zw := zip.NewWriter(tmpFile)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return tmpFile.Name()
}
