// Package wordfreq builds reference dictionaries from the wordfreq
// dataset, distributed as msgpack word lists inside the PyPI wheel.
package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

const dataPrefix = "wordfreq/data/"

// Archive describes a cached wordfreq wheel.
type Archive struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []struct {
		URL         string `json:"url"`
		Filename    string `json:"filename"`
		Packagetype string `json:"packagetype"`
	} `json:"urls"`
}

// FetchArchive downloads the latest wordfreq wheel into cacheDir,
// reusing a previously downloaded copy when present.
func FetchArchive(ctx context.Context, cacheDir string) (Archive, error) {
	if cacheDir == "" {
		return Archive{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Archive{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	resp, err := httpGet(ctx, pypiEndpoint)
	if err != nil {
		return Archive{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Archive{}, fmt.Errorf("unexpected pypi status: %s", resp.Status)
	}

	var payload pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Archive{}, fmt.Errorf("failed to decode pypi response: %w", err)
	}
	if payload.Info.Version == "" {
		return Archive{}, fmt.Errorf("missing version in pypi response")
	}

	var url, filename string
	for _, u := range payload.URLs {
		if u.Packagetype == "bdist_wheel" {
			url, filename = u.URL, u.Filename
			if strings.HasSuffix(u.Filename, "py3-none-any.whl") {
				break
			}
		}
	}
	if url == "" {
		return Archive{}, fmt.Errorf("no wordfreq wheel found on pypi")
	}

	destPath := filepath.Join(cacheDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		return Archive{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Archive{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	if err := downloadFile(ctx, url, cacheDir, destPath); err != nil {
		return Archive{}, err
	}
	return Archive{Version: payload.Info.Version, Path: destPath, Filename: filename, Cached: false}, nil
}

func downloadFile(ctx context.Context, url, dir, destPath string) error {
	tmpFile, err := os.CreateTemp(dir, "wordfreq-*.whl")
	if err != nil {
		return fmt.Errorf("failed to create temp wheel: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	resp, err := httpGet(ctx, url)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected wheel status: %s", resp.Status)
	}
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("failed to download wheel: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp wheel: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move wheel into cache: %w", err)
	}
	return nil
}

func httpGet(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// Catalog maps language codes to their available list sizes.
type Catalog map[string][]string

// ReadCatalog lists languages and list sizes present in the wheel.
func ReadCatalog(archivePath string) (Catalog, error) {
	if archivePath == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	catalog := make(Catalog)
	for _, file := range reader.File {
		lang, size := parseDataName(file.Name)
		if lang == "" {
			continue
		}
		if !contains(catalog[lang], size) {
			catalog[lang] = append(catalog[lang], size)
		}
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("no word lists found in wordfreq wheel")
	}
	for _, sizes := range catalog {
		sort.Strings(sizes)
	}
	return catalog, nil
}

// Languages returns the catalog's language codes in sorted order.
func (c Catalog) Languages() []string {
	langs := make([]string, 0, len(c))
	for lang := range c {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Data files are named <size>_<lang>.msgpack[.gz] under wordfreq/data/.
func parseDataName(name string) (lang, size string) {
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, dataPrefix) {
		return "", ""
	}
	base := strings.TrimPrefix(name, dataPrefix)
	base = strings.TrimSuffix(base, ".gz")
	if !strings.HasSuffix(base, ".msgpack") {
		return "", ""
	}
	base = strings.TrimSuffix(base, ".msgpack")
	for _, size := range []string{"large", "small"} {
		if rest, ok := strings.CutPrefix(base, size+"_"); ok && rest != "" && !strings.HasPrefix(rest, "_") {
			return rest, size
		}
	}
	return "", ""
}

// BuildDictionary extracts up to limit distinct alphabetic words for
// lang, most frequent first, preferring the large list over the small
// one.
func BuildDictionary(archivePath, lang string, limit int) ([]string, error) {
	if archivePath == "" {
		return nil, fmt.Errorf("archive path is required")
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}

	bins, err := readBins(archivePath, lang)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bins, func(i, j int) bool {
		return bins[i].score > bins[j].score
	})

	words := make([]string, 0, limit)
	seen := make(map[string]struct{})
	for _, bin := range bins {
		for _, word := range bin.words {
			if _, ok := seen[word]; ok {
				continue
			}
			if !keepWord(word) {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
			if len(words) >= limit {
				return words, nil
			}
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("no words found for %s", lang)
	}
	return words, nil
}

func keepWord(word string) bool {
	if word == "" || utf8.RuneCountInString(word) > 24 {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// bin is one frequency bucket: all words sharing a score, most
// frequent buckets first after sorting.
type bin struct {
	score float64
	words []string
}

func readBins(archivePath, lang string) ([]bin, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	dataFile, gzipped := selectDataFile(reader.File, lang)
	if dataFile == nil {
		return nil, fmt.Errorf("no word list found for %s", lang)
	}

	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var src io.Reader = rc
	if gzipped {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		src = gz
	}

	payload, err := unpack(src)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", dataFile.Name, err)
	}
	return binsFromPayload(payload)
}

func selectDataFile(files []*zip.File, lang string) (*zip.File, bool) {
	for _, size := range []string{"large", "small"} {
		for _, suffix := range []string{".msgpack.gz", ".msgpack"} {
			want := dataPrefix + size + "_" + lang + suffix
			for _, file := range files {
				if strings.ToLower(file.Name) == want {
					return file, strings.HasSuffix(suffix, ".gz")
				}
			}
		}
	}
	return nil, false
}

// The dataset root is an array: a header element followed by word
// buckets ordered most frequent first. A bucket is either a plain
// string array or a [score, words] pair.
func binsFromPayload(payload any) ([]bin, error) {
	items, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("unsupported msgpack root type %T", payload)
	}
	var bins []bin
	for i, item := range items {
		if scored, ok := scoredBin(item); ok {
			bins = append(bins, scored)
			continue
		}
		if words, ok := stringSlice(item); ok {
			bins = append(bins, bin{score: float64(len(items) - i), words: words})
			continue
		}
		// Header elements (strings, maps) carry no words.
		if i == 0 {
			continue
		}
		return nil, fmt.Errorf("unsupported msgpack element %T at index %d", item, i)
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no word buckets")
	}
	return bins, nil
}

func scoredBin(item any) (bin, bool) {
	pair, ok := item.([]any)
	if !ok || len(pair) != 2 {
		return bin{}, false
	}
	score, ok := floatValue(pair[0])
	if !ok {
		return bin{}, false
	}
	words, ok := stringSlice(pair[1])
	if !ok {
		return bin{}, false
	}
	return bin{score: score, words: words}, true
}

func floatValue(v any) (float64, bool) {
	switch num := v.(type) {
	case float64:
		return num, true
	case int64:
		return float64(num), true
	default:
		return 0, false
	}
}

func stringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		case []byte:
			if !utf8.Valid(s) {
				return nil, false
			}
			out = append(out, string(s))
		default:
			return nil, false
		}
	}
	return out, true
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// WriteAttribution writes attribution and license files next to the
// generated dictionaries.
func WriteAttribution(archivePath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	attrText := strings.Join([]string{
		"Dictionaries generated from the wordfreq dataset.",
		"Source: https://github.com/rspeer/wordfreq",
		"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
		"https://creativecommons.org/licenses/by-sa/4.0/",
		"Changes were made: filtered to alphabetic words and truncated to the requested size.",
		"Includes data from Google Books Ngrams (acknowledgement requested by wordfreq): https://books.google.com/ngrams",
		"For other upstream sources, see the wordfreq project documentation.",
		"",
	}, "\n")
	attrPath := filepath.Join(outDir, "ATTRIBUTION.txt")
	if err := os.WriteFile(attrPath, []byte(attrText), 0o644); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}

	licenseText, err := readArchiveLicense(archivePath)
	if err != nil {
		return err
	}
	licensePath := filepath.Join(outDir, "LICENSE.txt")
	if err := os.WriteFile(licensePath, licenseText, 0o644); err != nil {
		return fmt.Errorf("failed to write license: %w", err)
	}
	return nil
}

func readArchiveLicense(archivePath string) ([]byte, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		if cerr := rc.Close(); cerr != nil {
			// Best-effort close after read.
			_ = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}
