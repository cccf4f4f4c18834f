// Package main provides the CLI entrypoint for stylo.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/stylo/internal/analyze"
	"github.com/verte-zerg/stylo/internal/config"
	"github.com/verte-zerg/stylo/internal/dict"
	"github.com/verte-zerg/stylo/internal/histui"
	"github.com/verte-zerg/stylo/internal/model"
	"github.com/verte-zerg/stylo/internal/report"
	"github.com/verte-zerg/stylo/internal/store"
	"github.com/verte-zerg/stylo/internal/wordfreq"
)

const (
	defaultLang     = "en"
	defaultOutDir   = "."
	defaultDictSize = 50000

	// Fallback dictionary looked up in the working directory when no
	// generated dictionary exists for the language.
	fallbackDictName = "dict.txt"
)

var (
	analyzeLang   string
	analyzeDict   string
	analyzeOut    string
	analyzeNoSave bool

	dictLang  string
	dictSize  int
	dictForce bool

	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stylo [file]",
		Short:         "Stylometric text analyzer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runAnalyzeCmd,
	}

	rootCmd.Flags().StringVar(&analyzeLang, "lang", defaultLang, "language of the default dictionary")
	rootCmd.Flags().StringVar(&analyzeDict, "dict", "", "dictionary file path (overrides --lang)")
	rootCmd.Flags().StringVar(&analyzeOut, "out", defaultOutDir, "directory for the three reports")
	rootCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "do not record the run in history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDictsCmd())
	rootCmd.AddCommand(newDictCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &analyzeLang, fileCfg.Analyze.Lang)
	applyStringConfig(cmd, "dict", &analyzeDict, fileCfg.Analyze.Dict)
	applyStringConfig(cmd, "out", &analyzeOut, fileCfg.Analyze.Out)
	applyBoolConfig(cmd, "no-save", &analyzeNoSave, fileCfg.Analyze.NoSave)

	cfg := model.AnalyzeConfig{
		Lang:     analyzeLang,
		DictPath: analyzeDict,
		OutDir:   analyzeOut,
		NoSave:   analyzeNoSave,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	dictPath := resolveDictionaryPath(cfg)
	dictionary, err := dict.Load(dictPath)
	if err != nil {
		return dictionaryLoadError(cfg.Lang, dictPath, err)
	}

	var inputPath string
	if len(args) == 1 {
		inputPath = args[0]
	}
	lines, err := readInput(inputPath)
	if err != nil {
		return err
	}

	analysis := analyze.Run(lines, dictionary)
	statsText := report.RenderStats(analysis)
	entries := report.SortByFrequency(analysis.Frequencies)
	oddWords := report.SortOddWords(analysis.Odd)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	base := report.BaseName(inputPath)
	statsPath, wordsPath, oddPath := report.OutputPaths(cfg.OutDir, base)
	if err := os.WriteFile(statsPath, []byte(statsText), 0o644); err != nil {
		return fmt.Errorf("failed to write stats report: %w", err)
	}
	if err := writeReport(wordsPath, func(w io.Writer) error {
		return report.WriteWords(w, entries)
	}); err != nil {
		return fmt.Errorf("failed to write words report: %w", err)
	}
	if err := writeReport(oddPath, func(w io.Writer) error {
		return report.WriteOddWords(w, oddWords)
	}); err != nil {
		return fmt.Errorf("failed to write oddwords report: %w", err)
	}
	logErrf("Wrote %s, %s, %s\n", statsPath, wordsPath, oddPath)

	if !cfg.NoSave {
		saveRun(inputPath, analysis, statsText)
	}
	return nil
}

func saveRun(inputPath string, analysis *analyze.Analysis, statsText string) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	input := inputPath
	if input == "" {
		input = report.StdinBase
	}
	rec := model.RunRecord{
		CreatedAt:     time.Now(),
		Input:         input,
		Paragraphs:    analysis.Paragraphs,
		Sentences:     analysis.Sentences,
		Phrases:       analysis.Phrases,
		Words:         analysis.Words,
		OddWords:      analysis.OddWords,
		DistinctWords: len(analysis.Frequencies),
		StatsReport:   statsText,
	}
	if _, err := st.InsertRun(context.Background(), rec); err != nil {
		logErrf("failed to record run: %v\n", err)
	}
}

func writeReport(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	writer := bufio.NewWriter(file)
	if err := render(writer); err != nil {
		_ = file.Close()
		return err
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func readInput(inputPath string) ([]string, error) {
	if inputPath != "" {
		file, err := os.Open(inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				// Best-effort close for read-only input.
				_ = cerr
			}
		}()
		return readLines(file)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		logErrln("Reading from stdin; finish with Ctrl-D.")
	}
	return readLines(os.Stdin)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dicts",
		Short: "List installed dictionary languages",
		Args:  cobra.NoArgs,
		RunE:  runDictsCmd,
	}
}

func runDictsCmd(cmd *cobra.Command, _ []string) error {
	dictDir := config.DefaultDictionaryDir()
	entries, err := os.ReadDir(dictDir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrln("No dictionaries found. Generate with: stylo dict --lang <code>")
			return fmt.Errorf("dictionary directory does not exist")
		}
		return fmt.Errorf("failed to read dictionary directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		if name == "ATTRIBUTION.txt" || name == "LICENSE.txt" {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	if len(langs) == 0 {
		logErrln("No dictionaries found. Generate with: stylo dict --lang <code>")
		return fmt.Errorf("no dictionaries found")
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Generate reference dictionaries",
		Args:  cobra.NoArgs,
		RunE:  runDictCmd,
	}
	cmd.Flags().StringVar(&dictLang, "lang", "", "language code or 'all' (default: en)")
	cmd.Flags().IntVar(&dictSize, "size", defaultDictSize, "number of words")
	cmd.Flags().BoolVar(&dictForce, "force", false, "overwrite existing files")
	return cmd
}

func runDictCmd(_ *cobra.Command, _ []string) error {
	if dictSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	outDir := config.DefaultDictionaryDir()

	cacheDir := config.DefaultWordfreqCacheDir()
	logErrln("Fetching wordfreq metadata...")
	archive, err := wordfreq.FetchArchive(context.Background(), cacheDir)
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if archive.Cached {
		logErrf("Using cached wheel %s\n", archive.Filename)
	} else {
		logErrf("Downloaded wheel %s\n", archive.Filename)
	}
	catalog, err := wordfreq.ReadCatalog(archive.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveDictLangs(dictLang, catalog.Languages())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, langCode := range langs {
		outPath := filepath.Join(outDir, langCode+".txt")
		if !dictForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("dictionary already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat dictionary: %w", err)
			}
		}

		logErrf("Extracting %s dictionary...\n", langCode)
		words, err := wordfreq.BuildDictionary(archive.Path, langCode, dictSize)
		if err != nil {
			if allRequested {
				logErrf("Skipping %s: %v\n", langCode, err)
				continue
			}
			return fmt.Errorf("failed to build %s dictionary: %w", langCode, err)
		}
		if err := writeDictionary(outPath, words); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		logErrf("Wrote %s\n", outPath)
	}

	if err := wordfreq.WriteAttribution(archive.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	logErrln("Wrote ATTRIBUTION.txt and LICENSE.txt")
	return nil
}

func resolveDictLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return []string{defaultLang}, false, nil
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	parts := strings.Split(lang, ",")
	requested := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

func writeDictionary(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dictionary dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "dict-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp dictionary: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write dictionary: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush dictionary: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close dictionary: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write dictionary: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain table instead of the TUI")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if historyPlain {
		return printHistoryTable(cmd.OutOrStdout(), runs)
	}

	program := tea.NewProgram(histui.NewModel(st, runs), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func printHistoryTable(w io.Writer, runs []model.RunSummary) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No analysis runs recorded yet.")
		return err
	}
	headers := []string{"ID", "Date", "Input", "Paras", "Sents", "Phrases", "Words", "Odd"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(run.RunID, 10),
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.Input,
			strconv.Itoa(run.Paragraphs),
			strconv.Itoa(run.Sentences),
			strconv.Itoa(run.Phrases),
			strconv.Itoa(run.Words),
			strconv.Itoa(run.OddWords),
		})
	}
	rightAlign := map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	lines := report.FormatTable(headers, rows, rightAlign)

	maxWidth := 0
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			maxWidth = width
		}
	}
	for _, line := range lines {
		if maxWidth > 0 && len(line) > maxWidth {
			line = line[:maxWidth]
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# stylo configuration
# Uncomment a value to enable it. CLI flags override config values.

[analyze]
# lang = %q          # Language of the default dictionary
# dict = ""          # Explicit dictionary path (overrides lang)
# out = %q           # Directory for the three reports
# no-save = false    # Do not record runs in history
`,
		defaultLang,
		defaultOutDir,
	)
}

func validateConfig(cfg model.AnalyzeConfig) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.OutDir == "" {
		return fmt.Errorf("--out must not be empty")
	}
	return nil
}

func resolveDictionaryPath(cfg model.AnalyzeConfig) string {
	if cfg.DictPath != "" {
		return cfg.DictPath
	}
	path := config.DefaultDictionaryPath(cfg.Lang)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return fallbackDictName
}

func dictionaryLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load dictionary: %v", err),
		fmt.Sprintf("expected dictionary at: %s", path),
		"List installed: stylo dicts",
		fmt.Sprintf("Generate: stylo dict --lang %s", lang),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
