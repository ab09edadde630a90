// Package main provides the CLI entrypoint for kanjiq.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/kanjiq/internal/config"
	"github.com/verte-zerg/kanjiq/internal/display"
	"github.com/verte-zerg/kanjiq/internal/kanji"
	"github.com/verte-zerg/kanjiq/internal/logging"
	"github.com/verte-zerg/kanjiq/internal/model"
	"github.com/verte-zerg/kanjiq/internal/picker"
	"github.com/verte-zerg/kanjiq/internal/quiz"
	"github.com/verte-zerg/kanjiq/internal/selection"
	"github.com/verte-zerg/kanjiq/internal/stats"
	"github.com/verte-zerg/kanjiq/internal/statsui"
	"github.com/verte-zerg/kanjiq/internal/store"
	"github.com/verte-zerg/kanjiq/internal/tui"
)

const defaultStatsTop = 5

var (
	quizDataPath  string
	quizCategory  string
	quizPlain     bool
	quizLogFile   string
	quizBrowser   string
	quizHTMLPath  string
	quizWriteData bool

	exportOut string

	statsCategory string
	statsSince    string
	statsTop      int
	statsPlain    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanjiq [category]",
		Short: "Terminal kanji flashcard quiz",
		Long: `Shows a random kanji and checks your answer.

A category may be "all", a JLPT level range such as 1-3, a comma list such
as "2, 4", or a category name from the data file. A new category is
remembered for later runs.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().StringVarP(&quizCategory, "category", "c", "", "category selection (all, 1-3, 2,4, or a name)")
	rootCmd.Flags().StringVar(&quizDataPath, "data", "", "kanji data file (JSON or YAML; default: embedded)")
	rootCmd.Flags().BoolVar(&quizPlain, "plain", false, "line-oriented prompts instead of the full-screen UI")
	rootCmd.Flags().StringVar(&quizLogFile, "log-file", "", "write debug logs to this file")
	rootCmd.Flags().StringVar(&quizBrowser, "browser", "", "command used to open the kanji page")
	rootCmd.Flags().StringVar(&quizHTMLPath, "html", config.DefaultHTMLPath(), "where to write the kanji page")
	rootCmd.Flags().BoolVar(&quizWriteData, "write-data", false, "also store a new category in the data file")

	rootCmd.AddCommand(newCategoriesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &quizDataPath, fileCfg.Quiz.Data)
	applyBoolConfig(cmd, "plain", &quizPlain, fileCfg.Quiz.Plain)
	applyStringConfig(cmd, "log-file", &quizLogFile, fileCfg.Quiz.LogFile)
	applyStringConfig(cmd, "browser", &quizBrowser, fileCfg.Quiz.Browser)
	applyStringConfig(cmd, "html", &quizHTMLPath, fileCfg.Quiz.HTML)

	cfg := model.Config{
		DataPath: quizDataPath,
		Plain:    quizPlain,
		LogFile:  quizLogFile,
		Browser:  quizBrowser,
		HTMLPath: quizHTMLPath,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	categoryArg, categoryGiven, err := categoryFromArgs(cmd, args)
	if err != nil {
		return err
	}
	cfg.Category = categoryArg

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	doc, source, err := loadDocument(cfg.DataPath)
	if err != nil {
		return err
	}
	logger.Debug("data loaded", zap.String("source", source), zap.Int("records", len(doc.Kanji)))

	statePath := config.DefaultStatePath()
	state, stateOK, err := config.LoadState(statePath)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	resolved, err := resolveSelection(selectionInputs{
		Arg:        categoryArg,
		ArgGiven:   categoryGiven,
		State:      state,
		StateSaved: stateOK,
		Document:   doc,
		Default:    fileCfg.Quiz.Category,
	})
	if err != nil {
		return err
	}
	logger.Debug("selection resolved", zap.String("spec", resolved.Spec.String()), zap.String("from", resolved.From))

	if resolved.From == sourceArg {
		if err := selection.Validate(doc.Kanji, resolved.Spec); err != nil {
			return err
		}
		if err := persistSelection(statePath, cfg, doc, resolved.Spec); err != nil {
			return err
		}
		logger.Debug("selection persisted", zap.String("state", statePath), zap.Bool("data", quizWriteData))
	}

	filtered, err := selection.Filter(doc.Kanji, resolved.Spec)
	if err != nil {
		if errors.Is(err, selection.ErrEmptySelection) && resolved.From != sourceArg {
			return fmt.Errorf("%s selection %q matches no kanji in %s; pass a category to change it: %w", resolved.From, resolved.Spec, source, err)
		}
		return err
	}
	rec, err := picker.Pick(picker.New(), filtered)
	if err != nil {
		return err
	}
	logger.Debug("record picked", zap.String("character", rec.Character), zap.String("category", rec.Category), zap.Int("candidates", len(filtered)))

	viewer := display.Viewer{HTMLPath: cfg.HTMLPath, Opener: display.BrowserOpener{Command: cfg.Browser}}
	result, err := playRound(ctx, cmd, cfg, rec, viewer)
	if err != nil {
		return err
	}
	logger.Debug("round finished", zap.String("outcome", string(result.Outcome)))

	if result.Outcome.Recorded() {
		recordRound(ctx, logger, result)
	}
	return nil
}

func validateConfig(cfg model.Config) error {
	if quizWriteData && cfg.DataPath == "" {
		return fmt.Errorf("--write-data needs --data")
	}
	if strings.TrimSpace(cfg.HTMLPath) == "" {
		return fmt.Errorf("--html must not be empty")
	}
	return nil
}

func categoryFromArgs(cmd *cobra.Command, args []string) (string, bool, error) {
	flagGiven := cmd.Flags().Changed("category")
	if len(args) > 0 {
		if flagGiven {
			return "", false, fmt.Errorf("pass the category either as an argument or with --category, not both")
		}
		return args[0], true, nil
	}
	return quizCategory, flagGiven, nil
}

func loadDocument(path string) (kanji.Document, string, error) {
	if path == "" {
		doc, err := kanji.Seed()
		if err != nil {
			return kanji.Document{}, "", err
		}
		return doc, kanji.SeedName, nil
	}
	doc, err := kanji.LoadDocument(path)
	if err != nil {
		return kanji.Document{}, "", err
	}
	return doc, path, nil
}

// persistSelection writes the data file first so a failed --write-data
// leaves the saved selection unchanged.
func persistSelection(statePath string, cfg model.Config, doc kanji.Document, spec selection.Spec) error {
	if quizWriteData {
		if err := kanji.PersistDocument(cfg.DataPath, doc.ApplySelection(spec)); err != nil {
			return fmt.Errorf("failed to write data file: %w", err)
		}
	}
	if err := config.SaveState(statePath, config.StateFor(spec)); err != nil {
		return fmt.Errorf("failed to save category selection: %w", err)
	}
	return nil
}

func playRound(ctx context.Context, cmd *cobra.Command, cfg model.Config, rec model.Record, viewer quiz.Viewer) (model.RoundResult, error) {
	if cfg.Plain || !interactive() {
		res, err := quiz.RunPlain(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), rec, viewer)
		if err != nil {
			return model.RoundResult{}, fmt.Errorf("failed to run round: %w", err)
		}
		return res, nil
	}
	m := tui.NewModel(ctx, rec, viewer)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return quiz.NewResult(rec, model.OutcomeQuit, ""), nil
		}
		return model.RoundResult{}, fmt.Errorf("failed to run TUI: %w", err)
	}
	res := m.Result()
	if res == nil {
		return quiz.NewResult(rec, model.OutcomeQuit, ""), nil
	}
	return *res, nil
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func recordRound(ctx context.Context, logger *zap.Logger, result model.RoundResult) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := st.InsertRound(ctx, result); err != nil {
		logErrf("failed to save round: %v\n", err)
		return
	}
	logger.Debug("round recorded", zap.String("id", result.ID))
}

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories in the kanji data",
		Args:  cobra.NoArgs,
		RunE:  runCategoriesCmd,
	}
	cmd.Flags().StringVar(&quizDataPath, "data", "", "kanji data file (JSON or YAML; default: embedded)")
	return cmd
}

func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	doc, _, spec, err := loadWithSavedSelection(cmd)
	if err != nil {
		return err
	}
	for _, c := range selection.Categories(doc.Kanji) {
		marker := " "
		if !spec.IsNoFilter() && spec.Contains(c.Name) {
			marker = "*"
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%d\n", marker, c.Name, c.Count); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the kanji data and current selection to a file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&quizDataPath, "data", "", "kanji data file (JSON or YAML; default: embedded)")
	cmd.Flags().StringVar(&exportOut, "out", "", "output path (.json, .yaml, or .yml)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(exportOut) == "" {
		return fmt.Errorf("--out must not be empty")
	}
	doc, _, spec, err := loadWithSavedSelection(cmd)
	if err != nil {
		return err
	}
	if err := kanji.PersistDocument(exportOut, doc.ApplySelection(spec)); err != nil {
		return err
	}
	logErrf("Wrote %s (%d kanji, selection %s)\n", exportOut, len(doc.Kanji), spec)
	return nil
}

// loadWithSavedSelection loads the data and the selection a quiz run would use
// without a category argument.
func loadWithSavedSelection(cmd *cobra.Command) (kanji.Document, string, selection.Spec, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return kanji.Document{}, "", selection.Spec{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "data", &quizDataPath, fileCfg.Quiz.Data)
	doc, source, err := loadDocument(quizDataPath)
	if err != nil {
		return kanji.Document{}, "", selection.Spec{}, err
	}
	state, stateOK, err := config.LoadState(config.DefaultStatePath())
	if err != nil {
		return kanji.Document{}, "", selection.Spec{}, fmt.Errorf("failed to load state: %w", err)
	}
	resolved, err := resolveSelection(selectionInputs{
		State:      state,
		StateSaved: stateOK,
		Document:   doc,
		Default:    fileCfg.Quiz.Category,
	})
	if err != nil {
		return kanji.Document{}, "", selection.Spec{}, err
	}
	return doc, source, resolved.Spec, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quiz history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCategory, "category", "", "category filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of most missed kanji to show")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print tables instead of the interactive viewer")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsTop < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	filter := model.HistoryFilter{Category: statsCategory, Since: sinceTime}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	aggs, err := st.CategoryAggregates(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	rounds, err := st.ListRounds(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load rounds: %w", err)
	}
	misses := stats.TopMissed(rounds, statsTop)

	if !statsPlain && interactive() {
		report := statsui.Report{Categories: aggs, Missed: misses, Rounds: rounds, Filter: filter}
		program := tea.NewProgram(statsui.NewModel(report), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run stats UI: %w", err)
		}
		return nil
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderCategoryTable(out, aggs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderMissedTable(out, misses); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
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
	return fmt.Sprintf(`# kanjiq configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# data = "/path/kanji.json" # Kanji data file, JSON or YAML (default: embedded set)
# category = "all"         # Selection used until one is passed on the command line
# plain = false            # Line-oriented prompts instead of the full-screen UI
# log-file = ""            # Debug log file
# browser = ""             # Command used to open the kanji page (default: system opener)
# html = %q
`,
		config.DefaultHTMLPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
