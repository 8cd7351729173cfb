// Package main provides the CLI entrypoint for textmood.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tsawler/textmood"
	"github.com/tsawler/textmood/internal/config"
	"github.com/tsawler/textmood/internal/ingest"
	"github.com/tsawler/textmood/internal/logging"
	"github.com/tsawler/textmood/internal/render"
	"github.com/tsawler/textmood/internal/server"
)

const (
	defaultAddr    = ":8080"
	defaultFormat  = "text"
	defaultSentCol = 60
)

var (
	logLevel string
	fileCfg  config.FileConfig

	settings = defaultSettings()

	analyzeText    string
	analyzeFormat  string
	analyzePreview bool

	serveAddr string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "textmood",
		Short:             "Sentiment, subjectivity and word frequency analysis",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv("."); err != nil {
		return err
	}

	var err error
	fileCfg, err = config.LoadConfig(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logging.InitLogger(level)
	return nil
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [FILE]",
		Short: "Analyze text from a file, --text or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
	addAnalysisFlags(cmd)
	cmd.Flags().StringVar(&analyzeText, "text", "", "text to analyze")
	cmd.Flags().StringVar(&analyzeFormat, "format", defaultFormat, "output format (text, json)")
	cmd.Flags().BoolVar(&analyzePreview, "preview", false, "show the first 1000 characters of the input")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	if err := applyAnalysisConfig(cmd); err != nil {
		return err
	}
	if analyzeFormat != "text" && analyzeFormat != "json" {
		return fmt.Errorf("--format must be text or json")
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer(settings, slog.Default())
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(cmd.Context(), text)
	if err != nil {
		var scoringErr *textmood.ScoringError
		if errors.As(err, &scoringErr) && len(scoringErr.Words) > 0 {
			logErrln("Sentiment scoring failed; word frequencies only:")
			if werr := render.Words(cmd.OutOrStdout(), scoringErr.Words); werr != nil {
				return werr
			}
		}
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeFormat == "json" {
		return render.JSON(out, report)
	}

	opts := render.Options{
		Color:         logging.ColorEnabled(out),
		SentenceWidth: defaultSentCol,
	}
	if analyzePreview {
		opts.Preview = ingest.Preview(text, ingest.DefaultPreviewRunes)
	}
	return render.Text(out, report, opts)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) == 1:
		if cmd.Flags().Changed("text") {
			return "", fmt.Errorf("use either FILE or --text, not both")
		}
		return ingest.ReadFile(args[0])
	case cmd.Flags().Changed("text"):
		return analyzeText, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no input: pass FILE, --text or pipe text on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addAnalysisFlags(cmd)
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := applyAnalysisConfig(cmd); err != nil {
		return err
	}
	applyConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)

	log := slog.Default()
	analyzer, err := buildAnalyzer(settings, log)
	if err != nil {
		return err
	}

	if !log.Enabled(context.Background(), slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, serveAddr, server.SetupRouter(analyzer, log), log)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if missing and print its path",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.ConfigPath()
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
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := defaultSettings()
	return fmt.Sprintf(`# textmood configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# top = %d                  # Words in the frequency table (0 = all)
# variant = %q          # Threshold preset: strict or loose
# positive = %.2f           # Polarity above this is positive
# negative = %.2f          # Polarity below this is negative
# subjectivity = %.2f       # Subjectivity above this is high
# scorer = %q         # lexicon or vader
# segmenter = %q # punctuation or punkt
# stopwords = %q       # default, es, en, fr or de
# extra-stopwords = []
# lexicon = ""              # Extra JSON lexicon file

[translation]
# translator = %q         # none, google or openai (needs OPENAI_API_KEY)
# target = %q               # Language to translate into before scoring
# timeout = %q             # Per call timeout
# sentences = false         # Translate each sentence as well
# openai-model = %q

[server]
# addr = %q

[log]
# level = "info"
`,
		d.top,
		d.variant,
		textmood.StrictThresholds.Positive,
		textmood.StrictThresholds.Negative,
		textmood.StrictThresholds.Subjectivity,
		d.scorer,
		d.segmenter,
		d.stopwords,
		d.translator,
		d.target,
		d.timeout.String(),
		textmood.DefaultOpenAIModel,
		defaultAddr,
	)
}

func logErrln(msg string) {
	fmt.Fprintln(os.Stderr, strings.TrimRight(msg, "\n"))
}
