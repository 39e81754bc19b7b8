package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/scribe/internal/config"
	"github.com/JaimeStill/scribe/internal/document"
	"github.com/JaimeStill/scribe/internal/taxonomy"
	"github.com/JaimeStill/scribe/internal/vision"
	"github.com/JaimeStill/scribe/internal/workflow"
	"github.com/JaimeStill/scribe/pkg/printer"
)

var (
	inputPath    string
	outputPath   string
	summaryPath  string
	taxonomyPath string
	contextSize  int
	verbose      bool
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate diagrams in a markdown document",
	RunE:  runAnnotate,
}

func init() {
	annotateCmd.Flags().StringVar(&inputPath, "input", "", "path to source .md file")
	annotateCmd.Flags().StringVar(&outputPath, "output", "", "path for the annotated .md file")
	annotateCmd.Flags().StringVar(&summaryPath, "summary", "", "path for the summary .md file")
	annotateCmd.Flags().StringVar(&taxonomyPath, "taxonomy", "", "taxonomy document (JSON or YAML); built-in table when omitted")
	annotateCmd.Flags().IntVar(&contextSize, "context-size", 0, "characters of context around each image (overrides config)")
	annotateCmd.Flags().BoolVar(&verbose, "verbose", false, "show detailed progress")

	_ = annotateCmd.MarkFlagRequired("input")
	_ = annotateCmd.MarkFlagRequired("output")
	_ = annotateCmd.MarkFlagRequired("summary")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return printer.Error("configuration invalid", err)
	}

	table, err := loadTaxonomy()
	if err != nil {
		return printer.Error("taxonomy invalid", err)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return printer.Error("input not readable", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rt := &workflow.Runtime{
		Vision: vision.NewAgentClient(
			&cfg.Agent,
			cfg.Pipeline.RequestTimeoutDuration(),
			cfg.Pipeline.MaxRetries,
			cfg.Pipeline.RetryBackoffDuration(),
		),
		Taxonomy:            table,
		Logger:              logger,
		ContextChars:        contextChars(cfg),
		MaxImageBytes:       cfg.Pipeline.MaxImageBytes(),
		ConfidenceThreshold: cfg.Pipeline.ConfidenceThreshold,
		Workers:             cfg.Pipeline.Workers,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc := workflow.Document{
		Name: filepath.Base(inputPath),
		Dir:  filepath.Dir(inputPath),
		Text: string(source),
	}

	result, err := workflow.Execute(ctx, rt, doc)
	if err != nil {
		return printer.Error("annotation failed", err)
	}

	if err := writeArtifact(outputPath, result.Annotated); err != nil {
		return printer.Error("write annotated document", err)
	}
	if err := writeArtifact(summaryPath, result.Summary); err != nil {
		return printer.Error("write summary document", err)
	}

	report(result)
	return nil
}

func loadTaxonomy() (*taxonomy.Table, error) {
	if taxonomyPath == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.Load(taxonomyPath)
}

func contextChars(cfg *config.Config) int {
	if contextSize > 0 {
		return contextSize
	}
	return cfg.Pipeline.ContextChars
}

func writeArtifact(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func report(result *workflow.Result) {
	printer.Success("Processing complete")
	printer.Info("Annotated document: %s", outputPath)
	printer.Info("Summary document: %s", summaryPath)

	run := result.Run
	if run.Total == 0 {
		printer.Warning("No images found in markdown file")
		return
	}

	printer.Info("")
	printer.Info("Category distribution:")
	for _, category := range run.Categories() {
		printer.Detail("  %s: %d", document.CategoryLabel(category), run.PerCategory[category])
	}

	if run.Considered > 0 {
		printer.Info("")
		printer.Detail(
			"Hypothesis accuracy: %d/%d (%.1f%%)",
			run.HypothesisMatches, run.Considered, run.Accuracy()*100,
		)
	}
}
