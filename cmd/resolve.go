package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/worker"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a model edit proposal against a transcript",
	Long: `Resolve reconciles one captured model response against one vendor transcript
payload and writes the finalized edits as JSON. The response may be free
text with embedded JSON, a single concept object, or a multi-concept
wrapper; each concept is resolved independently through alignment,
keep-range, and pass-through strategies.`,
	RunE: runResolve,
}

var (
	resolveTranscript string
	resolveResponse   string
	resolveOutput     string
	resolveSRT        string

	minMatchRatio     float64
	coverageThreshold float64
	sentenceGap       float64
)

func init() {
	defaults := config.Default()

	resolveCmd.Flags().StringVarP(&resolveTranscript, "transcript", "t", "", "transcript payload JSON file (required)")
	resolveCmd.Flags().StringVarP(&resolveResponse, "response", "r", "", "model response file, raw text or JSON (required)")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "", "output path for resolved edits (default: stdout)")
	resolveCmd.Flags().StringVar(&resolveSRT, "srt", "", "write an SRT preview of the default edit to this path")

	resolveCmd.Flags().Float64Var(&minMatchRatio, "min-match-ratio", defaults.Pipeline.MinMatchRatio, "alignment confidence threshold")
	resolveCmd.Flags().Float64Var(&coverageThreshold, "coverage-threshold", defaults.Pipeline.StrictCoverage, "strict sentence coverage threshold")
	resolveCmd.Flags().Float64Var(&sentenceGap, "sentence-gap", defaults.Pipeline.SentenceGapSeconds, "silence gap in seconds that closes a sentence")

	resolveCmd.MarkFlagRequired("transcript")
	resolveCmd.MarkFlagRequired("response")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-match-ratio") {
		cfg.Pipeline.MinMatchRatio = minMatchRatio
	}
	if cmd.Flags().Changed("coverage-threshold") {
		cfg.Pipeline.StrictCoverage = coverageThreshold
	}
	if cmd.Flags().Changed("sentence-gap") {
		cfg.Pipeline.SentenceGapSeconds = sentenceGap
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	for _, path := range []string{resolveTranscript, resolveResponse} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.Options{
		TranscriptPath: resolveTranscript,
		ResponsePath:   resolveResponse,
		OutputPath:     resolveOutput,
		SRTPath:        resolveSRT,
		Config:         cfg,
	}

	if err := worker.Run(ctx, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
