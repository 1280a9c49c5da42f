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

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve a directory of captured job files",
	Long: `Batch processes every job file in a directory. A job file is a JSON
envelope holding a transcript payload and the model response captured for
the same clip:

    {"id": "clip-7", "transcript": {...}, "model_response": "..."}

Results are written as <name>.edits.json next to each job file, or into
--output-dir. With --watch the command keeps running and picks up job files
as they appear.`,
	RunE: runBatch,
}

var (
	batchInputDir  string
	batchOutputDir string
	batchWatch     bool
	maxConcurrent  int
	rateLimit      int
)

func init() {
	defaults := config.Default()

	batchCmd.Flags().StringVarP(&batchInputDir, "input-dir", "i", "", "directory of job files (required)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "directory for results (default: next to job files)")
	batchCmd.Flags().BoolVarP(&batchWatch, "watch", "w", false, "keep watching the input directory for new job files")
	batchCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.Worker.MaxConcurrentJobs, "max jobs processed concurrently")
	batchCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.Worker.RateLimitPerMin, "job starts per minute, 0 disables")

	batchCmd.MarkFlagRequired("input-dir")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-concurrent") {
		cfg.Worker.MaxConcurrentJobs = maxConcurrent
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.Worker.RateLimitPerMin = rateLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(batchInputDir)
	if err != nil {
		return fmt.Errorf("input dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input dir is not a directory: %s", batchInputDir)
	}

	// Setup signal handling for graceful cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := worker.BatchOptions{
		InputDir:  batchInputDir,
		OutputDir: batchOutputDir,
		Watch:     batchWatch,
		Config:    cfg,
	}

	if err := worker.RunBatch(ctx, opts); err != nil {
		return err
	}

	if !quiet {
		slog.Info("done")
	}
	return nil
}
