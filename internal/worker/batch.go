package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/imgly/videoclipper-sub001/internal/config"
)

// BatchOptions configures directory batch processing.
type BatchOptions struct {
	InputDir  string
	OutputDir string // "" writes results next to their job files
	Watch     bool
	Config    *config.Config
}

// RunBatch resolves every job file in a directory with bounded parallelism
// and optional rate limiting, then keeps watching the directory for new
// files when Watch is set. A job that fails is logged and skipped rather
// than aborting the batch.
func RunBatch(ctx context.Context, opts BatchOptions) error {
	cfg := opts.Config

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	jobs, err := listJobFiles(opts.InputDir)
	if err != nil {
		return err
	}

	slog.Info("starting batch",
		"jobs", len(jobs),
		"max_concurrent", cfg.Worker.MaxConcurrentJobs,
		"rate_limit_rpm", cfg.Worker.RateLimitPerMin)

	// Rate limiter: tokens per second = RPM / 60. Zero disables it.
	var limiter *rate.Limiter
	if cfg.Worker.RateLimitPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.Worker.RateLimitPerMin)/60.0), 1)
	}

	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Worker.MaxConcurrentJobs)

	for i, path := range jobs {
		i, path := i, path
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return fmt.Errorf("rate limiter: %w", err)
				}
			}

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			slog.Info("processing job",
				"job", fmt.Sprintf("%d/%d", i+1, len(jobs)),
				"file", filepath.Base(path))

			if err := processJobFile(cfg, path, opts.OutputDir); err != nil {
				failed.Add(1)
				slog.Error("job failed", "file", filepath.Base(path), "err", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if n := failed.Load(); n > 0 {
		if !opts.Watch {
			return fmt.Errorf("%d of %d jobs failed", n, len(jobs))
		}
		slog.Warn("some jobs failed", "failed", n, "total", len(jobs))
	}

	if opts.Watch {
		return watchLoop(ctx, cfg, opts.InputDir, opts.OutputDir)
	}
	return nil
}

func listJobFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var jobs []string
	for _, entry := range entries {
		if entry.IsDir() || !isJobFile(entry.Name()) {
			continue
		}
		jobs = append(jobs, filepath.Join(dir, entry.Name()))
	}
	return jobs, nil
}

// isJobFile reports whether a path looks like a job envelope. Result files
// end in .edits.json and are excluded so watch mode cannot feed on its own
// output.
func isJobFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".json") && !strings.HasSuffix(name, ".edits.json")
}

func processJobFile(cfg *config.Config, path, outputDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return fmt.Errorf("parse job envelope: %w", err)
	}
	if len(job.Transcript) == 0 {
		return fmt.Errorf("job envelope has no transcript")
	}

	id := job.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	res, err := Resolve(cfg, id, job.Transcript, job.ResponseText())
	if err != nil {
		return err
	}

	outPath := resultPath(path, outputDir)
	if err := writeResult(outPath, res); err != nil {
		return err
	}

	slog.Info("job completed", "job", id, "edits", len(res.Edits), "output", filepath.Base(outPath))
	return nil
}

func resultPath(jobPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(jobPath), filepath.Ext(jobPath)) + ".edits.json"
	if outputDir == "" {
		return filepath.Join(filepath.Dir(jobPath), base)
	}
	return filepath.Join(outputDir, base)
}

func writeResult(path string, res *Result) error {
	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
