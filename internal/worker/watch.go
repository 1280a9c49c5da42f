package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/imgly/videoclipper-sub001/internal/config"
)

// settleDelay gives the writer a moment to finish a job file after its
// create event fires.
const settleDelay = 500 * time.Millisecond

// watchLoop keeps resolving job files as they appear in the input
// directory, with the same concurrency bound as the batch scan. It returns
// nil on context cancellation after in-flight jobs finish.
func watchLoop(ctx context.Context, cfg *config.Config, inputDir, outputDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(inputDir); err != nil {
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}

	slog.Info("watching for job files", "dir", inputDir,
		"max_concurrent", cfg.Worker.MaxConcurrentJobs)

	sem := make(chan struct{}, cfg.Worker.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			slog.Info("waiting for in-flight jobs")
			wg.Wait()
			slog.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) || !isJobFile(event.Name) {
				continue
			}

			slog.Info("new job file detected", "file", filepath.Base(event.Name))
			time.Sleep(settleDelay)

			select {
			case sem <- struct{}{}:
				wg.Add(1)
				go func(path string) {
					defer wg.Done()
					defer func() { <-sem }()

					if err := processJobFile(cfg, path, outputDir); err != nil {
						slog.Error("job failed", "file", filepath.Base(path), "err", err)
					}
				}(event.Name)
			case <-ctx.Done():
				wg.Wait()
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			slog.Error("watcher error", "err", err)
		}
	}
}
