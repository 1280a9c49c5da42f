package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/transcript"
)

// Options configures a single resolve run.
type Options struct {
	TranscriptPath string
	ResponsePath   string
	OutputPath     string // "" or "-" writes to stdout
	SRTPath        string // optional subtitle preview of the chosen edit
	Config         *config.Config
}

// Run resolves one transcript/response pair from disk and writes the result.
func Run(ctx context.Context, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	slog.Info("resolving edit proposal",
		"transcript", filepath.Base(opts.TranscriptPath),
		"response", filepath.Base(opts.ResponsePath))

	payload, err := os.ReadFile(opts.TranscriptPath)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	response, err := os.ReadFile(opts.ResponsePath)
	if err != nil {
		return fmt.Errorf("read model response: %w", err)
	}

	res, err := Resolve(opts.Config, "", payload, string(response))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if opts.OutputPath == "" || opts.OutputPath == "-" {
		fmt.Println(string(data))
	} else {
		if err := os.WriteFile(opts.OutputPath, data, 0644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		slog.Info("edits saved", "path", opts.OutputPath, "edits", len(res.Edits))
	}

	if opts.SRTPath != "" {
		if err := writeSRTPreview(opts.SRTPath, res, opts.Config.Pipeline.SentenceGapSeconds); err != nil {
			slog.Warn("failed to write SRT preview", "err", err)
		} else {
			slog.Info("SRT preview saved", "path", opts.SRTPath)
		}
	}
	return nil
}

// writeSRTPreview renders the default edit (or the first one that resolved
// to words) as sentence-grouped subtitle cues.
func writeSRTPreview(path string, res *Result, sentenceGap float64) error {
	chosen := -1
	for i, e := range res.Edits {
		if res.DefaultConceptID != "" && e.ID == res.DefaultConceptID {
			chosen = i
			break
		}
		if chosen == -1 && len(e.TrimmedWords) > 0 {
			chosen = i
		}
	}
	if chosen == -1 {
		return fmt.Errorf("no resolved edit has words to preview")
	}

	content := transcript.SRT(res.Edits[chosen].TrimmedWords, sentenceGap)
	if content == "" {
		return fmt.Errorf("preview rendering produced empty output")
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write SRT preview: %w", err)
	}
	return nil
}
