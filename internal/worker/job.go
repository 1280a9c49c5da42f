package worker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/edit"
	"github.com/imgly/videoclipper-sub001/internal/transcript"
)

// Job is one captured request: the vendor transcript payload and the raw
// model response recorded for the same clip.
type Job struct {
	ID            string          `json:"id,omitempty"`
	Transcript    json.RawMessage `json:"transcript"`
	ModelResponse json.RawMessage `json:"model_response"`
}

// ResponseText returns the model response as text. The field may hold the
// reply object directly or a JSON string wrapping it; both forms are
// accepted downstream.
func (j *Job) ResponseText() string {
	return string(bytes.TrimSpace(j.ModelResponse))
}

// Result is the resolved output for one job.
type Result struct {
	ID               string          `json:"id,omitempty"`
	Vendor           string          `json:"vendor"`
	SourceWords      int             `json:"source_words"`
	SourceDuration   float64         `json:"source_duration"`
	DefaultConceptID string          `json:"default_concept_id,omitempty"`
	Edits            []edit.Resolved `json:"edits"`
	// RawResponse carries the model text through untouched when it could
	// not be parsed, so the caller still gets a best-effort answer.
	RawResponse string `json:"raw_response,omitempty"`
}

// Resolve runs the reconciliation core for one captured request: detect the
// vendor shape, build the canonical transcript, and expand the model
// response against it. Data-quality problems degrade with a warning; only a
// syntactically broken transcript payload is an error.
func Resolve(cfg *config.Config, id string, payload []byte, response string) (*Result, error) {
	p, err := transcript.ParsePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", id, err)
	}

	t := transcript.FromPayload(p, cfg.Pipeline.SentenceGapSeconds)
	if t.Len() == 0 {
		slog.Warn("transcript has no usable words", "job", id, "vendor", p.Vendor())
	}

	res := &Result{
		ID:             id,
		Vendor:         p.Vendor(),
		SourceWords:    t.Len(),
		SourceDuration: t.Duration(),
		Edits:          []edit.Resolved{},
	}

	parsed, perr := edit.ParseResponse(response)
	if perr != nil {
		slog.Warn("model response not parseable, passing raw text through",
			"job", id, "err", perr)
		res.RawResponse = response
		return res, nil
	}
	res.DefaultConceptID = parsed.DefaultConceptID

	resolver := edit.NewResolver(cfg.Pipeline)
	res.Edits = resolver.Expand(t, parsed)

	for _, e := range res.Edits {
		switch e.Strategy {
		case edit.StrategyLowConfidence:
			slog.Warn("alignment below confidence threshold, coverage fallback used",
				"job", id, "concept", e.ID, "match_ratio", e.MatchRatio)
		case edit.StrategyNone:
			slog.Warn("no strategy produced words", "job", id, "concept", e.ID)
		default:
			slog.Debug("concept resolved",
				"job", id, "concept", e.ID, "strategy", e.Strategy,
				"words", len(e.TrimmedWords), "duration_sec", e.EstimatedDurationSeconds)
		}
	}
	return res, nil
}
