package edit

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/transcript"
)

// Resolver reconciles model concepts against a canonical transcript.
type Resolver struct {
	minMatchRatio float64
	filter        CoverageFilter
}

// NewResolver builds a resolver from the pipeline configuration.
func NewResolver(cfg config.Pipeline) *Resolver {
	return &Resolver{
		minMatchRatio: cfg.MinMatchRatio,
		filter:        NewCoverageFilter(cfg),
	}
}

// Resolve reconciles one concept. Strategies are tried in fixed priority:
// text alignment at or above the confidence threshold, explicit keep
// ranges, low-confidence alignment pushed through the coverage filter as a
// last resort, and finally the model's own trimmed_words passed through
// untouched. The first strategy that yields words wins; when none does the
// result carries an empty word list for the caller to judge.
func (r *Resolver) Resolve(t *transcript.Transcript, c Concept) Resolved {
	res := Resolved{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Hook:         c.Hook,
		Notes:        c.Notes,
		TrimmedWords: []transcript.TimedWord{},
		Strategy:     StrategyNone,
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}

	var alignment Alignment
	if strings.TrimSpace(c.TrimmedText) != "" {
		alignment = AlignText(t, c.TrimmedText)
		res.MatchRatio = alignment.MatchRatio
		if alignment.MatchRatio >= r.minMatchRatio {
			if words := t.Materialize(r.filter.Apply(t, alignment.MatchedIndices)); len(words) > 0 {
				res.TrimmedWords = words
				res.Strategy = StrategyAligned
			}
		}
	}
	if res.Strategy == StrategyNone && len(c.KeepRanges) > 0 {
		if words := t.Materialize(RangeIndices(c.KeepRanges, t.MaxIndex())); len(words) > 0 {
			res.TrimmedWords = words
			res.Strategy = StrategyRanges
		}
	}
	if res.Strategy == StrategyNone && len(alignment.MatchedIndices) > 0 {
		if words := t.Materialize(r.filter.Apply(t, alignment.MatchedIndices)); len(words) > 0 {
			res.TrimmedWords = words
			res.Strategy = StrategyLowConfidence
		}
	}
	if res.Strategy == StrategyNone && len(c.TrimmedWords) > 0 {
		res.TrimmedWords = c.TrimmedWords
		res.Strategy = StrategyPassthrough
	}

	res.TrimmedText = joinWords(res.TrimmedWords)
	if res.Title == "" && res.TrimmedText != "" {
		res.Title = deriveTitle(res.TrimmedText)
	}
	if c.EstimatedDurationSeconds != nil && isFinite(*c.EstimatedDurationSeconds) {
		res.EstimatedDurationSeconds = *c.EstimatedDurationSeconds
	} else {
		res.EstimatedDurationSeconds = roundTenth(wordsDuration(res.TrimmedWords))
	}
	return res
}

// Expand resolves every concept of a response independently, preserving
// concept order.
func (r *Resolver) Expand(t *transcript.Transcript, resp *Response) []Resolved {
	resolved := make([]Resolved, 0, len(resp.Concepts))
	for _, c := range resp.Concepts {
		resolved = append(resolved, r.Resolve(t, c))
	}
	return resolved
}

func wordsDuration(words []transcript.TimedWord) float64 {
	var total float64
	for _, w := range words {
		total += w.Duration()
	}
	return total
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func joinWords(words []transcript.TimedWord) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}
