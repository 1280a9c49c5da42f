package edit

import "github.com/imgly/videoclipper-sub001/internal/transcript"

// Resolution strategies in cascade order. Each resolved concept records
// which one produced its word sequence.
const (
	StrategyAligned       = "aligned"
	StrategyRanges        = "ranges"
	StrategyLowConfidence = "low_confidence"
	StrategyPassthrough   = "passthrough"
	StrategyNone          = "none"
)

// Concept is one candidate edit proposed by the model. Every field is
// untrusted: the text may paraphrase the transcript, ranges may be reversed
// or out of bounds, and the duration estimate may be missing or nonsense.
type Concept struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Hook        string `json:"hook,omitempty"`
	Notes       string `json:"notes,omitempty"`

	TrimmedText  string                 `json:"trimmed_text,omitempty"`
	TrimmedWords []transcript.TimedWord `json:"trimmed_words,omitempty"`
	KeepRanges   KeepRangeList          `json:"keep_ranges,omitempty"`

	EstimatedDurationSeconds *float64 `json:"estimated_duration_seconds,omitempty"`
}

// Response is a decoded model reply: one or more concepts plus the optional
// id of the concept the model recommends as the default pick.
type Response struct {
	DefaultConceptID string    `json:"default_concept_id,omitempty"`
	Concepts         []Concept `json:"concepts"`
}

// Resolved is a concept after reconciliation against the canonical
// transcript: the model's pass-through metadata plus the materialized word
// sequence and how it was obtained.
type Resolved struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Hook        string `json:"hook,omitempty"`
	Notes       string `json:"notes,omitempty"`

	TrimmedWords             []transcript.TimedWord `json:"trimmed_words"`
	TrimmedText              string                 `json:"trimmed_text"`
	EstimatedDurationSeconds float64                `json:"estimated_duration_seconds"`

	Strategy   string  `json:"strategy"`
	MatchRatio float64 `json:"match_ratio"`
}
