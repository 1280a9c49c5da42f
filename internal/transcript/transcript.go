package transcript

// TimedWord is a single canonical transcript word with timing and speaker
// attribution. An empty SpeakerID means the word is unattributed.
type TimedWord struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	SpeakerID string  `json:"speaker_id,omitempty"`
}

// Duration returns the non-negative span the word occupies.
func (w TimedWord) Duration() float64 {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// Transcript is the canonical, time-ordered word sequence derived from one
// vendor payload. It is built once per clip and read-only afterwards; every
// downstream stage (alignment, coverage filtering, range materialization)
// shares the same instance.
type Transcript struct {
	words     []TimedWord
	sentences []SentenceRange
}

// New builds a canonical transcript. The words are run through Normalize so
// the ordering and timing invariants hold no matter where they came from,
// and the sentence partition is computed once up front using the given
// silence gap threshold in seconds.
func New(words []TimedWord, sentenceGap float64) *Transcript {
	normalized := Normalize(words)
	return &Transcript{
		words:     normalized,
		sentences: SplitSentences(normalized, sentenceGap),
	}
}

// FromPayload builds a canonical transcript from a parsed vendor payload.
func FromPayload(p *Payload, sentenceGap float64) *Transcript {
	return New(p.TimedWords(), sentenceGap)
}

// Len returns the number of canonical words.
func (t *Transcript) Len() int {
	return len(t.words)
}

// MaxIndex returns the largest valid word index, or -1 for an empty
// transcript.
func (t *Transcript) MaxIndex() int {
	return len(t.words) - 1
}

// Word returns the word at index i.
func (t *Transcript) Word(i int) TimedWord {
	return t.words[i]
}

// Words returns the canonical word sequence. Callers must treat the slice as
// read-only.
func (t *Transcript) Words() []TimedWord {
	return t.words
}

// Sentences returns the sentence partition computed at construction. The
// ranges are contiguous and cover every word index exactly once.
func (t *Transcript) Sentences() []SentenceRange {
	return t.sentences
}

// Duration returns the end time of the latest-ending word, i.e. the spoken
// extent of the source clip.
func (t *Transcript) Duration() float64 {
	var max float64
	for _, w := range t.words {
		if w.End > max {
			max = w.End
		}
	}
	return max
}

// Materialize resolves word indices back into timed words, preserving the
// given order. Indices outside the valid domain and empty-text entries are
// skipped rather than reported.
func (t *Transcript) Materialize(indices []int) []TimedWord {
	words := make([]TimedWord, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(t.words) {
			continue
		}
		if t.words[i].Text == "" {
			continue
		}
		words = append(words, t.words[i])
	}
	return words
}
