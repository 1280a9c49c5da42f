package transcript

import (
	"sort"
	"strings"
)

// inferredWordSeconds is the duration assumed for a word whose start or end
// timestamp is missing from the vendor payload.
const inferredWordSeconds = 0.2

// normalizeRaw lowers vendor words to canonical timed words: non-speech
// markers and empty tokens are dropped, missing timestamps are inferred,
// and the result is finished by Normalize.
func normalizeRaw(raw []rawWord) []TimedWord {
	words := make([]TimedWord, 0, len(raw))
	for _, w := range raw {
		switch w.kind {
		case "", "word":
		default:
			// Spacing and audio-event markers carry no speech.
			continue
		}
		if strings.TrimSpace(w.text) == "" {
			continue
		}

		var start, end float64
		switch {
		case w.start != nil && w.end != nil:
			start, end = *w.start, *w.end
		case w.start == nil && w.end != nil:
			start, end = *w.end-inferredWordSeconds, *w.end
		case w.start != nil:
			start, end = *w.start, *w.start+inferredWordSeconds
		default:
			start, end = 0, inferredWordSeconds
		}

		words = append(words, TimedWord{
			Text:      w.text,
			Start:     start,
			End:       end,
			SpeakerID: w.speaker,
		})
	}
	return Normalize(words)
}

// Normalize applies the canonical-transcript rules to timed words:
// empty-text entries are dropped, timings are clamped to start >= 0 and
// end >= start, speaker ids are trimmed (whitespace-only means
// unattributed), and the sequence is stable-sorted by start so ties keep
// their arrival order. Running Normalize on its own output is the identity.
func Normalize(words []TimedWord) []TimedWord {
	out := make([]TimedWord, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		if w.Start < 0 {
			w.Start = 0
		}
		if w.End < w.Start {
			w.End = w.Start
		}
		w.SpeakerID = strings.TrimSpace(w.SpeakerID)
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
