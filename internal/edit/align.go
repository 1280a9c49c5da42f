package edit

import (
	"regexp"
	"strings"

	"github.com/imgly/videoclipper-sub001/internal/transcript"
)

// keyPattern strips everything that carries no alignment signal; what
// remains of a word or token is its comparison key.
var keyPattern = regexp.MustCompile(`[^a-z0-9']+`)

// matchKey lowers a word or token to its comparison key. Pure-punctuation
// input reduces to the empty key, which never aligns.
func matchKey(s string) string {
	return keyPattern.ReplaceAllString(strings.ToLower(s), "")
}

// Alignment is the aligner's verdict on one free-text trimmed proposal.
type Alignment struct {
	// MatchedIndices are the recovered canonical word indices, strictly
	// increasing.
	MatchedIndices []int
	// MatchRatio is matched tokens over countable tokens, in [0,1].
	MatchRatio float64
	// Retained are the matched indices materialized back into timed words.
	Retained []transcript.TimedWord
}

// AlignText recovers which canonical words a free-text proposal retained.
// Tokens are consumed in order against a forward-only cursor: each token
// matches the first not-yet-consumed canonical word with the same key, and
// tokens with no match anywhere ahead are skipped as model insertions. The
// cursor never moves backward, so the result cannot reorder or duplicate
// transcript words. The trade-off is deliberate: a repeated word can consume
// an earlier occurrence than the model meant, under-matching slightly, but
// chronological order survives any input.
func AlignText(t *transcript.Transcript, text string) Alignment {
	words := t.Words()
	keys := make([]string, len(words))
	for i, w := range words {
		keys[i] = matchKey(w.Text)
	}

	var tokens []string
	for _, field := range strings.Fields(text) {
		if key := matchKey(field); key != "" {
			tokens = append(tokens, key)
		}
	}

	var matched []int
	cursor := 0
	for _, key := range tokens {
		for j := cursor; j < len(keys); j++ {
			if keys[j] == key {
				matched = append(matched, j)
				cursor = j + 1
				break
			}
		}
	}

	var ratio float64
	if len(tokens) > 0 {
		ratio = float64(len(matched)) / float64(len(tokens))
	}
	return Alignment{
		MatchedIndices: matched,
		MatchRatio:     ratio,
		Retained:       t.Materialize(matched),
	}
}
