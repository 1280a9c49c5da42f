package transcript

import (
	"strings"
	"unicode/utf8"
)

// SentenceRange marks one sentence as an inclusive index interval over the
// canonical transcript. Ranges produced by SplitSentences are contiguous
// and partition the whole index space.
type SentenceRange struct {
	Start int `json:"start_index"`
	End   int `json:"end_index"`
}

// Len returns the number of words the range covers.
func (r SentenceRange) Len() int {
	return r.End - r.Start + 1
}

// Contains reports whether index i falls inside the range.
func (r SentenceRange) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

var terminalPunctuation = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'。': {}, '！': {}, '？': {}, // 。！？
}

// closingPunctuation may trail a terminal mark without hiding it.
var closingPunctuation = map[rune]struct{}{
	'"': {}, '\'': {}, ')': {}, ']': {}, '}': {},
	'”': {}, '’': {}, '»': {}, // ” ’ »
	'」': {}, '』': {}, // 」』
}

// endsSentence reports whether the word text closes a sentence: terminal
// punctuation, optionally followed by closing quotes or brackets.
func endsSentence(text string) bool {
	text = strings.TrimSpace(text)
	for text != "" {
		r, size := utf8.DecodeLastRuneInString(text)
		if _, ok := closingPunctuation[r]; ok {
			text = text[:len(text)-size]
			continue
		}
		_, ok := terminalPunctuation[r]
		return ok
	}
	return false
}

// SplitSentences partitions words into contiguous sentence ranges. A
// sentence closes after a word whose text ends a sentence, or when the
// silence between the word's end and the next word's start exceeds gap
// seconds. The final range absorbs trailing words with no terminator, so
// every index lands in exactly one range.
func SplitSentences(words []TimedWord, gap float64) []SentenceRange {
	if len(words) == 0 {
		return nil
	}

	var ranges []SentenceRange
	start := 0
	for i, w := range words {
		if i == len(words)-1 {
			ranges = append(ranges, SentenceRange{Start: start, End: i})
			break
		}
		if endsSentence(w.Text) || words[i+1].Start-w.End > gap {
			ranges = append(ranges, SentenceRange{Start: start, End: i})
			start = i + 1
		}
	}
	return ranges
}
