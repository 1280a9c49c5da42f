package transcript

import (
	"fmt"
	"math"
	"strings"
)

// formatSRTTime converts seconds to the SRT time format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	totalSec := math.Abs(seconds)
	hours := int(totalSec / 3600)
	remainder := math.Mod(totalSec, 3600)
	minutes := int(remainder / 60)
	secs := math.Mod(remainder, 60)
	millis := int(math.Mod(secs, 1) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, int(secs), millis)
}

// SRT renders a word sequence as SRT subtitle content, one cue per sentence
// of the rendered sequence. It exists so a trimmed timeline can be eyeballed
// in any subtitle-capable player before the real render happens.
func SRT(words []TimedWord, gap float64) string {
	cues := SplitSentences(words, gap)
	if len(cues) == 0 {
		return ""
	}

	var sb strings.Builder
	n := 0
	for _, cue := range cues {
		var text strings.Builder
		for i := cue.Start; i <= cue.End; i++ {
			part := strings.TrimSpace(words[i].Text)
			if part == "" {
				continue
			}
			if text.Len() > 0 {
				text.WriteByte(' ')
			}
			text.WriteString(part)
		}
		if text.Len() == 0 {
			continue
		}

		if n > 0 {
			sb.WriteByte('\n')
		}
		n++
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n",
			n, formatSRTTime(words[cue.Start].Start), formatSRTTime(words[cue.End].End), text.String())
	}
	return sb.String()
}
