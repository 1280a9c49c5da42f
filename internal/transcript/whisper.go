package transcript

// WhisperPayload mirrors the OpenAI/Deepgram-style verbose transcription
// response: an optional flat word list plus segments that may carry their
// own word lists. When both are present the flat list wins, so flattening
// never duplicates words.
type WhisperPayload struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Words    []WhisperWord    `json:"words"`
	Segments []WhisperSegment `json:"segments"`
}

// WhisperSegment is one utterance-level block of the response.
type WhisperSegment struct {
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Text  string        `json:"text"`
	Words []WhisperWord `json:"words"`
}

// WhisperWord is a single word-level entry. Diarizing vendors label the
// speaker with a number, others with a string; SpeakerID takes both.
type WhisperWord struct {
	Word    string    `json:"word"`
	Start   *float64  `json:"start"`
	End     *float64  `json:"end"`
	Speaker SpeakerID `json:"speaker"`
}

func (p *WhisperPayload) rawWords() []rawWord {
	if len(p.Words) > 0 {
		return whisperToRaw(p.Words)
	}
	var words []rawWord
	for _, seg := range p.Segments {
		words = append(words, whisperToRaw(seg.Words)...)
	}
	return words
}

func whisperToRaw(words []WhisperWord) []rawWord {
	out := make([]rawWord, 0, len(words))
	for _, w := range words {
		out = append(out, rawWord{
			text:    w.Word,
			start:   w.Start,
			end:     w.End,
			speaker: string(w.Speaker),
		})
	}
	return out
}
