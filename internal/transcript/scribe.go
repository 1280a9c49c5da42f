package transcript

// ScribePayload mirrors the ElevenLabs-style speech-to-text response: a flat
// token stream where spacing and audio-event markers are interleaved with
// speech words.
type ScribePayload struct {
	LanguageCode string       `json:"language_code"`
	Text         string       `json:"text"`
	Words        []ScribeWord `json:"words"`
}

// ScribeWord is a single token from the scribe stream.
type ScribeWord struct {
	Text      string    `json:"text"`
	Start     *float64  `json:"start"`
	End       *float64  `json:"end"`
	SpeakerID SpeakerID `json:"speaker_id"`
	Type      string    `json:"type"` // "word", "spacing", "audio_event"
}

func (p *ScribePayload) rawWords() []rawWord {
	words := make([]rawWord, 0, len(p.Words))
	for _, w := range p.Words {
		words = append(words, rawWord{
			text:    w.Text,
			start:   w.Start,
			end:     w.End,
			speaker: string(w.SpeakerID),
			kind:    w.Type,
		})
	}
	return words
}
