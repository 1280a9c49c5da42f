package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// rawWord is the vendor-neutral word carried from a payload adapter into
// normalization. Timestamps stay as pointers so missing values can be told
// apart from zero.
type rawWord struct {
	text    string
	start   *float64
	end     *float64
	speaker string
	kind    string // "", "word", "spacing", "audio_event"
}

// Payload is the closed set of vendor transcript shapes the pipeline
// accepts. Exactly one of the fields is set after ParsePayload; shape
// detection happens once here so nothing downstream sniffs fields.
type Payload struct {
	Scribe  *ScribePayload
	Whisper *WhisperPayload
}

// ParsePayload detects which vendor shape the raw JSON carries and decodes
// it. Detection looks at the word object keys once: "text" or "type" marks
// the scribe stream, "word" (or segment-nested words) marks the whisper
// shape. Valid JSON with no word-bearing structure yields an empty scribe
// payload, which normalizes to an empty transcript.
func ParsePayload(data []byte) (*Payload, error) {
	var probe struct {
		Words []struct {
			Word *string `json:"word"`
			Text *string `json:"text"`
			Type *string `json:"type"`
		} `json:"words"`
		Segments json.RawMessage `json:"segments"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse transcript payload: %w", err)
	}

	var hasWordKey, hasScribeKey bool
	for _, w := range probe.Words {
		if w.Text != nil || w.Type != nil {
			hasScribeKey = true
		}
		if w.Word != nil {
			hasWordKey = true
		}
	}
	hasSegments := len(probe.Segments) > 0 && !bytes.Equal(bytes.TrimSpace(probe.Segments), []byte("null"))

	whisper := !hasScribeKey && (hasWordKey || hasSegments)
	if whisper {
		var p WhisperPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse whisper payload: %w", err)
		}
		return &Payload{Whisper: &p}, nil
	}

	var p ScribePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse scribe payload: %w", err)
	}
	return &Payload{Scribe: &p}, nil
}

// Vendor returns a short tag naming the detected shape.
func (p *Payload) Vendor() string {
	switch {
	case p == nil:
		return ""
	case p.Whisper != nil:
		return "whisper"
	case p.Scribe != nil:
		return "scribe"
	}
	return ""
}

// TimedWords lowers the vendor payload to canonical, normalized words.
func (p *Payload) TimedWords() []TimedWord {
	switch {
	case p == nil:
		return nil
	case p.Scribe != nil:
		return normalizeRaw(p.Scribe.rawWords())
	case p.Whisper != nil:
		return normalizeRaw(p.Whisper.rawWords())
	}
	return nil
}

// SpeakerID absorbs the two spellings vendors use for speaker labels:
// numeric diarization ids and plain strings. Numbers keep their decimal
// form, so speaker 0 becomes "0".
type SpeakerID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (s *SpeakerID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return err
		}
		*s = SpeakerID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*s = SpeakerID(n.String())
	return nil
}
