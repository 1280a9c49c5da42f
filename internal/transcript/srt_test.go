package transcript

import "testing"

func TestFormatSRTTime(t *testing.T) {
	if got := formatSRTTime(3661.5); got != "01:01:01,500" {
		t.Errorf("formatSRTTime(3661.5) = %q, want 01:01:01,500", got)
	}
	if got := formatSRTTime(0); got != "00:00:00,000" {
		t.Errorf("formatSRTTime(0) = %q, want 00:00:00,000", got)
	}
}

func TestSRT_RendersSentenceCues(t *testing.T) {
	words := []TimedWord{
		{Text: "Hello", Start: 0, End: 0.4},
		{Text: "there.", Start: 0.4, End: 0.9},
		{Text: "Bye.", Start: 1.0, End: 1.5},
	}
	got := SRT(words, 0.8)
	want := "1\n00:00:00,000 --> 00:00:00,900\nHello there.\n" +
		"\n2\n00:00:01,000 --> 00:00:01,500\nBye.\n"
	if got != want {
		t.Errorf("SRT output:\n%q\nwant:\n%q", got, want)
	}
}

func TestSRT_Empty(t *testing.T) {
	if got := SRT(nil, 0.8); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
