package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/edit"
)

const scribePayload = `{
	"language_code": "en",
	"text": "I uh love this.",
	"words": [
		{"text": "I", "start": 0.0, "end": 0.2, "speaker_id": "speaker_0", "type": "word"},
		{"text": " ", "start": 0.2, "end": 0.3, "type": "spacing"},
		{"text": "uh", "start": 0.3, "end": 0.5, "speaker_id": "speaker_0", "type": "word"},
		{"text": "love", "start": 0.6, "end": 0.9, "speaker_id": "speaker_0", "type": "word"},
		{"text": "this.", "start": 0.9, "end": 1.3, "speaker_id": "speaker_0", "type": "word"}
	]
}`

func TestResolve_EndToEnd(t *testing.T) {
	response := "```json\n{\"trimmed_text\": \"I love this\"}\n```"

	res, err := Resolve(config.Default(), "job-1", []byte(scribePayload), response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Vendor != "scribe" {
		t.Errorf("vendor = %q, want scribe", res.Vendor)
	}
	if res.SourceWords != 4 {
		t.Errorf("source words = %d, want 4", res.SourceWords)
	}
	if len(res.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(res.Edits))
	}
	e := res.Edits[0]
	if e.Strategy != edit.StrategyAligned {
		t.Errorf("strategy = %q, want %q", e.Strategy, edit.StrategyAligned)
	}
	if e.TrimmedText != "I love this." {
		t.Errorf("trimmed text = %q, want the transcript's own spelling", e.TrimmedText)
	}
}

func TestResolve_UnparseableResponsePassesRawThrough(t *testing.T) {
	raw := "Sorry, I cannot help with that."
	res, err := Resolve(config.Default(), "job-2", []byte(scribePayload), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Edits) != 0 {
		t.Errorf("expected no edits, got %d", len(res.Edits))
	}
	if res.RawResponse != raw {
		t.Errorf("raw response = %q, want the model text untouched", res.RawResponse)
	}
}

func TestResolve_BrokenPayloadErrors(t *testing.T) {
	if _, err := Resolve(config.Default(), "job-3", []byte("{oops"), "{}"); err == nil {
		t.Fatal("expected error for broken transcript payload")
	}
}

func TestJob_ResponseTextForms(t *testing.T) {
	var job Job
	data := `{"id": "j", "transcript": {}, "model_response": {"trimmed_text": "hi"}}`
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(job.ResponseText(), "{") {
		t.Errorf("object response = %q, want JSON object text", job.ResponseText())
	}

	data = `{"id": "j", "transcript": {}, "model_response": "{\"trimmed_text\": \"hi\"}"}`
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		t.Fatal(err)
	}
	resp, err := edit.ParseResponse(job.ResponseText())
	if err != nil {
		t.Fatalf("string-wrapped response failed to parse: %v", err)
	}
	if resp.Concepts[0].TrimmedText != "hi" {
		t.Errorf("trimmed_text = %q, want hi", resp.Concepts[0].TrimmedText)
	}
}

func TestIsJobFile(t *testing.T) {
	if !isJobFile("clip.json") {
		t.Error("clip.json should be a job file")
	}
	if isJobFile("clip.edits.json") {
		t.Error("result files are not job files")
	}
	if isJobFile("clip.txt") {
		t.Error("non-JSON files are not job files")
	}
	if !isJobFile(filepath.Join("jobs", "CLIP.JSON")) {
		t.Error("matching should ignore case and directories")
	}
}

func TestResultPath(t *testing.T) {
	got := resultPath(filepath.Join("in", "clip.json"), "")
	if want := filepath.Join("in", "clip.edits.json"); got != want {
		t.Errorf("resultPath = %q, want %q", got, want)
	}
	got = resultPath(filepath.Join("in", "clip.json"), "out")
	if want := filepath.Join("out", "clip.edits.json"); got != want {
		t.Errorf("resultPath with output dir = %q, want %q", got, want)
	}
}

func TestProcessJobFile_WritesResult(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "clip.json")
	envelope := `{"transcript": ` + scribePayload + `, "model_response": "{\"trimmed_text\": \"I love this\"}"}`
	if err := os.WriteFile(jobPath, []byte(envelope), 0644); err != nil {
		t.Fatal(err)
	}

	if err := processJobFile(config.Default(), jobPath, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "clip.edits.json"))
	if err != nil {
		t.Fatalf("result not written: %v", err)
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("result not valid JSON: %v", err)
	}
	if res.ID != "clip" {
		t.Errorf("id = %q, want the file stem clip", res.ID)
	}
	if len(res.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(res.Edits))
	}
}

func TestProcessJobFile_MissingTranscript(t *testing.T) {
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "clip.json")
	if err := os.WriteFile(jobPath, []byte(`{"model_response": "{}"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := processJobFile(config.Default(), jobPath, ""); err == nil {
		t.Fatal("expected error for envelope without transcript")
	}
}

func TestRunBatch_ProcessesDirectory(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")

	envelope := `{"transcript": ` + scribePayload + `, "model_response": "{\"trimmed_text\": \"I love this\"}"}`
	for _, name := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(envelope), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Files the scan must ignore.
	if err := os.WriteFile(filepath.Join(dir, "done.edits.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := BatchOptions{InputDir: dir, OutputDir: outDir, Config: config.Default()}
	if err := RunBatch(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"a.edits.json", "b.edits.json"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing result %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "done.edits.edits.json")); err == nil {
		t.Error("a result file was processed as a job")
	}
}

func TestRunBatch_ReportsFailures(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	opts := BatchOptions{InputDir: dir, Config: config.Default()}
	err := RunBatch(context.Background(), opts)
	if err == nil {
		t.Fatal("expected aggregate failure error")
	}
	if !strings.Contains(err.Error(), "1 of 1 jobs failed") {
		t.Errorf("error = %q, want failure count", err)
	}
}

func TestRun_WritesOutputAndPreview(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := filepath.Join(dir, "transcript.json")
	responsePath := filepath.Join(dir, "response.txt")
	outputPath := filepath.Join(dir, "edits.json")
	srtPath := filepath.Join(dir, "preview.srt")

	if err := os.WriteFile(transcriptPath, []byte(scribePayload), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(responsePath, []byte(`{"trimmed_text": "I love this"}`), 0644); err != nil {
		t.Fatal(err)
	}

	opts := Options{
		TranscriptPath: transcriptPath,
		ResponsePath:   responsePath,
		OutputPath:     outputPath,
		SRTPath:        srtPath,
		Config:         config.Default(),
	}
	if err := Run(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if len(res.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(res.Edits))
	}

	srt, err := os.ReadFile(srtPath)
	if err != nil {
		t.Fatalf("preview not written: %v", err)
	}
	if !strings.Contains(string(srt), "-->") {
		t.Errorf("preview does not look like SRT:\n%s", srt)
	}
}
