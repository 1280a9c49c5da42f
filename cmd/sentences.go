package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/edit"
	"github.com/imgly/videoclipper-sub001/internal/transcript"
)

var sentencesCmd = &cobra.Command{
	Use:   "sentences <transcript.json>",
	Short: "Inspect a transcript's sentence segmentation",
	Long: `Sentences renders the canonical transcript's sentence partition: index span,
time span, speaker, and text per sentence. With --response it also shows the
per-sentence coverage the first concept's proposal achieves and whether the
coverage filter keeps or drops each sentence.`,
	Args: cobra.ExactArgs(1),
	RunE: runSentences,
}

var (
	sentencesResponse string
	sentencesGap      float64
	sentencesCoverage float64
)

func init() {
	defaults := config.Default()

	sentencesCmd.Flags().StringVarP(&sentencesResponse, "response", "r", "", "model response file; adds coverage columns")
	sentencesCmd.Flags().Float64Var(&sentencesGap, "sentence-gap", defaults.Pipeline.SentenceGapSeconds, "silence gap in seconds that closes a sentence")
	sentencesCmd.Flags().Float64Var(&sentencesCoverage, "coverage-threshold", defaults.Pipeline.StrictCoverage, "strict sentence coverage threshold")

	rootCmd.AddCommand(sentencesCmd)
}

func runSentences(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sentence-gap") {
		cfg.Pipeline.SentenceGapSeconds = sentencesGap
	}
	if cmd.Flags().Changed("coverage-threshold") {
		cfg.Pipeline.StrictCoverage = sentencesCoverage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	payload, err := transcript.ParsePayload(data)
	if err != nil {
		return err
	}
	t := transcript.FromPayload(payload, cfg.Pipeline.SentenceGapSeconds)
	if t.Len() == 0 {
		return fmt.Errorf("transcript has no usable words")
	}

	headers := []string{"#", "Words", "Time", "Speaker", "Text"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}

	var report []edit.SentenceCoverage
	var kept map[int]bool
	if sentencesResponse != "" {
		report, kept, err = coverageColumns(t, cfg, sentencesResponse)
		if err != nil {
			return err
		}
		headers = append(headers, "Coverage", "Verdict")
		aligns = append(aligns, alignRight, alignLeft)
	}

	rows := make([][]string, 0, len(t.Sentences()))
	for i, s := range t.Sentences() {
		words := t.Words()[s.Start : s.End+1]
		row := []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d-%d", s.Start, s.End),
			fmt.Sprintf("%.2f-%.2f", words[0].Start, words[len(words)-1].End),
			sentenceSpeaker(words),
			truncate(sentenceText(words), 60),
		}
		if report != nil {
			row = append(row, fmt.Sprintf("%.0f%%", report[i].Coverage*100), verdict(kept, s))
		}
		rows = append(rows, row)
	}

	if isTerminal(os.Stdout) {
		fmt.Println(renderTable(headers, rows, aligns))
	} else {
		fmt.Println(renderPlain(headers, rows))
	}
	return nil
}

// coverageColumns resolves the first concept's retained indices (alignment
// when it carries text, keep ranges otherwise) and reports what the
// coverage filter does with them.
func coverageColumns(t *transcript.Transcript, cfg *config.Config, responsePath string) ([]edit.SentenceCoverage, map[int]bool, error) {
	raw, err := os.ReadFile(responsePath)
	if err != nil {
		return nil, nil, fmt.Errorf("read model response: %w", err)
	}
	resp, err := edit.ParseResponse(string(raw))
	if err != nil {
		return nil, nil, err
	}
	if len(resp.Concepts) == 0 {
		return nil, nil, fmt.Errorf("model response has no concepts")
	}

	concept := resp.Concepts[0]
	var retained []int
	if strings.TrimSpace(concept.TrimmedText) != "" {
		retained = edit.AlignText(t, concept.TrimmedText).MatchedIndices
	} else {
		retained = edit.RangeIndices(concept.KeepRanges, t.MaxIndex())
	}

	report := edit.CoverageBySentence(t, retained)
	kept := make(map[int]bool)
	for _, i := range edit.NewCoverageFilter(cfg.Pipeline).Apply(t, retained) {
		kept[i] = true
	}
	return report, kept, nil
}

// verdict summarizes what the coverage filter did with one sentence: kept
// whole, kept with words trimmed out, or dropped.
func verdict(kept map[int]bool, s transcript.SentenceRange) string {
	count := 0
	for i := s.Start; i <= s.End; i++ {
		if kept[i] {
			count++
		}
	}
	switch {
	case count == s.Len():
		return "keep"
	case count > 0:
		return "trim"
	}
	return "drop"
}

func sentenceSpeaker(words []transcript.TimedWord) string {
	for _, w := range words {
		if w.SpeakerID != "" {
			return w.SpeakerID
		}
	}
	return "-"
}

func sentenceText(words []transcript.TimedWord) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
