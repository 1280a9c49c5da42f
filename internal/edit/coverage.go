package edit

import (
	"math"

	"github.com/imgly/videoclipper-sub001/internal/config"
	"github.com/imgly/videoclipper-sub001/internal/transcript"
)

// CoverageFilter rounds a retained-index set to whole sentences so an edit
// never stitches partial sentences together.
type CoverageFilter struct {
	// StrictThreshold is the per-sentence coverage at or above which the
	// sentence joins the strict set.
	StrictThreshold float64
	// MinWords and MinFraction decide when the strict set is too small to
	// trust: below max(MinWords, MinFraction * retained count) words the
	// loose set wins.
	MinWords    int
	MinFraction float64
}

// NewCoverageFilter builds a filter from the pipeline configuration.
func NewCoverageFilter(cfg config.Pipeline) CoverageFilter {
	return CoverageFilter{
		StrictThreshold: cfg.StrictCoverage,
		MinWords:        cfg.StrictMinWords,
		MinFraction:     cfg.StrictMinFraction,
	}
}

// SentenceCoverage describes how much of one sentence a retained-index set
// covers.
type SentenceCoverage struct {
	Sentence transcript.SentenceRange
	Retained int
	Coverage float64
}

// CoverageBySentence computes per-sentence coverage for a retained-index
// set. Inspection surfaces use it directly; Apply builds on it.
func CoverageBySentence(t *transcript.Transcript, retained []int) []SentenceCoverage {
	return coverageReport(t, retainedInDomain(t, retained))
}

// Apply revises a candidate retained-index set to honor whole-sentence
// semantics. A sentence the model mostly kept (coverage at or above the
// strict threshold) is treated as a deliberate trim and contributes exactly
// its retained indices, so removed fillers stay removed. A sentence the
// model kept only a fragment of would sound broken if stitched, so it is
// rounded up to the whole sentence, but only in the loose fallback set. The
// loose set is a superset of the strict set; it wins when the strict set is
// empty or covers suspiciously few words, since model edits are frequently
// almost sentence-aligned and a strict-only policy would discard too much
// good content. The result is sorted and duplicate-free.
func (f CoverageFilter) Apply(t *transcript.Transcript, retained []int) []int {
	retainedSet := retainedInDomain(t, retained)
	if len(retainedSet) == 0 {
		return nil
	}

	var strict, loose []int
	for _, sc := range coverageReport(t, retainedSet) {
		if sc.Retained == 0 {
			continue
		}
		if sc.Coverage >= f.StrictThreshold {
			for i := sc.Sentence.Start; i <= sc.Sentence.End; i++ {
				if retainedSet[i] {
					strict = append(strict, i)
					loose = append(loose, i)
				}
			}
			continue
		}
		for i := sc.Sentence.Start; i <= sc.Sentence.End; i++ {
			loose = append(loose, i)
		}
	}

	if len(strict) == 0 {
		return loose
	}
	floor := math.Max(float64(f.MinWords), f.MinFraction*float64(len(retainedSet)))
	if float64(len(strict)) < floor {
		return loose
	}
	return strict
}

func retainedInDomain(t *transcript.Transcript, retained []int) map[int]bool {
	set := make(map[int]bool, len(retained))
	for _, i := range retained {
		if i >= 0 && i <= t.MaxIndex() {
			set[i] = true
		}
	}
	return set
}

func coverageReport(t *transcript.Transcript, retainedSet map[int]bool) []SentenceCoverage {
	sentences := t.Sentences()
	report := make([]SentenceCoverage, 0, len(sentences))
	for _, s := range sentences {
		count := 0
		for i := s.Start; i <= s.End; i++ {
			if retainedSet[i] {
				count++
			}
		}
		report = append(report, SentenceCoverage{
			Sentence: s,
			Retained: count,
			Coverage: float64(count) / float64(s.Len()),
		})
	}
	return report
}
