package edit

import (
	"reflect"
	"testing"

	"github.com/imgly/videoclipper-sub001/internal/config"
)

func defaultFilter() CoverageFilter {
	return NewCoverageFilter(config.Default().Pipeline)
}

func TestCoverageFilter_DecisiveSentenceKeepsModelTrim(t *testing.T) {
	// The model dropped a filler from a sentence it otherwise kept whole.
	// Coverage 3/4 is decisive, so the filler must stay dropped.
	tr := testTranscript("I", "uh", "love", "this")
	got := defaultFilter().Apply(tr, []int{0, 2, 3})
	if want := []int{0, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("retained = %v, want %v", got, want)
	}
}

func TestCoverageFilter_FragmentRoundsUpToWholeSentence(t *testing.T) {
	// One word out of a two-word sentence would sound broken; the whole
	// sentence comes back. The untouched second sentence stays out.
	tr := testTranscript("Hello", "there.", "How", "are", "you?")
	got := defaultFilter().Apply(tr, []int{0})
	if want := []int{0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("retained = %v, want %v", got, want)
	}
}

func TestCoverageFilter_StrictSetWinsWhenLargeEnough(t *testing.T) {
	// Six decisively kept words clear the floor, so the stray fragment in
	// the second sentence is discarded instead of dragging it back in.
	tr := testTranscript("a", "b", "c", "d", "e", "f.", "g", "h", "i", "j")
	got := defaultFilter().Apply(tr, []int{0, 1, 2, 3, 4, 5, 6})
	if want := []int{0, 1, 2, 3, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("retained = %v, want %v", got, want)
	}
}

func TestCoverageFilter_SmallStrictSetFallsBackToLoose(t *testing.T) {
	// Only three decisive words is below the trust floor, so the loose
	// set wins and the fragmented sentence is restored whole.
	tr := testTranscript("a", "b", "c.", "d", "e", "f", "g")
	got := defaultFilter().Apply(tr, []int{0, 1, 2, 5})
	if want := []int{0, 1, 2, 3, 4, 5, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("retained = %v, want %v", got, want)
	}
}

func TestCoverageFilter_EmptyRetained(t *testing.T) {
	tr := testTranscript("a", "b")
	if got := defaultFilter().Apply(tr, nil); got != nil {
		t.Errorf("expected nil for empty retained set, got %v", got)
	}
}

func TestCoverageFilter_OutOfDomainIndicesIgnored(t *testing.T) {
	tr := testTranscript("a", "b")
	if got := defaultFilter().Apply(tr, []int{-1, 100}); got != nil {
		t.Errorf("expected nil when nothing is in domain, got %v", got)
	}
}

func TestCoverageFilter_RaisingThresholdNeverGrowsStrictSet(t *testing.T) {
	// Sentence one is half kept, sentence two fully kept. With the floor
	// disabled the result size must be nonincreasing in the threshold.
	tr := testTranscript("a", "b", "c", "d.", "e", "f")
	retained := []int{0, 1, 4, 5}
	prev := -1
	for _, threshold := range []float64{0.3, 0.6, 0.9, 1.0} {
		f := CoverageFilter{StrictThreshold: threshold}
		n := len(f.Apply(tr, retained))
		if prev >= 0 && n > prev {
			t.Fatalf("threshold %g grew the result: %d > %d", threshold, n, prev)
		}
		prev = n
	}
}

func TestCoverageBySentence_Report(t *testing.T) {
	tr := testTranscript("Hello", "there.", "How", "are", "you?")
	report := CoverageBySentence(tr, []int{0})
	if len(report) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(report))
	}
	if report[0].Retained != 1 || !floatEq(report[0].Coverage, 0.5) {
		t.Errorf("first sentence: retained %d coverage %g, want 1 and 0.5",
			report[0].Retained, report[0].Coverage)
	}
	if report[1].Retained != 0 || report[1].Coverage != 0 {
		t.Errorf("second sentence: retained %d coverage %g, want 0 and 0",
			report[1].Retained, report[1].Coverage)
	}
}
