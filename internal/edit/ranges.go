package edit

import (
	"encoding/json"
	"math"
	"sort"
)

// IndexRange is an inclusive span over canonical word indices.
type IndexRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// KeepRangeList decodes the model's keep_ranges field. Entries are expected
// to be [from, to] pairs but commonly arrive reversed, as floats, or as a
// bare [i] singleton; entries that are not number lists are skipped, and a
// field that is not an array at all counts as absent.
type KeepRangeList []IndexRange

func (k *KeepRangeList) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		*k = nil
		return nil
	}
	ranges := make(KeepRangeList, 0, len(entries))
	for _, entry := range entries {
		var nums []float64
		if err := json.Unmarshal(entry, &nums); err != nil || len(nums) == 0 {
			continue
		}
		from := int(math.Round(nums[0]))
		to := from
		if len(nums) > 1 {
			to = int(math.Round(nums[1]))
		}
		ranges = append(ranges, IndexRange{From: from, To: to})
	}
	*k = ranges
	return nil
}

// NormalizeRanges clamps every range into [0, maxIndex], orders each pair,
// sorts by From, and merges adjacent or overlapping ranges into one. Merging
// closes single-index gaps the model introduces through off-by-one errors. A
// negative maxIndex (empty transcript) yields nil.
func NormalizeRanges(ranges []IndexRange, maxIndex int) []IndexRange {
	if maxIndex < 0 || len(ranges) == 0 {
		return nil
	}
	normalized := make([]IndexRange, 0, len(ranges))
	for _, r := range ranges {
		from, to := r.From, r.To
		if from > to {
			from, to = to, from
		}
		normalized = append(normalized, IndexRange{
			From: clampIndex(from, maxIndex),
			To:   clampIndex(to, maxIndex),
		})
	}
	sort.Slice(normalized, func(i, j int) bool {
		if normalized[i].From != normalized[j].From {
			return normalized[i].From < normalized[j].From
		}
		return normalized[i].To < normalized[j].To
	})

	merged := make([]IndexRange, 0, len(normalized))
	for _, r := range normalized {
		if n := len(merged); n > 0 && r.From <= merged[n-1].To+1 {
			if r.To > merged[n-1].To {
				merged[n-1].To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// RangeIndices expands keep ranges into the retained word indices after
// normalization and merging. The result is sorted and duplicate-free.
func RangeIndices(ranges []IndexRange, maxIndex int) []int {
	var indices []int
	for _, r := range NormalizeRanges(ranges, maxIndex) {
		for i := r.From; i <= r.To; i++ {
			indices = append(indices, i)
		}
	}
	return indices
}

func clampIndex(i, maxIndex int) int {
	if i < 0 {
		return 0
	}
	if i > maxIndex {
		return maxIndex
	}
	return i
}
