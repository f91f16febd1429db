package screen

import (
	"sort"

	"github.com/quantsift/quantsift/internal/core"
)

// missingRatioSentinel stands in for an absent PEG or trailing P/E in
// the value score. It dominates both ratio terms, so a record that
// cleared the boolean screen without those fields stays visible but
// ranks last instead of being dropped.
const missingRatioSentinel = 999.0

// Score weights
const (
	pegWeight    = 0.4
	peWeight     = 0.3
	upsideWeight = 0.3
)

// Score computes the composite value score; lower is more attractive.
// Absent PEG and trailing P/E substitute the sentinel, absent upside
// substitutes zero.
func Score(s *core.Snapshot) float64 {
	peg := missingRatioSentinel
	if s.PEGRatio != nil {
		peg = *s.PEGRatio
	}

	pe := missingRatioSentinel
	if s.TrailingPE != nil {
		pe = *s.TrailingPE
	}

	up := 0.0
	if s.Upside != nil {
		up = *s.Upside
	}

	return peg*pegWeight + pe*peWeight - up*upsideWeight
}

// Rank scores the surviving snapshots and sorts them ascending by
// value score. The sort is stable: ties keep their enumeration order.
func Rank(snapshots []core.Snapshot) []core.ScreenedRecord {
	records := make([]core.ScreenedRecord, len(snapshots))
	for i, s := range snapshots {
		records[i] = core.ScreenedRecord{
			Snapshot:   s,
			ValueScore: Score(&s),
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ValueScore < records[j].ValueScore
	})

	for i := range records {
		records[i].Rank = i + 1
	}

	return records
}
