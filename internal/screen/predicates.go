package screen

import (
	"fmt"

	"github.com/quantsift/quantsift/internal/core"
)

// Fixed screen constants, deliberately not configurable.
const (
	// growth clauses
	minEarningsGrowthPct = 8.0
	minRevenueGrowthPct  = 5.0

	// quality clauses
	maxDebtToEquity = 150.0
	maxRecScore     = 2.8 // lower recommendation score = more bullish
)

// Thresholds are the user-tunable screening inputs.
type Thresholds struct {
	MaxPE        float64 // trailing P/E ceiling
	MaxForwardPE float64
	MaxPEG       float64
	MinROE       float64 // percent
	MinUpside    float64 // percent
}

// DefaultThresholds returns the stock screening defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxPE:        18,
		MaxForwardPE: 15,
		MaxPEG:       1.2,
		MinROE:       8,
		MinUpside:    15,
	}
}

// Validate checks each threshold against its allowed range.
func (t Thresholds) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"max_pe", t.MaxPE, 5, 30},
		{"max_forward_pe", t.MaxForwardPE, 5, 30},
		{"max_peg", t.MaxPEG, 0.5, 3.0},
		{"min_roe", t.MinROE, 0, 30},
		{"min_upside", t.MinUpside, 0, 50},
	}
	for _, c := range checks {
		if c.value < c.min || c.value > c.max {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("%s must be between %g and %g, got %g", c.name, c.min, c.max, c.value))
		}
	}
	return nil
}

// Each clause below requires the field to be present. A present zero is
// compared against the threshold like any other value; only nil counts
// as absent.

// Undervalued reports whether any valuation clause holds: trailing P/E
// under MaxPE, forward P/E under MaxForwardPE, or PEG under MaxPEG.
// All three fields absent means false.
func Undervalued(s *core.Snapshot, t Thresholds) bool {
	if s.TrailingPE != nil && *s.TrailingPE < t.MaxPE {
		return true
	}
	if s.ForwardPE != nil && *s.ForwardPE < t.MaxForwardPE {
		return true
	}
	if s.PEGRatio != nil && *s.PEGRatio < t.MaxPEG {
		return true
	}
	return false
}

// Growth reports whether any growth clause holds: earnings growth above
// 8%, revenue growth above 5%, or analyst upside above MinUpside.
func Growth(s *core.Snapshot, t Thresholds) bool {
	if s.EarningsGrowth != nil && *s.EarningsGrowth > minEarningsGrowthPct {
		return true
	}
	if s.RevenueGrowth != nil && *s.RevenueGrowth > minRevenueGrowthPct {
		return true
	}
	if s.Upside != nil && *s.Upside > t.MinUpside {
		return true
	}
	return false
}

// Quality reports whether every quality clause holds: ROE above MinROE,
// debt/equity under 150, and recommendation score under 2.8.
func Quality(s *core.Snapshot, t Thresholds) bool {
	if s.ROE == nil || *s.ROE <= t.MinROE {
		return false
	}
	if s.DebtToEquity == nil || *s.DebtToEquity >= maxDebtToEquity {
		return false
	}
	if s.RecScore == nil || *s.RecScore >= maxRecScore {
		return false
	}
	return true
}

// Passes combines the three screens with logical AND.
func Passes(s *core.Snapshot, t Thresholds) bool {
	return Undervalued(s, t) && Growth(s, t) && Quality(s, t)
}
