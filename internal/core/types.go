package core

import "time"

// Index identifies a supported stock universe.
type Index string

const (
	IndexSP500 Index = "sp500"
)

// Snapshot is a point-in-time bag of fundamental and valuation fields
// for one ticker. Numeric fields are pointers because the provider
// frequently omits them; nil means absent. A present zero is a real
// value and must never be confused with absence.
type Snapshot struct {
	Symbol  string
	Company string
	Sector  string

	// Valuation
	TrailingPE *float64
	ForwardPE  *float64
	PEGRatio   *float64

	// Profitability and leverage
	ROE          *float64 // percent
	DebtToEquity *float64

	// Growth
	EarningsGrowth *float64 // percent
	RevenueGrowth  *float64 // percent

	// Analyst sentiment. Lower RecScore = more bullish consensus.
	RecScore    *float64
	TargetPrice *float64
	Price       *float64

	// Upside is (TargetPrice - Price) / Price * 100, derived at the
	// fetch boundary when both prices are known.
	Upside *float64 // percent

	FetchedAt time.Time
	Source    string
}

// IsValid checks if the snapshot has required identity fields.
func (s Snapshot) IsValid() bool {
	return s.Symbol != ""
}

// ScreenedRecord is a Snapshot that passed all three screening
// predicates, ranked by its composite value score (lower is better).
type ScreenedRecord struct {
	Snapshot
	ValueScore float64
	Rank       int // 1-based, assigned after sorting
}

// Float returns a pointer to v. Convenience for building snapshots.
func Float(v float64) *float64 {
	return &v
}
