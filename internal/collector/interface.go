package collector

import (
	"context"
	"time"

	"github.com/quantsift/quantsift/internal/core"
)

// Config holds fetcher configuration
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Fetcher retrieves a fundamentals snapshot for one ticker. A fetch
// error means the symbol has no usable data for this run; the caller
// decides whether to skip or abort.
type Fetcher interface {
	// Metadata
	Name() string

	// Lifecycle
	Init(cfg Config) error

	// Fetch returns the snapshot for one symbol.
	Fetch(ctx context.Context, symbol string) (*core.Snapshot, error)
}
