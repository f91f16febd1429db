package notifier

import (
	"context"
	"time"

	"github.com/quantsift/quantsift/internal/core"
)

// Config holds notifier configuration
type Config struct {
	Type   string         `mapstructure:"type"`
	Params map[string]any `mapstructure:"params"`
}

// Summary is the run outcome delivered to notifiers.
type Summary struct {
	RunID        string
	Index        core.Index
	UniverseSize int
	Scanned      int
	Failed       int
	Matches      int
	Duration     time.Duration

	// Top holds the head of the ranked shortlist, cheapest first.
	// Matches may exceed len(Top).
	Top []core.ScreenedRecord
}

// Notifier delivers run summaries to an external channel.
type Notifier interface {
	// Name returns the unique identifier for this notifier
	Name() string

	// Init initializes the notifier with configuration
	Init(cfg Config) error

	// Notify delivers one run summary
	Notify(ctx context.Context, summary Summary) error
}
