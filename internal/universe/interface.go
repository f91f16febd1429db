package universe

import (
	"context"

	"github.com/quantsift/quantsift/internal/core"
)

// Provider resolves the current constituent ticker list of a named
// index. A failed resolution is fatal for the caller's run: there is
// no retry and no partial universe.
type Provider interface {
	// Name returns the unique identifier for this provider
	Name() string

	// Resolve returns the ticker symbols of the index in source order.
	Resolve(ctx context.Context, index core.Index) ([]string, error)
}
