package universe

import (
	"context"
	"sync"

	"github.com/quantsift/quantsift/internal/core"
)

// Cached wraps a Provider with a process-lifetime cache. A resolved
// constituent list is read-only once stored and is invalidated only by
// process restart. Errors are never cached.
type Cached struct {
	provider Provider

	mu    sync.Mutex
	lists map[core.Index][]string
}

// NewCached creates a caching wrapper around the given provider.
func NewCached(p Provider) *Cached {
	return &Cached{
		provider: p,
		lists:    make(map[core.Index][]string),
	}
}

func (c *Cached) Name() string {
	return c.provider.Name()
}

// Resolve returns the cached list for the index, resolving it through
// the underlying provider on first use.
func (c *Cached) Resolve(ctx context.Context, index core.Index) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if symbols, ok := c.lists[index]; ok {
		return symbols, nil
	}

	symbols, err := c.provider.Resolve(ctx, index)
	if err != nil {
		return nil, err
	}

	c.lists[index] = symbols
	return symbols, nil
}
