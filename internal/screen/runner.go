package screen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quantsift/quantsift/internal/collector"
	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/metrics"
	"github.com/quantsift/quantsift/internal/universe"
	"go.uber.org/zap"
)

// Progress is invoked once per symbol as the scan advances. i is
// 1-based, n is the universe size.
type Progress func(i, n int, symbol string)

// Result holds the outcome of one screening run. All data is
// run-scoped; nothing persists beyond the exported report.
type Result struct {
	RunID        string
	Index        core.Index
	Thresholds   Thresholds
	UniverseSize int
	Scanned      int
	Failed       int
	Records      []core.ScreenedRecord
	Started      time.Time
	Finished     time.Time
}

// Empty reports whether the run produced zero matches. This is a
// normal terminal outcome, not an error.
func (r *Result) Empty() bool {
	return len(r.Records) == 0
}

// Duration returns the wall-clock duration of the run.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Runner drives the fetch-filter-rank pipeline over a universe.
type Runner struct {
	provider    universe.Provider
	fetcher     collector.Fetcher
	thresholds  Thresholds
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Registry
	progress    Progress
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithConcurrency sets the fetch fan-out. Values below 2 keep the
// sequential behavior.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) { r.concurrency = n }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *metrics.Registry) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithProgress sets the per-symbol progress callback.
func WithProgress(p Progress) RunnerOption {
	return func(r *Runner) { r.progress = p }
}

// NewRunner creates a Runner over the given universe provider and
// metrics fetcher.
func NewRunner(p universe.Provider, f collector.Fetcher, t Thresholds, opts ...RunnerOption) (*Runner, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		provider:    p,
		fetcher:     f,
		thresholds:  t,
		concurrency: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.concurrency < 1 {
		r.concurrency = 1
	}
	return r, nil
}

// Run resolves the universe, fetches one snapshot per constituent in
// universe order, keeps the snapshots that pass all three screens, and
// ranks them by value score. A universe failure aborts the run; a
// per-symbol failure is logged, counted, and skipped so one bad symbol
// never loses the rest of the scan. Cancelling the context aborts the
// whole run.
func (r *Runner) Run(ctx context.Context, index core.Index) (*Result, error) {
	started := time.Now()

	symbols, err := r.provider.Resolve(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("resolving universe %q: %w", index, err)
	}

	result := &Result{
		RunID:        uuid.NewString(),
		Index:        index,
		Thresholds:   r.thresholds,
		UniverseSize: len(symbols),
		Started:      started,
	}

	r.logger.Info("screening run started",
		zap.String("run_id", result.RunID),
		zap.String("index", string(index)),
		zap.Int("universe_size", len(symbols)),
		zap.Int("concurrency", r.concurrency),
	)
	if r.metrics != nil {
		r.metrics.RunStarted(len(symbols))
	}

	snapshots, scanned, failed, err := r.scan(ctx, symbols)
	if err != nil {
		return nil, err
	}
	result.Scanned = scanned
	result.Failed = failed

	var survivors []core.Snapshot
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		if Passes(s, r.thresholds) {
			survivors = append(survivors, *s)
		}
	}

	result.Records = Rank(survivors)
	result.Finished = time.Now()

	r.logger.Info("screening run finished",
		zap.String("run_id", result.RunID),
		zap.Int("scanned", result.Scanned),
		zap.Int("failed", result.Failed),
		zap.Int("matches", len(result.Records)),
		zap.Duration("duration", result.Duration()),
	)
	if r.metrics != nil {
		r.metrics.RunFinished(len(result.Records), result.Duration().Seconds())
	}

	return result, nil
}

// scan fetches every symbol, preserving universe order in the returned
// slice. A nil entry marks a failed fetch.
func (r *Runner) scan(ctx context.Context, symbols []string) (snapshots []*core.Snapshot, scanned, failed int, err error) {
	if r.concurrency <= 1 {
		return r.scanSequential(ctx, symbols)
	}
	return r.scanParallel(ctx, symbols)
}

func (r *Runner) scanSequential(ctx context.Context, symbols []string) ([]*core.Snapshot, int, int, error) {
	snapshots := make([]*core.Snapshot, len(symbols))
	var failed int

	for i, symbol := range symbols {
		select {
		case <-ctx.Done():
			return nil, 0, 0, ctx.Err()
		default:
		}

		if r.progress != nil {
			r.progress(i+1, len(symbols), symbol)
		}

		snapshots[i] = r.fetchOne(ctx, symbol)
		if snapshots[i] == nil {
			failed++
		}
	}

	return snapshots, len(symbols), failed, nil
}

// scanParallel fans fetches out to a bounded worker pool. Results are
// written by index, so ranking still sees universe order.
func (r *Runner) scanParallel(ctx context.Context, symbols []string) ([]*core.Snapshot, int, int, error) {
	snapshots := make([]*core.Snapshot, len(symbols))

	type job struct {
		i      int
		symbol string
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed, done int

	for w := 0; w < r.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				snap := r.fetchOne(ctx, j.symbol)
				snapshots[j.i] = snap

				mu.Lock()
				done++
				if snap == nil {
					failed++
				}
				if r.progress != nil {
					r.progress(done, len(symbols), j.symbol)
				}
				mu.Unlock()
			}
		}()
	}

	var cancelled bool
dispatch:
	for i, symbol := range symbols {
		select {
		case <-ctx.Done():
			cancelled = true
			break dispatch
		case jobs <- job{i: i, symbol: symbol}:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled {
		return nil, 0, 0, ctx.Err()
	}
	return snapshots, len(symbols), failed, nil
}

// fetchOne applies the best-effort policy: any fetch error yields nil
// and the run moves on.
func (r *Runner) fetchOne(ctx context.Context, symbol string) *core.Snapshot {
	if r.metrics != nil {
		r.metrics.SymbolScanned()
	}

	snap, err := r.fetcher.Fetch(ctx, symbol)
	if err != nil {
		r.logger.Debug("symbol skipped",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		if r.metrics != nil {
			r.metrics.FetchFailed()
		}
		return nil
	}
	return snap
}
