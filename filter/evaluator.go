package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bodocord/bodocord/bcdice"
)

// SelectorOption configures a selector
type SelectorOption func(*ConcurrentSelector)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) SelectorOption {
	return func(s *ConcurrentSelector) {
		if workers > 0 {
			s.workerCount = workers
		}
	}
}

// WithBatchSize sets the chunk size below which evaluation stays sequential
func WithBatchSize(size int) SelectorOption {
	return func(s *ConcurrentSelector) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// ConcurrentSelector evaluates a filter over game systems in parallel chunks
type ConcurrentSelector struct {
	workerCount int
	batchSize   int
}

// NewConcurrentSelector creates a new concurrent selector
func NewConcurrentSelector(opts ...SelectorOption) *ConcurrentSelector {
	s := &ConcurrentSelector{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the matching systems in their original order. A limit of
// zero or less returns every match.
func (s *ConcurrentSelector) Select(ctx context.Context, filter Filter, systems []bcdice.AvailableGameSystem, limit int) ([]bcdice.AvailableGameSystem, error) {
	var matches []bcdice.AvailableGameSystem
	if len(systems) < s.batchSize {
		matches = selectSequential(filter, systems)
	} else {
		var err error
		matches, err = s.selectConcurrent(ctx, filter, systems)
		if err != nil {
			return nil, err
		}
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func selectSequential(filter Filter, systems []bcdice.AvailableGameSystem) []bcdice.AvailableGameSystem {
	matches := make([]bcdice.AvailableGameSystem, 0, len(systems)/4)
	for _, system := range systems {
		if filter.Evaluate(system) {
			matches = append(matches, system)
		}
	}
	return matches
}

func (s *ConcurrentSelector) selectConcurrent(ctx context.Context, filter Filter, systems []bcdice.AvailableGameSystem) ([]bcdice.AvailableGameSystem, error) {
	chunkSize := max(len(systems)/s.workerCount, s.batchSize)
	chunks := make([][]bcdice.AvailableGameSystem, (len(systems)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(systems))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = selectSequential(filter, systems[start:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matches []bcdice.AvailableGameSystem
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	return matches, nil
}
