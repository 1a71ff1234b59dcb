package filter

import (
	"context"

	"github.com/bodocord/bodocord/bcdice"
)

// Filter decides whether a game system is selected
type Filter interface {
	// Evaluate checks if a game system matches the filter
	Evaluate(system bcdice.AvailableGameSystem) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the expression the filter was compiled from
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Selector applies a filter to a list of game systems
type Selector interface {
	Select(ctx context.Context, filter Filter, systems []bcdice.AvailableGameSystem, limit int) ([]bcdice.AvailableGameSystem, error)
}
