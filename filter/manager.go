package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/bodocord/bodocord/bcdice"
)

// MaxResults is the number of game systems a Discord reply can list
const MaxResults = 25

// Manager holds the named presets and applies filters to game systems
type Manager struct {
	compiler Compiler
	selector Selector
	presets  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithSelector sets a custom selector
func WithSelector(selector Selector) ManagerOption {
	return func(m *Manager) {
		m.selector = selector
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		selector: NewConcurrentSelector(),
		presets:  make(map[string]CompiledFilter),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Compile compiles an ad hoc expression
func (m *Manager) Compile(expression string) (CompiledFilter, error) {
	return m.compiler.Compile(expression)
}

// RegisterPresets compiles every preset before registering any of them
func (m *Manager) RegisterPresets(presets map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(presets))
	for name, expression := range presets {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.presets, compiled)
	m.mu.Unlock()
	return nil
}

// Preset returns a registered preset by name
func (m *Manager) Preset(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	filter, ok := m.presets[name]
	return filter, ok
}

// Presets returns the registered preset names in sorted order
func (m *Manager) Presets() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.presets))
}

// Apply compiles expression and selects the matching systems
func (m *Manager) Apply(ctx context.Context, expression string, systems []bcdice.AvailableGameSystem, limit int) ([]bcdice.AvailableGameSystem, error) {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return nil, err
	}
	return m.selector.Select(ctx, filter, systems, limit)
}

// ApplyPreset selects the systems matching a registered preset
func (m *Manager) ApplyPreset(ctx context.Context, name string, systems []bcdice.AvailableGameSystem, limit int) ([]bcdice.AvailableGameSystem, error) {
	filter, ok := m.Preset(name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPreset, name)
	}
	return m.selector.Select(ctx, filter, systems, limit)
}
