// Package worlds defines the contract concrete simulations implement around
// the grid engine, plus a registry of world factories. The engine treats the
// rule sets uniformly: each world is an independent implementation of one
// interface, not a hierarchy.
package worlds

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"evogrid/internal/grid"
	"evogrid/internal/model"
)

var (
	ErrWorldExists   = errors.New("world already registered")
	ErrWorldNotFound = errors.New("world not found")
)

// World is a self-contained simulation: a grid of some cell type plus the
// rule set advancing it one generation per Step.
type World interface {
	Name() string
	Size() grid.Size
	// Generation reports how many steps have been committed.
	Generation() uint64
	// Step advances exactly one generation.
	Step()
	// Census aggregates the current population for stats collection.
	Census() model.Census
	// ColorAt is the per-cell color accessor read by rendering collaborators,
	// iterating the current cells in row-major order.
	ColorAt(loc grid.Loc) [4]uint8
}

// Config carries the dimensions, seed, and world-specific parameters used to
// build a World.
type Config struct {
	Width  int
	Height int
	Seed   uint64
	Params map[string]string
}

// ParamInt returns the named integer parameter, or def when absent or
// malformed.
func (c Config) ParamInt(name string, def int) int {
	v, ok := c.Params[name]
	if !ok {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

// ParamFloat returns the named float parameter, or def when absent or
// malformed.
func (c Config) ParamFloat(name string, def float64) float64 {
	v, ok := c.Params[name]
	if !ok {
		return def
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return parsed
}

// Factory builds a World from a Config.
type Factory func(cfg Config) (World, error)

var registry = struct {
	mu sync.RWMutex
	m  map[string]Factory
}{
	m: make(map[string]Factory),
}

// Register adds a world factory under name. World packages call this from
// init.
func Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("world name is required")
	}
	if factory == nil {
		return errors.New("world factory is required")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrWorldExists, name)
	}
	registry.m[name] = factory
	return nil
}

// MustRegister registers a factory and panics on conflict; for use from
// package init functions, where a duplicate name is a programming error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds the named world.
func New(name string, cfg Config) (World, error) {
	registry.mu.RLock()
	factory, ok := registry.m[name]
	registry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorldNotFound, name)
	}
	return factory(cfg)
}

// Names lists the registered worlds in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
