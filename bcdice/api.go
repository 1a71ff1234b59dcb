package bcdice

import (
	"context"
)

// API defines the interface for BCDice-API operations
type API interface {
	// BaseURL returns the server the client talks to
	BaseURL() string

	// GetAPIVersion retrieves the API and BCDice versions
	GetAPIVersion(ctx context.Context) (*APIVersion, error)

	// GetAPIAdmin retrieves the server administrator information
	GetAPIAdmin(ctx context.Context) (*APIAdmin, error)

	// GetAvailableGameSystems retrieves every game system the server supports
	GetAvailableGameSystems(ctx context.Context) ([]AvailableGameSystem, error)

	// GetGameSystem retrieves a single game system by ID
	GetGameSystem(ctx context.Context, id string) (*GameSystem, error)

	// DiceRoll runs a dice command with the given game system
	DiceRoll(ctx context.Context, id, command string) (*DiceRollResults, error)

	// RunOriginalTable rolls a user-defined table
	RunOriginalTable(ctx context.Context, table OriginalTable) (*OriginalTableResults, error)
}

var _ API = (*Client)(nil)
