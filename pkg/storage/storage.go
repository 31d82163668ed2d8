// Package storage persists saved retrofit scenarios. Two providers are
// available: Firestore for the hosted deployment and SQLite for self-hosted
// or local runs.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/levenlabs/go-lflag"

	"github.com/retroplan/retroplan/pkg/types"
)

var ErrScenarioNotFound = errors.New("scenario not found")

// Database defines the interface for persisting scenarios.
type Database interface {
	// SaveScenario inserts or replaces a scenario by its ID.
	SaveScenario(ctx context.Context, siteID string, scenario types.Scenario) error
	GetScenario(ctx context.Context, siteID, scenarioID string) (types.Scenario, error)
	// ListScenarios returns scenarios newest first.
	ListScenarios(ctx context.Context, siteID string) ([]types.Scenario, error)
	DeleteScenario(ctx context.Context, siteID, scenarioID string) error

	// Lifecycle
	Close() error
}

// Configured sets up the storage provider based on flags.
func Configured() Database {
	provider := lflag.String("storage-provider", "sqlite", "Storage provider to use (available: firestore, sqlite)")

	var p struct{ Database }

	fs := configuredFirestore()
	sq := configuredSQLite()

	lflag.Do(func() {
		switch *provider {
		case "firestore":
			if err := fs.Validate(); err != nil {
				panic(fmt.Sprintf("firestore validation failed: %v", err))
			}
			p.Database = fs
			if err := fs.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("firestore init failed: %v", err))
			}
		case "sqlite":
			if err := sq.Validate(); err != nil {
				panic(fmt.Sprintf("sqlite validation failed: %v", err))
			}
			p.Database = sq
			if err := sq.Init(context.Background()); err != nil {
				panic(fmt.Sprintf("sqlite init failed: %v", err))
			}
		default:
			panic(fmt.Sprintf("unknown storage provider: %s", *provider))
		}
	})

	return &p
}
