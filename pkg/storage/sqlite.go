package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/levenlabs/go-lflag"
	_ "modernc.org/sqlite"

	"github.com/retroplan/retroplan/pkg/types"
)

// SQLiteProvider implements the Database interface on a local SQLite file,
// for self-hosted runs with no cloud dependencies.
type SQLiteProvider struct {
	path string
	db   *sql.DB
}

// configuredSQLite sets up the SQLite provider.
// It registers flags for configuration.
func configuredSQLite() *SQLiteProvider {
	path := lflag.String("sqlite-path", "retroplan.db", "Path to the SQLite database file")

	s := &SQLiteProvider{}

	lflag.Do(func() {
		s.path = *path
	})

	return s
}

// NewSQLite returns a provider backed by the file at path. Use ":memory:"
// for an ephemeral database.
func NewSQLite(path string) *SQLiteProvider {
	return &SQLiteProvider{path: path}
}

// Validate checks if the provider is properly configured.
func (s *SQLiteProvider) Validate() error {
	if s.path == "" {
		return fmt.Errorf("sqlite-path is required")
	}
	return nil
}

// Init opens the database and creates the schema.
func (s *SQLiteProvider) Init(ctx context.Context) error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database (%s): %w", s.path, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS scenarios (
		site_id TEXT NOT NULL,
		id TEXT NOT NULL,
		json TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (site_id, id)
	);
	CREATE INDEX IF NOT EXISTS idx_scenarios_updated ON scenarios(site_id, updated_at);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database.
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScenario inserts or replaces the scenario as a JSON blob.
func (s *SQLiteProvider) SaveScenario(ctx context.Context, siteID string, scenario types.Scenario) error {
	if siteID == "" {
		return fmt.Errorf("siteID cannot be empty")
	}
	if scenario.ID == "" {
		return fmt.Errorf("scenario ID cannot be empty")
	}
	jsonBytes, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
	INSERT OR REPLACE INTO scenarios (site_id, id, json, updated_at)
	VALUES (?, ?, ?, ?)
	`, siteID, scenario.ID, string(jsonBytes), scenario.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"))
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// GetScenario fetches one scenario by ID.
func (s *SQLiteProvider) GetScenario(ctx context.Context, siteID, scenarioID string) (types.Scenario, error) {
	var jsonStr string
	err := s.db.QueryRowContext(ctx, `
	SELECT json FROM scenarios WHERE site_id = ? AND id = ?
	`, siteID, scenarioID).Scan(&jsonStr)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Scenario{}, ErrScenarioNotFound
	}
	if err != nil {
		return types.Scenario{}, fmt.Errorf("failed to fetch scenario: %w", err)
	}

	var scenario types.Scenario
	if err := json.Unmarshal([]byte(jsonStr), &scenario); err != nil {
		return types.Scenario{}, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return scenario, nil
}

// ListScenarios returns the site's scenarios, newest first.
func (s *SQLiteProvider) ListScenarios(ctx context.Context, siteID string) ([]types.Scenario, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT json FROM scenarios WHERE site_id = ? ORDER BY updated_at DESC
	`, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []types.Scenario
	for rows.Next() {
		var jsonStr string
		if err := rows.Scan(&jsonStr); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		var scenario types.Scenario
		if err := json.Unmarshal([]byte(jsonStr), &scenario); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, rows.Err()
}

// DeleteScenario removes one scenario by ID.
func (s *SQLiteProvider) DeleteScenario(ctx context.Context, siteID, scenarioID string) error {
	if _, err := s.db.ExecContext(ctx, `
	DELETE FROM scenarios WHERE site_id = ? AND id = ?
	`, siteID, scenarioID); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}
