package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/levenlabs/go-lflag"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/retroplan/retroplan/pkg/types"
)

// FirestoreProvider implements the Database interface using Google Cloud
// Firestore. Scenarios live under sites/{siteID}/scenarios/{scenarioID} as
// JSON blobs.
type FirestoreProvider struct {
	client    *firestore.Client
	projectID string
	database  string
}

// configuredFirestore sets up the Firestore provider.
// It registers flags for configuration.
func configuredFirestore() *FirestoreProvider {
	projectID := lflag.String("firestore-project-id", "", "Google Cloud Project ID for Firestore")
	database := lflag.String("firestore-database", "", "Google Cloud Firestore Database")
	emulator := lflag.String("firestore-emulator", "", "Use Firestore emulator")

	f := &FirestoreProvider{}

	lflag.Do(func() {
		f.projectID = *projectID
		f.database = *database

		// set this because that's how firestore client expects it
		if *emulator != "" {
			os.Setenv("FIRESTORE_EMULATOR_HOST", *emulator)
		}
	})

	return f
}

// Validate checks if the provider is properly configured.
func (f *FirestoreProvider) Validate() error {
	// Project ID verification could be here, but we allow empty if inferred.
	return nil
}

// Init initializes the Firestore client.
// This must be called before using the provider methods.
func (f *FirestoreProvider) Init(ctx context.Context) error {
	projectID := f.projectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	database := f.database
	if database == "" {
		database = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return fmt.Errorf("failed to create firestore client (project=%s, database=%s): %w", projectID, database, err)
	}
	f.client = client
	return nil
}

// Close closes the Firestore client connection.
func (f *FirestoreProvider) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func (f *FirestoreProvider) scenarios(siteID string) (*firestore.CollectionRef, error) {
	if siteID == "" {
		return nil, fmt.Errorf("siteID cannot be empty")
	}
	return f.client.Collection("sites").Doc(siteID).Collection("scenarios"), nil
}

// SaveScenario writes the scenario as a JSON blob keyed by its ID.
func (f *FirestoreProvider) SaveScenario(ctx context.Context, siteID string, scenario types.Scenario) error {
	if scenario.ID == "" {
		return fmt.Errorf("scenario ID cannot be empty")
	}
	jsonBytes, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	coll, err := f.scenarios(siteID)
	if err != nil {
		return err
	}
	_, err = coll.Doc(scenario.ID).Set(ctx, map[string]interface{}{
		"json":      string(jsonBytes),
		"updatedAt": scenario.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// GetScenario fetches one scenario by ID.
func (f *FirestoreProvider) GetScenario(ctx context.Context, siteID, scenarioID string) (types.Scenario, error) {
	coll, err := f.scenarios(siteID)
	if err != nil {
		return types.Scenario{}, err
	}
	doc, err := coll.Doc(scenarioID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Scenario{}, ErrScenarioNotFound
		}
		return types.Scenario{}, fmt.Errorf("failed to fetch scenario doc: %w", err)
	}
	return scenarioFromDoc(doc)
}

// ListScenarios returns the site's scenarios, newest first.
func (f *FirestoreProvider) ListScenarios(ctx context.Context, siteID string) ([]types.Scenario, error) {
	coll, err := f.scenarios(siteID)
	if err != nil {
		return nil, err
	}

	iter := coll.OrderBy("updatedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var scenarios []types.Scenario
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate scenarios: %w", err)
		}
		scenario, err := scenarioFromDoc(doc)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// DeleteScenario removes one scenario by ID.
func (f *FirestoreProvider) DeleteScenario(ctx context.Context, siteID, scenarioID string) error {
	coll, err := f.scenarios(siteID)
	if err != nil {
		return err
	}
	if _, err := coll.Doc(scenarioID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	return nil
}

func scenarioFromDoc(doc *firestore.DocumentSnapshot) (types.Scenario, error) {
	val, err := doc.DataAt("json")
	if err != nil {
		return types.Scenario{}, fmt.Errorf("scenario document missing 'json' field: %w", err)
	}
	jsonStr, ok := val.(string)
	if !ok {
		return types.Scenario{}, fmt.Errorf("scenario 'json' field is not a string")
	}
	var scenario types.Scenario
	if err := json.Unmarshal([]byte(jsonStr), &scenario); err != nil {
		return types.Scenario{}, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return scenario, nil
}
