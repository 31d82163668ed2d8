// Package storagemock provides a testify mock of the storage Database.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/retroplan/retroplan/pkg/storage"
	"github.com/retroplan/retroplan/pkg/types"
)

type MockDatabase struct {
	mock.Mock
}

var _ storage.Database = (*MockDatabase)(nil)

func (m *MockDatabase) SaveScenario(ctx context.Context, siteID string, scenario types.Scenario) error {
	args := m.Called(ctx, siteID, scenario)
	return args.Error(0)
}

func (m *MockDatabase) GetScenario(ctx context.Context, siteID, scenarioID string) (types.Scenario, error) {
	args := m.Called(ctx, siteID, scenarioID)
	return args.Get(0).(types.Scenario), args.Error(1)
}

func (m *MockDatabase) ListScenarios(ctx context.Context, siteID string) ([]types.Scenario, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Scenario), args.Error(1)
}

func (m *MockDatabase) DeleteScenario(ctx context.Context, siteID, scenarioID string) error {
	args := m.Called(ctx, siteID, scenarioID)
	return args.Error(0)
}

func (m *MockDatabase) Close() error {
	args := m.Called()
	return args.Error(0)
}
