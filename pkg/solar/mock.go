package solar

import (
	"context"
	"sync"

	"github.com/retroplan/retroplan/pkg/profile"
)

// MockIrradiance is an in-memory Irradiance provider for tests. By default it
// returns a flat profile scaled by the requested peak capacity; set HourlyFn
// to override.
type MockIrradiance struct {
	// HourlyFn, if set, handles requests instead of the flat default.
	HourlyFn func(ctx context.Context, req Request) ([]float64, error)

	mu    sync.Mutex
	calls []Request
}

// HourlyGenerationKW implements the Irradiance interface.
func (m *MockIrradiance) HourlyGenerationKW(ctx context.Context, req Request) ([]float64, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if m.HourlyFn != nil {
		return m.HourlyFn(ctx, req)
	}

	hourly := make([]float64, profile.HoursInYear(req.Year))
	for i := range hourly {
		// a flat tenth of peak, roughly a UK capacity factor
		hourly[i] = req.PeakCapacityKW * 0.1
	}
	return hourly, nil
}

// Calls returns every request seen so far.
func (m *MockIrradiance) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}
