package solar

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/roof"
)

// a roughly 8m x 5m gabled-terrace roof face in south London
func testRoof() []roof.Polygon {
	return []roof.Polygon{roof.New([]roof.Point{
		{Lng: -0.1, Lat: 51.45},
		{Lng: -0.099885, Lat: 51.45},
		{Lng: -0.099885, Lat: 51.450045},
		{Lng: -0.1, Lat: 51.450045},
		{Lng: -0.1, Lat: 51.45},
	})}
}

func TestNewFitsPanels(t *testing.T) {
	s := New(&MockIrradiance{}, 51.45, -0.1, 0, testRoof())
	assert.Positive(t, s.PanelCount())
	assert.InDelta(t, float64(s.PanelCount())*params.Solar.KWPeakPerPanel, s.PeakCapacityKW(), 1e-9)
	assert.InDelta(t, float64(s.PanelCount())*params.Solar.CostPerPanel, s.UpfrontCost(), 1e-9)
	assert.Equal(t, params.Solar.DefaultPitch, s.PitchDegrees())
}

func TestAzimuthNormalization(t *testing.T) {
	for in, want := range map[float64]float64{
		0:    0,
		270:  -90,
		-270: 90,
		180:  180,
		-180: 180,
		540:  180,
	} {
		s := New(&MockIrradiance{}, 51.45, -0.1, in, nil)
		assert.Equal(t, want, s.AzimuthDegrees(), "azimuth %v", in)
	}
}

func TestPanelOverride(t *testing.T) {
	s := New(&MockIrradiance{}, 51.45, -0.1, 0, testRoof())
	fitted := s.PanelCount()

	s.SetPanelCount(4)
	assert.Equal(t, 4, s.PanelCount())

	// pitch edits keep the override
	s.SetPitch(45)
	assert.Equal(t, 4, s.PanelCount())

	// redrawing the roof clears it and refits at the current pitch
	s.SetPolygons(testRoof())
	assert.NotEqual(t, 4, s.PanelCount())
	assert.Positive(t, s.PanelCount())

	s.SetPitch(params.Solar.DefaultPitch)
	assert.Equal(t, fitted, s.PanelCount())

	s.SetPanelCount(-3)
	assert.Zero(t, s.PanelCount())
}

func TestGeneration(t *testing.T) {
	mock := &MockIrradiance{}
	s := New(mock, 51.45, -0.1, 0, testRoof())

	gen, err := s.Generation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fuel.Electricity, gen.Fuel())
	assert.Negative(t, gen.Overall().AnnualSumKWH(), "generation is negative consumption")
	assert.Zero(t, gen.Imported().AnnualSumKWH())
	assert.Positive(t, gen.Exported().AnnualSumKWH())

	require.Len(t, mock.Calls(), 1)
	req := mock.Calls()[0]
	assert.Equal(t, params.BaseYear, req.Year)
	assert.Equal(t, s.PeakCapacityKW(), req.PeakCapacityKW)
	assert.Equal(t, params.Solar.SystemLossPercent, req.LossPercent)
}

func TestGenerationZeroCapacity(t *testing.T) {
	mock := &MockIrradiance{}
	s := New(mock, 51.45, -0.1, 0, nil)
	require.Zero(t, s.PanelCount())

	gen, err := s.Generation(context.Background())
	require.NoError(t, err)
	assert.Zero(t, gen.Overall().AnnualSumKWH())
	assert.Empty(t, mock.Calls(), "no provider call for a zero-capacity install")
}

func TestGenerationProviderFailure(t *testing.T) {
	mock := &MockIrradiance{
		HourlyFn: func(ctx context.Context, req Request) ([]float64, error) {
			return nil, fmt.Errorf("pvgis api returned status: 503")
		},
	}
	s := New(mock, 51.45, -0.1, 0, testRoof())

	_, err := s.Generation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(&MockIrradiance{}, 51.45, -0.1, 0, testRoof())
	clone := s.Clone()
	clone.SetPanelCount(1)
	clone.SetAzimuth(90)

	assert.NotEqual(t, 1, s.PanelCount())
	assert.Zero(t, s.AzimuthDegrees())
}
