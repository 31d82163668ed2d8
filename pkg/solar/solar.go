// Package solar models a rooftop PV install: panel count from the drawn roof
// polygons, peak capacity, and an hourly generation profile from an external
// irradiance provider.
package solar

import (
	"context"
	"fmt"
	"math"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
	"github.com/retroplan/retroplan/pkg/roof"
)

// Install is a candidate PV installation on one roof face.
type Install struct {
	provider Irradiance

	latitude  float64
	longitude float64
	// azimuthDegrees is 0 south, negative east, positive west, normalized
	// to (-180, 180].
	azimuthDegrees float64
	pitchDegrees   float64
	polygons       []roof.Polygon

	panelCount int
	// panelOverridden is set when the user typed a panel count; it survives
	// orientation and pitch edits but a redraw of the roof clears it.
	panelOverridden bool
}

// New returns an install for the drawn roof polygons at the default pitch.
func New(provider Irradiance, latitude, longitude, azimuthDegrees float64, polygons []roof.Polygon) *Install {
	s := &Install{
		provider:       provider,
		latitude:       latitude,
		longitude:      longitude,
		azimuthDegrees: normalizeAzimuth(azimuthDegrees),
		pitchDegrees:   params.Solar.DefaultPitch,
	}
	s.SetPolygons(polygons)
	return s
}

// normalizeAzimuth maps any angle in degrees onto (-180, 180].
func normalizeAzimuth(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a > 180 {
		a -= 360
	} else if a <= -180 {
		a += 360
	}
	return a
}

// Latitude returns the install's latitude in decimal degrees.
func (s *Install) Latitude() float64 { return s.latitude }

// Longitude returns the install's longitude in decimal degrees.
func (s *Install) Longitude() float64 { return s.longitude }

// AzimuthDegrees returns the panel azimuth, 0 south.
func (s *Install) AzimuthDegrees() float64 { return s.azimuthDegrees }

// PitchDegrees returns the roof pitch.
func (s *Install) PitchDegrees() float64 { return s.pitchDegrees }

// Polygons returns the drawn roof outlines.
func (s *Install) Polygons() []roof.Polygon { return s.polygons }

// PanelCount returns the current panel count, fitted or overridden.
func (s *Install) PanelCount() int { return s.panelCount }

// SetLocation moves the install.
func (s *Install) SetLocation(latitude, longitude float64) {
	s.latitude = latitude
	s.longitude = longitude
}

// SetAzimuth points the panels in a new direction.
func (s *Install) SetAzimuth(deg float64) {
	s.azimuthDegrees = normalizeAzimuth(deg)
}

// SetPitch changes the roof pitch and refits the panels unless the count is
// overridden.
func (s *Install) SetPitch(deg float64) {
	s.pitchDegrees = deg
	if !s.panelOverridden {
		s.panelCount = s.fitPanels()
	}
}

// SetPolygons replaces the drawn roof, refits the panels, and clears any
// panel-count override.
func (s *Install) SetPolygons(polygons []roof.Polygon) {
	s.polygons = make([]roof.Polygon, len(polygons))
	copy(s.polygons, polygons)
	s.panelOverridden = false
	s.panelCount = s.fitPanels()
}

// SetPanelCount overrides the fitted panel count. The override sticks until
// the roof is redrawn.
func (s *Install) SetPanelCount(n int) {
	if n < 0 {
		n = 0
	}
	s.panelCount = n
	s.panelOverridden = true
}

func (s *Install) fitPanels() int {
	total := 0
	for _, p := range s.polygons {
		total += p.PanelCount(s.pitchDegrees)
	}
	return total
}

// PeakCapacityKW is the nominal output with 1 kW/m2 of irradiance on the
// panels.
func (s *Install) PeakCapacityKW() float64 {
	return float64(s.panelCount) * params.Solar.KWPeakPerPanel
}

// UpfrontCost is the installed cost in pounds.
func (s *Install) UpfrontCost() float64 {
	return float64(s.panelCount) * params.Solar.CostPerPanel
}

// LifetimeYears is the expected install lifetime.
func (s *Install) LifetimeYears() int {
	return params.Solar.LifetimeYears
}

// Generation returns the install's output as negative electricity
// consumption. A zero-capacity install yields a zero profile without
// touching the provider; a provider failure is returned to the caller, never
// treated as zero output.
func (s *Install) Generation(ctx context.Context) (profile.Consumption, error) {
	if s.PeakCapacityKW() == 0 {
		return profile.ZeroConsumption(params.BaseYear, fuel.Electricity), nil
	}

	hourlyKW, err := s.provider.HourlyGenerationKW(ctx, Request{
		Latitude:       s.latitude,
		Longitude:      s.longitude,
		Year:           params.BaseYear,
		PeakCapacityKW: s.PeakCapacityKW(),
		LossPercent:    params.Solar.SystemLossPercent,
		PitchDegrees:   s.pitchDegrees,
		AzimuthDegrees: s.azimuthDegrees,
	})
	if err != nil {
		return profile.Consumption{}, fmt.Errorf("failed to get generation profile: %w", err)
	}

	// generation offsets import, so the stream is negative
	negated := make([]float64, len(hourlyKW))
	for i, kw := range hourlyKW {
		negated[i] = -kw
	}
	stream, err := profile.NewConsumptionStream(params.BaseYear, negated, fuel.Electricity)
	if err != nil {
		return profile.Consumption{}, err
	}
	return profile.NewConsumption(stream), nil
}

// Clone returns a deep copy sharing only the provider (and so its cache).
func (s *Install) Clone() *Install {
	clone := *s
	clone.polygons = make([]roof.Polygon, len(s.polygons))
	copy(clone.polygons, s.polygons)
	return &clone
}
