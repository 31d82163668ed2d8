// Package heating converts annual thermal demand into hourly fuel
// consumption for a named heating system.
package heating

import (
	"fmt"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
)

// System is a heating system with an efficiency vector (space and water
// coefficients) and a normalized hourly demand shape. Consumption is
// recomputed from the current coefficients on every request, so efficiency
// edits take effect immediately.
type System struct {
	Name string

	fuel  fuel.Fuel
	space float64
	water float64
	// waterShare is the fraction of annual demand heated through the water
	// coefficient. Zero collapses the vector to the single space
	// coefficient.
	waterShare float64

	shape           profile.Demand
	grantPounds     int
	lifetimeYears   int
	costByHouseType map[string]float64
}

// FromPreset builds a System from a named configuration preset. Unknown
// preset names and presets referencing unregistered fuels fail here, not at
// computation time.
func FromPreset(name string) (*System, error) {
	preset, ok := params.HeatingPresets[name]
	if !ok {
		return nil, fmt.Errorf("unknown heating system: %s", name)
	}
	f, err := fuel.ByName(preset.FuelName)
	if err != nil {
		return nil, fmt.Errorf("heating system %s: %w", name, err)
	}
	return &System{
		Name:            name,
		fuel:            f,
		space:           preset.SpaceHeatingEfficiency,
		water:           preset.WaterHeatingEfficiency,
		shape:           params.HeatingShape(),
		grantPounds:     preset.GrantPounds,
		lifetimeYears:   preset.LifetimeYears,
		costByHouseType: preset.CostByHouseType,
	}, nil
}

// PresetNames lists the available heating-system presets.
func PresetNames() []string {
	names := make([]string, 0, len(params.HeatingPresets))
	for name := range params.HeatingPresets {
		names = append(names, name)
	}
	return names
}

// Fuel returns the fuel the system burns.
func (s *System) Fuel() fuel.Fuel { return s.fuel }

// SpaceHeatingEfficiency returns the space coefficient.
func (s *System) SpaceHeatingEfficiency() float64 { return s.space }

// WaterHeatingEfficiency returns the water coefficient.
func (s *System) WaterHeatingEfficiency() float64 { return s.water }

// SetSpaceHeatingEfficiency overwrites the space coefficient.
func (s *System) SetSpaceHeatingEfficiency(v float64) { s.space = v }

// SetWaterHeatingEfficiency overwrites the water coefficient.
func (s *System) SetWaterHeatingEfficiency(v float64) { s.water = v }

// SetWaterShare sets the fraction of annual demand attributed to water
// heating.
func (s *System) SetWaterShare(share float64) { s.waterShare = share }

// GrantPounds returns the grant applicable to installing this system.
func (s *System) GrantPounds() int { return s.grantPounds }

// LifetimeYears returns the assumed system lifetime.
func (s *System) LifetimeYears() int { return s.lifetimeYears }

// CalculateConsumption scales the normalized demand shape by annual demand
// over efficiency, yielding hourly consumption on the heating fuel. A zero
// coefficient is a momentary input state during edits, not an error: that
// share of demand contributes an all-zero profile instead of dividing by
// zero.
func (s *System) CalculateConsumption(annualDemandKWH float64) profile.Consumption {
	scale := 0.0
	if s.space != 0 {
		scale += annualDemandKWH * (1 - s.waterShare) / s.space
	}
	if s.water != 0 {
		scale += annualDemandKWH * s.waterShare / s.water
	}
	scaled := s.shape.Scale(scale)
	return profile.NewConsumption(profile.StreamFromDemand(scaled, s.fuel))
}

// UpfrontCost looks up the installed cost for a house type.
func (s *System) UpfrontCost(houseType string) (float64, error) {
	cost, ok := s.costByHouseType[houseType]
	if !ok {
		return 0, fmt.Errorf("no %s install cost for house type %s", s.Name, houseType)
	}
	return cost, nil
}

// Clone returns a deep copy so scenario edits never leak between houses.
func (s *System) Clone() *System {
	clone := *s
	clone.shape = s.shape.Clone()
	return &clone
}
