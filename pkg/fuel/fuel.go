// Package fuel describes the energy carriers a house can consume: their
// display units, kWh conversion factors, and carbon intensities.
package fuel

import (
	"fmt"
)

// Fuel is an immutable description of an energy carrier. Two fuels are equal
// when all of their fields are equal.
type Fuel struct {
	// Name identifies the fuel ("electricity", "gas", "oil").
	Name string `json:"name"`
	// Units is the unit consumption is displayed and billed in.
	Units string `json:"units"`
	// KWHPerUnit converts one display unit to kWh. Always > 0.
	KWHPerUnit float64 `json:"kwhPerUnit"`
	// TCO2PerKWH is the carbon intensity in tonnes of CO2 per kWh.
	TCO2PerKWH float64 `json:"tco2PerKWH"`
}

// New builds a Fuel, rejecting non-positive conversion factors.
func New(name, units string, kwhPerUnit, tco2PerKWH float64) (Fuel, error) {
	if kwhPerUnit <= 0 {
		return Fuel{}, fmt.Errorf("fuel %s: kwh per unit must be positive, got %v", name, kwhPerUnit)
	}
	return Fuel{
		Name:       name,
		Units:      units,
		KWHPerUnit: kwhPerUnit,
		TCO2PerKWH: tco2PerKWH,
	}, nil
}

// KWHToUnits converts a kWh quantity to the fuel's display units.
func (f Fuel) KWHToUnits(kwh float64) float64 {
	return kwh / f.KWHPerUnit
}

// UnitsToKWH converts a display-unit quantity to kWh.
func (f Fuel) UnitsToKWH(units float64) float64 {
	return units * f.KWHPerUnit
}

// AnnualTCO2 returns the carbon emitted by an annual kWh total.
func (f Fuel) AnnualTCO2(annualKWH float64) float64 {
	return annualKWH * f.TCO2PerKWH
}

// KWHPerLitreOfOil is the energy content of heating oil.
// https://www.thegreenage.co.uk/is-heating-oil-a-cheap-way-to-heat-my-home/
const KWHPerLitreOfOil = 10.35

// The registered fuel set. Built once at init and never mutated.
var (
	Electricity = Fuel{Name: "electricity", Units: "kWh", KWHPerUnit: 1, TCO2PerKWH: 0.193e-3}
	Gas         = Fuel{Name: "gas", Units: "kWh", KWHPerUnit: 1, TCO2PerKWH: 0.203e-3}
	Oil         = Fuel{Name: "oil", Units: "litres", KWHPerUnit: KWHPerLitreOfOil, TCO2PerKWH: 0.266e-3}
)

var registry = map[string]Fuel{
	Electricity.Name: Electricity,
	Gas.Name:         Gas,
	Oil.Name:         Oil,
}

// ByName looks a fuel up in the registered set.
func ByName(name string) (Fuel, error) {
	f, ok := registry[name]
	if !ok {
		return Fuel{}, fmt.Errorf("unknown fuel: %s", name)
	}
	return f, nil
}

// All returns the registered fuels.
func All() []Fuel {
	return []Fuel{Electricity, Gas, Oil}
}
