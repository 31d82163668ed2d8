package house

import (
	"fmt"

	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
)

// Envelope describes the building and its energy demand, before any heating
// system or solar install is chosen.
type Envelope struct {
	houseType string

	// annualHeatingDemandKWH is space + water heat demand, before heating
	// efficiency.
	annualHeatingDemandKWH float64
	// baseDemand is the always-electric lighting/appliance load, shaped.
	baseDemand profile.Demand
}

// EnvelopeFromPreset builds an envelope from the house-type default table.
func EnvelopeFromPreset(houseType string) (*Envelope, error) {
	preset, ok := params.HousePresets[houseType]
	if !ok {
		return nil, fmt.Errorf("unknown house type: %s", houseType)
	}
	return &Envelope{
		houseType:              houseType,
		annualHeatingDemandKWH: preset.AnnualHeatingDemandKWH,
		baseDemand:             params.BaseElectricityShape().Scale(preset.AnnualBaseElectricityKWH),
	}, nil
}

// NewEnvelope builds an envelope from explicit values, with the base demand
// following the default shape.
func NewEnvelope(houseType string, annualHeatingDemandKWH, annualBaseElectricityKWH float64) (*Envelope, error) {
	if _, ok := params.HousePresets[houseType]; !ok {
		return nil, fmt.Errorf("unknown house type: %s", houseType)
	}
	return &Envelope{
		houseType:              houseType,
		annualHeatingDemandKWH: annualHeatingDemandKWH,
		baseDemand:             params.BaseElectricityShape().Scale(annualBaseElectricityKWH),
	}, nil
}

// HouseType returns the building archetype name.
func (e *Envelope) HouseType() string { return e.houseType }

// AnnualHeatingDemandKWH returns the annual heat demand before efficiency.
func (e *Envelope) AnnualHeatingDemandKWH() float64 { return e.annualHeatingDemandKWH }

// SetAnnualHeatingDemand overwrites the annual heat demand.
func (e *Envelope) SetAnnualHeatingDemand(kwh float64) {
	e.annualHeatingDemandKWH = kwh
}

// BaseDemand returns the shaped base electricity demand.
func (e *Envelope) BaseDemand() profile.Demand { return e.baseDemand }

// AnnualBaseDemandKWH returns the annual base electricity total.
func (e *Envelope) AnnualBaseDemandKWH() float64 { return e.baseDemand.AnnualSum() }

// SetAnnualBaseDemand rescales the base demand profile to a new annual
// total, preserving its shape. A zero-baseline profile has no shape to
// preserve, so it becomes flat.
func (e *Envelope) SetAnnualBaseDemand(kwh float64) {
	old := e.baseDemand.AnnualSum()
	if old == 0 {
		e.baseDemand = profile.FlatDemand(e.baseDemand.Year(), kwh)
		return
	}
	e.baseDemand = e.baseDemand.Scale(kwh / old)
}

// Equal reports whether two envelopes describe the same building and demand.
func (e *Envelope) Equal(other *Envelope) bool {
	if e.houseType != other.houseType || e.annualHeatingDemandKWH != other.annualHeatingDemandKWH {
		return false
	}
	if e.baseDemand.Year() != other.baseDemand.Year() {
		return false
	}
	a, b := e.baseDemand.Hourly(), other.baseDemand.Hourly()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (e *Envelope) Clone() *Envelope {
	clone := *e
	clone.baseDemand = e.baseDemand.Clone()
	return &clone
}
