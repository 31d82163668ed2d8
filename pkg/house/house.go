// Package house assembles an envelope, a heating system, tariffs and an
// optional solar install into per-fuel consumption, bills, carbon and
// upfront cost.
package house

import (
	"context"
	"fmt"
	"math"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/heating"
	"github.com/retroplan/retroplan/pkg/profile"
	"github.com/retroplan/retroplan/pkg/solar"
	"github.com/retroplan/retroplan/pkg/tariff"
)

// House is one retrofit scenario: everything is recomputed on read from the
// current state, so edits always flow through.
type House struct {
	envelope *Envelope
	heating  *heating.System
	solarPV  *solar.Install
	tariffs  map[string]tariff.Tariff

	// tariffsOverridden pins user-edited prices: replacing the heating
	// system then no longer regenerates the standard set.
	tariffsOverridden bool
	// heatingCostOverride pins a user-typed install cost until cleared.
	heatingCostOverride *float64
}

// New builds a house from an envelope and heating system. A nil solar
// install means no panels. Tariffs are seeded from the standard set for the
// heating fuel.
func New(envelope *Envelope, heatingSystem *heating.System, solarPV *solar.Install) *House {
	return &House{
		envelope: envelope,
		heating:  heatingSystem,
		solarPV:  solarPV,
		tariffs:  tariff.Standard(heatingSystem.Fuel()),
	}
}

// FromPresets builds a house entirely from the named presets.
func FromPresets(houseType, heatingName string) (*House, error) {
	envelope, err := EnvelopeFromPreset(houseType)
	if err != nil {
		return nil, err
	}
	heatingSystem, err := heating.FromPreset(heatingName)
	if err != nil {
		return nil, err
	}
	return New(envelope, heatingSystem, nil), nil
}

// Envelope returns the building envelope.
func (h *House) Envelope() *Envelope { return h.envelope }

// HeatingSystem returns the current heating system.
func (h *House) HeatingSystem() *heating.System { return h.heating }

// SolarInstall returns the solar install, nil when there is none.
func (h *House) SolarInstall() *solar.Install { return h.solarPV }

// Tariffs returns the active tariff per fuel name.
func (h *House) Tariffs() map[string]tariff.Tariff { return h.tariffs }

// SetHeatingSystem swaps the heating system. Unless the user has pinned
// tariff prices the standard set for the new fuel replaces the old one. A
// pinned heating cost is cleared since it priced the old system.
func (h *House) SetHeatingSystem(s *heating.System) {
	h.heating = s
	h.heatingCostOverride = nil
	if !h.tariffsOverridden {
		h.tariffs = tariff.Standard(s.Fuel())
	}
}

// SetSolarInstall attaches (or with nil removes) a solar install.
func (h *House) SetSolarInstall(s *solar.Install) {
	h.solarPV = s
}

// SetTariff replaces the tariff for its fuel and pins the set against
// regeneration.
func (h *House) SetTariff(t tariff.Tariff) {
	h.tariffs[t.Fuel.Name] = t
	h.tariffsOverridden = true
}

// BaseConsumption is the always-electric lighting/appliance load.
func (h *House) BaseConsumption() profile.Consumption {
	return profile.NewConsumption(profile.StreamFromDemand(h.envelope.BaseDemand(), fuel.Electricity))
}

// HeatingConsumption is the fuel burned to meet the envelope's heat demand.
func (h *House) HeatingConsumption() profile.Consumption {
	return h.heating.CalculateConsumption(h.envelope.AnnualHeatingDemandKWH())
}

func (h *House) solarGeneration(ctx context.Context) (profile.Consumption, error) {
	if h.solarPV == nil {
		return profile.ZeroConsumption(h.envelope.BaseDemand().Year(), fuel.Electricity), nil
	}
	return h.solarPV.Generation(ctx)
}

// ConsumptionPerFuel returns the hourly consumption keyed by fuel name. The
// electricity entry nets base load against solar generation, and absorbs
// heating when the heating fuel is electric.
func (h *House) ConsumptionPerFuel(ctx context.Context) (map[string]profile.Consumption, error) {
	generation, err := h.solarGeneration(ctx)
	if err != nil {
		return nil, err
	}
	electricity, err := h.BaseConsumption().Add(generation)
	if err != nil {
		return nil, err
	}

	heatingConsumption := h.HeatingConsumption()
	if h.heating.Fuel() == fuel.Electricity {
		electricity, err = electricity.Add(heatingConsumption)
		if err != nil {
			return nil, err
		}
		return map[string]profile.Consumption{fuel.Electricity.Name: electricity}, nil
	}
	return map[string]profile.Consumption{
		fuel.Electricity.Name: electricity,
		h.heating.Fuel().Name: heatingConsumption,
	}, nil
}

// AnnualBillPerFuel returns the net annual cost in pounds keyed by fuel
// name.
func (h *House) AnnualBillPerFuel(ctx context.Context) (map[string]float64, error) {
	perFuel, err := h.ConsumptionPerFuel(ctx)
	if err != nil {
		return nil, err
	}
	bills := make(map[string]float64, len(perFuel))
	for name, consumption := range perFuel {
		t, ok := h.tariffs[name]
		if !ok {
			return nil, fmt.Errorf("no tariff for fuel: %s", name)
		}
		cost, err := t.AnnualNetCost(consumption)
		if err != nil {
			return nil, err
		}
		bills[name] = cost
	}
	return bills, nil
}

// TotalAnnualBill returns the net annual cost in pounds across all fuels.
func (h *House) TotalAnnualBill(ctx context.Context) (float64, error) {
	bills, err := h.AnnualBillPerFuel(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, b := range bills {
		total += b
	}
	return total, nil
}

// TotalAnnualTCO2 returns the annual carbon emissions in tonnes across all
// fuels.
func (h *House) TotalAnnualTCO2(ctx context.Context) (float64, error) {
	perFuel, err := h.ConsumptionPerFuel(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, consumption := range perFuel {
		total += consumption.Overall().AnnualTCO2()
	}
	return total, nil
}

// SetHeatingCost pins the heating-system install cost, rounded to the
// nearest hundred pounds, surviving efficiency edits until cleared.
func (h *House) SetHeatingCost(pounds float64) {
	rounded := roundToHundred(pounds)
	h.heatingCostOverride = &rounded
}

// ClearHeatingCostOverride returns to the preset cost table.
func (h *House) ClearHeatingCostOverride() {
	h.heatingCostOverride = nil
}

// HeatingUpfrontCost is the heating-system install cost in pounds, rounded
// to the nearest hundred.
func (h *House) HeatingUpfrontCost() (float64, error) {
	if h.heatingCostOverride != nil {
		return *h.heatingCostOverride, nil
	}
	cost, err := h.heating.UpfrontCost(h.envelope.HouseType())
	if err != nil {
		return 0, err
	}
	return roundToHundred(cost), nil
}

// UpfrontCost is the total install cost in pounds before grants, rounded to
// the nearest hundred.
func (h *House) UpfrontCost() (float64, error) {
	cost, err := h.HeatingUpfrontCost()
	if err != nil {
		return 0, err
	}
	if h.solarPV != nil {
		cost += h.solarPV.UpfrontCost()
	}
	return roundToHundred(cost), nil
}

// UpfrontCostAfterGrants is UpfrontCost less any heating-system grant.
func (h *House) UpfrontCostAfterGrants() (float64, error) {
	cost, err := h.UpfrontCost()
	if err != nil {
		return 0, err
	}
	return cost - float64(h.heating.GrantPounds()), nil
}

// LifetimeYears is the blended lifetime of the installed upgrades, the
// average of the heating system's and the solar install's.
func (h *House) LifetimeYears() float64 {
	heatingLifetime := float64(h.heating.LifetimeYears())
	if h.solarPV == nil {
		return heatingLifetime
	}
	return (heatingLifetime + float64(h.solarPV.LifetimeYears())) / 2
}

// PercentSelfUseOfSolar is the fraction of generated solar energy consumed
// on-site rather than exported. Annual totals cannot capture the timing
// overlap between generation and demand, so it is summed hour by hour.
func (h *House) PercentSelfUseOfSolar(ctx context.Context) (float64, error) {
	generation, err := h.solarGeneration(ctx)
	if err != nil {
		return 0, err
	}
	generated := generation.Exported().HourlyKWH()
	totalGenerated := generation.Exported().AnnualSumKWH()
	if totalGenerated == 0 {
		return 0, nil
	}

	demand := h.BaseConsumption()
	if h.heating.Fuel() == fuel.Electricity {
		demand, err = demand.Add(h.HeatingConsumption())
		if err != nil {
			return 0, err
		}
	}
	demanded := demand.Overall().HourlyKWH()

	var selfUsed float64
	for i := range generated {
		selfUsed += math.Min(generated[i], math.Max(demanded[i], 0))
	}
	return selfUsed / totalGenerated, nil
}

// Clone returns a deep copy. Baseline and upgrade scenarios never alias the
// same mutable state.
func (h *House) Clone() *House {
	clone := &House{
		envelope:          h.envelope.Clone(),
		heating:           h.heating.Clone(),
		tariffs:           make(map[string]tariff.Tariff, len(h.tariffs)),
		tariffsOverridden: h.tariffsOverridden,
	}
	if h.solarPV != nil {
		clone.solarPV = h.solarPV.Clone()
	}
	for name, t := range h.tariffs {
		clone.tariffs[name] = t
	}
	if h.heatingCostOverride != nil {
		v := *h.heatingCostOverride
		clone.heatingCostOverride = &v
	}
	return clone
}

func roundToHundred(pounds float64) float64 {
	return math.Round(pounds/100) * 100
}
