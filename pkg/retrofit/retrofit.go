// Package retrofit compares a baseline house against an upgraded one:
// savings, payback and return on investment.
package retrofit

import (
	"context"
	"math"

	"github.com/retroplan/retroplan/pkg/heating"
	"github.com/retroplan/retroplan/pkg/house"
	"github.com/retroplan/retroplan/pkg/solar"
)

// Comparison holds the derived savings of upgrading baseline to upgrade.
type Comparison struct {
	BillSavings       float64
	BillSavingsPct    float64
	CarbonSavingsTCO2 float64
	CarbonSavingsPct  float64
	// IncrementalCost is the upgrade's upfront cost after grants less the
	// baseline's.
	IncrementalCost float64
	// LifetimeYears is the upgrade's blended install lifetime.
	LifetimeYears float64
}

// Compare computes the savings of upgrade over baseline.
func Compare(ctx context.Context, baseline, upgrade *house.House) (Comparison, error) {
	baselineBill, err := baseline.TotalAnnualBill(ctx)
	if err != nil {
		return Comparison{}, err
	}
	upgradeBill, err := upgrade.TotalAnnualBill(ctx)
	if err != nil {
		return Comparison{}, err
	}
	baselineTCO2, err := baseline.TotalAnnualTCO2(ctx)
	if err != nil {
		return Comparison{}, err
	}
	upgradeTCO2, err := upgrade.TotalAnnualTCO2(ctx)
	if err != nil {
		return Comparison{}, err
	}
	baselineCost, err := baseline.UpfrontCostAfterGrants()
	if err != nil {
		return Comparison{}, err
	}
	upgradeCost, err := upgrade.UpfrontCostAfterGrants()
	if err != nil {
		return Comparison{}, err
	}

	c := Comparison{
		BillSavings:       baselineBill - upgradeBill,
		CarbonSavingsTCO2: baselineTCO2 - upgradeTCO2,
		IncrementalCost:   upgradeCost - baselineCost,
		LifetimeYears:     upgrade.LifetimeYears(),
	}
	if baselineBill != 0 {
		c.BillSavingsPct = c.BillSavings / baselineBill
	}
	if baselineTCO2 != 0 {
		c.CarbonSavingsPct = c.CarbonSavingsTCO2 / baselineTCO2
	}
	return c, nil
}

// SimplePayback is the years to recoup the incremental cost. Without
// strictly positive bill savings there is no payback and ok is false.
func (c Comparison) SimplePayback() (years float64, ok bool) {
	if c.BillSavings <= 0 {
		return 0, false
	}
	return c.IncrementalCost / c.BillSavings, true
}

// AnnualizedROI is the compound annual return of the upgrade over its
// lifetime, with undiscounted savings.
func (c Comparison) AnnualizedROI() (float64, bool) {
	if c.IncrementalCost == 0 || c.LifetimeYears == 0 {
		return 0, false
	}
	lifetimeSavings := c.BillSavings * c.LifetimeYears
	roi := (lifetimeSavings - c.IncrementalCost) / c.IncrementalCost
	if 1+roi < 0 {
		return 0, false
	}
	return math.Pow(1+roi, 1/c.LifetimeYears) - 1, true
}

// Scenarios are the three standard upgrade paths from one baseline.
type Scenarios struct {
	Baseline *house.House
	HeatPump *house.House
	Solar    *house.House
	Both     *house.House
}

// UpgradeScenarios deep-copies the baseline into the three upgrade houses so
// later edits to one never leak into another.
func UpgradeScenarios(baseline *house.House, upgradeHeating *heating.System, upgradeSolar *solar.Install) Scenarios {
	heatPump := baseline.Clone()
	heatPump.SetHeatingSystem(upgradeHeating.Clone())

	solarOnly := baseline.Clone()
	solarOnly.SetSolarInstall(upgradeSolar.Clone())

	both := heatPump.Clone()
	both.SetSolarInstall(upgradeSolar.Clone())

	return Scenarios{
		Baseline: baseline,
		HeatPump: heatPump,
		Solar:    solarOnly,
		Both:     both,
	}
}
