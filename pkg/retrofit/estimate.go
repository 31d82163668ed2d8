package retrofit

import (
	"context"

	"github.com/retroplan/retroplan/pkg/heating"
	"github.com/retroplan/retroplan/pkg/house"
	"github.com/retroplan/retroplan/pkg/solar"
	"github.com/retroplan/retroplan/pkg/types"
)

// Summary converts a comparison to its wire form, dropping payback and ROI
// when they are undefined.
func (c Comparison) Summary() types.ComparisonSummary {
	s := types.ComparisonSummary{
		BillSavings:       c.BillSavings,
		BillSavingsPct:    c.BillSavingsPct,
		CarbonSavingsTCO2: c.CarbonSavingsTCO2,
		CarbonSavingsPct:  c.CarbonSavingsPct,
		IncrementalCost:   c.IncrementalCost,
	}
	if payback, ok := c.SimplePayback(); ok {
		s.SimplePaybackYears = &payback
	}
	if roi, ok := c.AnnualizedROI(); ok {
		s.AnnualizedROI = &roi
	}
	return s
}

// Estimate runs the standard three-way upgrade comparison for a request.
func Estimate(ctx context.Context, req types.EstimateRequest, provider solar.Irradiance) (types.EstimateResponse, error) {
	baseline, err := house.FromSpec(req.Baseline, provider)
	if err != nil {
		return types.EstimateResponse{}, err
	}

	upgradeName := req.UpgradeHeating
	if upgradeName == "" {
		upgradeName = "Heat pump"
	}
	upgradeHeating, err := heating.FromPreset(upgradeName)
	if err != nil {
		return types.EstimateResponse{}, err
	}

	solarSpec := req.UpgradeSolar
	if solarSpec == nil {
		solarSpec = req.Baseline.Solar
	}
	upgradeSolar := house.SolarFromSpec(solarSpec, provider)
	if upgradeSolar == nil {
		upgradeSolar = solar.New(provider, 0, 0, 0, nil)
	}

	scenarios := UpgradeScenarios(baseline, upgradeHeating, upgradeSolar)

	resp := types.EstimateResponse{}
	resp.Baseline, err = house.Summarize(ctx, scenarios.Baseline)
	if err != nil {
		return types.EstimateResponse{}, err
	}

	upgrades := []struct {
		h   *house.House
		out *types.UpgradeSummary
	}{
		{scenarios.HeatPump, &resp.HeatPump},
		{scenarios.Solar, &resp.Solar},
		{scenarios.Both, &resp.Both},
	}
	for _, u := range upgrades {
		u.out.House, err = house.Summarize(ctx, u.h)
		if err != nil {
			return types.EstimateResponse{}, err
		}
		c, err := Compare(ctx, scenarios.Baseline, u.h)
		if err != nil {
			return types.EstimateResponse{}, err
		}
		u.out.Comparison = c.Summary()
	}
	return resp, nil
}
