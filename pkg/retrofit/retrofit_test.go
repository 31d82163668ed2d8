package retrofit

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/heating"
	"github.com/retroplan/retroplan/pkg/house"
	"github.com/retroplan/retroplan/pkg/profile"
	"github.com/retroplan/retroplan/pkg/solar"
)

func baseline(t *testing.T) *house.House {
	t.Helper()
	h, err := house.FromPresets("Semi-detached", "Gas boiler")
	require.NoError(t, err)
	return h
}

func upgradeHeatPump(t *testing.T) *heating.System {
	t.Helper()
	hp, err := heating.FromPreset("Heat pump")
	require.NoError(t, err)
	return hp
}

// a daytime-only generator so self-use against a shaped demand is partial
func daytimeSolar(panels int) *solar.Install {
	mock := &solar.MockIrradiance{
		HourlyFn: func(ctx context.Context, req solar.Request) ([]float64, error) {
			hourly := make([]float64, profile.HoursInYear(req.Year))
			for i := range hourly {
				if h := i % 24; h >= 9 && h < 17 {
					hourly[i] = req.PeakCapacityKW * 0.3
				}
			}
			return hourly, nil
		},
	}
	install := solar.New(mock, 51.45, -0.1, 0, nil)
	install.SetPanelCount(panels)
	return install
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	base := baseline(t)
	scenarios := UpgradeScenarios(base, upgradeHeatPump(t), daytimeSolar(10))

	c, err := Compare(ctx, base, scenarios.Both)
	require.NoError(t, err)

	assert.Positive(t, c.BillSavings)
	assert.Positive(t, c.CarbonSavingsTCO2)
	assert.Positive(t, c.IncrementalCost)

	baseBill, err := base.TotalAnnualBill(ctx)
	require.NoError(t, err)
	assert.InDelta(t, c.BillSavings/baseBill, c.BillSavingsPct, 1e-9)
	assert.InDelta(t, (float64(upgradeHeatPump(t).LifetimeYears())+25)/2, c.LifetimeYears, 1e-9)

	payback, ok := c.SimplePayback()
	require.True(t, ok)
	assert.InDelta(t, c.IncrementalCost/c.BillSavings, payback, 1e-9)
	assert.False(t, math.IsNaN(payback))
	assert.False(t, math.IsInf(payback, 0))

	roi, ok := c.AnnualizedROI()
	require.True(t, ok)
	lifetimeSavings := c.BillSavings * c.LifetimeYears
	want := math.Pow(1+(lifetimeSavings-c.IncrementalCost)/c.IncrementalCost, 1/c.LifetimeYears) - 1
	assert.InDelta(t, want, roi, 1e-12)
}

func TestNoPaybackWithoutSavings(t *testing.T) {
	c := Comparison{BillSavings: 0, IncrementalCost: 6000}
	_, ok := c.SimplePayback()
	assert.False(t, ok)

	c.BillSavings = -120
	_, ok = c.SimplePayback()
	assert.False(t, ok)
}

func TestUpgradeScenariosAreIndependent(t *testing.T) {
	base := baseline(t)
	scenarios := UpgradeScenarios(base, upgradeHeatPump(t), daytimeSolar(10))

	assert.Equal(t, fuel.Gas, base.HeatingSystem().Fuel())
	assert.Equal(t, fuel.Gas, scenarios.Solar.HeatingSystem().Fuel())
	assert.Equal(t, fuel.Electricity, scenarios.HeatPump.HeatingSystem().Fuel())
	assert.Nil(t, scenarios.HeatPump.SolarInstall())
	assert.NotNil(t, scenarios.Both.SolarInstall())

	// mutating one scenario never leaks into another
	scenarios.Both.Envelope().SetAnnualHeatingDemand(1)
	assert.NotEqual(t, 1.0, base.Envelope().AnnualHeatingDemandKWH())
	assert.NotEqual(t, 1.0, scenarios.HeatPump.Envelope().AnnualHeatingDemandKWH())

	scenarios.Both.SolarInstall().SetPanelCount(1)
	assert.NotEqual(t, 1, scenarios.Solar.SolarInstall().PanelCount())
}

func TestSolarPlusHeatPumpBeatsSolarAlone(t *testing.T) {
	ctx := context.Background()
	base := baseline(t)
	scenarios := UpgradeScenarios(base, upgradeHeatPump(t), daytimeSolar(10))

	solarSelfUse, err := scenarios.Solar.PercentSelfUseOfSolar(ctx)
	require.NoError(t, err)
	bothSelfUse, err := scenarios.Both.PercentSelfUseOfSolar(ctx)
	require.NoError(t, err)
	assert.Greater(t, bothSelfUse, solarSelfUse,
		"electric heating soaks up more of the daytime generation")

	solarBill, err := scenarios.Solar.TotalAnnualBill(ctx)
	require.NoError(t, err)
	bothBill, err := scenarios.Both.TotalAnnualBill(ctx)
	require.NoError(t, err)
	assert.Less(t, bothBill, solarBill)
}
