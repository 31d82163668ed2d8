package tariff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
)

func flatConsumption(t *testing.T, f fuel.Fuel, perHourKWH float64) profile.Consumption {
	t.Helper()
	hourly := make([]float64, profile.HoursInYear(params.BaseYear))
	for i := range hourly {
		hourly[i] = perHourKWH
	}
	s, err := profile.NewConsumptionStream(params.BaseYear, hourly, f)
	require.NoError(t, err)
	return profile.NewConsumption(s)
}

func TestAnnualImportCost(t *testing.T) {
	tr := Tariff{Fuel: fuel.Electricity, PencePerUnit: 34, PencePerDay: 46}
	c := flatConsumption(t, fuel.Electricity, 1)

	cost, err := tr.AnnualImportCost(c)
	require.NoError(t, err)
	assert.InDelta(t, (8760*34+365*46)/100.0, cost, 1e-6)
}

func TestOilPricedPerLitre(t *testing.T) {
	tr := Standard(fuel.Oil)[fuel.Oil.Name]
	assert.Zero(t, tr.PencePerDay)

	// 10.35 kWh per hour is one litre per hour
	c := flatConsumption(t, fuel.Oil, fuel.KWHPerLitreOfOil)
	cost, err := tr.AnnualImportCost(c)
	require.NoError(t, err)
	assert.InDelta(t, 8760*95/100.0, cost, 1e-6)
}

func TestExportCreditAndNetCost(t *testing.T) {
	tr := Tariff{Fuel: fuel.Electricity, PencePerUnit: 34, PencePerUnitExport: 15, PencePerDay: 46}

	hourly := make([]float64, profile.HoursInYear(params.BaseYear))
	for i := range hourly {
		if i%2 == 0 {
			hourly[i] = 2 // importing
		} else {
			hourly[i] = -1 // exporting
		}
	}
	s, err := profile.NewConsumptionStream(params.BaseYear, hourly, fuel.Electricity)
	require.NoError(t, err)
	c := profile.NewConsumption(s)

	imp, err := tr.AnnualImportCost(c)
	require.NoError(t, err)
	credit, err := tr.AnnualExportCredit(c)
	require.NoError(t, err)
	net, err := tr.AnnualNetCost(c)
	require.NoError(t, err)

	assert.InDelta(t, (4380*2*34+365*46)/100.0, imp, 1e-6)
	assert.InDelta(t, 4380*15/100.0, credit, 1e-6)
	assert.InDelta(t, imp-credit, net, 1e-9)
}

func TestFuelMismatch(t *testing.T) {
	tr := Tariff{Fuel: fuel.Gas, PencePerUnit: 10.3}
	c := flatConsumption(t, fuel.Electricity, 1)

	_, err := tr.AnnualImportCost(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gas")

	_, err = tr.AnnualNetCost(c)
	require.Error(t, err)
}

func TestStandardSets(t *testing.T) {
	t.Run("gas heated", func(t *testing.T) {
		set := Standard(fuel.Gas)
		require.Len(t, set, 2)
		assert.Equal(t, fuel.Gas, set[fuel.Gas.Name].Fuel)
		assert.NotZero(t, set[fuel.Gas.Name].PencePerDay)
	})

	t.Run("electrically heated", func(t *testing.T) {
		set := Standard(fuel.Electricity)
		require.Len(t, set, 1)
		assert.Equal(t, fuel.Electricity, set[fuel.Electricity.Name].Fuel)
		assert.NotZero(t, set[fuel.Electricity.Name].PencePerUnitExport)
	})
}
