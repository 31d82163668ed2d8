package house

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/heating"
	"github.com/retroplan/retroplan/pkg/tariff"
	"github.com/retroplan/retroplan/pkg/types"
)

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	h := gasHouse(t)

	summary, err := Summarize(ctx, h)
	require.NoError(t, err)
	require.Len(t, summary.PerFuel, 2)

	total, err := h.TotalAnnualBill(ctx)
	require.NoError(t, err)
	assert.InDelta(t, total, summary.TotalAnnualBill, 1e-9)
	assert.InDelta(t, summary.PerFuel["electricity"].AnnualBill+summary.PerFuel["gas"].AnnualBill,
		summary.TotalAnnualBill, 1e-9)
	assert.Equal(t, 0, summary.PanelCount)
}

func TestSummarizeMissingTariff(t *testing.T) {
	h := gasHouse(t)

	// Pinning a price stops the tariff set from regenerating, so switching
	// to an oil system leaves its fuel unpriced.
	h.SetTariff(tariff.Tariff{Fuel: fuel.Electricity, PencePerUnit: 20, PencePerDay: 40})
	oil, err := heating.FromPreset("Oil boiler")
	require.NoError(t, err)
	h.SetHeatingSystem(oil)

	_, err = Summarize(context.Background(), h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tariff for fuel: oil")
}

func TestFromSpecTariffOverride(t *testing.T) {
	spec := types.HouseSpec{
		HouseType:     "Terrace",
		HeatingSystem: "Gas boiler",
		Tariffs: []types.TariffSpec{
			{Fuel: "gas", PencePerUnit: 12, PencePerDay: 30},
		},
	}
	h, err := FromSpec(spec, nil)
	require.NoError(t, err)
	assert.Equal(t, 12.0, h.Tariffs()["gas"].PencePerUnit)

	spec.Tariffs[0].Fuel = "plutonium"
	_, err = FromSpec(spec, nil)
	require.Error(t, err)
}
