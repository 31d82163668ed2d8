package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/fuel"
)

func constantSeries(year int, value float64) []float64 {
	hourly := make([]float64, HoursInYear(year))
	for i := range hourly {
		hourly[i] = value
	}
	return hourly
}

func TestYearArithmetic(t *testing.T) {
	assert.Equal(t, 8760, HoursInYear(2019))
	assert.Equal(t, 8784, HoursInYear(2020))
	assert.Equal(t, 365, DaysInYear(2019))
	assert.Equal(t, 366, DaysInYear(2020))
	assert.False(t, IsLeapYear(1900))
	assert.True(t, IsLeapYear(2000))
}

func TestNewDemandValidatesLength(t *testing.T) {
	_, err := NewDemand(2019, make([]float64, 8784))
	require.Error(t, err)

	d, err := NewDemand(2019, constantSeries(2019, 0.5))
	require.NoError(t, err)
	assert.InDelta(t, 0.5*8760, d.AnnualSum(), 1e-6)
}

func TestDemandAddAndScale(t *testing.T) {
	a, err := NewDemand(2019, constantSeries(2019, 1))
	require.NoError(t, err)
	b, err := NewDemand(2019, constantSeries(2019, 2))
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, 3*8760, sum.AnnualSum(), 1e-6)

	scaled := a.Scale(4)
	assert.InDelta(t, 4*8760, scaled.AnnualSum(), 1e-6)
	// original untouched
	assert.InDelta(t, 8760, a.AnnualSum(), 1e-6)

	leap, err := NewDemand(2020, constantSeries(2020, 1))
	require.NoError(t, err)
	_, err = a.Add(leap)
	require.Error(t, err)
}

func TestStreamSums(t *testing.T) {
	increasing := make([]float64, HoursInYear(2019))
	var want float64
	for i := range increasing {
		increasing[i] = float64(i)
		want += float64(i)
	}
	s, err := NewConsumptionStream(2019, increasing, fuel.Electricity)
	require.NoError(t, err)
	assert.InDelta(t, want, s.AnnualSumKWH(), 1e-6)
	assert.Equal(t, 365, s.DaysInYear())
	assert.False(t, s.LeapYear())
}

func TestStreamAddPreservesAnnualSum(t *testing.T) {
	a, err := NewConsumptionStream(2019, constantSeries(2019, 5), fuel.Electricity)
	require.NoError(t, err)
	b, err := NewConsumptionStream(2019, constantSeries(2019, 2), fuel.Electricity)
	require.NoError(t, err)

	combined, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, a.AnnualSumKWH()+b.AnnualSumKWH(), combined.AnnualSumKWH(), 1e-6)
}

func TestStreamAddMismatch(t *testing.T) {
	elec, err := NewConsumptionStream(2019, constantSeries(2019, 5), fuel.Electricity)
	require.NoError(t, err)
	gas, err := NewConsumptionStream(2019, constantSeries(2019, 10), fuel.Gas)
	require.NoError(t, err)
	_, err = elec.Add(gas)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gas")

	elecLeap, err := NewConsumptionStream(2020, constantSeries(2020, 5), fuel.Electricity)
	require.NoError(t, err)
	_, err = elec.Add(elecLeap)
	require.Error(t, err)
}

func TestFuelUnitConversion(t *testing.T) {
	oil, err := NewConsumptionStream(2019, constantSeries(2019, 12), fuel.Oil)
	require.NoError(t, err)

	assert.Less(t, oil.AnnualSumFuelUnits(), oil.AnnualSumKWH())
	assert.InDelta(t, oil.AnnualSumKWH(), oil.AnnualSumFuelUnits()*fuel.KWHPerLitreOfOil, 1e-6)

	units := oil.HourlyFuelUnits()
	assert.InDelta(t, 12/fuel.KWHPerLitreOfOil, units[0], 1e-9)
}

func TestAnnualTCO2(t *testing.T) {
	gas, err := NewConsumptionStream(2019, constantSeries(2019, 1), fuel.Gas)
	require.NoError(t, err)
	assert.InDelta(t, fuel.Gas.AnnualTCO2(8760), gas.AnnualTCO2(), 1e-9)
}

func TestImportExportSplit(t *testing.T) {
	hourly := constantSeries(2019, 10)
	hourly[0] = -90 // exporting hour
	stream, err := NewConsumptionStream(2019, hourly, fuel.Electricity)
	require.NoError(t, err)
	c := NewConsumption(stream)

	imported := c.Imported()
	exported := c.Exported()

	assert.InDelta(t, 10*8760-10, imported.AnnualSumKWH(), 1e-6)
	assert.InDelta(t, 90, exported.AnnualSumKWH(), 1e-6)

	// imported - exported == overall for every hour
	for i := range hourly {
		assert.InDelta(t, c.Overall().HourlyKWH()[i],
			imported.HourlyKWH()[i]-exported.HourlyKWH()[i], 1e-9)
	}

	// views are derived, not aliases of the net series
	imported.HourlyKWH()[0] = 1e9
	assert.InDelta(t, -90, c.Overall().HourlyKWH()[0], 1e-9)
}

func TestConsumptionAdd(t *testing.T) {
	base, err := NewConsumptionStream(2019, constantSeries(2019, 1), fuel.Electricity)
	require.NoError(t, err)
	gen, err := NewConsumptionStream(2019, constantSeries(2019, -0.4), fuel.Electricity)
	require.NoError(t, err)

	net, err := NewConsumption(base).Add(NewConsumption(gen))
	require.NoError(t, err)
	assert.InDelta(t, 0.6*8760, net.Overall().AnnualSumKWH(), 1e-6)

	gasStream, err := NewConsumptionStream(2019, constantSeries(2019, 1), fuel.Gas)
	require.NoError(t, err)
	_, err = net.Add(NewConsumption(gasStream))
	require.Error(t, err)
}

func TestZeroConsumption(t *testing.T) {
	c := ZeroConsumption(2019, fuel.Electricity)
	assert.Zero(t, c.Overall().AnnualSumKWH())
	assert.Zero(t, c.Imported().AnnualSumKWH())
	assert.Zero(t, c.Exported().AnnualSumKWH())
	assert.Len(t, c.Overall().HourlyKWH(), 8760)
}
