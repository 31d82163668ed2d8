package fuel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects non-positive conversion factor", func(t *testing.T) {
		_, err := New("mystery", "kWh", 0, 0.0002)
		require.Error(t, err)
		_, err = New("mystery", "kWh", -1, 0.0002)
		require.Error(t, err)
	})

	t.Run("valid fuel", func(t *testing.T) {
		f, err := New("lpg", "litres", 7.08, 0.000214)
		require.NoError(t, err)
		assert.Equal(t, "lpg", f.Name)
		assert.InDelta(t, 7.08, f.KWHPerUnit, 1e-9)
	})
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, 100.0/KWHPerLitreOfOil, Oil.KWHToUnits(100), 1e-9)
	assert.InDelta(t, 100.0, Oil.UnitsToKWH(Oil.KWHToUnits(100)), 1e-9)

	// electricity units are kWh, so conversion is the identity
	assert.Equal(t, 42.0, Electricity.KWHToUnits(42))
	assert.Equal(t, 42.0, Electricity.UnitsToKWH(42))
}

func TestAnnualTCO2(t *testing.T) {
	assert.InDelta(t, 12000*Gas.TCO2PerKWH, Gas.AnnualTCO2(12000), 1e-12)
	assert.Zero(t, Gas.AnnualTCO2(0))
}

func TestByName(t *testing.T) {
	f, err := ByName("oil")
	require.NoError(t, err)
	assert.Equal(t, Oil, f)

	_, err = ByName("plutonium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fuel")
}

func TestEqualityByValue(t *testing.T) {
	f, err := ByName("gas")
	require.NoError(t, err)
	assert.True(t, f == Gas)
}
