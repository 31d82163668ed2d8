package params

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/profile"
)

func TestShapesAreNormalized(t *testing.T) {
	for name, shape := range map[string]profile.Demand{
		"heating":          HeatingShape(),
		"base electricity": BaseElectricityShape(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, shape.Hourly(), profile.HoursInYear(BaseYear))
			assert.InDelta(t, 1.0, shape.AnnualSum(), 1e-9)
			for _, v := range shape.Hourly() {
				assert.GreaterOrEqual(t, v, 0.0)
			}
		})
	}
}

func TestHeatingShapeIsSeasonal(t *testing.T) {
	shape := HeatingShape()
	hourly := shape.Hourly()

	var january, july float64
	for i := 0; i < 31*24; i++ {
		january += hourly[i]
	}
	julyStart := (31 + 28 + 31 + 30 + 31 + 30) * 24
	for i := julyStart; i < julyStart+31*24; i++ {
		july += hourly[i]
	}
	assert.Greater(t, january, 3*july, "heating demand should be strongly winter-weighted")
}

func TestShapeCSVRoundTrip(t *testing.T) {
	shape := BaseElectricityShape()

	var buf bytes.Buffer
	require.NoError(t, WriteShape(&buf, shape))

	parsed, err := ReadShape(&buf, BaseYear)
	require.NoError(t, err)
	require.Len(t, parsed.Hourly(), profile.HoursInYear(BaseYear))
	assert.InDelta(t, 1.0, parsed.AnnualSum(), 1e-9)
}

func TestReadShapeRejectsBadInput(t *testing.T) {
	t.Run("wrong length", func(t *testing.T) {
		_, err := ReadShape(bytes.NewBufferString("hour,value\n0,1\n1,2\n"), BaseYear)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rows")
	})

	t.Run("out of order", func(t *testing.T) {
		var buf bytes.Buffer
		buf.WriteString("hour,value\n")
		for i := 0; i < profile.HoursInYear(BaseYear); i++ {
			h := i
			if i == 100 {
				h = 99
			}
			fmt.Fprintf(&buf, "%d,1\n", h)
		}
		_, err := ReadShape(&buf, BaseYear)
		require.Error(t, err)
	})
}

func TestPresetsCoverAllHouseTypes(t *testing.T) {
	for name, preset := range HeatingPresets {
		for _, ht := range HouseTypes {
			_, ok := preset.CostByHouseType[ht]
			assert.True(t, ok, "heating preset %s missing cost for %s", name, ht)
		}
	}
	for _, ht := range HouseTypes {
		_, ok := HousePresets[ht]
		assert.True(t, ok, "missing house preset for %s", ht)
	}
}
