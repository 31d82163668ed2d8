package solar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
)

func pvgisBody(hours int, watts float64) string {
	var b strings.Builder
	b.WriteString(`{"outputs":{"hourly":[`)
	for i := 0; i < hours; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"time":"20190101:%04d","P":%g}`, i, watts)
	}
	b.WriteString(`]}}`)
	return b.String()
}

func testRequest() Request {
	return Request{
		Latitude:       51.45,
		Longitude:      -0.10,
		Year:           params.BaseYear,
		PeakCapacityKW: 3.5,
		LossPercent:    14,
		PitchDegrees:   30,
		AzimuthDegrees: 0,
	}
}

func TestPVGIS(t *testing.T) {
	hours := profile.HoursInYear(params.BaseYear)

	t.Run("Parsing", func(t *testing.T) {
		var gotQuery string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(pvgisBody(hours, 500)))
		}))
		defer ts.Close()

		p := NewPVGIS(ts.URL)
		hourly, err := p.HourlyGenerationKW(context.Background(), testRequest())
		require.NoError(t, err)
		require.Len(t, hourly, hours)
		assert.Equal(t, 0.5, hourly[0], "watts should be converted to kW")

		assert.Contains(t, gotQuery, "pvcalculation=1")
		assert.Contains(t, gotQuery, "mountingplace=building")
		assert.Contains(t, gotQuery, "startyear=2019")
		assert.Contains(t, gotQuery, "endyear=2019")
		assert.Contains(t, gotQuery, "peakpower=3.5")
		assert.Contains(t, gotQuery, "outputformat=json")
	})

	t.Run("Caching", func(t *testing.T) {
		requests := 0
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			_, _ = w.Write([]byte(pvgisBody(hours, 500)))
		}))
		defer ts.Close()

		p := NewPVGIS(ts.URL)
		req := testRequest()

		first, err := p.HourlyGenerationKW(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1, requests)

		second, err := p.HourlyGenerationKW(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 1, requests, "expected cached response")
		assert.Equal(t, first, second)

		// a geometry edit is a new key and must refetch
		req.AzimuthDegrees = 45
		_, err = p.HourlyGenerationKW(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 2, requests)
	})

	t.Run("NonSuccessStatus", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Latitude out of range", http.StatusBadRequest)
		}))
		defer ts.Close()

		p := NewPVGIS(ts.URL)
		_, err := p.HourlyGenerationKW(context.Background(), testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("WrongHourCount", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(pvgisBody(24, 500)))
		}))
		defer ts.Close()

		p := NewPVGIS(ts.URL)
		_, err := p.HourlyGenerationKW(context.Background(), testRequest())
		require.Error(t, err)
	})

	t.Run("Validate", func(t *testing.T) {
		assert.Error(t, (&PVGIS{}).Validate())
		assert.NoError(t, NewPVGIS("https://re.jrc.ec.europa.eu/api/v5_2/seriescalc").Validate())
	})
}
