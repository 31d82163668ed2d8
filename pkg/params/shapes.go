package params

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/retroplan/retroplan/pkg/profile"
)

// The normalized demand shapes distribute an annual total over the year; each
// sums to 1. The built-in shapes are synthetic seasonal/diurnal curves used
// when no prepared profile CSV (see cmd/profilegen) is supplied.

var (
	shapeMu    sync.Mutex
	heating    *profile.Demand
	baseDemand *profile.Demand
)

// HeatingShape returns the unit-sum hourly heating demand shape for BaseYear.
func HeatingShape() profile.Demand {
	shapeMu.Lock()
	defer shapeMu.Unlock()
	if heating == nil {
		d := syntheticHeatingShape(BaseYear)
		heating = &d
	}
	return *heating
}

// BaseElectricityShape returns the unit-sum hourly base electricity demand
// shape for BaseYear.
func BaseElectricityShape() profile.Demand {
	shapeMu.Lock()
	defer shapeMu.Unlock()
	if baseDemand == nil {
		d := syntheticBaseElectricityShape(BaseYear)
		baseDemand = &d
	}
	return *baseDemand
}

// SetHeatingShape replaces the built-in heating shape, e.g. with a prepared
// reference profile.
func SetHeatingShape(d profile.Demand) {
	shapeMu.Lock()
	defer shapeMu.Unlock()
	heating = &d
}

// SetBaseElectricityShape replaces the built-in base electricity shape.
func SetBaseElectricityShape(d profile.Demand) {
	shapeMu.Lock()
	defer shapeMu.Unlock()
	baseDemand = &d
}

// syntheticHeatingShape peaks on winter mornings and evenings and nearly
// vanishes in summer.
func syntheticHeatingShape(year int) profile.Demand {
	hours := profile.HoursInYear(year)
	hourly := make([]float64, hours)
	for i := range hourly {
		day := float64(i / 24)
		hour := float64(i % 24)

		seasonal := 0.05 + 0.95*(1+math.Cos(2*math.Pi*(day-14)/365.25))/2
		diurnal := 0.3 +
			math.Exp(-math.Pow(hour-7, 2)/8) +
			1.2*math.Exp(-math.Pow(hour-19, 2)/10)
		hourly[i] = seasonal * diurnal
	}
	return normalize(year, hourly)
}

// syntheticBaseElectricityShape has an evening peak and a mild winter bias.
func syntheticBaseElectricityShape(year int) profile.Demand {
	hours := profile.HoursInYear(year)
	hourly := make([]float64, hours)
	for i := range hourly {
		day := float64(i / 24)
		hour := float64(i % 24)

		seasonal := 1 + 0.12*math.Cos(2*math.Pi*(day-14)/365.25)
		diurnal := 0.5 +
			0.4*math.Exp(-math.Pow(hour-8, 2)/10) +
			math.Exp(-math.Pow(hour-19, 2)/12)
		hourly[i] = seasonal * diurnal
	}
	return normalize(year, hourly)
}

func normalize(year int, hourly []float64) profile.Demand {
	sum := floats.Sum(hourly)
	floats.Scale(1/sum, hourly)
	d, err := profile.NewDemand(year, hourly)
	if err != nil {
		// the series is built to the right length above
		panic(err)
	}
	return d
}
