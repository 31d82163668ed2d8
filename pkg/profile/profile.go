// Package profile holds the hourly time-series containers the model is built
// on: a unit-agnostic Demand, a per-fuel ConsumptionStream, and a net
// Consumption with import/export views. Every series covers exactly one
// calendar year, hour 0 of Jan 1 through hour 23 of Dec 31.
package profile

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/retroplan/retroplan/pkg/fuel"
)

// HoursInYear returns the number of hourly samples in a calendar year.
func HoursInYear(year int) int {
	if IsLeapYear(year) {
		return 8784
	}
	return 8760
}

// DaysInYear returns the number of days in a calendar year.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Demand is an hourly energy-need series for one calendar year, before any
// fuel or efficiency conversion.
type Demand struct {
	year   int
	hourly []float64
}

// NewDemand validates that the series covers the year exactly.
func NewDemand(year int, hourlyKWH []float64) (Demand, error) {
	if len(hourlyKWH) != HoursInYear(year) {
		return Demand{}, fmt.Errorf("demand series for %d must have %d hourly values, got %d",
			year, HoursInYear(year), len(hourlyKWH))
	}
	return Demand{year: year, hourly: hourlyKWH}, nil
}

// FlatDemand spreads an annual total evenly over every hour of the year.
func FlatDemand(year int, annualKWH float64) Demand {
	hours := HoursInYear(year)
	hourly := make([]float64, hours)
	for i := range hourly {
		hourly[i] = annualKWH / float64(hours)
	}
	return Demand{year: year, hourly: hourly}
}

// Year returns the calendar year the series represents.
func (d Demand) Year() int { return d.year }

// Hourly returns the underlying series. Callers must not modify it; use
// Clone for a mutable copy.
func (d Demand) Hourly() []float64 { return d.hourly }

// AnnualSum returns the sum over the year.
func (d Demand) AnnualSum() float64 { return floats.Sum(d.hourly) }

// Clone returns a deep copy.
func (d Demand) Clone() Demand {
	hourly := make([]float64, len(d.hourly))
	copy(hourly, d.hourly)
	return Demand{year: d.year, hourly: hourly}
}

// Scale returns a new Demand with every hour multiplied by factor.
func (d Demand) Scale(factor float64) Demand {
	scaled := make([]float64, len(d.hourly))
	floats.ScaleTo(scaled, factor, d.hourly)
	return Demand{year: d.year, hourly: scaled}
}

// Add combines two demand series of the same year.
func (d Demand) Add(other Demand) (Demand, error) {
	if d.year != other.year {
		return Demand{}, fmt.Errorf("cannot add demand for year %d to demand for year %d", other.year, d.year)
	}
	combined := make([]float64, len(d.hourly))
	floats.AddTo(combined, d.hourly, other.hourly)
	return Demand{year: d.year, hourly: combined}, nil
}

// ConsumptionStream is an hourly energy-flow series for a single fuel.
type ConsumptionStream struct {
	fuel   fuel.Fuel
	year   int
	hourly []float64 // kWh per hour
}

// NewConsumptionStream validates the year-length invariant and pairs the
// series with its fuel.
func NewConsumptionStream(year int, hourlyKWH []float64, f fuel.Fuel) (ConsumptionStream, error) {
	if len(hourlyKWH) != HoursInYear(year) {
		return ConsumptionStream{}, fmt.Errorf("consumption series for %d must have %d hourly values, got %d",
			year, HoursInYear(year), len(hourlyKWH))
	}
	return ConsumptionStream{fuel: f, year: year, hourly: hourlyKWH}, nil
}

// StreamFromDemand converts a demand series into a consumption stream on the
// given fuel without rescaling.
func StreamFromDemand(d Demand, f fuel.Fuel) ConsumptionStream {
	return ConsumptionStream{fuel: f, year: d.year, hourly: d.hourly}
}

// ZeroStream returns an all-zero stream for the year and fuel.
func ZeroStream(year int, f fuel.Fuel) ConsumptionStream {
	return ConsumptionStream{fuel: f, year: year, hourly: make([]float64, HoursInYear(year))}
}

// Fuel returns the fuel the stream is denominated in.
func (s ConsumptionStream) Fuel() fuel.Fuel { return s.fuel }

// Year returns the calendar year of the series.
func (s ConsumptionStream) Year() int { return s.year }

// LeapYear reports whether the represented year is a leap year.
func (s ConsumptionStream) LeapYear() bool { return IsLeapYear(s.year) }

// DaysInYear returns the number of days in the represented year.
func (s ConsumptionStream) DaysInYear() int { return DaysInYear(s.year) }

// HourlyKWH returns the raw series in kWh. Callers must not modify it.
func (s ConsumptionStream) HourlyKWH() []float64 { return s.hourly }

// HourlyFuelUnits returns the series converted to the fuel's display units.
func (s ConsumptionStream) HourlyFuelUnits() []float64 {
	units := make([]float64, len(s.hourly))
	floats.ScaleTo(units, 1/s.fuel.KWHPerUnit, s.hourly)
	return units
}

// AnnualSumKWH returns the annual total in kWh.
func (s ConsumptionStream) AnnualSumKWH() float64 { return floats.Sum(s.hourly) }

// AnnualSumFuelUnits returns the annual total in the fuel's display units.
func (s ConsumptionStream) AnnualSumFuelUnits() float64 {
	return s.fuel.KWHToUnits(s.AnnualSumKWH())
}

// AnnualTCO2 returns the annual carbon total in tonnes.
func (s ConsumptionStream) AnnualTCO2() float64 {
	return s.fuel.AnnualTCO2(s.AnnualSumKWH())
}

// Add combines two streams of equal fuel and year.
func (s ConsumptionStream) Add(other ConsumptionStream) (ConsumptionStream, error) {
	if s.fuel != other.fuel {
		return ConsumptionStream{}, fmt.Errorf("cannot add %s consumption to %s consumption", other.fuel.Name, s.fuel.Name)
	}
	if s.year != other.year {
		return ConsumptionStream{}, fmt.Errorf("cannot add consumption for year %d to consumption for year %d", other.year, s.year)
	}
	combined := make([]float64, len(s.hourly))
	floats.AddTo(combined, s.hourly, other.hourly)
	return ConsumptionStream{fuel: s.fuel, year: s.year, hourly: combined}, nil
}

// Clone returns a deep copy of the stream.
func (s ConsumptionStream) Clone() ConsumptionStream {
	hourly := make([]float64, len(s.hourly))
	copy(hourly, s.hourly)
	return ConsumptionStream{fuel: s.fuel, year: s.year, hourly: hourly}
}

// Consumption is the net hourly flow for one fuel: positive hours are import,
// negative hours are export (generation is negative consumption).
type Consumption struct {
	overall ConsumptionStream
}

// NewConsumption wraps a net stream.
func NewConsumption(overall ConsumptionStream) Consumption {
	return Consumption{overall: overall}
}

// ZeroConsumption returns an all-zero net flow for the year and fuel.
func ZeroConsumption(year int, f fuel.Fuel) Consumption {
	return Consumption{overall: ZeroStream(year, f)}
}

// Fuel returns the fuel of the net stream.
func (c Consumption) Fuel() fuel.Fuel { return c.overall.fuel }

// Overall returns the net stream.
func (c Consumption) Overall() ConsumptionStream { return c.overall }

// Imported is the net stream with exporting hours clamped to zero.
func (c Consumption) Imported() ConsumptionStream {
	imported := c.overall.Clone()
	for i, v := range imported.hourly {
		if v < 0 {
			imported.hourly[i] = 0
		}
	}
	return imported
}

// Exported is the exporting hours of the net stream, sign-flipped so that
// billing code always multiplies a non-negative quantity by an export price.
func (c Consumption) Exported() ConsumptionStream {
	exported := c.overall.Clone()
	for i, v := range exported.hourly {
		if v > 0 {
			exported.hourly[i] = 0
		} else {
			exported.hourly[i] = -v
		}
	}
	return exported
}

// Add combines two net flows of the same fuel.
func (c Consumption) Add(other Consumption) (Consumption, error) {
	combined, err := c.overall.Add(other.overall)
	if err != nil {
		return Consumption{}, err
	}
	return Consumption{overall: combined}, nil
}

// Clone returns a deep copy.
func (c Consumption) Clone() Consumption {
	return Consumption{overall: c.overall.Clone()}
}
