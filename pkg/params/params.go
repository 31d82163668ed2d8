// Package params holds the configuration tables the model consumes: fuel and
// tariff prices, heating-system and house-type presets, solar panel
// constants, and the normalized demand shapes. The tables are data, not
// logic; they can be overridden by flags without touching the model.
package params

import (
	"fmt"
	"strconv"

	"github.com/levenlabs/go-lflag"
)

// lflag has no built-in float64 param type, so one is registered here and
// wrapped to match the shape of lflag.Int and friends.
func init() {
	lflag.CustomParamType("float64", new(float64), func(val string, ptr interface{}) error {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		*(ptr.(*float64)) = f
		return nil
	}, lflag.JSONStringAsIs)
}

func lflagFloat64(name string, value float64, usage string) *float64 {
	return lflag.Custom("float64", name, value, usage).(*float64)
}

// BaseYear is the calendar year every hourly series represents. It is a
// non-leap year so series carry 8760 values, and it matches the year
// requested from the irradiance provider.
const BaseYear = 2019

// HouseTypes are the supported building archetypes.
var HouseTypes = []string{"Terrace", "Semi-detached", "Detached", "Flat"}

// HeatingPreset describes a named heating-system configuration.
type HeatingPreset struct {
	SpaceHeatingEfficiency float64
	WaterHeatingEfficiency float64
	// FuelName must be in the registered fuel set.
	FuelName string
	// GrantPounds is deducted from the upfront cost (e.g. the Boiler
	// Upgrade Scheme grant for heat pumps).
	GrantPounds int
	// CostByHouseType is the installed cost in pounds.
	CostByHouseType map[string]float64
	LifetimeYears   int
}

// HeatingPresets is the named heating-system configuration table.
var HeatingPresets = map[string]HeatingPreset{
	"Gas boiler": {
		SpaceHeatingEfficiency: 0.85,
		WaterHeatingEfficiency: 0.8,
		FuelName:               "gas",
		CostByHouseType: map[string]float64{
			"Terrace": 2600, "Semi-detached": 2800, "Detached": 3300, "Flat": 2400,
		},
		LifetimeYears: 15,
	},
	"Oil boiler": {
		SpaceHeatingEfficiency: 0.8,
		WaterHeatingEfficiency: 0.75,
		FuelName:               "oil",
		CostByHouseType: map[string]float64{
			"Terrace": 4600, "Semi-detached": 4900, "Detached": 5500, "Flat": 4300,
		},
		LifetimeYears: 15,
	},
	"Direct electric": {
		SpaceHeatingEfficiency: 1.0,
		WaterHeatingEfficiency: 1.0,
		FuelName:               "electricity",
		CostByHouseType: map[string]float64{
			"Terrace": 2100, "Semi-detached": 2300, "Detached": 2900, "Flat": 1800,
		},
		LifetimeYears: 15,
	},
	"Heat pump": {
		SpaceHeatingEfficiency: 3.5,
		WaterHeatingEfficiency: 3.0,
		FuelName:               "electricity",
		GrantPounds:            5000,
		CostByHouseType: map[string]float64{
			"Terrace": 11000, "Semi-detached": 12000, "Detached": 14000, "Flat": 8000,
		},
		LifetimeYears: 15,
	},
}

// HousePreset describes a named building archetype.
type HousePreset struct {
	// AnnualHeatingDemandKWH is space + water heat demand, before any
	// heating-system efficiency is applied.
	AnnualHeatingDemandKWH float64
	// AnnualBaseElectricityKWH is lighting/appliance demand, always electric.
	AnnualBaseElectricityKWH float64
}

// HousePresets is the house-type default table.
var HousePresets = map[string]HousePreset{
	"Terrace":       {AnnualHeatingDemandKWH: 10500, AnnualBaseElectricityKWH: 2500},
	"Semi-detached": {AnnualHeatingDemandKWH: 12000, AnnualBaseElectricityKWH: 2900},
	"Detached":      {AnnualHeatingDemandKWH: 14500, AnnualBaseElectricityKWH: 3400},
	"Flat":          {AnnualHeatingDemandKWH: 6000, AnnualBaseElectricityKWH: 2000},
}

// TariffDefaults are the standard per-fuel prices in pence, minor currency
// units per fuel display unit.
type TariffDefaults struct {
	PPerKWHElecImport float64
	PPerKWHElecExport float64
	PPerDayElec       float64
	PPerKWHGas        float64
	PPerDayGas        float64
	PPerLitreOil      float64
}

// StandardTariff is the default price set.
var StandardTariff = TariffDefaults{
	PPerKWHElecImport: 34.0,
	PPerKWHElecExport: 15.0,
	PPerDayElec:       46.0,
	PPerKWHGas:        10.3,
	PPerDayGas:        28.0,
	PPerLitreOil:      95.0,
}

// SolarConstants are the panel and install parameters.
type SolarConstants struct {
	PanelHeightM   float64
	PanelWidthM    float64
	KWPeakPerPanel float64
	CostPerPanel   float64
	// SystemLossPercent is the loss figure passed to the irradiance
	// provider.
	SystemLossPercent float64
	LifetimeYears     int
	DefaultPitch      float64
}

// Solar is the default solar parameter set. Panel dimensions and kW peak from
// https://www.greenmatch.co.uk/blog/how-many-solar-panels-do-i-need
var Solar = SolarConstants{
	PanelHeightM:      1.9,
	PanelWidthM:       1.0,
	KWPeakPerPanel:    0.35,
	CostPerPanel:      400,
	SystemLossPercent: 14,
	LifetimeYears:     25,
	DefaultPitch:      30,
}

// PanelConfig tunes the roof panel-fitting heuristic. The border widening
// threshold is a judgment call likely to be revised, so it is flag-tunable
// rather than hard-coded.
type PanelConfig struct {
	// SmallBorderM is subtracted from each roof dimension on small roofs.
	SmallBorderM float64
	// LargeBorderM replaces SmallBorderM once more than RowThreshold panel
	// rows fit along the shorter axis; installers leave wider margins on
	// larger roofs.
	LargeBorderM float64
	RowThreshold int
	// UsableFraction is the roof-area share assumed packable when the
	// shape is not approximately rectangular.
	UsableFraction float64
}

// Panels is the active panel-fitting configuration.
var Panels = PanelConfig{
	SmallBorderM:   0.25,
	LargeBorderM:   0.4,
	RowThreshold:   2,
	UsableFraction: 0.8,
}

// Configured registers flag overrides for the tunable tables and binds them
// when flags are parsed.
func Configured() {
	smallBorder := lflagFloat64("panel-border-small", Panels.SmallBorderM, "Roof border allowance in metres for small roofs")
	largeBorder := lflagFloat64("panel-border-large", Panels.LargeBorderM, "Roof border allowance in metres for large roofs")
	rowThreshold := lflag.Int("panel-border-row-threshold", Panels.RowThreshold, "Panel rows along the shorter axis above which the large border applies")
	usableFraction := lflagFloat64("panel-usable-fraction", Panels.UsableFraction, "Usable roof-area fraction for non-rectangular roofs")
	elecImport := lflagFloat64("tariff-elec-import", StandardTariff.PPerKWHElecImport, "Electricity import price in p/kWh")
	elecExport := lflagFloat64("tariff-elec-export", StandardTariff.PPerKWHElecExport, "Electricity export price in p/kWh")
	heatingProfile := lflag.String("heating-profile", "", "CSV file with a normalized hourly heating demand shape")
	baseProfile := lflag.String("base-demand-profile", "", "CSV file with a normalized hourly base electricity demand shape")

	lflag.Do(func() {
		Panels.SmallBorderM = *smallBorder
		Panels.LargeBorderM = *largeBorder
		Panels.RowThreshold = *rowThreshold
		Panels.UsableFraction = *usableFraction
		StandardTariff.PPerKWHElecImport = *elecImport
		StandardTariff.PPerKWHElecExport = *elecExport

		if *heatingProfile != "" {
			shape, err := LoadShapeCSV(*heatingProfile, BaseYear)
			if err != nil {
				panic(fmt.Sprintf("failed to load heating profile: %v", err))
			}
			SetHeatingShape(shape)
		}
		if *baseProfile != "" {
			shape, err := LoadShapeCSV(*baseProfile, BaseYear)
			if err != nil {
				panic(fmt.Sprintf("failed to load base demand profile: %v", err))
			}
			SetBaseElectricityShape(shape)
		}
	})
}
