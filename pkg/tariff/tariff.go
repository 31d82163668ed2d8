// Package tariff prices a year of fuel consumption. A Tariff pairs a fuel
// with unit and standing charges; Standard builds the default tariff set for
// a household on a given heating fuel.
package tariff

import (
	"fmt"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/params"
	"github.com/retroplan/retroplan/pkg/profile"
)

// Tariff prices consumption of a single fuel. Prices are pence so the tables
// read like a bill; cost methods return pounds.
type Tariff struct {
	// Fuel the tariff applies to.
	Fuel fuel.Fuel
	// PencePerUnit is the import price per fuel display unit (kWh for
	// electricity and gas, litres for oil).
	PencePerUnit float64
	// PencePerUnitExport is the credit per exported unit.
	PencePerUnitExport float64
	// PencePerDay is the standing charge.
	PencePerDay float64
}

func (t Tariff) checkFuel(c profile.Consumption) error {
	if c.Fuel() != t.Fuel {
		return fmt.Errorf("tariff is for %s but consumption is %s", t.Fuel.Name, c.Fuel().Name)
	}
	return nil
}

// AnnualImportCost returns the cost in pounds of the imported consumption
// plus a year of standing charges.
func (t Tariff) AnnualImportCost(c profile.Consumption) (float64, error) {
	if err := t.checkFuel(c); err != nil {
		return 0, err
	}
	imported := c.Imported().AnnualSumFuelUnits()
	days := float64(c.Overall().DaysInYear())
	return (imported*t.PencePerUnit + days*t.PencePerDay) / 100, nil
}

// AnnualExportCredit returns the credit in pounds for the exported
// consumption.
func (t Tariff) AnnualExportCredit(c profile.Consumption) (float64, error) {
	if err := t.checkFuel(c); err != nil {
		return 0, err
	}
	return c.Exported().AnnualSumFuelUnits() * t.PencePerUnitExport / 100, nil
}

// AnnualNetCost is the import cost less the export credit, in pounds.
func (t Tariff) AnnualNetCost(c profile.Consumption) (float64, error) {
	imp, err := t.AnnualImportCost(c)
	if err != nil {
		return 0, err
	}
	exp, err := t.AnnualExportCredit(c)
	if err != nil {
		return 0, err
	}
	return imp - exp, nil
}

// Standard returns the default tariff per fuel for a house heated with
// heatingFuel. Electricity is always present. Gas carries a standing charge,
// oil does not (it is delivered, not metered).
func Standard(heatingFuel fuel.Fuel) map[string]Tariff {
	d := params.StandardTariff
	tariffs := map[string]Tariff{
		fuel.Electricity.Name: {
			Fuel:               fuel.Electricity,
			PencePerUnit:       d.PPerKWHElecImport,
			PencePerUnitExport: d.PPerKWHElecExport,
			PencePerDay:        d.PPerDayElec,
		},
	}
	switch heatingFuel {
	case fuel.Gas:
		tariffs[fuel.Gas.Name] = Tariff{
			Fuel:         fuel.Gas,
			PencePerUnit: d.PPerKWHGas,
			PencePerDay:  d.PPerDayGas,
		}
	case fuel.Oil:
		tariffs[fuel.Oil.Name] = Tariff{
			Fuel:         fuel.Oil,
			PencePerUnit: d.PPerLitreOil,
		}
	}
	return tariffs
}
