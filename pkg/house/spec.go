package house

import (
	"context"
	"fmt"

	"github.com/retroplan/retroplan/pkg/fuel"
	"github.com/retroplan/retroplan/pkg/heating"
	"github.com/retroplan/retroplan/pkg/roof"
	"github.com/retroplan/retroplan/pkg/solar"
	"github.com/retroplan/retroplan/pkg/tariff"
	"github.com/retroplan/retroplan/pkg/types"
)

// FromSpec builds a house from its wire representation. Generation profiles
// come from provider, so callers sharing one provider share its cache.
func FromSpec(spec types.HouseSpec, provider solar.Irradiance) (*House, error) {
	envelope, err := EnvelopeFromPreset(spec.HouseType)
	if err != nil {
		return nil, err
	}
	if spec.AnnualHeatingDemandKWH != nil {
		envelope.SetAnnualHeatingDemand(*spec.AnnualHeatingDemandKWH)
	}
	if spec.AnnualBaseElectricityKWH != nil {
		envelope.SetAnnualBaseDemand(*spec.AnnualBaseElectricityKWH)
	}

	heatingSystem, err := heating.FromPreset(spec.HeatingSystem)
	if err != nil {
		return nil, err
	}

	h := New(envelope, heatingSystem, SolarFromSpec(spec.Solar, provider))

	for _, ts := range spec.Tariffs {
		f, err := fuel.ByName(ts.Fuel)
		if err != nil {
			return nil, err
		}
		h.SetTariff(tariff.Tariff{
			Fuel:               f,
			PencePerUnit:       ts.PencePerUnit,
			PencePerUnitExport: ts.PencePerUnitExport,
			PencePerDay:        ts.PencePerDay,
		})
	}
	if spec.HeatingCostPounds != nil {
		h.SetHeatingCost(*spec.HeatingCostPounds)
	}
	return h, nil
}

// SolarFromSpec builds an install from its wire representation, nil for nil.
func SolarFromSpec(spec *types.SolarSpec, provider solar.Irradiance) *solar.Install {
	if spec == nil {
		return nil
	}
	polygons := make([]roof.Polygon, 0, len(spec.Roof))
	for _, ring := range spec.Roof {
		points := make([]roof.Point, len(ring))
		for i, pt := range ring {
			points[i] = roof.Point{Lng: pt.Lng, Lat: pt.Lat}
		}
		polygons = append(polygons, roof.New(points))
	}

	install := solar.New(provider, spec.Latitude, spec.Longitude, spec.AzimuthDegrees, polygons)
	if spec.PitchDegrees != 0 {
		install.SetPitch(spec.PitchDegrees)
	}
	if spec.PanelCount != nil {
		install.SetPanelCount(*spec.PanelCount)
	}
	return install
}

// Summarize computes the annual totals of a house for the API.
func Summarize(ctx context.Context, h *House) (types.HouseSummary, error) {
	perFuel, err := h.ConsumptionPerFuel(ctx)
	if err != nil {
		return types.HouseSummary{}, err
	}

	summary := types.HouseSummary{
		PerFuel: make(map[string]types.FuelSummary, len(perFuel)),
	}
	for name, consumption := range perFuel {
		t, ok := h.Tariffs()[name]
		if !ok {
			return types.HouseSummary{}, fmt.Errorf("no tariff for fuel: %s", name)
		}
		bill, err := t.AnnualNetCost(consumption)
		if err != nil {
			return types.HouseSummary{}, err
		}
		summary.PerFuel[name] = types.FuelSummary{
			AnnualKWH:       consumption.Overall().AnnualSumKWH(),
			AnnualFuelUnits: consumption.Overall().AnnualSumFuelUnits(),
			Units:           consumption.Fuel().Units,
			AnnualBill:      bill,
			AnnualTCO2:      consumption.Overall().AnnualTCO2(),
		}
		summary.TotalAnnualBill += bill
		summary.TotalAnnualTCO2 += consumption.Overall().AnnualTCO2()
	}

	summary.UpfrontCost, err = h.UpfrontCost()
	if err != nil {
		return types.HouseSummary{}, err
	}
	summary.UpfrontAfterGrant, err = h.UpfrontCostAfterGrants()
	if err != nil {
		return types.HouseSummary{}, err
	}

	if install := h.SolarInstall(); install != nil {
		summary.PanelCount = install.PanelCount()
		summary.PeakCapacityKW = install.PeakCapacityKW()
		selfUse, err := h.PercentSelfUseOfSolar(ctx)
		if err != nil {
			return types.HouseSummary{}, err
		}
		summary.SolarSelfUsePercent = selfUse
	}
	return summary, nil
}
