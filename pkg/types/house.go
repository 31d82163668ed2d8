// Package types holds the wire and storage representations shared by the
// API, the storage providers and the CLIs.
package types

import "time"

// RoofPoint is one vertex of a drawn roof outline.
type RoofPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// SolarSpec describes a candidate solar install.
type SolarSpec struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AzimuthDegrees float64 `json:"azimuthDegrees"`
	// PitchDegrees of zero means the default pitch.
	PitchDegrees float64 `json:"pitchDegrees,omitempty"`
	// Roof is one ring of points per drawn roof face.
	Roof [][]RoofPoint `json:"roof,omitempty"`
	// PanelCount overrides the count fitted from the roof outlines.
	PanelCount *int `json:"panelCount,omitempty"`
}

// TariffSpec overrides the standard prices for one fuel.
type TariffSpec struct {
	Fuel               string  `json:"fuel"`
	PencePerUnit       float64 `json:"pencePerUnit"`
	PencePerUnitExport float64 `json:"pencePerUnitExport,omitempty"`
	PencePerDay        float64 `json:"pencePerDay,omitempty"`
}

// HouseSpec describes a house to model. Omitted optionals fall back to the
// house-type presets.
type HouseSpec struct {
	HouseType     string `json:"houseType"`
	HeatingSystem string `json:"heatingSystem"`

	AnnualHeatingDemandKWH   *float64 `json:"annualHeatingDemandKWH,omitempty"`
	AnnualBaseElectricityKWH *float64 `json:"annualBaseElectricityKWH,omitempty"`
	HeatingCostPounds        *float64 `json:"heatingCostPounds,omitempty"`

	Tariffs []TariffSpec `json:"tariffs,omitempty"`
	Solar   *SolarSpec   `json:"solar,omitempty"`
}

// FuelSummary is one fuel's share of a house's annual totals.
type FuelSummary struct {
	AnnualKWH       float64 `json:"annualKWH"`
	AnnualFuelUnits float64 `json:"annualFuelUnits"`
	Units           string  `json:"units"`
	AnnualBill      float64 `json:"annualBill"`
	AnnualTCO2      float64 `json:"annualTCO2"`
}

// HouseSummary is the derived annual picture of one scenario.
type HouseSummary struct {
	PerFuel map[string]FuelSummary `json:"perFuel"`

	TotalAnnualBill   float64 `json:"totalAnnualBill"`
	TotalAnnualTCO2   float64 `json:"totalAnnualTCO2"`
	UpfrontCost       float64 `json:"upfrontCost"`
	UpfrontAfterGrant float64 `json:"upfrontAfterGrant"`

	PanelCount          int     `json:"panelCount"`
	PeakCapacityKW      float64 `json:"peakCapacityKW"`
	SolarSelfUsePercent float64 `json:"solarSelfUsePercent"`
}

// ComparisonSummary reports the savings of one upgrade over the baseline.
// Payback and ROI are omitted when undefined rather than sent as NaN or
// infinity.
type ComparisonSummary struct {
	BillSavings       float64 `json:"billSavings"`
	BillSavingsPct    float64 `json:"billSavingsPct"`
	CarbonSavingsTCO2 float64 `json:"carbonSavingsTCO2"`
	CarbonSavingsPct  float64 `json:"carbonSavingsPct"`
	IncrementalCost   float64 `json:"incrementalCost"`

	SimplePaybackYears *float64 `json:"simplePaybackYears,omitempty"`
	AnnualizedROI      *float64 `json:"annualizedROI,omitempty"`
}

// EstimateRequest asks for the standard upgrade comparison of a baseline
// house.
type EstimateRequest struct {
	Baseline HouseSpec `json:"baseline"`
	// UpgradeHeating names the heating preset to upgrade to. Empty means
	// "Heat pump".
	UpgradeHeating string `json:"upgradeHeating,omitempty"`
	// UpgradeSolar describes the install to add. Nil reuses the baseline's
	// solar spec, which must then be present.
	UpgradeSolar *SolarSpec `json:"upgradeSolar,omitempty"`
}

// UpgradeSummary is one upgrade path: the resulting house and its savings.
type UpgradeSummary struct {
	House      HouseSummary      `json:"house"`
	Comparison ComparisonSummary `json:"comparison"`
}

// EstimateResponse is the standard three-way upgrade comparison.
type EstimateResponse struct {
	Baseline HouseSummary   `json:"baseline"`
	HeatPump UpgradeSummary `json:"heatPump"`
	Solar    UpgradeSummary `json:"solar"`
	Both     UpgradeSummary `json:"both"`
}

// Scenario is a saved estimate request with its identity and timestamps.
type Scenario struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Request EstimateRequest `json:"request"`
}
