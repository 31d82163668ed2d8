package server

import (
	"net/http"
	"sort"

	"github.com/retroplan/retroplan/pkg/params"
)

type heatingPresetResponse struct {
	Name                   string             `json:"name"`
	Fuel                   string             `json:"fuel"`
	SpaceHeatingEfficiency float64            `json:"spaceHeatingEfficiency"`
	WaterHeatingEfficiency float64            `json:"waterHeatingEfficiency"`
	GrantPounds            int                `json:"grantPounds"`
	CostByHouseType        map[string]float64 `json:"costByHouseType"`
	LifetimeYears          int                `json:"lifetimeYears"`
}

type housePresetResponse struct {
	Name                     string  `json:"name"`
	AnnualHeatingDemandKWH   float64 `json:"annualHeatingDemandKWH"`
	AnnualBaseElectricityKWH float64 `json:"annualBaseElectricityKWH"`
}

type presetsResponse struct {
	HouseTypes     []housePresetResponse   `json:"houseTypes"`
	HeatingSystems []heatingPresetResponse `json:"heatingSystems"`
	Tariff         params.TariffDefaults   `json:"tariff"`
	Solar          params.SolarConstants   `json:"solar"`
}

// handlePresets returns the configuration tables the UI builds its forms
// from.
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	resp := presetsResponse{
		Tariff: params.StandardTariff,
		Solar:  params.Solar,
	}

	for _, name := range params.HouseTypes {
		preset := params.HousePresets[name]
		resp.HouseTypes = append(resp.HouseTypes, housePresetResponse{
			Name:                     name,
			AnnualHeatingDemandKWH:   preset.AnnualHeatingDemandKWH,
			AnnualBaseElectricityKWH: preset.AnnualBaseElectricityKWH,
		})
	}

	for name, preset := range params.HeatingPresets {
		resp.HeatingSystems = append(resp.HeatingSystems, heatingPresetResponse{
			Name:                   name,
			Fuel:                   preset.FuelName,
			SpaceHeatingEfficiency: preset.SpaceHeatingEfficiency,
			WaterHeatingEfficiency: preset.WaterHeatingEfficiency,
			GrantPounds:            preset.GrantPounds,
			CostByHouseType:        preset.CostByHouseType,
			LifetimeYears:          preset.LifetimeYears,
		})
	}
	sort.Slice(resp.HeatingSystems, func(i, j int) bool {
		return resp.HeatingSystems[i].Name < resp.HeatingSystems[j].Name
	})

	writeJSON(w, resp)
}
