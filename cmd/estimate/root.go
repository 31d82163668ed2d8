package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/retroplan/retroplan/pkg/retrofit"
	"github.com/retroplan/retroplan/pkg/solar"
	"github.com/retroplan/retroplan/pkg/types"
)

var (
	houseType      string
	heatingSystem  string
	upgradeHeating string
	heatingDemand  float64
	baseElec       float64
	latitude       float64
	longitude      float64
	azimuth        float64
	pitch          float64
	panelCount     int
	pvgisURL       string
	outputJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate retrofit savings for a house",
	Long: `Estimate models a house's annual energy bills and carbon emissions, then
compares three upgrade paths against it: a heat pump, a solar install, and
both together. Solar generation is fetched from the PVGIS API for the
given location.`,
	RunE: runEstimate,
}

func init() {
	rootCmd.Flags().StringVar(&houseType, "house-type", "Semi-detached", "house type preset")
	rootCmd.Flags().StringVar(&heatingSystem, "heating", "Gas boiler", "current heating system preset")
	rootCmd.Flags().StringVar(&upgradeHeating, "upgrade-heating", "Heat pump", "heating system to upgrade to")
	rootCmd.Flags().Float64Var(&heatingDemand, "heating-demand", 0, "annual heating demand in kWh (0 uses the house-type preset)")
	rootCmd.Flags().Float64Var(&baseElec, "base-electricity", 0, "annual non-heating electricity in kWh (0 uses the house-type preset)")
	rootCmd.Flags().Float64Var(&latitude, "lat", 0, "latitude of the house")
	rootCmd.Flags().Float64Var(&longitude, "lng", 0, "longitude of the house")
	rootCmd.Flags().Float64Var(&azimuth, "azimuth", 0, "compass direction the panels face, degrees from south")
	rootCmd.Flags().Float64Var(&pitch, "pitch", 0, "roof pitch in degrees (0 uses the default)")
	rootCmd.Flags().IntVar(&panelCount, "panels", 0, "number of panels to install")
	rootCmd.Flags().StringVar(&pvgisURL, "pvgis-url", solar.DefaultAPIURL, "URL for the PVGIS hourly PV production API")
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "print the full response as JSON")
}

func buildRequest() types.EstimateRequest {
	req := types.EstimateRequest{
		Baseline: types.HouseSpec{
			HouseType:     houseType,
			HeatingSystem: heatingSystem,
		},
		UpgradeHeating: upgradeHeating,
	}
	if heatingDemand > 0 {
		req.Baseline.AnnualHeatingDemandKWH = &heatingDemand
	}
	if baseElec > 0 {
		req.Baseline.AnnualBaseElectricityKWH = &baseElec
	}
	if panelCount > 0 {
		req.UpgradeSolar = &types.SolarSpec{
			Latitude:       latitude,
			Longitude:      longitude,
			AzimuthDegrees: azimuth,
			PitchDegrees:   pitch,
			PanelCount:     &panelCount,
		}
	}
	return req
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if panelCount > 0 && latitude == 0 && longitude == 0 {
		return fmt.Errorf("--lat and --lng are required when --panels is set")
	}

	req := buildRequest()
	provider := solar.NewPVGIS(pvgisURL)

	resp, err := retrofit.Estimate(cmd.Context(), req, provider)
	if err != nil {
		return fmt.Errorf("running estimate: %w", err)
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	printResponse(resp)
	return nil
}

func printResponse(resp types.EstimateResponse) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Scenario\tAnnual bill\tAnnual tCO2\tUpfront cost\tSavings/yr\tPayback\n")
	printRow(w, "Baseline", resp.Baseline, nil)
	printRow(w, "Heat pump", resp.HeatPump.House, &resp.HeatPump.Comparison)
	printRow(w, "Solar", resp.Solar.House, &resp.Solar.Comparison)
	printRow(w, "Heat pump + solar", resp.Both.House, &resp.Both.Comparison)
	w.Flush()
}

func printRow(w *tabwriter.Writer, name string, h types.HouseSummary, c *types.ComparisonSummary) {
	bill := "£" + humanize.CommafWithDigits(h.TotalAnnualBill, 2)
	tco2 := humanize.CommafWithDigits(h.TotalAnnualTCO2, 2)
	upfront := "£" + humanize.Commaf(h.UpfrontAfterGrant)
	if c == nil {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t-\t-\n", name, bill, tco2, upfront)
		return
	}

	savings := "£" + humanize.CommafWithDigits(c.BillSavings, 2)
	payback := "never"
	if c.SimplePaybackYears != nil {
		payback = fmt.Sprintf("%s years", humanize.CommafWithDigits(*c.SimplePaybackYears, 1))
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", name, bill, tco2, upfront, savings, payback)
}
