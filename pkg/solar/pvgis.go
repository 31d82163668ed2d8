package solar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/levenlabs/go-lflag"

	"github.com/retroplan/retroplan/pkg/common"
	"github.com/retroplan/retroplan/pkg/log"
	"github.com/retroplan/retroplan/pkg/profile"
)

// DefaultAPIURL is the public PVGIS hourly production endpoint.
const DefaultAPIURL = "https://re.jrc.ec.europa.eu/api/v5_2/seriescalc"

// PVGIS implements the Irradiance interface against the EU Joint Research
// Centre's PVGIS seriescalc API.
// https://joint-research-centre.ec.europa.eu/pvgis-photovoltaic-geographical-information-system/getting-started-pvgis/api-non-interactive-service_en
//
// Responses are cached per Request for the life of the process; historical
// irradiance for a fixed year never changes, so entries are never evicted.
type PVGIS struct {
	apiURL string
	client *http.Client

	mu    sync.Mutex
	cache map[Request][]float64
}

// NewPVGIS returns a PVGIS provider talking to apiURL.
func NewPVGIS(apiURL string) *PVGIS {
	return &PVGIS{
		apiURL: apiURL,
		client: common.HTTPClient(30 * time.Second),
		cache:  make(map[Request][]float64),
	}
}

// Configured sets up flags for PVGIS and returns the instance.
func Configured() *PVGIS {
	p := &PVGIS{
		client: common.HTTPClient(30 * time.Second),
		cache:  make(map[Request][]float64),
	}
	apiURL := lflag.String("pvgis-api-url", DefaultAPIURL, "URL for the PVGIS hourly PV production API")

	lflag.Do(func() {
		p.apiURL = *apiURL
		if err := p.Validate(); err != nil {
			panic(fmt.Errorf("invalid pvgis configuration: %w", err))
		}
	})

	return p
}

// Validate ensures the configuration is valid.
func (p *PVGIS) Validate() error {
	if p.apiURL == "" {
		return fmt.Errorf("pvgis-api-url is required")
	}
	if _, err := url.Parse(p.apiURL); err != nil {
		return fmt.Errorf("failed to parse pvgis url (%s): %w", p.apiURL, err)
	}
	return nil
}

type pvgisResponse struct {
	Outputs struct {
		Hourly []struct {
			Time string  `json:"time"`
			P    float64 `json:"P"`
		} `json:"hourly"`
	} `json:"outputs"`
}

// HourlyGenerationKW returns the hourly PV output in kW for req, fetching
// from the API on first sight of a request and the cache afterwards.
func (p *PVGIS) HourlyGenerationKW(ctx context.Context, req Request) ([]float64, error) {
	p.mu.Lock()
	if cached, ok := p.cache[req]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	hourly, err := p.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[req] = hourly
	p.mu.Unlock()

	return hourly, nil
}

func (p *PVGIS) fetch(ctx context.Context, req Request) ([]float64, error) {
	u, err := url.Parse(p.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	params.Set("startyear", strconv.Itoa(req.Year))
	params.Set("endyear", strconv.Itoa(req.Year))
	// estimate hourly PV production, not just irradiance
	params.Set("pvcalculation", "1")
	params.Set("peakpower", strconv.FormatFloat(req.PeakCapacityKW, 'f', -1, 64))
	params.Set("mountingplace", "building")
	params.Set("loss", strconv.FormatFloat(req.LossPercent, 'f', -1, 64))
	params.Set("angle", strconv.FormatFloat(req.PitchDegrees, 'f', -1, 64))
	params.Set("aspect", strconv.FormatFloat(req.AzimuthDegrees, 'f', -1, 64))
	params.Set("outputformat", "json")
	u.RawQuery = params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	log.Ctx(ctx).DebugContext(ctx, "fetching pv production from pvgis",
		slog.Float64("lat", req.Latitude),
		slog.Float64("lng", req.Longitude),
		slog.Float64("peakKW", req.PeakCapacityKW),
	)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to fetch pv production", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch pv production: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pvgis api returned status: %d", resp.StatusCode)
	}

	var data pvgisResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	want := profile.HoursInYear(req.Year)
	if len(data.Outputs.Hourly) != want {
		return nil, fmt.Errorf("pvgis returned %d hours, expected %d", len(data.Outputs.Hourly), want)
	}

	hourly := make([]float64, want)
	for i, h := range data.Outputs.Hourly {
		// source data in W, convert to kW
		hourly[i] = h.P / 1000
	}
	return hourly, nil
}
