package solar

import "context"

// Request identifies a generation query to an irradiance provider. It is a
// comparable value so it can key a cache: two installs with the same request
// produce the same profile, and any geometry or capacity edit yields a fresh
// key.
type Request struct {
	Latitude       float64
	Longitude      float64
	Year           int
	PeakCapacityKW float64
	LossPercent    float64
	PitchDegrees   float64
	AzimuthDegrees float64
}

// Irradiance returns the hourly PV output in kW for an install described by
// req, one value per hour of the requested year.
type Irradiance interface {
	HourlyGenerationKW(ctx context.Context, req Request) ([]float64, error)
}
