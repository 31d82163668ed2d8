package params

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"

	"github.com/retroplan/retroplan/pkg/profile"
)

// ShapeRow is one hour of a prepared demand-shape CSV, the format written by
// cmd/profilegen.
type ShapeRow struct {
	Hour  int     `csv:"hour"`
	Value float64 `csv:"value"`
}

// LoadShapeCSV reads an hourly shape CSV and normalizes it to unit sum.
func LoadShapeCSV(path string, year int) (profile.Demand, error) {
	f, err := os.Open(path)
	if err != nil {
		return profile.Demand{}, fmt.Errorf("failed to open shape file: %w", err)
	}
	defer f.Close()
	return ReadShape(f, year)
}

// ReadShape parses and normalizes a shape CSV.
func ReadShape(r io.Reader, year int) (profile.Demand, error) {
	var rows []ShapeRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return profile.Demand{}, fmt.Errorf("failed to parse shape csv: %w", err)
	}
	if len(rows) != profile.HoursInYear(year) {
		return profile.Demand{}, fmt.Errorf("shape csv must have %d rows for year %d, got %d",
			profile.HoursInYear(year), year, len(rows))
	}

	hourly := make([]float64, len(rows))
	for i, row := range rows {
		if row.Hour != i {
			return profile.Demand{}, fmt.Errorf("shape csv rows out of order: row %d has hour %d", i, row.Hour)
		}
		if row.Value < 0 {
			return profile.Demand{}, fmt.Errorf("shape csv hour %d is negative", i)
		}
		hourly[i] = row.Value
	}

	sum := floats.Sum(hourly)
	if sum <= 0 {
		return profile.Demand{}, fmt.Errorf("shape csv sums to %v, cannot normalize", sum)
	}
	floats.Scale(1/sum, hourly)
	return profile.NewDemand(year, hourly)
}

// WriteShape writes a demand series as a shape CSV.
func WriteShape(w io.Writer, d profile.Demand) error {
	rows := make([]ShapeRow, len(d.Hourly()))
	for i, v := range d.Hourly() {
		rows[i] = ShapeRow{Hour: i, Value: v}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write shape csv: %w", err)
	}
	return nil
}
