// Package roof turns user-drawn geographic roof outlines into planar
// dimensions and a panel-packing estimate. It is pure geometry with no model
// dependencies.
package roof

import (
	"math"

	"github.com/retroplan/retroplan/pkg/params"
)

const (
	earthRadiusKM   = 6378
	kmPerDegreeLat  = 111
	kmToM           = 1e3
	degreesToRadian = math.Pi / 180
)

// Point is a geographic coordinate. Map tooling emits (lng, lat) pairs, so
// the field order follows that convention.
type Point struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Polygon is an ordered closed ring of geographic points, first and last
// identical.
type Polygon struct {
	points []Point
}

// New builds a polygon from a ring of points, closing the ring when the
// caller omits the repeated final point. Rings with fewer than three
// distinct points are accepted and behave as zero-area polygons.
func New(points []Point) Polygon {
	ring := make([]Point, len(points))
	copy(ring, points)
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return Polygon{points: ring}
}

// ZeroArea returns a degenerate polygon with no area, used when the user has
// drawn nothing.
func ZeroArea() Polygon {
	return Polygon{}
}

// Points returns the closed ring.
func (p Polygon) Points() []Point {
	return p.points
}

// Metres returns the ring projected onto a local metric plane relative to the
// first vertex: x east, y north. A flat-earth approximation, fine at roof
// scale.
func (p Polygon) Metres() [][2]float64 {
	if len(p.points) == 0 {
		return nil
	}
	ref := p.points[0]
	mPerDegreeLng := degreesToRadian * earthRadiusKM * math.Cos(ref.Lat*degreesToRadian) * kmToM
	out := make([][2]float64, len(p.points))
	for i, pt := range p.points {
		out[i] = [2]float64{
			(pt.Lng - ref.Lng) * mPerDegreeLng,
			(pt.Lat - ref.Lat) * kmPerDegreeLat * kmToM,
		}
	}
	return out
}

// Area returns the enclosed plan area in square metres, by the shoelace
// formula over the metric-plane ring.
func (p Polygon) Area() float64 {
	m := p.Metres()
	if len(m) < 4 {
		return 0
	}
	var sum float64
	for i := 0; i < len(m)-1; i++ {
		sum += m[i][0]*m[i+1][1] - m[i+1][0]*m[i][1]
	}
	return math.Abs(sum) / 2
}

// SideLengths returns the length in metres of each edge of the ring.
func (p Polygon) SideLengths() []float64 {
	m := p.Metres()
	if len(m) < 2 {
		return nil
	}
	lengths := make([]float64, len(m)-1)
	for i := 0; i < len(m)-1; i++ {
		lengths[i] = math.Hypot(m[i+1][0]-m[i][0], m[i+1][1]-m[i][1])
	}
	return lengths
}

// IsQuadrilateral reports whether the ring has exactly four sides.
func (p Polygon) IsQuadrilateral() bool {
	return len(p.points) == 5
}

// AverageHeight returns the smaller of the two opposite-edge-pair average
// lengths of a quadrilateral, in plan metres. Zero for non-quadrilaterals.
func (p Polygon) AverageHeight() float64 {
	h, _ := p.pairedAverages()
	return h
}

// AverageWidth returns the larger of the two opposite-edge-pair average
// lengths of a quadrilateral. Zero for non-quadrilaterals.
func (p Polygon) AverageWidth() float64 {
	_, w := p.pairedAverages()
	return w
}

func (p Polygon) pairedAverages() (height, width float64) {
	if !p.IsQuadrilateral() {
		return 0, 0
	}
	s := p.SideLengths()
	a := (s[0] + s[2]) / 2
	b := (s[1] + s[3]) / 2
	return math.Min(a, b), math.Max(a, b)
}

// PanelCount estimates how many panels fit on the polygon for a roof pitched
// at pitchDegrees. Quadrilaterals are packed as a grid in both orientations
// and the better one is kept; other shapes fall back to an area heuristic.
// Degenerate polygons yield zero.
func (p Polygon) PanelCount(pitchDegrees float64) int {
	cosPitch := math.Cos(pitchDegrees * degreesToRadian)
	if cosPitch <= 0 {
		return 0
	}
	if !p.IsQuadrilateral() {
		areaAlongPitch := p.Area() / cosPitch
		panelArea := params.Solar.PanelHeightM * params.Solar.PanelWidthM
		return int(areaAlongPitch * params.Panels.UsableFraction / panelArea)
	}
	height, width := p.pairedAverages()
	// The drawn outline is the plan view; the packable surface runs up the
	// pitch, so the shorter dimension stretches by 1/cos(pitch).
	height /= cosPitch

	a := gridCount(height, width, params.Solar.PanelHeightM, params.Solar.PanelWidthM)
	b := gridCount(height, width, params.Solar.PanelWidthM, params.Solar.PanelHeightM)
	return max(a, b)
}

// gridCount packs panels of (alongHeight, alongWidth) metres into a
// height x width rectangle, less a border on each axis. Installers leave a
// wider margin once the roof fits more than a couple of panel rows along its
// shorter axis.
func gridCount(height, width, alongHeight, alongWidth float64) int {
	border := params.Panels.SmallBorderM
	if int(height/alongHeight) > params.Panels.RowThreshold {
		border = params.Panels.LargeBorderM
	}
	rows := int((height - border) / alongHeight)
	cols := int((width - border) / alongWidth)
	if rows < 0 || cols < 0 {
		return 0
	}
	return rows * cols
}
