package geo

import (
	"errors"
	"math"
)

// Ground sample distance of the reference terrain raster, in metres per pixel.
// Pixels are not square: one column step covers more ground than one row step.
const (
	DefaultRowMeters = 7.55
	DefaultColMeters = 10.29
)

// ErrInvalidScale is returned when a scale component is not a positive finite number.
var ErrInvalidScale = errors.New("scale must be positive and finite")

// Scale converts grid displacement into ground metres.
type Scale struct {
	RowMeters float64 // metres per row step (north-south)
	ColMeters float64 // metres per column step (east-west)
}

// DefaultScale returns the reference raster's ground sample distance.
func DefaultScale() Scale {
	return Scale{RowMeters: DefaultRowMeters, ColMeters: DefaultColMeters}
}

// Validate checks that both components are usable as multipliers.
func (s Scale) Validate() error {
	for _, v := range []float64{s.RowMeters, s.ColMeters} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return ErrInvalidScale
		}
	}
	return nil
}

// Distance returns the 3-D Euclidean distance in metres for a displacement of
// dRow rows, dCol columns and dElev metres of elevation. Elevation is taken at
// native units.
func (s Scale) Distance(dRow, dCol int, dElev float64) float64 {
	x := float64(dCol) * s.ColMeters
	y := float64(dRow) * s.RowMeters
	return math.Sqrt(x*x + y*y + dElev*dElev)
}

// Planar returns the ground distance in metres ignoring elevation.
func (s Scale) Planar(dRow, dCol int) float64 {
	return math.Hypot(float64(dCol)*s.ColMeters, float64(dRow)*s.RowMeters)
}
