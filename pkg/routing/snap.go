package routing

import (
	"errors"
	"math"

	"github.com/tidwall/rtree"

	"terrain_router/pkg/geo"
	"terrain_router/pkg/grid"
)

// ErrPointTooFar is returned when no passable cell lies within the snap radius.
var ErrPointTooFar = errors.New("point too far from passable terrain")

// SnapResult is a waypoint moved onto passable terrain.
type SnapResult struct {
	Cell grid.Cell
	Dist float64 // ground distance in metres from the requested cell
}

// Snapper finds the nearest passable cell using an R-tree of passable cells
// in ground coordinates (metres east, metres south of the origin).
type Snapper struct {
	tr     rtree.RTreeG[int32]
	g      *grid.Grid
	scale  geo.Scale
	radius float64
}

// NewSnapper indexes every passable cell of g.
func NewSnapper(g *grid.Grid, scale geo.Scale, radiusMeters float64) *Snapper {
	s := &Snapper{g: g, scale: scale, radius: radiusMeters}
	for i := 0; i < g.Len(); i++ {
		c := g.CellAt(i)
		if !c.Passable() {
			continue
		}
		p := s.point(c)
		s.tr.Insert(p, p, int32(i))
	}
	return s
}

// Len returns the number of indexed cells.
func (s *Snapper) Len() int { return s.tr.Len() }

func (s *Snapper) point(c grid.Cell) [2]float64 {
	return [2]float64{float64(c.Col) * s.scale.ColMeters, float64(c.Row) * s.scale.RowMeters}
}

// Snap returns c itself when it is passable, otherwise the nearest passable
// cell by ground distance. Equidistant candidates resolve to the lowest
// row-major index.
func (s *Snapper) Snap(c grid.Cell) (SnapResult, error) {
	if c.Passable() {
		return SnapResult{Cell: c}, nil
	}

	target := s.point(c)
	maxSq := s.radius * s.radius
	bestSq := math.Inf(1)
	best := int32(-1)

	s.tr.Nearby(
		func(min, max [2]float64, _ int32, _ bool) float64 {
			return boxDistSq(target, min, max)
		},
		func(_, _ [2]float64, idx int32, dist float64) bool {
			if dist > bestSq || dist > maxSq {
				return false
			}
			if dist < bestSq || idx < best {
				bestSq = dist
				best = idx
			}
			return true
		},
	)

	if best < 0 {
		return SnapResult{}, ErrPointTooFar
	}
	snapped := s.g.CellAt(int(best))
	return SnapResult{Cell: snapped, Dist: s.scale.Planar(snapped.Row-c.Row, snapped.Col-c.Col)}, nil
}

// boxDistSq returns the squared distance from p to the box [min, max].
func boxDistSq(p, min, max [2]float64) float64 {
	var sum float64
	for i := 0; i < 2; i++ {
		var d float64
		if p[i] < min[i] {
			d = min[i] - p[i]
		} else if p[i] > max[i] {
			d = p[i] - max[i]
		}
		sum += d * d
	}
	return sum
}
