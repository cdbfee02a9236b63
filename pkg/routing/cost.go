package routing

import "terrain_router/pkg/grid"

// EdgeCost returns the true cost of stepping between a and b: the scaled 3-D
// distance. Terrain penalty is not part of it.
func (e *Engine) EdgeCost(a, b grid.Cell) float64 {
	return e.scale.Distance(a.Row-b.Row, a.Col-b.Col, a.Elevation-b.Elevation)
}

// Heuristic estimates the remaining cost from n to goal as the straight-line
// scaled distance plus the penalty of n's own terrain. It is not a lower bound
// on the true remaining cost: the penalty term biases the search away from
// expensive terrain near the frontier. Heuristic(c, c) is c's penalty, not 0.
func (e *Engine) Heuristic(n, goal grid.Cell) float64 {
	return e.scale.Distance(n.Row-goal.Row, n.Col-goal.Col, n.Elevation-goal.Elevation) +
		n.Terrain.Penalty()
}

// PathDistance sums EdgeCost over consecutive cells. A repeated junction cell
// contributes a zero-length step.
func (e *Engine) PathDistance(cells []grid.Cell) float64 {
	var total float64
	for i := 1; i < len(cells); i++ {
		total += e.EdgeCost(cells[i-1], cells[i])
	}
	return total
}
