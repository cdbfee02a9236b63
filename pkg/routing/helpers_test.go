package routing

import (
	"testing"

	"terrain_router/pkg/geo"
	"terrain_router/pkg/grid"
	"terrain_router/pkg/terrain"
)

// glyphs maps the characters used by parseMap to terrain kinds.
var glyphs = map[rune]terrain.Kind{
	'.': terrain.OpenLand,
	'#': terrain.ImpassibleVegetation,
	'~': terrain.LakeSwampMarsh,
	'=': terrain.PavedRoad,
	'f': terrain.WalkForest,
	'X': terrain.OutOfBounds,
}

// parseMap builds a flat (zero elevation) grid from rows of glyphs.
func parseMap(t testing.TB, rows ...string) *grid.Grid {
	t.Helper()
	elev := make([][]float64, len(rows))
	kinds := make([][]terrain.Kind, len(rows))
	for r, line := range rows {
		for _, ch := range line {
			k, ok := glyphs[ch]
			if !ok {
				t.Fatalf("unknown glyph %q in row %d", ch, r)
			}
			kinds[r] = append(kinds[r], k)
			elev[r] = append(elev[r], 0)
		}
	}
	g, err := grid.FromRows(elev, kinds)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

// unitEngine uses one metre per row and per column so costs stay exact.
func unitEngine(g *grid.Grid) *Engine {
	return NewEngine(g, EngineOptions{
		Scale:            geo.Scale{RowMeters: 1, ColMeters: 1},
		SnapRadiusMeters: 3,
	})
}

func cellAt(t testing.TB, g *grid.Grid, row, col int) grid.Cell {
	t.Helper()
	c, ok := g.At(row, col)
	if !ok {
		t.Fatalf("(%d,%d) outside %dx%d grid", row, col, g.Rows, g.Cols)
	}
	return c
}

// checkPath asserts the connectivity and passability properties of a route.
func checkPath(t *testing.T, path []grid.Cell, start, goal grid.Cell) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if !path[0].Same(start) {
		t.Errorf("path starts at %v, want %v", path[0], start)
	}
	if !path[len(path)-1].Same(goal) {
		t.Errorf("path ends at %v, want %v", path[len(path)-1], goal)
	}
	for i := 1; i < len(path); i++ {
		if !grid.Adjacent(path[i-1], path[i]) {
			t.Errorf("step %d: %v -> %v is not a 4-neighbor move", i, path[i-1], path[i])
		}
		if !path[i].Passable() {
			t.Errorf("step %d: %v is impassible (%s)", i, path[i], path[i].Terrain)
		}
	}
}
