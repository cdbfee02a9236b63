package grid

import (
	"errors"
	"testing"

	"terrain_router/pkg/terrain"
)

// buildTestGrid creates a 3x4 grid with a wall in column 2 except the
// bottom row, and elevation equal to the row-major index.
//
//	. . # .
//	. . # .
//	. . . .
func buildTestGrid(t *testing.T) *Grid {
	t.Helper()
	const rows, cols = 3, 4
	elev := make([]float64, rows*cols)
	kinds := make([]terrain.Kind, rows*cols)
	for i := range elev {
		elev[i] = float64(i)
		kinds[i] = terrain.OpenLand
	}
	kinds[0*cols+2] = terrain.ImpassibleVegetation
	kinds[1*cols+2] = terrain.ImpassibleVegetation

	g, err := New(rows, cols, elev, kinds)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		elev       []float64
		kinds      []terrain.Kind
		want       error
	}{
		{"zero rows", 0, 3, nil, nil, ErrEmptyGrid},
		{"negative cols", 2, -1, nil, nil, ErrEmptyGrid},
		{"short elevation", 1, 2, []float64{1}, []terrain.Kind{0, 0}, ErrSizeMismatch},
		{"short kinds", 1, 2, []float64{1, 2}, []terrain.Kind{0}, ErrSizeMismatch},
		{"bad kind", 1, 1, []float64{1}, []terrain.Kind{terrain.Kind(99)}, ErrInvalidTerrain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows, tt.cols, tt.elev, tt.kinds)
			if !errors.Is(err, tt.want) {
				t.Errorf("New error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows(
		[][]float64{{1, 2}, {3, 4}},
		[][]terrain.Kind{{terrain.OpenLand, terrain.FootPath}, {terrain.PavedRoad, terrain.WalkForest}},
	)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	c, ok := g.At(1, 0)
	if !ok {
		t.Fatal("At(1,0) out of bounds")
	}
	if c.Elevation != 3 || c.Terrain != terrain.PavedRoad {
		t.Errorf("At(1,0) = %+v", c)
	}

	_, err = FromRows([][]float64{{1, 2}, {3}}, [][]terrain.Kind{{0, 0}, {0}})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("ragged rows error = %v, want ErrSizeMismatch", err)
	}
}

func TestCellIdentity(t *testing.T) {
	g := buildTestGrid(t)
	a, _ := g.At(2, 1)
	b := Cell{Row: 2, Col: 1, Elevation: -5, Terrain: terrain.LakeSwampMarsh}
	if !a.Same(b) {
		t.Error("cells at the same position must be the same cell")
	}
	if a.Index(g.Cols) != 9 || g.Index(b) != 9 {
		t.Errorf("Index = %d / %d, want 9", a.Index(g.Cols), g.Index(b))
	}
	if g.CellAt(9) != a {
		t.Errorf("CellAt(9) = %v, want %v", g.CellAt(9), a)
	}
}

func TestInBounds(t *testing.T) {
	g := buildTestGrid(t)
	for _, rc := range [][2]int{{0, 0}, {2, 3}, {1, 2}} {
		if !g.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d) = false, want true", rc[0], rc[1])
		}
	}
	for _, rc := range [][2]int{{-1, 0}, {3, 0}, {0, 4}, {0, -1}} {
		if g.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d) = true, want false", rc[0], rc[1])
		}
		if _, ok := g.At(rc[0], rc[1]); ok {
			t.Errorf("At(%d,%d) ok, want out of bounds", rc[0], rc[1])
		}
	}
}

func TestNeighbors(t *testing.T) {
	g := buildTestGrid(t)

	tests := []struct {
		name     string
		row, col int
		want     [][2]int
	}{
		{"top-left corner", 0, 0, [][2]int{{1, 0}, {0, 1}}},
		{"next to wall", 1, 1, [][2]int{{0, 1}, {2, 1}, {1, 0}}},
		{"bottom gap", 2, 2, [][2]int{{2, 1}, {2, 3}}},
		{"right of wall", 0, 3, [][2]int{{1, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := g.At(tt.row, tt.col)
			got := g.Neighbors(c, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("Neighbors(%v) = %v, want %v", c, got, tt.want)
			}
			for i, n := range got {
				if n.Row != tt.want[i][0] || n.Col != tt.want[i][1] {
					t.Errorf("neighbor %d = %v, want %v", i, n, tt.want[i])
				}
				if !n.Passable() {
					t.Errorf("neighbor %v is impassible", n)
				}
			}
		})
	}
}

func TestAdjacent(t *testing.T) {
	a := Cell{Row: 1, Col: 1}
	for _, b := range []Cell{{Row: 0, Col: 1}, {Row: 2, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}} {
		if !Adjacent(a, b) {
			t.Errorf("Adjacent(%v,%v) = false", a, b)
		}
	}
	for _, b := range []Cell{{Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 1, Col: 3}} {
		if Adjacent(a, b) {
			t.Errorf("Adjacent(%v,%v) = true", a, b)
		}
	}
}

func TestKindCounts(t *testing.T) {
	g := buildTestGrid(t)
	counts := g.KindCounts()
	if counts[terrain.ImpassibleVegetation] != 2 || counts[terrain.OpenLand] != 10 {
		t.Errorf("KindCounts = %v", counts)
	}
}
