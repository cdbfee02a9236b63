package grid

import (
	"errors"
	"fmt"

	"terrain_router/pkg/terrain"
)

var (
	// ErrEmptyGrid is returned when a grid would have no rows or no columns.
	ErrEmptyGrid = errors.New("grid: must have at least one row and one column")
	// ErrSizeMismatch is returned when the cell data does not cover rows*cols.
	ErrSizeMismatch = errors.New("grid: cell data does not match dimensions")
	// ErrInvalidTerrain is returned when a cell references a kind outside the catalog.
	ErrInvalidTerrain = errors.New("grid: invalid terrain kind")
)

// Cell is one raster pixel. Identity is position only; see Same.
type Cell struct {
	Row       int
	Col       int
	Elevation float64 // metres
	Terrain   terrain.Kind
}

// Index returns the row-major index of c in a grid with the given column count.
func (c Cell) Index(cols int) int { return c.Row*cols + c.Col }

// Same reports whether c and o occupy the same position.
func (c Cell) Same(o Cell) bool { return c.Row == o.Row && c.Col == o.Col }

// Passable reports whether the search may step onto c.
func (c Cell) Passable() bool { return !c.Terrain.Impassible() }

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is an immutable Rows×Cols raster of cells stored row-major.
type Grid struct {
	Rows  int
	Cols  int
	cells []Cell
}

// neighborOffsets lists orthogonal neighbors as (dRow, dCol): up, down, left, right.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// New builds a grid from flat row-major elevation and terrain slices.
func New(rows, cols int, elevation []float64, kinds []terrain.Kind) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	n := rows * cols
	if len(elevation) != n || len(kinds) != n {
		return nil, fmt.Errorf("%w: %dx%d needs %d cells, got %d elevations and %d kinds",
			ErrSizeMismatch, rows, cols, n, len(elevation), len(kinds))
	}

	cells := make([]Cell, n)
	for i := range cells {
		if !kinds[i].Valid() {
			return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTerrain, kinds[i], i/cols, i%cols)
		}
		cells[i] = Cell{
			Row:       i / cols,
			Col:       i % cols,
			Elevation: elevation[i],
			Terrain:   kinds[i],
		}
	}
	return &Grid{Rows: rows, Cols: cols, cells: cells}, nil
}

// FromRows builds a grid from per-row elevation and terrain slices. All rows
// must have the same length.
func FromRows(elevation [][]float64, kinds [][]terrain.Kind) (*Grid, error) {
	rows := len(elevation)
	if rows == 0 || len(elevation[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	if len(kinds) != rows {
		return nil, fmt.Errorf("%w: %d elevation rows, %d terrain rows", ErrSizeMismatch, rows, len(kinds))
	}
	cols := len(elevation[0])

	flatElev := make([]float64, 0, rows*cols)
	flatKinds := make([]terrain.Kind, 0, rows*cols)
	for r := 0; r < rows; r++ {
		if len(elevation[r]) != cols || len(kinds[r]) != cols {
			return nil, fmt.Errorf("%w: row %d is not %d wide", ErrSizeMismatch, r, cols)
		}
		flatElev = append(flatElev, elevation[r]...)
		flatKinds = append(flatKinds, kinds[r]...)
	}
	return New(rows, cols, flatElev, flatKinds)
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the cell at (row, col), or false when out of bounds.
func (g *Grid) At(row, col int) (Cell, bool) {
	if !g.InBounds(row, col) {
		return Cell{}, false
	}
	return g.cells[row*g.Cols+col], true
}

// CellAt returns the cell with row-major index idx.
func (g *Grid) CellAt(idx int) Cell { return g.cells[idx] }

// Index returns the row-major index of c.
func (g *Grid) Index(c Cell) int { return c.Index(g.Cols) }

// Neighbors appends the in-bounds, passable orthogonal neighbors of c to buf
// in up, down, left, right order and returns the extended slice.
func (g *Grid) Neighbors(c Cell, buf []Cell) []Cell {
	for _, d := range neighborOffsets {
		r, col := c.Row+d[0], c.Col+d[1]
		if !g.InBounds(r, col) {
			continue
		}
		n := g.cells[r*g.Cols+col]
		if n.Terrain.Impassible() {
			continue
		}
		buf = append(buf, n)
	}
	return buf
}

// Adjacent reports whether a and b are orthogonal neighbors.
func Adjacent(a, b Cell) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// Elevations returns a row-major copy of every cell's elevation.
func (g *Grid) Elevations() []float64 {
	out := make([]float64, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Elevation
	}
	return out
}

// Kinds returns a row-major copy of every cell's terrain kind.
func (g *Grid) Kinds() []terrain.Kind {
	out := make([]terrain.Kind, len(g.cells))
	for i, c := range g.cells {
		out[i] = c.Terrain
	}
	return out
}

// KindCounts returns how many cells of each terrain kind the grid holds.
func (g *Grid) KindCounts() map[terrain.Kind]int {
	counts := make(map[terrain.Kind]int)
	for _, c := range g.cells {
		counts[c.Terrain]++
	}
	return counts
}
