package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"terrain_router/pkg/grid"
	"terrain_router/pkg/routing"
)

var (
	// ErrMalformedWaypoint is returned for a line that is not "col row".
	ErrMalformedWaypoint = errors.New("malformed waypoint line")
	// ErrWaypointOutOfRange is returned for a waypoint outside the grid.
	ErrWaypointOutOfRange = routing.ErrWaypointOutOfRange
)

// ReadWaypoints parses one "col row" pair per line, in order. Blank lines
// are skipped.
func ReadWaypoints(r io.Reader) ([]routing.Waypoint, error) {
	var wps []routing.Waypoint
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedWaypoint, line, sc.Text())
		}
		col, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: col: %v", ErrMalformedWaypoint, line, err)
		}
		row, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: row: %v", ErrMalformedWaypoint, line, err)
		}
		wps = append(wps, routing.Waypoint{Col: col, Row: row})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return wps, nil
}

// LoadWaypoints reads the waypoint file at path and resolves each entry to
// its cell in g.
func LoadWaypoints(path string, g *grid.Grid) ([]grid.Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open waypoints: %w", err)
	}
	defer f.Close()

	wps, err := ReadWaypoints(f)
	if err != nil {
		return nil, fmt.Errorf("waypoints %s: %w", path, err)
	}
	return ResolveWaypoints(g, wps)
}

// ResolveWaypoints maps waypoints onto cells of g.
func ResolveWaypoints(g *grid.Grid, wps []routing.Waypoint) ([]grid.Cell, error) {
	cells := make([]grid.Cell, len(wps))
	for i, w := range wps {
		c, ok := g.At(w.Row, w.Col)
		if !ok {
			return nil, fmt.Errorf("%w: waypoint %d (col %d, row %d) on %dx%d grid",
				ErrWaypointOutOfRange, i, w.Col, w.Row, g.Cols, g.Rows)
		}
		cells[i] = c
	}
	return cells, nil
}
