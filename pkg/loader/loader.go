// Package loader reads the terrain raster, elevation text and waypoint list
// a route query is built from.
package loader

import (
	"fmt"
	"os"

	"terrain_router/pkg/grid"
)

// LoadGrid builds a rows×cols grid from a terrain image and an elevation
// text file. Pixels beyond rows×cols and extra elevation values are ignored.
func LoadGrid(terrainPath, elevationPath string, rows, cols int) (*grid.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, grid.ErrEmptyGrid
	}

	kinds, err := ReadTerrain(terrainPath, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("terrain %s: %w", terrainPath, err)
	}

	f, err := os.Open(elevationPath)
	if err != nil {
		return nil, fmt.Errorf("open elevation: %w", err)
	}
	defer f.Close()

	elevation, err := ReadElevation(f, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("elevation %s: %w", elevationPath, err)
	}

	return grid.New(rows, cols, elevation, kinds)
}
