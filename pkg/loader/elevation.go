package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrShortElevation is returned when the elevation text has fewer rows or
	// columns than the grid.
	ErrShortElevation = errors.New("elevation data does not cover grid")
	// ErrNonFiniteElevation is returned for NaN or infinite values, which
	// would leave a cell with no usable cost.
	ErrNonFiniteElevation = errors.New("elevation must be a finite number")
)

const maxLineBytes = 1 << 20

// ReadElevation parses whitespace-delimited elevations in metres, one raster
// row per line, and returns them row-major. Only the first cols values of a
// line are used. Reading stops at the first line without values or once
// rows lines have been read.
func ReadElevation(r io.Reader, rows, cols int) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	out := make([]float64, 0, rows*cols)
	row := 0
	for row < rows && sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			break
		}
		if len(fields) < cols {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d",
				ErrShortElevation, row+1, len(fields), cols)
		}
		for i, s := range fields[:cols] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d value %d: %w", row+1, i+1, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d value %d is %s", ErrNonFiniteElevation, row+1, i+1, s)
			}
			out = append(out, v)
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if row < rows {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrShortElevation, row, rows)
	}
	return out, nil
}
