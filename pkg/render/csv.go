package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"terrain_router/pkg/grid"
)

// Coster measures the true cost of one step.
type Coster interface {
	EdgeCost(a, b grid.Cell) float64
}

// Step is one row of the CSV export.
type Step struct {
	Step        int     `csv:"step"`
	Row         int     `csv:"row"`
	Col         int     `csv:"col"`
	Elevation   float64 `csv:"elevation_m"`
	Terrain     string  `csv:"terrain"`
	CumulativeM float64 `csv:"cumulative_m"`
}

// Steps lists the route cells with the running distance up to each.
func Steps(cells []grid.Cell, cost Coster) []Step {
	steps := make([]Step, len(cells))
	var total float64
	for i, c := range cells {
		if i > 0 {
			total += cost.EdgeCost(cells[i-1], c)
		}
		steps[i] = Step{
			Step:        i,
			Row:         c.Row,
			Col:         c.Col,
			Elevation:   c.Elevation,
			Terrain:     c.Terrain.String(),
			CumulativeM: total,
		}
	}
	return steps
}

// WriteCSV writes the step table with a header row.
func WriteCSV(w io.Writer, cells []grid.Cell, cost Coster) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	if err := enc.EncodeHeader(Step{}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, s := range Steps(cells, cost) {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode step %d: %w", s.Step, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
