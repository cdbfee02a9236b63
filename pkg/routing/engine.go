package routing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"terrain_router/pkg/geo"
	"terrain_router/pkg/grid"
)

var (
	// ErrNoRoute is returned when no traversable route connects the cells.
	// It is a normal outcome, not a failure of the engine.
	ErrNoRoute = errors.New("no route found")
	// ErrTooFewWaypoints is returned when a plan has fewer than two waypoints.
	ErrTooFewWaypoints = errors.New("at least two waypoints are required")
	// ErrWaypointOutOfRange is returned when a waypoint lies outside the grid.
	ErrWaypointOutOfRange = errors.New("waypoint outside the grid")
)

// Waypoint is a grid position as read from a waypoint list.
type Waypoint struct {
	Col int
	Row int
}

// Leg is the path between two consecutive waypoints, both ends included.
type Leg struct {
	From           grid.Cell
	To             grid.Cell
	Cells          []grid.Cell
	DistanceMeters float64
}

// Route is the output of a plan.
type Route struct {
	Cells               []grid.Cell
	Legs                []Leg
	TotalDistanceMeters float64
}

// PlanOptions tunes how legs are run and joined.
type PlanOptions struct {
	// DedupeJunctions drops the waypoint cell that ends one leg and starts the
	// next, so it appears once in Route.Cells instead of twice.
	DedupeJunctions bool
	// Parallel runs every leg in its own goroutine. Leg order is preserved.
	Parallel bool
}

// RouteRequest is a plan over raw waypoint positions.
type RouteRequest struct {
	Waypoints []Waypoint
	// Snap moves each waypoint to the nearest passable cell.
	Snap    bool
	Options PlanOptions
}

// LegError reports which leg of a plan failed.
type LegError struct {
	Leg  int // zero-based
	From grid.Cell
	To   grid.Cell
	Err  error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("leg %d %v -> %v: %v", e.Leg, e.From, e.To, e.Err)
}

func (e *LegError) Unwrap() error { return e.Err }

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, req RouteRequest) (*Route, error)
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	Scale geo.Scale
	// SnapRadiusMeters bounds how far a waypoint may be moved when snapping.
	SnapRadiusMeters float64
}

// DefaultEngineOptions returns the reference raster scale and a 100 m snap radius.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Scale:            geo.DefaultScale(),
		SnapRadiusMeters: 100,
	}
}

// Engine implements Router over an immutable grid. It is safe for
// concurrent use.
type Engine struct {
	g      *grid.Grid
	scale  geo.Scale
	comps  *grid.Components
	states sync.Pool

	snapRadius float64
	snapOnce   sync.Once
	snapper    *Snapper
}

// NewEngine creates a routing engine for g and labels its passable components.
func NewEngine(g *grid.Grid, opts EngineOptions) *Engine {
	e := &Engine{
		g:          g,
		scale:      opts.Scale,
		comps:      grid.LabelComponents(g),
		snapRadius: opts.SnapRadiusMeters,
	}
	n := g.Len()
	e.states.New = func() any { return newQueryState(n) }
	return e
}

// Grid returns the grid the engine searches.
func (e *Engine) Grid() *grid.Grid { return e.g }

// Components returns the passable component labelling of the grid.
func (e *Engine) Components() *grid.Components { return e.comps }

// Snapper returns the engine's snapper, building its spatial index on first use.
func (e *Engine) Snapper() *Snapper {
	e.snapOnce.Do(func() {
		e.snapper = NewSnapper(e.g, e.scale, e.snapRadius)
	})
	return e.snapper
}

// Resolve maps a waypoint onto its grid cell.
func (e *Engine) Resolve(w Waypoint) (grid.Cell, error) {
	c, ok := e.g.At(w.Row, w.Col)
	if !ok {
		return grid.Cell{}, fmt.Errorf("%w: col %d row %d on %dx%d grid",
			ErrWaypointOutOfRange, w.Col, w.Row, e.g.Cols, e.g.Rows)
	}
	return c, nil
}

// Search finds the least-cost path from start to goal. Cells are matched by
// position. The returned path starts with start and ends with goal; a
// start equal to goal yields the single-cell path. ErrNoRoute means the goal
// cannot be reached.
func (e *Engine) Search(ctx context.Context, start, goal grid.Cell) ([]grid.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, ok := e.g.At(start.Row, start.Col)
	if !ok {
		return nil, fmt.Errorf("%w: start %v", ErrWaypointOutOfRange, start)
	}
	goal, ok = e.g.At(goal.Row, goal.Col)
	if !ok {
		return nil, fmt.Errorf("%w: goal %v", ErrWaypointOutOfRange, goal)
	}

	// Disconnected legs would otherwise drain the whole component.
	if !e.comps.Reachable(e.g, start, goal) {
		return nil, ErrNoRoute
	}

	qs := e.states.Get().(*queryState)
	defer func() {
		qs.Reset()
		e.states.Put(qs)
	}()

	return e.search(ctx, qs, start, goal)
}

// Plan chains Search over consecutive waypoints. If any leg has no route the
// whole plan fails with a *LegError wrapping ErrNoRoute.
func (e *Engine) Plan(ctx context.Context, waypoints []grid.Cell, opts PlanOptions) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	legs := make([]Leg, len(waypoints)-1)
	errs := make([]error, len(legs))

	runLeg := func(i int) {
		from, to := waypoints[i], waypoints[i+1]
		cells, err := e.Search(ctx, from, to)
		if err != nil {
			errs[i] = &LegError{Leg: i, From: from, To: to, Err: err}
			return
		}
		legs[i] = Leg{
			From:           cells[0],
			To:             cells[len(cells)-1],
			Cells:          cells,
			DistanceMeters: e.PathDistance(cells),
		}
	}

	if opts.Parallel {
		var wg sync.WaitGroup
		wg.Add(len(legs))
		for i := range legs {
			go func() {
				defer wg.Done()
				runLeg(i)
			}()
		}
		wg.Wait()
	} else {
		for i := range legs {
			runLeg(i)
			if errs[i] != nil {
				break
			}
		}
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	route := &Route{Legs: legs}
	for i, leg := range legs {
		cells := leg.Cells
		if opts.DedupeJunctions && i > 0 {
			cells = cells[1:]
		}
		route.Cells = append(route.Cells, cells...)
	}
	route.TotalDistanceMeters = e.PathDistance(route.Cells)

	return route, nil
}

// Route resolves raw waypoints, optionally snapping them to passable cells,
// and plans through them.
func (e *Engine) Route(ctx context.Context, req RouteRequest) (*Route, error) {
	if len(req.Waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	cells := make([]grid.Cell, len(req.Waypoints))
	for i, w := range req.Waypoints {
		c, err := e.Resolve(w)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", i, err)
		}
		if req.Snap {
			snapped, err := e.Snapper().Snap(c)
			if err != nil {
				return nil, fmt.Errorf("waypoint %d: %w", i, err)
			}
			c = snapped.Cell
		}
		cells[i] = c
	}

	return e.Plan(ctx, cells, req.Options)
}
