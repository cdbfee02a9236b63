// Command terrainroute plans a walking route through a list of waypoints on
// a terrain raster and draws it onto the image.
//
// Usage:
//
//	terrainroute [flags] terrain-image elevation-file path-file output-image
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"terrain_router/pkg/config"
	"terrain_router/pkg/grid"
	"terrain_router/pkg/loader"
	"terrain_router/pkg/render"
	"terrain_router/pkg/routing"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	csvPath := flag.String("csv", "", "Also write the route steps as CSV to this path")
	geojsonPath := flag.String("geojson", "", "Also write the route as GeoJSON to this path")
	snap := flag.Bool("snap", false, "Move impassible waypoints to the nearest passable cell")
	dedupe := flag.Bool("dedupe", false, "Emit each junction waypoint once instead of twice")
	parallel := flag.Bool("parallel", false, "Search legs concurrently")
	timeout := flag.Duration("timeout", 0, "Abort the search after this long (0 = config value)")
	caption := flag.Bool("caption", false, "Draw the distance readout onto the output image")
	flag.Parse()

	if flag.NArg() != 4 {
		fmt.Println("not enough arguments")
		return
	}
	terrainImg, elevationFile, pathFile, outputImg := flag.Arg(0), flag.Arg(1), flag.Arg(2), flag.Arg(3)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	if setFlags["dedupe"] {
		cfg.Search.DedupeJunctions = *dedupe
	}
	if setFlags["parallel"] {
		cfg.Search.ParallelLegs = *parallel
	}
	if *timeout > 0 {
		cfg.Search.Timeout = *timeout
	}

	g, err := loader.LoadGrid(terrainImg, elevationFile, cfg.Map.Rows, cfg.Map.Cols)
	if err != nil {
		log.Fatalf("Failed to load terrain: %v", err)
	}

	engine := routing.NewEngine(g, routing.EngineOptions{
		Scale:            cfg.Scale(),
		SnapRadiusMeters: cfg.Search.SnapRadiusMeters,
	})

	ctx := context.Background()
	if cfg.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Search.Timeout)
		defer cancel()
	}

	planOpts := routing.PlanOptions{
		DedupeJunctions: cfg.Search.DedupeJunctions,
		Parallel:        cfg.Search.ParallelLegs,
	}

	start := time.Now()
	route, err := planRoute(ctx, engine, pathFile, *snap, planOpts)
	if errors.Is(err, routing.ErrNoRoute) {
		log.Printf("%v", err)
		fmt.Println("no solution")
		return
	}
	if err != nil {
		log.Fatalf("Routing failed: %v", err)
	}
	log.Printf("Planned %d legs, %d cells in %s", len(route.Legs), len(route.Cells), time.Since(start).Round(time.Millisecond))

	readout := render.Readout(route.TotalDistanceMeters)
	fmt.Println(readout)

	var opts render.Options
	if *caption {
		opts.Caption = readout
	}
	if err := render.DrawRoute(terrainImg, outputImg, route.Cells, opts); err != nil {
		log.Fatalf("Failed to draw route: %v", err)
	}

	if *csvPath != "" {
		if err := writeFile(*csvPath, func(f *os.File) error {
			return render.WriteCSV(f, route.Cells, engine)
		}); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
	}
	if *geojsonPath != "" {
		if err := writeFile(*geojsonPath, func(f *os.File) error {
			return render.WriteGeoJSON(f, route, cfg.Scale())
		}); err != nil {
			log.Fatalf("Failed to write GeoJSON: %v", err)
		}
	}
}

// planRoute reads the waypoint list and plans through it. With fewer than
// two waypoints there is nothing to walk, so the result is an empty route
// and the output image is written unchanged.
func planRoute(ctx context.Context, engine *routing.Engine, pathFile string, snap bool, opts routing.PlanOptions) (*routing.Route, error) {
	var route *routing.Route
	var err error
	if snap {
		route, err = routeSnapped(ctx, engine, pathFile, opts)
	} else {
		var cells []grid.Cell
		cells, err = loader.LoadWaypoints(pathFile, engine.Grid())
		if err != nil {
			return nil, err
		}
		route, err = engine.Plan(ctx, cells, opts)
	}
	if errors.Is(err, routing.ErrTooFewWaypoints) {
		log.Printf("%s: fewer than two waypoints, nothing to route", pathFile)
		return &routing.Route{}, nil
	}
	return route, err
}

// routeSnapped reads raw waypoints and lets the engine move impassible ones
// onto the nearest passable cell.
func routeSnapped(ctx context.Context, engine *routing.Engine, pathFile string, opts routing.PlanOptions) (*routing.Route, error) {
	f, err := os.Open(pathFile)
	if err != nil {
		return nil, fmt.Errorf("open path file: %w", err)
	}
	waypoints, err := loader.ReadWaypoints(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("read path file: %w", err)
	}
	return engine.Route(ctx, routing.RouteRequest{Waypoints: waypoints, Snap: true, Options: opts})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
