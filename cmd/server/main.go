package main

import (
	"flag"
	"log"
	"os"
	"time"

	"terrain_router/pkg/api"
	"terrain_router/pkg/config"
	"terrain_router/pkg/grid"
	"terrain_router/pkg/routing"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	gridPath := flag.String("grid", "", "Path to preprocessed grid binary (default: config grid_file)")
	addr := flag.String("addr", "", "Listen address (default: config server.addr)")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *gridPath != "" {
		cfg.Map.GridFile = *gridPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *corsOrigin != "" {
		cfg.Server.CORSOrigin = *corsOrigin
	}

	start := time.Now()

	// Load grid.
	log.Printf("Loading grid from %s...", cfg.Map.GridFile)
	g, err := grid.ReadBinary(cfg.Map.GridFile)
	if err != nil {
		log.Fatalf("Failed to load grid: %v", err)
	}
	log.Printf("Loaded: %dx%d cells", g.Cols, g.Rows)

	// Build routing engine.
	engine := routing.NewEngine(g, routing.EngineOptions{
		Scale:            cfg.Scale(),
		SnapRadiusMeters: cfg.Search.SnapRadiusMeters,
	})
	log.Println("Building R-tree spatial index...")
	log.Printf("Indexed %d passable cells", engine.Snapper().Len())

	stats := api.NewStats(engine)
	log.Printf("Ready in %s: %d passable cells in %d components",
		time.Since(start).Round(time.Millisecond), stats.PassableCells, stats.Components)

	// Setup HTTP server.
	srvCfg := api.DefaultConfig(cfg.Server.Addr)
	srvCfg.ReadTimeout = cfg.Server.ReadTimeout
	srvCfg.WriteTimeout = cfg.Server.WriteTimeout
	if cfg.Search.Timeout > 0 {
		srvCfg.RequestTimeout = cfg.Search.Timeout
	}
	srvCfg.MaxConcurrent = cfg.Server.MaxConcurrent
	srvCfg.CORSOrigin = cfg.Server.CORSOrigin

	handlers := api.NewHandlers(engine, stats, api.HandlerOptions{
		Scale:        cfg.Scale(),
		ParallelLegs: cfg.Search.ParallelLegs,
	})
	srv := api.NewServer(srvCfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
