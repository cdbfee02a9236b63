// Command preprocess decodes a terrain raster and its elevation text once
// and writes the binary grid the server loads.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"terrain_router/pkg/config"
	"terrain_router/pkg/grid"
	"terrain_router/pkg/loader"
	"terrain_router/pkg/terrain"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	terrainImg := flag.String("terrain", "", "Terrain image (PNG)")
	elevationFile := flag.String("elevation", "", "Elevation text file")
	output := flag.String("output", "", "Output binary grid path (default: config grid_file)")
	flag.Parse()

	if *terrainImg == "" || *elevationFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: preprocess --terrain <map.png> --elevation <elevations.txt> [--output terrain.bin] [--config config.yaml]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *output == "" {
		*output = cfg.Map.GridFile
	}

	start := time.Now()

	// Step 1: Decode raster and elevation.
	log.Printf("Loading %dx%d grid from %s and %s...", cfg.Map.Cols, cfg.Map.Rows, *terrainImg, *elevationFile)
	g, err := loader.LoadGrid(*terrainImg, *elevationFile, cfg.Map.Rows, cfg.Map.Cols)
	if err != nil {
		log.Fatalf("Failed to load grid: %v", err)
	}

	// Step 2: Summarize connectivity.
	comps := grid.LabelComponents(g)
	_, largest := comps.Largest()
	log.Printf("Passable components: %d, largest: %d cells (%.1f%%)",
		comps.Count(), largest, float64(largest)/float64(g.Len())*100)
	counts := g.KindCounts()
	for _, kind := range terrain.Kinds() {
		if n := counts[kind]; n > 0 {
			log.Printf("  %-22s %d", kind, n)
		}
	}

	// Step 3: Write binary.
	log.Printf("Writing binary to %s...", *output)
	if err := grid.WriteBinary(*output, g); err != nil {
		log.Fatalf("Failed to write binary: %v", err)
	}

	info, _ := os.Stat(*output)
	log.Printf("Done in %s. Output: %s (%.1f MB)",
		time.Since(start).Round(time.Millisecond), *output, float64(info.Size())/(1024*1024))
}
