// Package config loads settings shared by the command line and the server.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"terrain_router/pkg/geo"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TERRAIN_ROUTER_"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

type MapConfig struct {
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	RowMeters float64 `yaml:"row_meters"`
	ColMeters float64 `yaml:"col_meters"`
	GridFile  string  `yaml:"grid_file"` // binary cache written by preprocess
}

type SearchConfig struct {
	DedupeJunctions  bool          `yaml:"dedupe_junctions"`
	ParallelLegs     bool          `yaml:"parallel_legs"`
	SnapRadiusMeters float64       `yaml:"snap_radius_meters"`
	Timeout          time.Duration `yaml:"timeout"` // 0 means no limit
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	CORSOrigin    string        `yaml:"cors_origin"`
}

type Config struct {
	Map    MapConfig    `yaml:"map"`
	Search SearchConfig `yaml:"search"`
	Server ServerConfig `yaml:"server"`
}

// Default returns the settings for the reference 395×500 raster.
func Default() Config {
	return Config{
		Map: MapConfig{
			Rows:      500,
			Cols:      395,
			RowMeters: geo.DefaultRowMeters,
			ColMeters: geo.DefaultColMeters,
			GridFile:  "terrain.bin",
		},
		Search: SearchConfig{
			SnapRadiusMeters: 100,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   5 * time.Second,
			WriteTimeout:  10 * time.Second,
			MaxConcurrent: runtime.NumCPU() * 2,
		},
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then the environment. envFiles are loaded into the environment
// first without overriding variables that are already set; with no envFiles
// a ./.env file is used if present.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return cfg, fmt.Errorf("load env files: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Scale returns the raster cell dimensions.
func (c Config) Scale() geo.Scale {
	return geo.Scale{RowMeters: c.Map.RowMeters, ColMeters: c.Map.ColMeters}
}

// Validate checks dimensions, scale and limits.
func (c Config) Validate() error {
	switch {
	case c.Map.Rows <= 0 || c.Map.Cols <= 0:
		return fmt.Errorf("%w: map must be at least 1x1, got %dx%d", ErrInvalid, c.Map.Cols, c.Map.Rows)
	case c.Search.SnapRadiusMeters < 0:
		return fmt.Errorf("%w: negative snap radius %v", ErrInvalid, c.Search.SnapRadiusMeters)
	case c.Search.Timeout < 0:
		return fmt.Errorf("%w: negative search timeout %v", ErrInvalid, c.Search.Timeout)
	case c.Server.MaxConcurrent <= 0:
		return fmt.Errorf("%w: max_concurrent must be positive, got %d", ErrInvalid, c.Server.MaxConcurrent)
	}
	if err := c.Scale().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var err error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok && err == nil {
			*dst, err = strconv.Atoi(v)
			err = wrapEnv(key, err)
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := lookup(EnvPrefix + key); ok && err == nil {
			*dst, err = strconv.ParseFloat(v, 64)
			err = wrapEnv(key, err)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok && err == nil {
			*dst, err = strconv.ParseBool(v)
			err = wrapEnv(key, err)
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok && err == nil {
			*dst, err = time.ParseDuration(v)
			err = wrapEnv(key, err)
		}
	}

	num("ROWS", &c.Map.Rows)
	num("COLS", &c.Map.Cols)
	float("ROW_METERS", &c.Map.RowMeters)
	float("COL_METERS", &c.Map.ColMeters)
	str("GRID_FILE", &c.Map.GridFile)

	boolean("DEDUPE_JUNCTIONS", &c.Search.DedupeJunctions)
	boolean("PARALLEL_LEGS", &c.Search.ParallelLegs)
	float("SNAP_RADIUS_METERS", &c.Search.SnapRadiusMeters)
	duration("SEARCH_TIMEOUT", &c.Search.Timeout)

	str("ADDR", &c.Server.Addr)
	duration("READ_TIMEOUT", &c.Server.ReadTimeout)
	duration("WRITE_TIMEOUT", &c.Server.WriteTimeout)
	num("MAX_CONCURRENT", &c.Server.MaxConcurrent)
	str("CORS_ORIGIN", &c.Server.CORSOrigin)

	return err
}

func wrapEnv(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("env %s%s: %w", EnvPrefix, key, err)
}
