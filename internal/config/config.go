package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/gridpath/internal/grid"
)

// Pathfind holds all configuration for the pathfind command.
type Pathfind struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	Workers  int    `yaml:"workers"`   // concurrent searches, 0 = NumCPU

	// Scene
	Grid       GridConfig `yaml:"grid"`
	Start      Point      `yaml:"start"`
	Target     Point      `yaml:"target"`
	Queries    []Query    `yaml:"queries"`
	Unwalkable []Point    `yaml:"unwalkable"`

	// Storage
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
}

// GridConfig holds grid bounds. MaxY > 1 enables vertical search.
type GridConfig struct {
	MaxX int `yaml:"max_x"`
	MaxY int `yaml:"max_y"`
	MaxZ int `yaml:"max_z"`
}

// Point is a coordinate written as a YAML sequence: [x, y, z].
type Point [3]int

// Coord converts p to a grid coordinate.
func (p Point) Coord() grid.Coord {
	return grid.Coord{X: p[0], Y: p[1], Z: p[2]}
}

// Query is an extra start/target pair searched after the main one.
type Query struct {
	Start  Point `yaml:"start"`
	Target Point `yaml:"target"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// StoreConfig controls grid persistence.
// With Load set the grid is read from the store instead of built from the
// scene; with Save set the scene grid is written after it is built.
type StoreConfig struct {
	Enabled  bool   `yaml:"enabled"`
	GridName string `yaml:"grid_name"`
	Load     bool   `yaml:"load"`
	Save     bool   `yaml:"save"`
}

// DefaultPathfind returns Pathfind config with sensible defaults.
func DefaultPathfind() Pathfind {
	return Pathfind{
		LogLevel: "info",
		Workers:  0,
		Grid: GridConfig{
			MaxX: 3,
			MaxY: 3,
			MaxZ: 3,
		},
		Start:  Point{0, 0, 0},
		Target: Point{2, 2, 2},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gridpath",
			Password: "gridpath",
			DBName:   "gridpath",
			SSLMode:  "disable",
		},
		Store: StoreConfig{
			GridName: "default",
		},
	}
}

// LoadPathfind loads pathfind config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPathfind(path string) (Pathfind, error) {
	cfg := DefaultPathfind()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level. Unknown values fall back to info.
func (p Pathfind) SlogLevel() slog.Level {
	switch strings.ToLower(p.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// BuildGrid creates the scene grid and marks the configured obstacles.
// Obstacles outside the grid are skipped with a warning.
func (p Pathfind) BuildGrid() (*grid.Grid, error) {
	g, err := grid.New(p.Grid.MaxX, p.Grid.MaxY, p.Grid.MaxZ)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	for _, pt := range p.Unwalkable {
		if !g.SetWalkable(pt[0], pt[1], pt[2], false) {
			slog.Warn("skip unwalkable cell (out of range)", "cell", pt.Coord())
		}
	}
	return g, nil
}
