package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/udisondev/gridpath/internal/config"
	"github.com/udisondev/gridpath/internal/db"
	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pathfind"
)

const ConfigPath = "config/pathfind.yaml"

func main() {
	configPath := flag.String("config", ConfigPath, "path to scene config")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	if p := os.Getenv("GRIDPATH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadPathfind(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("config loaded", "path", cfgPath, "workers", cfg.Workers, "store", cfg.Store.Enabled)

	g, err := loadGrid(ctx, cfg)
	if err != nil {
		return err
	}
	maxX, maxY, maxZ := g.Size()
	slog.Info("grid ready", "max_x", maxX, "max_y", maxY, "max_z", maxZ, "vertical", g.Vertical(), "blocked", len(g.Blocked()))

	queries := make([]pathfind.Query, 0, 1+len(cfg.Queries))
	queries = append(queries, pathfind.Query{Start: cfg.Start.Coord(), Target: cfg.Target.Coord()})
	for _, q := range cfg.Queries {
		queries = append(queries, pathfind.Query{Start: q.Start.Coord(), Target: q.Target.Coord()})
	}

	started := time.Now()
	results, err := pathfind.SearchBatch(ctx, g, queries, cfg.Workers)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	slog.Info("searches finished", "count", len(results), "elapsed_ms", time.Since(started).Milliseconds())

	for i, res := range results {
		q := queries[i]
		if !res.Found {
			slog.Info("no path", "start", q.Start, "target", q.Target, "expanded", res.Expanded)
			continue
		}
		slog.Info("path found",
			"start", q.Start,
			"target", q.Target,
			"cost", res.Cost,
			"steps", len(res.Path)-1,
			"expanded", res.Expanded)
		fmt.Println(formatPath(res.Path))
	}

	return nil
}

// loadGrid reads the grid from the store or builds it from the scene,
// saving it afterwards when configured.
func loadGrid(ctx context.Context, cfg config.Pathfind) (*grid.Grid, error) {
	if !cfg.Store.Enabled {
		return cfg.BuildGrid()
	}

	dsn := cfg.Database.DSN()
	if err := db.RunMigrations(ctx, dsn); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	database, err := db.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()
	slog.Info("database connected")

	repo := db.NewGridRepository(database.Pool())

	if cfg.Store.Load {
		g, err := repo.Load(ctx, cfg.Store.GridName)
		if err != nil {
			return nil, fmt.Errorf("loading grid: %w", err)
		}
		if g != nil {
			slog.Info("grid loaded from store", "grid", cfg.Store.GridName)
			return g, nil
		}
		slog.Warn("grid not in store, building from scene", "grid", cfg.Store.GridName)
	}

	g, err := cfg.BuildGrid()
	if err != nil {
		return nil, err
	}

	if cfg.Store.Save {
		written, err := repo.Save(ctx, cfg.Store.GridName, g)
		if err != nil {
			return nil, fmt.Errorf("saving grid: %w", err)
		}
		slog.Info("grid stored", "grid", cfg.Store.GridName, "written", written)
	}
	return g, nil
}

func formatPath(path []*grid.Cell) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " -> ")
}
