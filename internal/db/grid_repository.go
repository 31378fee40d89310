package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/gridpath/internal/grid"
)

// GridRepository stores grid layouts: bounds plus the list of blocked cells.
type GridRepository struct {
	pool *pgxpool.Pool
}

// NewGridRepository creates a new grid repository.
func NewGridRepository(pool *pgxpool.Pool) *GridRepository {
	return &GridRepository{pool: pool}
}

// GridInfo is a stored grid without its cells.
type GridInfo struct {
	Name        string
	MaxX        int
	MaxY        int
	MaxZ        int
	Fingerprint []byte
	UpdatedAt   time.Time
}

// Save writes g under name, replacing any previous layout.
// Returns false without writing when the stored fingerprint already matches.
func (r *GridRepository) Save(ctx context.Context, name string, g *grid.Grid) (bool, error) {
	fp := g.Fingerprint()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin transaction for grid %q: %w", name, err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "grid", name, "error", err)
		}
	}()

	var stored []byte
	err = tx.QueryRow(ctx,
		`SELECT fingerprint FROM grids WHERE name = $1 FOR UPDATE`, name,
	).Scan(&stored)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("querying grid %q: %w", name, err)
	}
	if bytes.Equal(stored, fp[:]) {
		return false, nil
	}

	maxX, maxY, maxZ := g.Size()
	_, err = tx.Exec(ctx, `
		INSERT INTO grids (name, max_x, max_y, max_z, fingerprint, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			max_x = EXCLUDED.max_x,
			max_y = EXCLUDED.max_y,
			max_z = EXCLUDED.max_z,
			fingerprint = EXCLUDED.fingerprint,
			updated_at = EXCLUDED.updated_at
	`, name, maxX, maxY, maxZ, fp[:], time.Now())
	if err != nil {
		return false, fmt.Errorf("upserting grid %q: %w", name, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM grid_blocked_cells WHERE grid_name = $1`, name); err != nil {
		return false, fmt.Errorf("deleting blocked cells for grid %q: %w", name, err)
	}

	blocked := g.Blocked()
	if len(blocked) > 0 {
		rows := make([][]any, 0, len(blocked))
		for _, c := range blocked {
			rows = append(rows, []any{name, int32(c.X), int32(c.Y), int32(c.Z)})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"grid_blocked_cells"},
			[]string{"grid_name", "x", "y", "z"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return false, fmt.Errorf("inserting blocked cells for grid %q: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit transaction for grid %q: %w", name, err)
	}

	slog.Debug("grid saved",
		"grid", name,
		"volume", g.Volume(),
		"blocked", len(blocked))

	return true, nil
}

// Load rebuilds the grid stored under name.
// Returns nil, nil if the grid does not exist.
func (r *GridRepository) Load(ctx context.Context, name string) (*grid.Grid, error) {
	var maxX, maxY, maxZ int32
	err := r.pool.QueryRow(ctx,
		`SELECT max_x, max_y, max_z FROM grids WHERE name = $1`, name,
	).Scan(&maxX, &maxY, &maxZ)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying grid %q: %w", name, err)
	}

	g, err := grid.New(int(maxX), int(maxY), int(maxZ))
	if err != nil {
		return nil, fmt.Errorf("building grid %q: %w", name, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT x, y, z FROM grid_blocked_cells WHERE grid_name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("loading blocked cells for grid %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var x, y, z int32
		if err := rows.Scan(&x, &y, &z); err != nil {
			return nil, fmt.Errorf("scanning blocked cell row: %w", err)
		}
		if !g.SetWalkable(int(x), int(y), int(z), false) {
			slog.Warn("skip blocked cell (out of range)", "grid", name, "x", x, "y", y, "z", z)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocked cell rows: %w", err)
	}

	return g, nil
}

// List returns all stored grids ordered by name.
func (r *GridRepository) List(ctx context.Context) ([]GridInfo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT name, max_x, max_y, max_z, fingerprint, updated_at
		FROM grids
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing grids: %w", err)
	}
	defer rows.Close()

	var result []GridInfo
	for rows.Next() {
		var (
			info             GridInfo
			maxX, maxY, maxZ int32
		)
		if err := rows.Scan(&info.Name, &maxX, &maxY, &maxZ, &info.Fingerprint, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning grid row: %w", err)
		}
		info.MaxX, info.MaxY, info.MaxZ = int(maxX), int(maxY), int(maxZ)
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating grid rows: %w", err)
	}

	return result, nil
}

// Delete removes the grid stored under name. Deleting a missing grid is not an error.
func (r *GridRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM grids WHERE name = $1`, name); err != nil {
		return fmt.Errorf("deleting grid %q: %w", name, err)
	}
	return nil
}
