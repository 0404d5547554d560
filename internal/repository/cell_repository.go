package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pixel-canvas-server/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS squares (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	x_coordinate INTEGER NOT NULL,
	y_coordinate INTEGER NOT NULL,
	color TEXT NOT NULL,
	last_updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(x_coordinate, y_coordinate)
);
CREATE INDEX IF NOT EXISTS idx_coordinates ON squares(x_coordinate, y_coordinate);
`

const timestampLayout = "2006-01-02 15:04:05.000"

var timestampLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
}

type CellRepository interface {
	// Initialize creates the schema and inserts any missing cell as white.
	// Existing cells are left untouched.
	Initialize(ctx context.Context) error
	List(ctx context.Context) ([]*domain.Cell, error)
	Upsert(ctx context.Context, x, y int, color string, at time.Time) error
	// ReplaceAll deletes every cell and inserts the matrix in one transaction.
	ReplaceAll(ctx context.Context, m *domain.Matrix, at time.Time) error
	Count(ctx context.Context) (int, error)
}

type cellRepository struct {
	db *sql.DB
}

func NewCellRepository(db *sql.DB) CellRepository {
	return &cellRepository{
		db: db,
	}
}

func (r *cellRepository) Initialize(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO squares (x_coordinate, y_coordinate, color, last_updated_at)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare bootstrap insert: %w", err)
		}
		defer stmt.Close()

		now := formatTimestamp(time.Now())
		for x := 0; x < domain.GridSize; x++ {
			for y := 0; y < domain.GridSize; y++ {
				if _, err := stmt.ExecContext(ctx, x, y, domain.DefaultColor, now); err != nil {
					return fmt.Errorf("failed to bootstrap cell (%d,%d): %w", x, y, err)
				}
			}
		}
		return nil
	})
}

func (r *cellRepository) List(ctx context.Context) ([]*domain.Cell, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT x_coordinate, y_coordinate, color, last_updated_at
		FROM squares
		ORDER BY x_coordinate, y_coordinate
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cells: %w", err)
	}
	defer rows.Close()

	cells := make([]*domain.Cell, 0, domain.CellCount)
	for rows.Next() {
		var (
			cell    domain.Cell
			updated sql.NullString
		)
		if err := rows.Scan(&cell.X, &cell.Y, &cell.Color, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		if updated.Valid {
			cell.LastUpdatedAt = parseTimestamp(updated.String)
		}
		cells = append(cells, &cell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cells: %w", err)
	}

	return cells, nil
}

func (r *cellRepository) Upsert(ctx context.Context, x, y int, color string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO squares (x_coordinate, y_coordinate, color, last_updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(x_coordinate, y_coordinate)
		DO UPDATE SET color = excluded.color, last_updated_at = excluded.last_updated_at
	`, x, y, color, formatTimestamp(at))
	if err != nil {
		return fmt.Errorf("failed to update cell (%d,%d): %w", x, y, err)
	}

	return nil
}

func (r *cellRepository) ReplaceAll(ctx context.Context, m *domain.Matrix, at time.Time) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM squares`); err != nil {
			return fmt.Errorf("failed to clear cells: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO squares (x_coordinate, y_coordinate, color, last_updated_at)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		ts := formatTimestamp(at)
		for y := 0; y < domain.GridSize; y++ {
			for x := 0; x < domain.GridSize; x++ {
				if _, err := stmt.ExecContext(ctx, x, y, m[y][x], ts); err != nil {
					return fmt.Errorf("failed to insert cell (%d,%d): %w", x, y, err)
				}
			}
		}
		return nil
	})
}

func (r *cellRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM squares`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cells: %w", err)
	}
	return count, nil
}

func (r *cellRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
