package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pixel-canvas-server/internal/database"
	"pixel-canvas-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "canvas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func setupRepo(t *testing.T) CellRepository {
	t.Helper()
	repo := NewCellRepository(setupDB(t))
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func TestCellRepository_InitializeCreatesWhiteGrid(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	cells, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cells, domain.CellCount)

	for i, c := range cells {
		assert.Equal(t, i/domain.GridSize, c.X)
		assert.Equal(t, i%domain.GridSize, c.Y)
		assert.Equal(t, domain.DefaultColor, c.Color)
		assert.False(t, c.LastUpdatedAt.IsZero())
	}
}

func TestCellRepository_InitializeIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 3, 4, "#123456", time.Now()))
	require.NoError(t, repo.Initialize(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CellCount, count)

	cells, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#123456", cells[3*domain.GridSize+4].Color)
}

func TestCellRepository_UpsertUpdatesSingleCell(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, 44, 0, "#ABCDEF", at))

	cells, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cells, domain.CellCount)

	for _, c := range cells {
		if c.X == 44 && c.Y == 0 {
			assert.Equal(t, "#ABCDEF", c.Color)
			assert.True(t, at.Equal(c.LastUpdatedAt), "got %v", c.LastUpdatedAt)
			continue
		}
		assert.Equal(t, domain.DefaultColor, c.Color)
	}
}

func TestCellRepository_UpsertRecreatesMissingRow(t *testing.T) {
	db := setupDB(t)
	repo := NewCellRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Initialize(ctx))

	_, err := db.Exec(`DELETE FROM squares WHERE x_coordinate = 1 AND y_coordinate = 1`)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, 1, 1, "#000000", time.Now()))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.CellCount, count)
}

func TestCellRepository_ReplaceAll(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 10, 10, "#111111", time.Now()))

	m := domain.BlankMatrix()
	m[0][1] = "#FF0000" // x=1, y=0
	m[2][0] = "#00FF00" // x=0, y=2

	require.NoError(t, repo.ReplaceAll(ctx, m, time.Now()))

	cells, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cells, domain.CellCount)

	byCoord := make(map[[2]int]string, len(cells))
	for _, c := range cells {
		byCoord[[2]int{c.X, c.Y}] = c.Color
	}
	assert.Equal(t, "#FF0000", byCoord[[2]int{1, 0}])
	assert.Equal(t, "#00FF00", byCoord[[2]int{0, 2}])
	assert.Equal(t, domain.DefaultColor, byCoord[[2]int{10, 10}])
}

func TestCellRepository_ReplaceAllIsAtomicForReaders(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	counts := make(chan int, 200)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				cells, err := repo.List(ctx)
				if err != nil {
					t.Error(err)
					return
				}
				counts <- len(cells)
			}
		}()
	}

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.ReplaceAll(ctx, domain.BlankMatrix(), time.Now()))
	}

	wg.Wait()
	close(counts)

	for n := range counts {
		assert.Equal(t, domain.CellCount, n)
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.True(t, want.Equal(parseTimestamp("2026-01-02 03:04:05")))
	assert.True(t, want.Equal(parseTimestamp("2026-01-02 03:04:05.000")))
	assert.True(t, want.Equal(parseTimestamp("2026-01-02T03:04:05Z")))
	assert.True(t, parseTimestamp("yesterday").IsZero())
}
