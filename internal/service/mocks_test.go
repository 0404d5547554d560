package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pixel-canvas-server/internal/domain"
)

var (
	errStoreDown = errors.New("store unavailable")
	timeZero     time.Time
)

type mockCellRepo struct {
	mu      sync.Mutex
	cells   map[[2]int]*domain.Cell
	writes  int
	failing bool
}

func newMockCellRepo() *mockCellRepo {
	return &mockCellRepo{
		cells: make(map[[2]int]*domain.Cell),
	}
}

func newFilledMockCellRepo() *mockCellRepo {
	m := newMockCellRepo()
	m.Initialize(context.Background())
	m.writes = 0
	return m
}

func (m *mockCellRepo) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for x := 0; x < domain.GridSize; x++ {
		for y := 0; y < domain.GridSize; y++ {
			if _, ok := m.cells[[2]int{x, y}]; !ok {
				m.cells[[2]int{x, y}] = &domain.Cell{X: x, Y: y, Color: domain.DefaultColor}
			}
		}
	}
	return nil
}

func (m *mockCellRepo) List(ctx context.Context) ([]*domain.Cell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return nil, errStoreDown
	}

	cells := make([]*domain.Cell, 0, len(m.cells))
	for _, c := range m.cells {
		copied := *c
		cells = append(cells, &copied)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})
	return cells, nil
}

func (m *mockCellRepo) Upsert(ctx context.Context, x, y int, color string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failing {
		return errStoreDown
	}
	m.cells[[2]int{x, y}] = &domain.Cell{X: x, Y: y, Color: color, LastUpdatedAt: at}
	return nil
}

func (m *mockCellRepo) ReplaceAll(ctx context.Context, matrix *domain.Matrix, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failing {
		return errStoreDown
	}
	m.cells = make(map[[2]int]*domain.Cell, domain.CellCount)
	for y := 0; y < domain.GridSize; y++ {
		for x := 0; x < domain.GridSize; x++ {
			m.cells[[2]int{x, y}] = &domain.Cell{X: x, Y: y, Color: matrix[y][x], LastUpdatedAt: at}
		}
	}
	return nil
}

func (m *mockCellRepo) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cells), nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	updated []*domain.Cell
	resets  int
}

func (n *recordingNotifier) CellUpdated(ctx context.Context, cell *domain.Cell) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, cell)
}

func (n *recordingNotifier) CanvasReset(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets++
}

type stubSource struct {
	matrix *domain.Matrix
	err    error
}

func (s *stubSource) Load() (*domain.Matrix, error) {
	return s.matrix, s.err
}

func (s *stubSource) Name() string {
	return "stub"
}
