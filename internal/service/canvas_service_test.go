package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"pixel-canvas-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paintRequest(x, y, color string) *domain.PaintRequest {
	req := &domain.PaintRequest{}
	if x != "" {
		req.X = json.RawMessage(x)
	}
	if y != "" {
		req.Y = json.RawMessage(y)
	}
	if color != "" {
		req.Color = json.RawMessage(color)
	}
	return req
}

func TestCanvasService_PaintUpdatesOnlyTargetCell(t *testing.T) {
	repo := newFilledMockCellRepo()
	notifier := &recordingNotifier{}
	service := NewCanvasService(repo, notifier)
	ctx := context.Background()

	points := [][2]int{{0, 0}, {44, 44}, {0, 44}, {44, 0}, {17, 29}}
	for _, p := range points {
		before, err := service.ListCells(ctx)
		require.NoError(t, err)

		cell, err := service.Paint(ctx, paintRequest(fmt.Sprint(p[0]), fmt.Sprint(p[1]), `"#12ab34"`))
		require.NoError(t, err)
		assert.Equal(t, "#12AB34", cell.Color)

		after, err := service.ListCells(ctx)
		require.NoError(t, err)
		require.Len(t, after, domain.CellCount)

		for i := range after {
			if after[i].X == p[0] && after[i].Y == p[1] {
				assert.Equal(t, "#12AB34", after[i].Color)
				continue
			}
			assert.Equal(t, before[i].Color, after[i].Color)
		}
	}

	assert.Len(t, notifier.updated, len(points))
}

func TestCanvasService_PaintRejectsCoordinates(t *testing.T) {
	cases := []struct {
		name string
		x, y string
	}{
		{name: "x negative", x: "-1", y: "0"},
		{name: "x too large", x: "45", y: "0"},
		{name: "y negative", x: "0", y: "-1"},
		{name: "y too large", x: "0", y: "45"},
		{name: "x fractional", x: "1.5", y: "0"},
		{name: "y fractional", x: "0", y: "44.01"},
		{name: "x string", x: `"3"`, y: "0"},
		{name: "y null", x: "0", y: "null"},
		{name: "x missing", x: "", y: "0"},
		{name: "x bool", x: "true", y: "0"},
		{name: "huge", x: "1e300", y: "0"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFilledMockCellRepo()
			service := NewCanvasService(repo, nil)

			_, err := service.Paint(context.Background(), paintRequest(tt.x, tt.y, `"#FF0000"`))
			assert.ErrorIs(t, err, ErrInvalidCoordinates)
			assert.Zero(t, repo.writes, "store must not be touched")
		})
	}
}

func TestCanvasService_PaintChecksCoordinatesBeforeColor(t *testing.T) {
	repo := newFilledMockCellRepo()
	service := NewCanvasService(repo, nil)

	_, err := service.Paint(context.Background(), paintRequest("45", "0", `"red"`))
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestCanvasService_PaintRejectsColor(t *testing.T) {
	cases := []string{`"red"`, `"#FF0"`, `"#FF00000"`, `"FF0000"`, `"#GGGGGG"`, `16711680`, `null`, `["#FF0000"]`, ``}

	for _, color := range cases {
		t.Run(color, func(t *testing.T) {
			repo := newFilledMockCellRepo()
			service := NewCanvasService(repo, nil)

			_, err := service.Paint(context.Background(), paintRequest("1", "2", color))
			assert.ErrorIs(t, err, ErrInvalidColor)
			assert.Zero(t, repo.writes)
		})
	}
}

func TestCanvasService_PaintAcceptsBothCases(t *testing.T) {
	repo := newFilledMockCellRepo()
	service := NewCanvasService(repo, nil)
	ctx := context.Background()

	_, err := service.Paint(ctx, paintRequest("1", "1", `"#ff0000"`))
	require.NoError(t, err)
	_, err = service.Paint(ctx, paintRequest("2", "2", `"#FF0000"`))
	require.NoError(t, err)

	assert.Equal(t, 2, repo.writes)
}

func TestCanvasService_PaintSameColorIsNotAnError(t *testing.T) {
	repo := newFilledMockCellRepo()
	service := NewCanvasService(repo, nil)

	_, err := service.Paint(context.Background(), paintRequest("5", "5", `"#FFFFFF"`))
	assert.NoError(t, err)
}

func TestCanvasService_PaintIntegralFloatIsAccepted(t *testing.T) {
	repo := newFilledMockCellRepo()
	service := NewCanvasService(repo, nil)

	cell, err := service.Paint(context.Background(), paintRequest("3.0", "4", `"#000000"`))
	require.NoError(t, err)
	assert.Equal(t, 3, cell.X)
	assert.Equal(t, 4, cell.Y)
}

func TestCanvasService_StoreFailure(t *testing.T) {
	repo := newFilledMockCellRepo()
	repo.failing = true
	notifier := &recordingNotifier{}
	service := NewCanvasService(repo, notifier)
	ctx := context.Background()

	_, err := service.ListCells(ctx)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = service.Paint(ctx, paintRequest("1", "1", `"#000000"`))
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, notifier.updated)
}
