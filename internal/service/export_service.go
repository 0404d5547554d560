package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/internal/repository"

	"golang.org/x/image/draw"
)

const (
	ExportContentType = "image/png"
	ExportFilename    = "canvas-artwork.png"
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

type ExportService struct {
	repo    repository.CellRepository
	encoder *png.Encoder
}

func NewExportService(repo repository.CellRepository) *ExportService {
	return &ExportService{
		repo:    repo,
		encoder: &png.Encoder{CompressionLevel: png.DefaultCompression},
	}
}

// RenderPNG draws every cell as a BlockSize square. Cells missing from the
// store, or holding an unparsable color, are white.
func (s *ExportService) RenderPNG(ctx context.Context) ([]byte, error) {
	cells, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	img := Render(cells)

	var buf bytes.Buffer
	if err := s.encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Render builds the full-size raster for cells.
func Render(cells []*domain.Cell) *image.RGBA {
	grid := image.NewRGBA(image.Rect(0, 0, domain.GridSize, domain.GridSize))
	draw.Draw(grid, grid.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)

	for _, c := range cells {
		if !domain.InBounds(c.X, c.Y) {
			continue
		}
		if rgba, ok := domain.ParseRGBA(c.Color); ok {
			grid.SetRGBA(c.X, c.Y, rgba)
		}
	}

	side := domain.GridSize * domain.BlockSize
	out := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(out, out.Bounds(), grid, grid.Bounds(), draw.Src, nil)

	return out
}
