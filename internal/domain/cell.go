package domain

import (
	"encoding/json"
	"time"
)

const (
	GridSize  = 45
	CellCount = GridSize * GridSize

	// BlockSize is the side, in device pixels, of one cell in the PNG export.
	BlockSize = 10

	DefaultColor = "#FFFFFF"
)

type Cell struct {
	X             int       `json:"x_coordinate"`
	Y             int       `json:"y_coordinate"`
	Color         string    `json:"color"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// InBounds reports whether (x, y) addresses a cell of the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// Matrix holds one color per cell, indexed [y][x].
type Matrix [GridSize][GridSize]string

func BlankMatrix() *Matrix {
	var m Matrix
	for y := range m {
		for x := range m[y] {
			m[y][x] = DefaultColor
		}
	}
	return &m
}

// PaintRequest keeps the raw JSON values so that wrong types surface as
// validation failures rather than decode failures.
type PaintRequest struct {
	X     json.RawMessage `json:"x"`
	Y     json.RawMessage `json:"y"`
	Color json.RawMessage `json:"color"`
}

type CanvasResponse struct {
	Squares []*Cell `json:"squares"`
}
