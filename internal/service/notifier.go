package service

import (
	"context"

	"pixel-canvas-server/internal/domain"
)

// Notifier is told about every committed change to the canvas.
type Notifier interface {
	CellUpdated(ctx context.Context, cell *domain.Cell)
	CanvasReset(ctx context.Context)
}

type nopNotifier struct{}

func (nopNotifier) CellUpdated(context.Context, *domain.Cell) {}
func (nopNotifier) CanvasReset(context.Context)               {}
