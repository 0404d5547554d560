package service

import (
	"context"
	"time"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/internal/repository"

	"github.com/go-playground/validator/v10"
)

type CanvasService struct {
	repo     repository.CellRepository
	notifier Notifier
	validate *validator.Validate
	now      func() time.Time
}

func NewCanvasService(repo repository.CellRepository, notifier Notifier) *CanvasService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &CanvasService{
		repo:     repo,
		notifier: notifier,
		validate: newValidator(),
		now:      time.Now,
	}
}

func (s *CanvasService) ListCells(ctx context.Context) ([]*domain.Cell, error) {
	return s.repo.List(ctx)
}

// Paint validates coordinates, then color, and stores the cell. Validation
// failures return ErrInvalidCoordinates or ErrInvalidColor without touching
// the store.
func (s *CanvasService) Paint(ctx context.Context, req *domain.PaintRequest) (*domain.Cell, error) {
	x, err := parseCoordinate(s.validate, req.X)
	if err != nil {
		return nil, err
	}
	y, err := parseCoordinate(s.validate, req.Y)
	if err != nil {
		return nil, err
	}

	color, err := parseColor(s.validate, req.Color)
	if err != nil {
		return nil, err
	}

	cell := &domain.Cell{
		X:             x,
		Y:             y,
		Color:         color,
		LastUpdatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Upsert(ctx, cell.X, cell.Y, cell.Color, cell.LastUpdatedAt); err != nil {
		return nil, err
	}

	s.notifier.CellUpdated(ctx, cell)

	return cell, nil
}
