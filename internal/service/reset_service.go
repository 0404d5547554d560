package service

import (
	"context"
	"time"

	"pixel-canvas-server/internal/domain"
	"pixel-canvas-server/internal/repository"
	"pixel-canvas-server/internal/seed"
	"pixel-canvas-server/pkg/logger"
)

const ResetMessage = "Canvas reset from seed image"

type ResetService struct {
	repo     repository.CellRepository
	source   seed.Source
	notifier Notifier
	log      logger.Logger
	now      func() time.Time
}

func NewResetService(repo repository.CellRepository, source seed.Source, notifier Notifier, log logger.Logger) *ResetService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &ResetService{
		repo:     repo,
		source:   source,
		notifier: notifier,
		log:      log.WithComponent("reset"),
		now:      time.Now,
	}
}

// ResetFromSeed replaces the whole grid with the seed matrix. An unreadable
// seed resets the grid to white and is not reported as an error.
func (s *ResetService) ResetFromSeed(ctx context.Context) error {
	m, err := s.source.Load()
	if err != nil {
		s.log.Warnf("seed %s unavailable, resetting to blank canvas: %v", s.source.Name(), err)
		m = domain.BlankMatrix()
	}

	if err := s.repo.ReplaceAll(ctx, m, s.now()); err != nil {
		return err
	}

	s.log.Infof("canvas reset from %s", s.source.Name())
	s.notifier.CanvasReset(ctx)

	return nil
}
