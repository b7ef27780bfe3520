package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StatusScheduler runs the tournament date roll-over on a fixed interval.
type StatusScheduler struct {
	scheduler   gocron.Scheduler
	tournaments TournamentService
	logger      *slog.Logger
}

func NewStatusScheduler(tournaments TournamentService, interval time.Duration, logger *slog.Logger) (*StatusScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &StatusScheduler{
		scheduler:   scheduler,
		tournaments: tournaments,
		logger:      logger,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register status roll-over job: %w", err)
	}
	return s, nil
}

func (s *StatusScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.tournaments.AutoUpdateTournamentStatusesByDates(ctx); err != nil {
		s.logger.Error("tournament status roll-over failed", slog.Any("error", err))
	}
}

func (s *StatusScheduler) Start() {
	s.scheduler.Start()
}

func (s *StatusScheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
