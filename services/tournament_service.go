package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	GetAllTournaments(ctx context.Context) ([]models.Tournament, error)
	GetTournamentsByOrganization(ctx context.Context, organizationID int) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	UpdateTournamentStatus(ctx context.Context, id int, status models.TournamentStatus) error
	DeleteTournament(ctx context.Context, id int) error
	AutoUpdateTournamentStatusesByDates(ctx context.Context) error
}

type TournamentInput struct {
	OrganizationID int        `json:"organization_id"`
	Name           string     `json:"name"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, logger *slog.Logger) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo, logger: logger}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	name, start, end, err := validateTournamentInput(input)
	if err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		OrganizationID: input.OrganizationID,
		Name:           name,
		StartDate:      start,
		EndDate:        end,
		Status:         models.TournamentStatusUpcoming,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) GetAllTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournamentsByOrganization(ctx context.Context, organizationID int) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for organization %d: %w", organizationID, err)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	name, start, end, err := validateTournamentInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}

	existing.OrganizationID = input.OrganizationID
	existing.Name = name
	existing.StartDate = start
	existing.EndDate = end
	if err := s.tournamentRepo.Update(ctx, existing); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return existing, nil
}

func (s *tournamentService) UpdateTournamentStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	switch status {
	case models.TournamentStatusUpcoming, models.TournamentStatusActive,
		models.TournamentStatusCompleted, models.TournamentStatusCancelled:
	default:
		return ErrTournamentInvalidStatus
	}
	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return mapTournamentRepoError(err)
	}
	return nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return mapTournamentRepoError(err)
	}
	return nil
}

// AutoUpdateTournamentStatusesByDates rolls UPCOMING tournaments to ACTIVE
// once their start date has passed and ACTIVE tournaments to COMPLETED once
// their end date has passed. CANCELLED tournaments are never touched.
func (s *tournamentService) AutoUpdateTournamentStatusesByDates(ctx context.Context) error {
	tournaments, err := s.tournamentRepo.ListByStatus(ctx,
		models.TournamentStatusUpcoming, models.TournamentStatusActive)
	if err != nil {
		return fmt.Errorf("failed to list tournaments for status roll-over: %w", err)
	}

	now := time.Now()
	for _, t := range tournaments {
		var next models.TournamentStatus
		switch {
		case t.Status == models.TournamentStatusActive && now.After(endOfDay(t.EndDate)):
			next = models.TournamentStatusCompleted
		case t.Status == models.TournamentStatusUpcoming && now.After(endOfDay(t.EndDate)):
			// The whole window elapsed while still UPCOMING.
			next = models.TournamentStatusCompleted
		case t.Status == models.TournamentStatusUpcoming && !now.Before(startOfDay(t.StartDate)):
			next = models.TournamentStatusActive
		default:
			continue
		}

		if err := s.tournamentRepo.UpdateStatus(ctx, t.ID, next); err != nil {
			s.logger.Error("failed to roll tournament status",
				slog.Int("tournament_id", t.ID),
				slog.String("from", string(t.Status)),
				slog.String("to", string(next)),
				slog.Any("error", err))
			continue
		}
		s.logger.Info("tournament status rolled",
			slog.Int("tournament_id", t.ID),
			slog.String("from", string(t.Status)),
			slog.String("to", string(next)))
	}
	return nil
}

func validateTournamentInput(input TournamentInput) (name string, start, end time.Time, err error) {
	name, err = trimmedName(input.Name)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if input.StartDate == nil || input.EndDate == nil {
		return "", time.Time{}, time.Time{}, ErrTournamentDatesRequired
	}
	if input.EndDate.Before(*input.StartDate) {
		return "", time.Time{}, time.Time{}, ErrTournamentInvalidDateRange
	}
	return name, *input.StartDate, *input.EndDate, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func mapTournamentRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentOrgInvalid):
		return ErrOrganizationNotFound
	case errors.Is(err, repositories.ErrTournamentNameTaken):
		return ErrTournamentNameConflict
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrTournamentInUse
	default:
		return fmt.Errorf("tournament repository error: %w", err)
	}
}
