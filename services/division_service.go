package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/soccerhub/backend/fixtures"
	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type DivisionService interface {
	CreateDivision(ctx context.Context, input DivisionInput) (*models.Division, error)
	GetDivisionByID(ctx context.Context, id int) (*models.Division, error)
	GetAllDivisions(ctx context.Context) ([]models.Division, error)
	GetDivisionsByTournament(ctx context.Context, tournamentID int) ([]models.Division, error)
	UpdateDivision(ctx context.Context, id int, input DivisionInput) (*models.Division, error)
	DeleteDivision(ctx context.Context, id int) error
	GetDivisionSummary(ctx context.Context, id int) (*DivisionSummary, error)
	GenerateSchedule(ctx context.Context, divisionID int) ([]*models.Match, error)
	GeneratePlayoffs(ctx context.Context, divisionID int) ([]*models.Match, error)
}

type DivisionInput struct {
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
}

// DivisionSummary bundles everything a division page needs in one response.
type DivisionSummary struct {
	Division  *models.Division   `json:"division"`
	Teams     []models.Team      `json:"teams"`
	Matches   []*models.Match    `json:"matches"`
	Standings []*models.Standing `json:"standings"`
}

type divisionService struct {
	db             *sql.DB
	divisionRepo   repositories.DivisionRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	venueRepo      repositories.VenueRepository
	matchRepo      repositories.MatchRepository
	standingRepo   repositories.StandingRepository
	standings      StandingService
	locker         *DivisionLocker
	hub            *fixtures.Hub
	logger         *slog.Logger
}

func NewDivisionService(
	db *sql.DB,
	divisionRepo repositories.DivisionRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	matchRepo repositories.MatchRepository,
	standingRepo repositories.StandingRepository,
	standings StandingService,
	locker *DivisionLocker,
	hub *fixtures.Hub,
	logger *slog.Logger,
) DivisionService {
	return &divisionService{
		db:             db,
		divisionRepo:   divisionRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		venueRepo:      venueRepo,
		matchRepo:      matchRepo,
		standingRepo:   standingRepo,
		standings:      standings,
		locker:         locker,
		hub:            hub,
		logger:         logger,
	}
}

func (s *divisionService) CreateDivision(ctx context.Context, input DivisionInput) (*models.Division, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	division := &models.Division{TournamentID: input.TournamentID, Name: name}
	if err := s.divisionRepo.Create(ctx, division); err != nil {
		if errors.Is(err, repositories.ErrDivisionTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return division, nil
}

func (s *divisionService) GetDivisionByID(ctx context.Context, id int) (*models.Division, error) {
	division, err := s.divisionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to get division %d: %w", id, err)
	}
	return division, nil
}

func (s *divisionService) GetAllDivisions(ctx context.Context) ([]models.Division, error) {
	divisions, err := s.divisionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	return divisions, nil
}

func (s *divisionService) GetDivisionsByTournament(ctx context.Context, tournamentID int) ([]models.Division, error) {
	divisions, err := s.divisionRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions for tournament %d: %w", tournamentID, err)
	}
	return divisions, nil
}

func (s *divisionService) UpdateDivision(ctx context.Context, id int, input DivisionInput) (*models.Division, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	division := &models.Division{ID: id, TournamentID: input.TournamentID, Name: name}
	if err := s.divisionRepo.Update(ctx, division); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDivisionNotFound):
			return nil, ErrDivisionNotFound
		case errors.Is(err, repositories.ErrDivisionTournamentInvalid):
			return nil, ErrTournamentNotFound
		default:
			return nil, fmt.Errorf("failed to update division %d: %w", id, err)
		}
	}
	return division, nil
}

func (s *divisionService) DeleteDivision(ctx context.Context, id int) error {
	if err := s.divisionRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDivisionNotFound):
			return ErrDivisionNotFound
		case errors.Is(err, repositories.ErrDivisionInUse):
			return ErrDivisionInUse
		default:
			return fmt.Errorf("failed to delete division %d: %w", id, err)
		}
	}
	return nil
}

// GetDivisionSummary fetches the division's teams, matches and standings in
// parallel.
func (s *divisionService) GetDivisionSummary(ctx context.Context, id int) (*DivisionSummary, error) {
	division, err := s.GetDivisionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &DivisionSummary{Division: division}
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		teams, err := s.teamRepo.ListByDivision(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load teams for division %d: %w", id, err)
		}
		summary.Teams = teams
		return nil
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListByDivision(gCtx, nil, id)
		if err != nil {
			return fmt.Errorf("failed to load matches for division %d: %w", id, err)
		}
		summary.Matches = matches
		return nil
	})
	g.Go(func() error {
		standings, err := s.standings.GetStandingsByDivision(gCtx, id)
		if err != nil {
			return err
		}
		summary.Standings = standings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// GenerateSchedule replaces the division's auto-generated fixtures with a
// fresh round-robin: every existing SCHEDULED league match is deleted and the
// new set inserted in one transaction, so repeated calls replace rather than
// accumulate.
func (s *divisionService) GenerateSchedule(ctx context.Context, divisionID int) ([]*models.Match, error) {
	division, err := s.GetDivisionByID(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for division %d: %w", divisionID, err)
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	tournament, err := s.loadTournament(ctx, division.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.EndDate.Before(tournament.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	venues, err := s.venueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}

	teamIDs := make([]int, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}
	rounds, err := fixtures.Rounds(teamIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	unlock := s.locker.Lock(divisionID)
	defer unlock()

	var generated []*models.Match
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.DeleteScheduledLeagueByDivision(ctx, tx, divisionID); err != nil {
			return fmt.Errorf("failed to clear scheduled matches for division %d: %w", divisionID, err)
		}

		generated = make([]*models.Match, 0, len(rounds)*len(rounds[0]))
		venueIndex := 0
		for r, pairs := range rounds {
			matchDate := fixtures.RoundDate(tournament.StartDate, tournament.EndDate, r, len(rounds))
			for _, pair := range pairs {
				match := &models.Match{
					DivisionID: divisionID,
					HomeTeamID: pair.HomeTeamID,
					AwayTeamID: pair.AwayTeamID,
					MatchDate:  matchDate,
					Status:     models.MatchStatusScheduled,
				}
				if len(venues) > 0 {
					venueID := venues[venueIndex%len(venues)].ID
					match.VenueID = &venueID
					venueIndex++
				}
				if err := s.matchRepo.Create(ctx, tx, match); err != nil {
					return mapMatchRepoError(err)
				}
				generated = append(generated, match)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("schedule generated",
		slog.Int("division_id", divisionID),
		slog.Int("rounds", len(rounds)),
		slog.Int("matches", len(generated)))
	s.hub.BroadcastToRoom(fixtures.DivisionRoom(divisionID), fixtures.Message{
		Type:       fixtures.EventScheduleGenerated,
		DivisionID: divisionID,
		Payload:    generated,
	})
	return generated, nil
}

// GeneratePlayoffs seeds the four best-placed teams into two semifinals,
// replacing any existing bracket matches for the division.
func (s *divisionService) GeneratePlayoffs(ctx context.Context, divisionID int) ([]*models.Match, error) {
	division, err := s.GetDivisionByID(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	standings, err := s.standingRepo.ListByDivision(ctx, nil, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings for division %d: %w", divisionID, err)
	}
	if len(standings) < 4 {
		return nil, ErrNotEnoughStandings
	}

	tournament, err := s.loadTournament(ctx, division.TournamentID)
	if err != nil {
		return nil, err
	}

	venues, err := s.venueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load venues: %w", err)
	}

	seeds := make([]int, len(standings))
	for i, st := range standings {
		seeds[i] = st.TeamID
	}
	pairs, err := fixtures.SemifinalPairs(seeds)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	semifinalDate := fixtures.SemifinalDate(tournament.EndDate)

	unlock := s.locker.Lock(divisionID)
	defer unlock()

	var generated []*models.Match
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.DeletePlayoffsByDivision(ctx, tx, divisionID); err != nil {
			return fmt.Errorf("failed to clear playoff matches for division %d: %w", divisionID, err)
		}

		generated = make([]*models.Match, 0, len(pairs))
		round := models.PlayoffRoundSemifinal
		for i, pair := range pairs {
			match := &models.Match{
				DivisionID:   divisionID,
				HomeTeamID:   pair.HomeTeamID,
				AwayTeamID:   pair.AwayTeamID,
				MatchDate:    semifinalDate,
				Status:       models.MatchStatusScheduled,
				PlayoffRound: &round,
			}
			if len(venues) > 0 {
				venueID := venues[i%len(venues)].ID
				match.VenueID = &venueID
			}
			if err := s.matchRepo.Create(ctx, tx, match); err != nil {
				return mapMatchRepoError(err)
			}
			generated = append(generated, match)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("playoffs generated",
		slog.Int("division_id", divisionID),
		slog.Int("matches", len(generated)))
	s.hub.BroadcastToRoom(fixtures.DivisionRoom(divisionID), fixtures.Message{
		Type:       fixtures.EventPlayoffsGenerated,
		DivisionID: divisionID,
		Payload:    generated,
	})
	return generated, nil
}

func (s *divisionService) loadTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}
