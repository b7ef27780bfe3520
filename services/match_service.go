package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soccerhub/backend/fixtures"
	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type MatchService interface {
	GetAllMatches(ctx context.Context) ([]*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	GetMatchesByDivision(ctx context.Context, divisionID int) ([]*models.Match, error)
	GetMatchesByTeam(ctx context.Context, teamID int) ([]*models.Match, error)
	CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error)
	UpdateMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	RecordResult(ctx context.Context, id int, input ResultInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

type MatchInput struct {
	DivisionID   int       `json:"division_id"`
	HomeTeamID   int       `json:"home_team_id"`
	AwayTeamID   int       `json:"away_team_id"`
	VenueID      *int      `json:"venue_id"`
	MatchDate    time.Time `json:"match_date"`
	HomeScore    *int      `json:"home_score"`
	AwayScore    *int      `json:"away_score"`
	Status       *string   `json:"status"`
	PlayoffRound *string   `json:"playoff_round"`
	RefereeID    *int      `json:"referee_id"`
}

type ResultInput struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

type matchService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	divisionRepo   repositories.DivisionRepository
	tournamentRepo repositories.TournamentRepository
	standings      StandingService
	locker         *DivisionLocker
	hub            *fixtures.Hub
	logger         *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	divisionRepo repositories.DivisionRepository,
	tournamentRepo repositories.TournamentRepository,
	standings StandingService,
	locker *DivisionLocker,
	hub *fixtures.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:             db,
		matchRepo:      matchRepo,
		divisionRepo:   divisionRepo,
		tournamentRepo: tournamentRepo,
		standings:      standings,
		locker:         locker,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) GetAllMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) GetMatchesByDivision(ctx context.Context, divisionID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByDivision(ctx, nil, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for division %d: %w", divisionID, err)
	}
	return matches, nil
}

func (s *matchService) GetMatchesByTeam(ctx context.Context, teamID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for team %d: %w", teamID, err)
	}
	return matches, nil
}

func (s *matchService) CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error) {
	match, err := matchFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	match, err := matchFromInput(input)
	if err != nil {
		return nil, err
	}
	match.ID = id
	if err := s.matchRepo.Update(ctx, nil, match); err != nil {
		return nil, mapMatchRepoError(err)
	}
	updated, err := s.matchRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	return updated, nil
}

// RecordResult marks a match completed with the given score. League results
// feed the standings ledger (reversing any previously recorded score first so
// corrections never double-count); playoff results drive bracket progression
// instead and never touch the ledger.
func (s *matchService) RecordResult(ctx context.Context, id int, input ResultInput) (*models.Match, error) {
	if input.HomeScore == nil || input.AwayScore == nil {
		return nil, ErrMatchScoresRequired
	}

	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(match.DivisionID)
	defer unlock()

	var updated *models.Match
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		m, err := s.matchRepo.GetByID(ctx, tx, id)
		if err != nil {
			return mapMatchRepoError(err)
		}

		wasCompleted := m.Status == models.MatchStatusCompleted
		oldHome, oldAway := m.HomeScore, m.AwayScore

		m.HomeScore, m.AwayScore = input.HomeScore, input.AwayScore
		m.Status = models.MatchStatusCompleted
		if err := s.matchRepo.Update(ctx, tx, m); err != nil {
			return mapMatchRepoError(err)
		}

		if !m.IsPlayoff() {
			if wasCompleted && oldHome != nil && oldAway != nil {
				if err := s.standings.ReverseResult(ctx, tx, m.DivisionID, m.HomeTeamID, m.AwayTeamID, *oldHome, *oldAway); err != nil {
					return err
				}
			}
			if err := s.standings.ApplyResult(ctx, tx, m.DivisionID, m.HomeTeamID, m.AwayTeamID, *input.HomeScore, *input.AwayScore); err != nil {
				return err
			}
		} else if err := s.progressBracket(ctx, tx, m); err != nil {
			return err
		}

		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	room := fixtures.DivisionRoom(updated.DivisionID)
	s.hub.BroadcastToRoom(room, fixtures.Message{
		Type:       fixtures.EventMatchResult,
		DivisionID: updated.DivisionID,
		Payload:    updated,
	})
	if !updated.IsPlayoff() {
		s.hub.BroadcastToRoom(room, fixtures.Message{
			Type:       fixtures.EventStandingsUpdated,
			DivisionID: updated.DivisionID,
		})
	}
	return updated, nil
}

// progressBracket advances the knockout stage once both semifinals are done.
// The final is keyed by (division, FINAL): created when absent, its
// participants rewritten in place when a semifinal result is corrected.
func (s *matchService) progressBracket(ctx context.Context, tx *sql.Tx, completed *models.Match) error {
	if completed.PlayoffRound == nil || *completed.PlayoffRound != models.PlayoffRoundSemifinal {
		return nil
	}

	semifinals, err := s.matchRepo.ListByDivisionAndPlayoffRound(ctx, tx, completed.DivisionID, models.PlayoffRoundSemifinal)
	if err != nil {
		return fmt.Errorf("failed to load semifinals for division %d: %w", completed.DivisionID, err)
	}
	if len(semifinals) < 2 {
		return nil
	}
	for _, sf := range semifinals {
		if sf.Status != models.MatchStatusCompleted || !sf.HasResult() {
			return nil
		}
	}

	winners := make([]int, 0, len(semifinals))
	for _, sf := range semifinals {
		winners = append(winners, fixtures.Winner(sf.HomeTeamID, sf.AwayTeamID, *sf.HomeScore, *sf.AwayScore))
	}

	finals, err := s.matchRepo.ListByDivisionAndPlayoffRound(ctx, tx, completed.DivisionID, models.PlayoffRoundFinal)
	if err != nil {
		return fmt.Errorf("failed to load final for division %d: %w", completed.DivisionID, err)
	}

	if len(finals) > 0 {
		final := finals[0]
		s.logger.Info("rewriting final participants",
			slog.Int("division_id", completed.DivisionID),
			slog.Int("match_id", final.ID),
			slog.Int("home_team_id", winners[0]),
			slog.Int("away_team_id", winners[1]))
		return s.matchRepo.UpdateTeams(ctx, tx, final.ID, winners[0], winners[1])
	}

	division, err := s.divisionRepo.GetByID(ctx, completed.DivisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return ErrDivisionNotFound
		}
		return err
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, division.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	round := models.PlayoffRoundFinal
	final := &models.Match{
		DivisionID:   completed.DivisionID,
		HomeTeamID:   winners[0],
		AwayTeamID:   winners[1],
		MatchDate:    fixtures.FinalDate(tournament.EndDate),
		Status:       models.MatchStatusScheduled,
		PlayoffRound: &round,
	}
	s.logger.Info("creating final",
		slog.Int("division_id", completed.DivisionID),
		slog.Int("home_team_id", winners[0]),
		slog.Int("away_team_id", winners[1]))
	return s.matchRepo.Create(ctx, tx, final)
}

// DeleteMatch removes a match, first undoing its standings contribution when
// it was a completed league fixture.
func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locker.Lock(match.DivisionID)
	defer unlock()

	return runInTx(ctx, s.db, func(tx *sql.Tx) error {
		m, err := s.matchRepo.GetByID(ctx, tx, id)
		if err != nil {
			return mapMatchRepoError(err)
		}

		if !m.IsPlayoff() && m.Status == models.MatchStatusCompleted && m.HasResult() {
			if err := s.standings.ReverseResult(ctx, tx, m.DivisionID, m.HomeTeamID, m.AwayTeamID, *m.HomeScore, *m.AwayScore); err != nil {
				return err
			}
		}
		if err := s.matchRepo.Delete(ctx, tx, id); err != nil {
			return mapMatchRepoError(err)
		}
		return nil
	})
}

func matchFromInput(input MatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchSameTeam
	}

	status := models.MatchStatusScheduled
	if input.Status != nil {
		status = models.MatchStatus(*input.Status)
		switch status {
		case models.MatchStatusScheduled, models.MatchStatusInProgress, models.MatchStatusCompleted,
			models.MatchStatusPostponed, models.MatchStatusCancelled:
		default:
			return nil, fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, *input.Status)
		}
	}

	var playoffRound *models.PlayoffRound
	if input.PlayoffRound != nil {
		round := models.PlayoffRound(*input.PlayoffRound)
		switch round {
		case models.PlayoffRoundSemifinal, models.PlayoffRoundFinal:
			playoffRound = &round
		default:
			return nil, fmt.Errorf("%w: unknown playoff round %q", ErrValidationFailed, *input.PlayoffRound)
		}
	}

	return &models.Match{
		DivisionID:   input.DivisionID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		VenueID:      input.VenueID,
		MatchDate:    input.MatchDate,
		HomeScore:    input.HomeScore,
		AwayScore:    input.AwayScore,
		Status:       status,
		PlayoffRound: playoffRound,
		RefereeID:    input.RefereeID,
	}, nil
}

func mapMatchRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchVenueInvalid):
		return ErrVenueNotFound
	default:
		return err
	}
}
