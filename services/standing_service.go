package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
	"github.com/soccerhub/backend/storage"
)

// Points awarded per league result.
const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

// StandingService is the incremental ledger behind the league table. Apply
// and Reverse share one delta code path with a flipped sign, so a result can
// be corrected any number of times without the rows drifting.
type StandingService interface {
	GetStandingsByDivision(ctx context.Context, divisionID int) ([]*models.Standing, error)
	ApplyResult(ctx context.Context, exec repositories.SQLExecutor, divisionID, homeTeamID, awayTeamID, homeScore, awayScore int) error
	ReverseResult(ctx context.Context, exec repositories.SQLExecutor, divisionID, homeTeamID, awayTeamID, homeScore, awayScore int) error
}

type standingService struct {
	standingRepo repositories.StandingRepository
	divisionRepo repositories.DivisionRepository
	teamRepo     repositories.TeamRepository
	uploader     storage.FileUploader
}

func NewStandingService(
	standingRepo repositories.StandingRepository,
	divisionRepo repositories.DivisionRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
) StandingService {
	return &standingService{
		standingRepo: standingRepo,
		divisionRepo: divisionRepo,
		teamRepo:     teamRepo,
		uploader:     uploader,
	}
}

func (s *standingService) GetStandingsByDivision(ctx context.Context, divisionID int) ([]*models.Standing, error) {
	if _, err := s.divisionRepo.GetByID(ctx, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to load division %d: %w", divisionID, err)
	}

	standings, err := s.standingRepo.ListByDivision(ctx, nil, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for division %d: %w", divisionID, err)
	}

	teams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for division %d: %w", divisionID, err)
	}
	teamsByID := make(map[int]models.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}
	for _, st := range standings {
		if team, ok := teamsByID[st.TeamID]; ok {
			linked := team
			populateTeamCrestURL(&linked, s.uploader)
			st.Team = &linked
		}
	}
	return standings, nil
}

func (s *standingService) ApplyResult(ctx context.Context, exec repositories.SQLExecutor, divisionID, homeTeamID, awayTeamID, homeScore, awayScore int) error {
	return s.adjust(ctx, exec, divisionID, homeTeamID, awayTeamID, homeScore, awayScore, +1)
}

func (s *standingService) ReverseResult(ctx context.Context, exec repositories.SQLExecutor, divisionID, homeTeamID, awayTeamID, homeScore, awayScore int) error {
	return s.adjust(ctx, exec, divisionID, homeTeamID, awayTeamID, homeScore, awayScore, -1)
}

func (s *standingService) adjust(ctx context.Context, exec repositories.SQLExecutor, divisionID, homeTeamID, awayTeamID, homeScore, awayScore, sign int) error {
	home, err := s.standingRepo.GetOrCreate(ctx, exec, divisionID, homeTeamID)
	if err != nil {
		return err
	}
	away, err := s.standingRepo.GetOrCreate(ctx, exec, divisionID, awayTeamID)
	if err != nil {
		return err
	}

	homeDelta, awayDelta := resultDeltas(homeScore, awayScore)
	applyDelta(home, homeDelta, sign)
	applyDelta(away, awayDelta, sign)

	if err := s.standingRepo.Update(ctx, exec, home); err != nil {
		return fmt.Errorf("failed to update home standing %d: %w", home.ID, err)
	}
	if err := s.standingRepo.Update(ctx, exec, away); err != nil {
		return fmt.Errorf("failed to update away standing %d: %w", away.ID, err)
	}
	return nil
}

// standingDelta is the contribution of one match to one standing row.
type standingDelta struct {
	won, drawn, lost       int
	goalsFor, goalsAgainst int
	points                 int
}

// resultDeltas computes the home and away contributions of a final score.
func resultDeltas(homeScore, awayScore int) (home, away standingDelta) {
	home.goalsFor, home.goalsAgainst = homeScore, awayScore
	away.goalsFor, away.goalsAgainst = awayScore, homeScore

	switch {
	case homeScore > awayScore:
		home.won, home.points = 1, pointsPerWin
		away.lost = 1
	case homeScore < awayScore:
		away.won, away.points = 1, pointsPerWin
		home.lost = 1
	default:
		home.drawn, home.points = 1, pointsPerDraw
		away.drawn, away.points = 1, pointsPerDraw
	}
	return home, away
}

// applyDelta mutates a standing row by delta, with sign +1 to record a result
// and -1 to take it back. Goal difference is recomputed from the totals so it
// can never drift from goals_for - goals_against.
func applyDelta(s *models.Standing, d standingDelta, sign int) {
	s.Played += sign
	s.Won += sign * d.won
	s.Drawn += sign * d.drawn
	s.Lost += sign * d.lost
	s.GoalsFor += sign * d.goalsFor
	s.GoalsAgainst += sign * d.goalsAgainst
	s.Points += sign * d.points
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
}
