package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccerhub/backend/models"
)

var (
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchTeamInvalid  = errors.New("match references an unknown team")
	ErrMatchVenueInvalid = errors.New("match references an unknown venue")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateTeams(ctx context.Context, exec SQLExecutor, id, homeTeamID, awayTeamID int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListAll(ctx context.Context) ([]*models.Match, error)
	ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int) ([]*models.Match, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Match, error)
	ListByDivisionAndPlayoffRound(ctx context.Context, exec SQLExecutor, divisionID int, round models.PlayoffRound) ([]*models.Match, error)
	DeleteScheduledLeagueByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
	DeletePlayoffsByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, division_id, home_team_id, away_team_id, venue_id, match_date,
       home_score, away_score, status, playoff_round, referee_id, created_at, updated_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches
		    (division_id, home_team_id, away_team_id, venue_id, match_date, home_score, away_score, status, playoff_round, referee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err := executor.QueryRowContext(ctx, query,
		match.DivisionID, match.HomeTeamID, match.AwayTeamID, match.VenueID, match.MatchDate,
		match.HomeScore, match.AwayScore, match.Status, match.PlayoffRound, match.RefereeID,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return mapMatchConstraintError(err)
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.DivisionID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.MatchDate,
		&m.HomeScore, &m.AwayScore, &m.Status, &m.PlayoffRound, &m.RefereeID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches SET
			division_id = $1, home_team_id = $2, away_team_id = $3, venue_id = $4, match_date = $5,
			home_score = $6, away_score = $7, status = $8, playoff_round = $9, referee_id = $10,
			updated_at = NOW()
		WHERE id = $11`
	result, err := executor.ExecContext(ctx, query,
		match.DivisionID, match.HomeTeamID, match.AwayTeamID, match.VenueID, match.MatchDate,
		match.HomeScore, match.AwayScore, match.Status, match.PlayoffRound, match.RefereeID,
		match.ID,
	)
	if err != nil {
		return mapMatchConstraintError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// UpdateTeams rewrites only the participants of a match. Used when a finished
// semifinal correction changes who advances to the final.
func (r *postgresMatchRepository) UpdateTeams(ctx context.Context, exec SQLExecutor, id, homeTeamID, awayTeamID int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET home_team_id = $1, away_team_id = $2, updated_at = NOW() WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, homeTeamID, awayTeamID, id)
	if err != nil {
		return mapMatchConstraintError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) ListAll(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY match_date ASC, id ASC`
	return r.queryMatches(ctx, r.db, query)
}

func (r *postgresMatchRepository) ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int) ([]*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches WHERE division_id = $1 ORDER BY match_date ASC, id ASC`
	return r.queryMatches(ctx, executor, query, divisionID)
}

func (r *postgresMatchRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE home_team_id = $1 OR away_team_id = $1
		ORDER BY match_date ASC, id ASC`
	return r.queryMatches(ctx, r.db, query, teamID)
}

func (r *postgresMatchRepository) ListByDivisionAndPlayoffRound(ctx context.Context, exec SQLExecutor, divisionID int, round models.PlayoffRound) ([]*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE division_id = $1 AND playoff_round = $2
		ORDER BY id ASC`
	return r.queryMatches(ctx, executor, query, divisionID, round)
}

// DeleteScheduledLeagueByDivision clears auto-generated fixtures before a
// schedule regeneration. Playoff matches and anything already in progress or
// finished are left alone.
func (r *postgresMatchRepository) DeleteScheduledLeagueByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM matches WHERE division_id = $1 AND status = $2 AND playoff_round IS NULL`
	_, err := executor.ExecContext(ctx, query, divisionID, models.MatchStatusScheduled)
	return err
}

func (r *postgresMatchRepository) DeletePlayoffsByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM matches WHERE division_id = $1 AND playoff_round IS NOT NULL`
	_, err := executor.ExecContext(ctx, query, divisionID)
	return err
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := r.scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func mapMatchConstraintError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
		switch pqErr.Constraint {
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchTeamInvalid
		case "matches_venue_id_fkey":
			return ErrMatchVenueInvalid
		}
	}
	return err
}
