package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/soccerhub/backend/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	GetByDivisionAndTeam(ctx context.Context, exec SQLExecutor, divisionID, teamID int) (*models.Standing, error)
	GetOrCreate(ctx context.Context, exec SQLExecutor, divisionID, teamID int) (*models.Standing, error)
	Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error
	ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int) ([]*models.Standing, error)
	DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const standingColumns = `id, division_id, team_id, played, won, drawn, lost,
       goals_for, goals_against, goal_difference, points, updated_at`

func (r *postgresStandingRepository) Create(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings
		    (division_id, team_id, played, won, drawn, lost, goals_for, goals_against, goal_difference, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, updated_at`
	return executor.QueryRowContext(ctx, query,
		standing.DivisionID, standing.TeamID, standing.Played, standing.Won, standing.Drawn,
		standing.Lost, standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference, standing.Points,
	).Scan(&standing.ID, &standing.UpdatedAt)
}

func (r *postgresStandingRepository) scanStanding(rowScanner interface{ Scan(...interface{}) error }) (*models.Standing, error) {
	var s models.Standing
	err := rowScanner.Scan(
		&s.ID, &s.DivisionID, &s.TeamID, &s.Played, &s.Won, &s.Drawn, &s.Lost,
		&s.GoalsFor, &s.GoalsAgainst, &s.GoalDifference, &s.Points, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) GetByDivisionAndTeam(ctx context.Context, exec SQLExecutor, divisionID, teamID int) (*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + standingColumns + ` FROM standings WHERE division_id = $1 AND team_id = $2`
	return r.scanStanding(executor.QueryRowContext(ctx, query, divisionID, teamID))
}

// GetOrCreate fetches the (division, team) row or lazily inserts a fully
// zeroed one. The unique constraint on the pair keeps concurrent creations
// from producing duplicates.
func (r *postgresStandingRepository) GetOrCreate(ctx context.Context, exec SQLExecutor, divisionID, teamID int) (*models.Standing, error) {
	executor := r.getExecutor(exec)
	standing, err := r.GetByDivisionAndTeam(ctx, executor, divisionID, teamID)
	if err == nil {
		return standing, nil
	}
	if !errors.Is(err, ErrStandingNotFound) {
		return nil, fmt.Errorf("failed to get standing for division %d team %d: %w", divisionID, teamID, err)
	}

	fresh := &models.Standing{DivisionID: divisionID, TeamID: teamID}
	if createErr := r.Create(ctx, executor, fresh); createErr != nil {
		return nil, fmt.Errorf("failed to create standing for division %d team %d: %w", divisionID, teamID, createErr)
	}
	return fresh, nil
}

func (r *postgresStandingRepository) Update(ctx context.Context, exec SQLExecutor, standing *models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE standings SET
			played = $1, won = $2, drawn = $3, lost = $4,
			goals_for = $5, goals_against = $6, goal_difference = $7, points = $8,
			updated_at = NOW()
		WHERE id = $9`
	result, err := executor.ExecContext(ctx, query,
		standing.Played, standing.Won, standing.Drawn, standing.Lost,
		standing.GoalsFor, standing.GoalsAgainst, standing.GoalDifference, standing.Points,
		standing.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

// ListByDivision returns the division table in display order: points, then
// goal difference, then goals for, with team id as the deterministic last
// resort so equal records always list the same way.
func (r *postgresStandingRepository) ListByDivision(ctx context.Context, exec SQLExecutor, divisionID int) ([]*models.Standing, error) {
	executor := r.getExecutor(exec)
	query := `SELECT ` + standingColumns + ` FROM standings
		WHERE division_id = $1
		ORDER BY points DESC, goal_difference DESC, goals_for DESC, team_id ASC`
	rows, err := executor.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.Standing, 0)
	for rows.Next() {
		s, scanErr := r.scanStanding(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

func (r *postgresStandingRepository) DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM standings WHERE division_id = $1`, divisionID)
	return err
}
