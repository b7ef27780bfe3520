package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccerhub/backend/models"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamDivisionInvalid = errors.New("team references an unknown division")
	ErrTeamNameConflict    = errors.New("team name already exists in this division")
	ErrTeamInUse           = errors.New("team cannot be deleted as it has players or matches")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetAll(ctx context.Context) ([]models.Team, error)
	ListByDivision(ctx context.Context, divisionID int) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateCrestKey(ctx context.Context, id int, crestKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `INSERT INTO teams (division_id, name, crest_key) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, team.DivisionID, team.Name, team.CrestKey).Scan(&team.ID)
	if err != nil {
		return mapTeamConstraintError(err)
	}
	return nil
}

func (r *postgresTeamRepository) scanTeam(rowScanner interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := rowScanner.Scan(&t.ID, &t.DivisionID, &t.Name, &t.CrestKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, division_id, name, crest_key FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	return r.queryTeams(ctx, `SELECT id, division_id, name, crest_key FROM teams ORDER BY name ASC`)
}

// ListByDivision orders by id so schedule generation sees a stable team order.
func (r *postgresTeamRepository) ListByDivision(ctx context.Context, divisionID int) ([]models.Team, error) {
	query := `SELECT id, division_id, name, crest_key FROM teams WHERE division_id = $1 ORDER BY id ASC`
	return r.queryTeams(ctx, query, divisionID)
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET division_id = $1, name = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team.DivisionID, team.Name, team.ID)
	if err != nil {
		return mapTeamConstraintError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET crest_key = $1 WHERE id = $2`, crestKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTeamInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, scanErr := r.scanTeam(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func mapTeamConstraintError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			if pqErr.Constraint == "teams_division_id_name_key" {
				return ErrTeamNameConflict
			}
		case "23503":
			return ErrTeamDivisionInvalid
		}
	}
	return err
}
