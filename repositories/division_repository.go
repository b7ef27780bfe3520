package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccerhub/backend/models"
)

var (
	ErrDivisionNotFound          = errors.New("division not found")
	ErrDivisionTournamentInvalid = errors.New("division references an unknown tournament")
	ErrDivisionInUse             = errors.New("division cannot be deleted as it has teams or matches")
)

type DivisionRepository interface {
	Create(ctx context.Context, division *models.Division) error
	GetByID(ctx context.Context, id int) (*models.Division, error)
	GetAll(ctx context.Context) ([]models.Division, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Division, error)
	Update(ctx context.Context, division *models.Division) error
	Delete(ctx context.Context, id int) error
}

type postgresDivisionRepository struct {
	db *sql.DB
}

func NewPostgresDivisionRepository(db *sql.DB) DivisionRepository {
	return &postgresDivisionRepository{db: db}
}

func (r *postgresDivisionRepository) Create(ctx context.Context, division *models.Division) error {
	query := `INSERT INTO divisions (tournament_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, division.TournamentID, division.Name).Scan(&division.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDivisionTournamentInvalid
		}
		return err
	}
	return nil
}

func (r *postgresDivisionRepository) GetByID(ctx context.Context, id int) (*models.Division, error) {
	query := `SELECT id, tournament_id, name FROM divisions WHERE id = $1`
	var d models.Division
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.TournamentID, &d.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresDivisionRepository) GetAll(ctx context.Context) ([]models.Division, error) {
	return r.queryDivisions(ctx, `SELECT id, tournament_id, name FROM divisions ORDER BY name ASC`)
}

func (r *postgresDivisionRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Division, error) {
	query := `SELECT id, tournament_id, name FROM divisions WHERE tournament_id = $1 ORDER BY name ASC`
	return r.queryDivisions(ctx, query, tournamentID)
}

func (r *postgresDivisionRepository) Update(ctx context.Context, division *models.Division) error {
	query := `UPDATE divisions SET tournament_id = $1, name = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, division.TournamentID, division.Name, division.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDivisionTournamentInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresDivisionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM divisions WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrDivisionInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresDivisionRepository) queryDivisions(ctx context.Context, query string, args ...interface{}) ([]models.Division, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]models.Division, 0)
	for rows.Next() {
		var d models.Division
		if scanErr := rows.Scan(&d.ID, &d.TournamentID, &d.Name); scanErr != nil {
			return nil, scanErr
		}
		divisions = append(divisions, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return divisions, nil
}
