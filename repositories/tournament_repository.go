package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccerhub/backend/models"
)

var (
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrTournamentOrgInvalid = errors.New("tournament references an unknown organization")
	ErrTournamentInUse      = errors.New("tournament cannot be deleted as it has divisions")
	ErrTournamentNameTaken  = errors.New("tournament name already exists")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetAll(ctx context.Context) ([]models.Tournament, error)
	ListByOrganization(ctx context.Context, organizationID int) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	ListByStatus(ctx context.Context, statuses ...models.TournamentStatus) ([]models.Tournament, error)
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, organization_id, name, start_date, end_date, status, created_at, updated_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (organization_id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		tournament.OrganizationID, tournament.Name, tournament.StartDate, tournament.EndDate, tournament.Status,
	).Scan(&tournament.ID, &tournament.CreatedAt, &tournament.UpdatedAt)
	if err != nil {
		return mapTournamentConstraintError(err)
	}
	return nil
}

func (r *postgresTournamentRepository) scanTournament(rowScanner interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := rowScanner.Scan(
		&t.ID, &t.OrganizationID, &t.Name, &t.StartDate, &t.EndDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.scanTournament(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) GetAll(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY start_date DESC, id ASC`
	return r.queryTournaments(ctx, query)
}

func (r *postgresTournamentRepository) ListByOrganization(ctx context.Context, organizationID int) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE organization_id = $1 ORDER BY start_date DESC, id ASC`
	return r.queryTournaments(ctx, query, organizationID)
}

func (r *postgresTournamentRepository) ListByStatus(ctx context.Context, statuses ...models.TournamentStatus) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE status = ANY($1) ORDER BY start_date ASC, id ASC`
	states := make([]string, len(statuses))
	for i, s := range statuses {
		states[i] = string(s)
	}
	return r.queryTournaments(ctx, query, pq.Array(states))
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			organization_id = $1, name = $2, start_date = $3, end_date = $4, status = $5, updated_at = NOW()
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		tournament.OrganizationID, tournament.Name, tournament.StartDate, tournament.EndDate,
		tournament.Status, tournament.ID,
	)
	if err != nil {
		return mapTournamentConstraintError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tournaments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrTournamentInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) queryTournaments(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, scanErr := r.scanTournament(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func mapTournamentConstraintError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameTaken
			}
		case "23503": // foreign_key_violation
			return ErrTournamentOrgInvalid
		}
	}
	return err
}
