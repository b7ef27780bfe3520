package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccerhub/backend/models"
)

var (
	ErrOrganizationNotFound     = errors.New("organization not found")
	ErrOrganizationNameConflict = errors.New("organization name already exists")
	ErrOrganizationInUse        = errors.New("organization cannot be deleted as it has tournaments")
)

type OrganizationRepository interface {
	Create(ctx context.Context, organization *models.Organization) error
	GetByID(ctx context.Context, id int) (*models.Organization, error)
	GetAll(ctx context.Context) ([]models.Organization, error)
	Update(ctx context.Context, organization *models.Organization) error
	Delete(ctx context.Context, id int) error
}

type postgresOrganizationRepository struct {
	db *sql.DB
}

func NewPostgresOrganizationRepository(db *sql.DB) OrganizationRepository {
	return &postgresOrganizationRepository{db: db}
}

func (r *postgresOrganizationRepository) Create(ctx context.Context, organization *models.Organization) error {
	query := `INSERT INTO organizations (name, contact_email) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, organization.Name, organization.ContactEmail).Scan(&organization.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrOrganizationNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresOrganizationRepository) GetByID(ctx context.Context, id int) (*models.Organization, error) {
	query := `SELECT id, name, contact_email FROM organizations WHERE id = $1`
	var o models.Organization
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.ContactEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresOrganizationRepository) GetAll(ctx context.Context) ([]models.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, contact_email FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	organizations := make([]models.Organization, 0)
	for rows.Next() {
		var o models.Organization
		if scanErr := rows.Scan(&o.ID, &o.Name, &o.ContactEmail); scanErr != nil {
			return nil, scanErr
		}
		organizations = append(organizations, o)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return organizations, nil
}

func (r *postgresOrganizationRepository) Update(ctx context.Context, organization *models.Organization) error {
	query := `UPDATE organizations SET name = $1, contact_email = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, organization.Name, organization.ContactEmail, organization.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrOrganizationNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrOrganizationNotFound)
}

func (r *postgresOrganizationRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrOrganizationInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrOrganizationNotFound)
}
