package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/soccerhub/backend/models"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrVenueInUse    = errors.New("venue cannot be deleted as it is assigned to matches")
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	GetByID(ctx context.Context, id int) (*models.Venue, error)
	GetAll(ctx context.Context) ([]models.Venue, error)
	Update(ctx context.Context, venue *models.Venue) error
	Delete(ctx context.Context, id int) error
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `INSERT INTO venues (name, address, city, capacity) VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, venue.Name, venue.Address, venue.City, venue.Capacity).Scan(&venue.ID)
}

func (r *postgresVenueRepository) scanVenue(rowScanner interface{ Scan(...interface{}) error }) (*models.Venue, error) {
	var v models.Venue
	err := rowScanner.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Capacity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	query := `SELECT id, name, address, city, capacity FROM venues WHERE id = $1`
	return r.scanVenue(r.db.QueryRowContext(ctx, query, id))
}

// GetAll orders by id so the scheduler's venue rotation is deterministic.
func (r *postgresVenueRepository) GetAll(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, address, city, capacity FROM venues ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]models.Venue, 0)
	for rows.Next() {
		v, scanErr := r.scanVenue(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, *v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

func (r *postgresVenueRepository) Update(ctx context.Context, venue *models.Venue) error {
	query := `UPDATE venues SET name = $1, address = $2, city = $3, capacity = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, venue.Name, venue.Address, venue.City, venue.Capacity, venue.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}

func (r *postgresVenueRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrVenueInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrVenueNotFound)
}
