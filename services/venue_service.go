package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type VenueService interface {
	CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error)
	GetVenueByID(ctx context.Context, id int) (*models.Venue, error)
	GetAllVenues(ctx context.Context) ([]models.Venue, error)
	UpdateVenue(ctx context.Context, id int, input VenueInput) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id int) error
}

type VenueInput struct {
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	Capacity *int    `json:"capacity"`
}

type venueService struct {
	venueRepo repositories.VenueRepository
}

func NewVenueService(venueRepo repositories.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) CreateVenue(ctx context.Context, input VenueInput) (*models.Venue, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	venue := &models.Venue{Name: name, Address: input.Address, City: input.City, Capacity: input.Capacity}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, mapVenueRepoError(err)
	}
	return venue, nil
}

func (s *venueService) GetVenueByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapVenueRepoError(err)
	}
	return venue, nil
}

func (s *venueService) GetAllVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id int, input VenueInput) (*models.Venue, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	venue := &models.Venue{ID: id, Name: name, Address: input.Address, City: input.City, Capacity: input.Capacity}
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, mapVenueRepoError(err)
	}
	return venue, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, id int) error {
	if err := s.venueRepo.Delete(ctx, id); err != nil {
		return mapVenueRepoError(err)
	}
	return nil
}

func mapVenueRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrVenueNotFound):
		return ErrVenueNotFound
	case errors.Is(err, repositories.ErrVenueInUse):
		return ErrVenueInUse
	default:
		return fmt.Errorf("venue repository error: %w", err)
	}
}
