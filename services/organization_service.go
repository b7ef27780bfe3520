package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type OrganizationService interface {
	CreateOrganization(ctx context.Context, input OrganizationInput) (*models.Organization, error)
	GetOrganizationByID(ctx context.Context, id int) (*models.Organization, error)
	GetAllOrganizations(ctx context.Context) ([]models.Organization, error)
	UpdateOrganization(ctx context.Context, id int, input OrganizationInput) (*models.Organization, error)
	DeleteOrganization(ctx context.Context, id int) error
}

type OrganizationInput struct {
	Name         string  `json:"name"`
	ContactEmail *string `json:"contact_email"`
}

type organizationService struct {
	organizationRepo repositories.OrganizationRepository
}

func NewOrganizationService(organizationRepo repositories.OrganizationRepository) OrganizationService {
	return &organizationService{organizationRepo: organizationRepo}
}

func (s *organizationService) CreateOrganization(ctx context.Context, input OrganizationInput) (*models.Organization, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	organization := &models.Organization{Name: name, ContactEmail: input.ContactEmail}
	if err := s.organizationRepo.Create(ctx, organization); err != nil {
		return nil, mapOrganizationRepoError(err)
	}
	return organization, nil
}

func (s *organizationService) GetOrganizationByID(ctx context.Context, id int) (*models.Organization, error) {
	organization, err := s.organizationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapOrganizationRepoError(err)
	}
	return organization, nil
}

func (s *organizationService) GetAllOrganizations(ctx context.Context) ([]models.Organization, error) {
	organizations, err := s.organizationRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return organizations, nil
}

func (s *organizationService) UpdateOrganization(ctx context.Context, id int, input OrganizationInput) (*models.Organization, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	organization := &models.Organization{ID: id, Name: name, ContactEmail: input.ContactEmail}
	if err := s.organizationRepo.Update(ctx, organization); err != nil {
		return nil, mapOrganizationRepoError(err)
	}
	return organization, nil
}

func (s *organizationService) DeleteOrganization(ctx context.Context, id int) error {
	if err := s.organizationRepo.Delete(ctx, id); err != nil {
		return mapOrganizationRepoError(err)
	}
	return nil
}

func mapOrganizationRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrOrganizationNotFound):
		return ErrOrganizationNotFound
	case errors.Is(err, repositories.ErrOrganizationNameConflict):
		return ErrOrganizationNameConflict
	case errors.Is(err, repositories.ErrOrganizationInUse):
		return ErrOrganizationInUse
	default:
		return fmt.Errorf("organization repository error: %w", err)
	}
}
