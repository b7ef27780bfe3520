package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	GetAllPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type PlayerInput struct {
	TeamID       int     `json:"team_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	JerseyNumber *int    `json:"jersey_number"`
	Position     *string `json:"position"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player, err := playerFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) GetAllPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) GetPlayersByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	player, err := playerFromInput(input)
	if err != nil {
		return nil, err
	}
	player.ID = id
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, mapPlayerRepoError(err)
	}
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return mapPlayerRepoError(err)
	}
	return nil
}

func playerFromInput(input PlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrNameRequired
	}
	return &models.Player{
		TeamID:       input.TeamID,
		FirstName:    firstName,
		LastName:     lastName,
		JerseyNumber: input.JerseyNumber,
		Position:     input.Position,
	}, nil
}

func mapPlayerRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return ErrTeamNotFound
	default:
		return fmt.Errorf("player repository error: %w", err)
	}
}
