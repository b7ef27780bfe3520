package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/soccerhub/backend/models"
	"github.com/soccerhub/backend/repositories"
	"github.com/soccerhub/backend/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	GetTeamsByDivision(ctx context.Context, divisionID int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	UploadTeamCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
}

type TeamInput struct {
	DivisionID int    `json:"division_id"`
	Name       string `json:"name"`
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{teamRepo: teamRepo, uploader: uploader, logger: logger}
}

func (s *teamService) CreateTeam(ctx context.Context, input TeamInput) (*models.Team, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	team := &models.Team{DivisionID: input.DivisionID, Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		populateTeamCrestURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) GetTeamsByDivision(ctx context.Context, divisionID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for division %d: %w", divisionID, err)
	}
	for i := range teams {
		populateTeamCrestURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	name, err := trimmedName(input.Name)
	if err != nil {
		return nil, err
	}
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}
	team.DivisionID = input.DivisionID
	team.Name = name
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, mapTeamRepoError(err)
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return mapTeamRepoError(err)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return mapTeamRepoError(err)
	}
	if team.CrestKey != nil && *team.CrestKey != "" && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.CrestKey); err != nil {
			// The database row is already gone, so only log the orphan.
			s.logger.Warn("failed to delete team crest object",
				slog.Int("team_id", id),
				slog.String("key", *team.CrestKey),
				slog.Any("error", err))
		}
	}
	return nil
}

// UploadTeamCrest stores a new crest image and replaces the previous one.
func (s *teamService) UploadTeamCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, errors.New("file uploads are not configured")
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTeamRepoError(err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("crests/team_%d_%d%s", id, time.Now().UnixNano(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload crest for team %d: %w", id, err)
	}

	oldKey := team.CrestKey
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &result.Key); err != nil {
		_ = s.uploader.Delete(ctx, result.Key)
		return nil, mapTeamRepoError(err)
	}
	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete replaced team crest object",
				slog.Int("team_id", id),
				slog.String("key", *oldKey),
				slog.Any("error", err))
		}
	}

	team.CrestKey = &result.Key
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func mapTeamRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamDivisionInvalid):
		return ErrDivisionNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamInUse):
		return ErrTeamInUse
	default:
		return fmt.Errorf("team repository error: %w", err)
	}
}
