package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerhub/backend/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func timePtr(v time.Time) *time.Time { return &v }

func TestCreateTournamentValidation(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), discardLogger())
	ctx := context.Background()
	now := time.Now()

	_, err := svc.CreateTournament(ctx, TournamentInput{Name: "  ", StartDate: timePtr(now), EndDate: timePtr(now)})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.CreateTournament(ctx, TournamentInput{Name: "Cup"})
	assert.ErrorIs(t, err, ErrTournamentDatesRequired)

	_, err = svc.CreateTournament(ctx, TournamentInput{
		Name:      "Cup",
		StartDate: timePtr(now),
		EndDate:   timePtr(now.AddDate(0, 0, -1)),
	})
	assert.ErrorIs(t, err, ErrTournamentInvalidDateRange)
}

func TestCreateTournamentStartsUpcoming(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), discardLogger())
	now := time.Now()

	tournament, err := svc.CreateTournament(context.Background(), TournamentInput{
		OrganizationID: 1,
		Name:           "Spring League",
		StartDate:      timePtr(now.AddDate(0, 0, 7)),
		EndDate:        timePtr(now.AddDate(0, 0, 30)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TournamentStatusUpcoming, tournament.Status)
}

func TestUpdateTournamentStatusRejectsUnknownValue(t *testing.T) {
	svc := NewTournamentService(newFakeTournamentRepo(), discardLogger())

	err := svc.UpdateTournamentStatus(context.Background(), 1, models.TournamentStatus("PAUSED"))
	assert.ErrorIs(t, err, ErrTournamentInvalidStatus)
}

func TestAutoUpdateTournamentStatusesByDates(t *testing.T) {
	now := time.Now()
	repo := newFakeTournamentRepo(
		&models.Tournament{
			ID:        1,
			Name:      "started yesterday",
			StartDate: now.AddDate(0, 0, -1),
			EndDate:   now.AddDate(0, 0, 5),
			Status:    models.TournamentStatusUpcoming,
		},
		&models.Tournament{
			ID:        2,
			Name:      "ended last week",
			StartDate: now.AddDate(0, 0, -14),
			EndDate:   now.AddDate(0, 0, -7),
			Status:    models.TournamentStatusActive,
		},
		&models.Tournament{
			ID:        3,
			Name:      "starts next month",
			StartDate: now.AddDate(0, 1, 0),
			EndDate:   now.AddDate(0, 2, 0),
			Status:    models.TournamentStatusUpcoming,
		},
		&models.Tournament{
			ID:        4,
			Name:      "cancelled",
			StartDate: now.AddDate(0, 0, -1),
			EndDate:   now.AddDate(0, 0, 5),
			Status:    models.TournamentStatusCancelled,
		},
	)
	svc := NewTournamentService(repo, discardLogger())

	require.NoError(t, svc.AutoUpdateTournamentStatusesByDates(context.Background()))

	started, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, models.TournamentStatusActive, started.Status)

	ended, _ := repo.GetByID(context.Background(), 2)
	assert.Equal(t, models.TournamentStatusCompleted, ended.Status)

	future, _ := repo.GetByID(context.Background(), 3)
	assert.Equal(t, models.TournamentStatusUpcoming, future.Status)

	cancelled, _ := repo.GetByID(context.Background(), 4)
	assert.Equal(t, models.TournamentStatusCancelled, cancelled.Status)
}
