package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerhub/backend/models"
)

func newTestStandingService(t *testing.T) (StandingService, *fakeStandingRepo) {
	t.Helper()
	standingRepo := newFakeStandingRepo()
	divisionRepo := newFakeDivisionRepo(&models.Division{ID: 1, TournamentID: 1, Name: "Premier"})
	teamRepo := newFakeTeamRepo(
		&models.Team{ID: 10, DivisionID: 1, Name: "Reds"},
		&models.Team{ID: 20, DivisionID: 1, Name: "Blues"},
	)
	return NewStandingService(standingRepo, divisionRepo, teamRepo, nil), standingRepo
}

func TestApplyResultHomeWin(t *testing.T) {
	svc, repo := newTestStandingService(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyResult(ctx, nil, 1, 10, 20, 2, 1))

	home, err := repo.GetByDivisionAndTeam(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, home.Played)
	assert.Equal(t, 1, home.Won)
	assert.Equal(t, 0, home.Drawn)
	assert.Equal(t, 0, home.Lost)
	assert.Equal(t, 2, home.GoalsFor)
	assert.Equal(t, 1, home.GoalsAgainst)
	assert.Equal(t, 1, home.GoalDifference)
	assert.Equal(t, 3, home.Points)

	away, err := repo.GetByDivisionAndTeam(ctx, nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, away.Played)
	assert.Equal(t, 0, away.Won)
	assert.Equal(t, 1, away.Lost)
	assert.Equal(t, -1, away.GoalDifference)
	assert.Equal(t, 0, away.Points)
}

func TestApplyResultDraw(t *testing.T) {
	svc, repo := newTestStandingService(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyResult(ctx, nil, 1, 10, 20, 2, 2))

	for _, teamID := range []int{10, 20} {
		s, err := repo.GetByDivisionAndTeam(ctx, nil, 1, teamID)
		require.NoError(t, err)
		assert.Equal(t, 1, s.Drawn)
		assert.Equal(t, 1, s.Points)
		assert.Equal(t, 0, s.GoalDifference)
	}
}

func TestReverseRestoresPriorState(t *testing.T) {
	svc, repo := newTestStandingService(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyResult(ctx, nil, 1, 10, 20, 3, 0))
	require.NoError(t, svc.ReverseResult(ctx, nil, 1, 10, 20, 3, 0))

	for _, teamID := range []int{10, 20} {
		s, err := repo.GetByDivisionAndTeam(ctx, nil, 1, teamID)
		require.NoError(t, err)
		assert.Zero(t, s.Played)
		assert.Zero(t, s.Won)
		assert.Zero(t, s.Drawn)
		assert.Zero(t, s.Lost)
		assert.Zero(t, s.GoalsFor)
		assert.Zero(t, s.GoalsAgainst)
		assert.Zero(t, s.GoalDifference)
		assert.Zero(t, s.Points)
	}
}

func TestCorrectionEqualsSingleApplication(t *testing.T) {
	svc, repo := newTestStandingService(t)
	ctx := context.Background()

	// Record 2-0, then correct to 1-1 by reversing the old score first.
	require.NoError(t, svc.ApplyResult(ctx, nil, 1, 10, 20, 2, 0))
	require.NoError(t, svc.ReverseResult(ctx, nil, 1, 10, 20, 2, 0))
	require.NoError(t, svc.ApplyResult(ctx, nil, 1, 10, 20, 1, 1))

	home, err := repo.GetByDivisionAndTeam(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, home.Played)
	assert.Equal(t, 1, home.Drawn)
	assert.Equal(t, 1, home.GoalsFor)
	assert.Equal(t, 1, home.GoalsAgainst)
	assert.Equal(t, 1, home.Points)
}

func TestGetStandingsByDivisionUnknownDivision(t *testing.T) {
	svc, _ := newTestStandingService(t)

	_, err := svc.GetStandingsByDivision(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDivisionNotFound)
}

func TestGetStandingsByDivisionLinksTeams(t *testing.T) {
	svc, _ := newTestStandingService(t)
	ctx := context.Background()

	require.NoError(t, svc.ApplyResult(ctx, nil, 1, 10, 20, 1, 0))

	standings, err := svc.GetStandingsByDivision(ctx, 1)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	// Winner first, and each row carries its team.
	assert.Equal(t, 10, standings[0].TeamID)
	require.NotNil(t, standings[0].Team)
	assert.Equal(t, "Reds", standings[0].Team.Name)
	assert.Equal(t, 20, standings[1].TeamID)
}

func TestResultDeltas(t *testing.T) {
	home, away := resultDeltas(4, 1)
	assert.Equal(t, standingDelta{won: 1, goalsFor: 4, goalsAgainst: 1, points: 3}, home)
	assert.Equal(t, standingDelta{lost: 1, goalsFor: 1, goalsAgainst: 4}, away)

	home, away = resultDeltas(0, 0)
	assert.Equal(t, standingDelta{drawn: 1, points: 1}, home)
	assert.Equal(t, standingDelta{drawn: 1, points: 1}, away)
}
