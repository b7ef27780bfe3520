package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccerhub/backend/fixtures"
	"github.com/soccerhub/backend/models"
)

type divisionServiceFixture struct {
	svc          DivisionService
	matchRepo    *fakeMatchRepo
	standingRepo *fakeStandingRepo
	teamRepo     *fakeTeamRepo
	mock         sqlmock.Sqlmock
}

func newDivisionServiceFixture(t *testing.T, teamCount int) *divisionServiceFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	tournamentRepo := newFakeTournamentRepo(&models.Tournament{
		ID:        1,
		Name:      "Summer Cup",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 10),
		Status:    models.TournamentStatusActive,
	})
	divisionRepo := newFakeDivisionRepo(&models.Division{ID: 1, TournamentID: 1, Name: "Premier"})

	teamRepo := newFakeTeamRepo()
	for i := 1; i <= teamCount; i++ {
		teamRepo.teams[i] = &models.Team{ID: i, DivisionID: 1, Name: string(rune('A' + i - 1))}
	}

	venueRepo := newFakeVenueRepo(
		models.Venue{ID: 1, Name: "North Park"},
		models.Venue{ID: 2, Name: "South Arena"},
	)

	matchRepo := newFakeMatchRepo()
	standingRepo := newFakeStandingRepo()
	standings := NewStandingService(standingRepo, divisionRepo, teamRepo, nil)

	svc := NewDivisionService(db, divisionRepo, tournamentRepo, teamRepo, venueRepo,
		matchRepo, standingRepo, standings, NewDivisionLocker(), fixtures.NewHub(logger), logger)

	return &divisionServiceFixture{
		svc:          svc,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		teamRepo:     teamRepo,
		mock:         mock,
	}
}

func (f *divisionServiceFixture) expectTx(n int) {
	for i := 0; i < n; i++ {
		f.mock.ExpectBegin()
		f.mock.ExpectCommit()
	}
}

func TestGenerateScheduleFourTeams(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)
	f.expectTx(1)

	matches, err := f.svc.GenerateSchedule(context.Background(), 1)
	require.NoError(t, err)

	// 4 teams yield 3 rounds of 2 matches.
	require.Len(t, matches, 6)

	seen := make(map[[2]int]bool)
	for _, m := range matches {
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		assert.Nil(t, m.PlayoffRound)
		key := [2]int{m.HomeTeamID, m.AwayTeamID}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		assert.False(t, seen[key], "pair %v scheduled twice", key)
		seen[key] = true
	}
	assert.Len(t, seen, 6)

	// Rounds land on days 0, 5 and 10 of the window, two matches each.
	dates := make(map[time.Time]int)
	for _, m := range matches {
		dates[m.MatchDate]++
	}
	assert.Equal(t, map[time.Time]int{
		time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC):  2,
		time.Date(2026, 6, 6, 12, 0, 0, 0, time.UTC):  2,
		time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC): 2,
	}, dates)

	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGenerateScheduleCyclesVenues(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)
	f.expectTx(1)

	matches, err := f.svc.GenerateSchedule(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 6)

	// Two venues alternate across the whole fixture list.
	for i, m := range matches {
		require.NotNil(t, m.VenueID)
		assert.Equal(t, i%2+1, *m.VenueID, "match %d", i)
	}
}

func TestGenerateScheduleReplacesScheduledMatches(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)
	ctx := context.Background()
	f.expectTx(2)

	first, err := f.svc.GenerateSchedule(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 6)

	// A completed match must survive regeneration.
	completed := first[0]
	stored, err := f.matchRepo.GetByID(ctx, nil, completed.ID)
	require.NoError(t, err)
	stored.Status = models.MatchStatusCompleted
	require.NoError(t, f.matchRepo.Update(ctx, nil, stored))

	second, err := f.svc.GenerateSchedule(ctx, 1)
	require.NoError(t, err)
	require.Len(t, second, 6)

	all, err := f.matchRepo.ListByDivision(ctx, nil, 1)
	require.NoError(t, err)
	assert.Len(t, all, 7, "completed match kept, scheduled ones replaced")

	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGenerateScheduleRequiresTwoTeams(t *testing.T) {
	f := newDivisionServiceFixture(t, 1)

	_, err := f.svc.GenerateSchedule(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestGenerateScheduleUnknownDivision(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)

	_, err := f.svc.GenerateSchedule(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDivisionNotFound)
}

func TestGeneratePlayoffsSeedsTopFour(t *testing.T) {
	f := newDivisionServiceFixture(t, 5)
	ctx := context.Background()

	// Standings order: 30, 10, 50, 20, 40 by points.
	for i, teamID := range []int{30, 10, 50, 20, 40} {
		require.NoError(t, f.standingRepo.Create(ctx, nil, &models.Standing{
			DivisionID: 1,
			TeamID:     teamID,
			Points:     50 - i*10,
		}))
	}
	f.expectTx(1)

	matches, err := f.svc.GeneratePlayoffs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// 1v4 and 2v3 by table position.
	assert.Equal(t, 30, matches[0].HomeTeamID)
	assert.Equal(t, 20, matches[0].AwayTeamID)
	assert.Equal(t, 10, matches[1].HomeTeamID)
	assert.Equal(t, 50, matches[1].AwayTeamID)

	semifinalDate := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	for _, m := range matches {
		require.NotNil(t, m.PlayoffRound)
		assert.Equal(t, models.PlayoffRoundSemifinal, *m.PlayoffRound)
		assert.Equal(t, models.MatchStatusScheduled, m.Status)
		assert.Equal(t, semifinalDate, m.MatchDate)
	}

	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGeneratePlayoffsRequiresFourStandings(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)
	ctx := context.Background()

	for _, teamID := range []int{1, 2, 3} {
		require.NoError(t, f.standingRepo.Create(ctx, nil, &models.Standing{DivisionID: 1, TeamID: teamID}))
	}

	_, err := f.svc.GeneratePlayoffs(ctx, 1)
	assert.ErrorIs(t, err, ErrNotEnoughStandings)
}

func TestGeneratePlayoffsReplacesExistingBracket(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)
	ctx := context.Background()

	for i, teamID := range []int{1, 2, 3, 4} {
		require.NoError(t, f.standingRepo.Create(ctx, nil, &models.Standing{
			DivisionID: 1,
			TeamID:     teamID,
			Points:     40 - i*10,
		}))
	}
	f.expectTx(2)

	first, err := f.svc.GeneratePlayoffs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := f.svc.GeneratePlayoffs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, second, 2)

	semis, err := f.matchRepo.ListByDivisionAndPlayoffRound(ctx, nil, 1, models.PlayoffRoundSemifinal)
	require.NoError(t, err)
	assert.Len(t, semis, 2, "regeneration must not accumulate brackets")

	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestGetDivisionSummary(t *testing.T) {
	f := newDivisionServiceFixture(t, 4)
	ctx := context.Background()

	summary, err := f.svc.GetDivisionSummary(ctx, 1)
	require.NoError(t, err)

	require.NotNil(t, summary.Division)
	assert.Equal(t, "Premier", summary.Division.Name)
	assert.Len(t, summary.Teams, 4)
	assert.Empty(t, summary.Matches)
	assert.Empty(t, summary.Standings)
}
