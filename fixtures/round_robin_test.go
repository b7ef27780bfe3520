package fixtures

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundsRejectsTooFewTeams(t *testing.T) {
	_, err := Rounds(nil)
	require.Error(t, err)

	_, err = Rounds([]int{7})
	require.Error(t, err)
}

func TestRoundsEvenTeamCount(t *testing.T) {
	rounds, err := Rounds([]int{1, 2, 3, 4})
	require.NoError(t, err)

	require.Len(t, rounds, 3)
	for _, round := range rounds {
		assert.Len(t, round, 2)
	}

	assert.Equal(t, []Pair{{1, 4}, {2, 3}}, rounds[0])
	assert.Equal(t, []Pair{{1, 3}, {4, 2}}, rounds[1])
}

func TestRoundsOddTeamCountAddsByeRound(t *testing.T) {
	rounds, err := Rounds([]int{10, 20, 30, 40, 50})
	require.NoError(t, err)

	// 5 teams pad to 6 slots, so 5 rounds with one team idle per round.
	require.Len(t, rounds, 5)
	for _, round := range rounds {
		assert.Len(t, round, 2)
	}
}

func TestRoundsEveryPairExactlyOnce(t *testing.T) {
	for _, teamCount := range []int{2, 3, 4, 5, 6, 7, 8, 11} {
		t.Run(fmt.Sprintf("%d_teams", teamCount), func(t *testing.T) {
			teamIDs := make([]int, teamCount)
			for i := range teamIDs {
				teamIDs[i] = i + 1
			}

			rounds, err := Rounds(teamIDs)
			require.NoError(t, err)

			seen := make(map[[2]int]int)
			for _, round := range rounds {
				inRound := make(map[int]bool)
				for _, pair := range round {
					assert.NotEqual(t, pair.HomeTeamID, pair.AwayTeamID)
					assert.False(t, inRound[pair.HomeTeamID], "team %d plays twice in one round", pair.HomeTeamID)
					assert.False(t, inRound[pair.AwayTeamID], "team %d plays twice in one round", pair.AwayTeamID)
					inRound[pair.HomeTeamID] = true
					inRound[pair.AwayTeamID] = true

					key := [2]int{pair.HomeTeamID, pair.AwayTeamID}
					if key[0] > key[1] {
						key[0], key[1] = key[1], key[0]
					}
					seen[key]++
				}
			}

			assert.Len(t, seen, teamCount*(teamCount-1)/2)
			for key, count := range seen {
				assert.Equal(t, 1, count, "pair %v scheduled %d times", key, count)
			}
		})
	}
}

func TestRoundDateSpreadsRoundsAcrossWindow(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)

	// 3 rounds over a 10-day window land on days 0, 5 and 10.
	first := RoundDate(start, end, 0, 3)
	middle := RoundDate(start, end, 1, 3)
	last := RoundDate(start, end, 2, 3)

	assert.Equal(t, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2026, 6, 6, 12, 0, 0, 0, time.UTC), middle)
	assert.Equal(t, time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC), last)
}

func TestRoundDateSingleRoundUsesStartDate(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	got := RoundDate(start, end, 0, 1)
	assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), got)
}

func TestRoundDateNeverLeavesWindow(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	totalRounds := 5
	for r := 0; r < totalRounds; r++ {
		date := RoundDate(start, end, r, totalRounds)
		assert.False(t, date.Before(start), "round %d before window", r)
		assert.False(t, date.After(end.AddDate(0, 0, 1)), "round %d after window", r)
	}
}
