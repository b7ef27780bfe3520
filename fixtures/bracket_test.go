package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemifinalPairsSeeding(t *testing.T) {
	pairs, err := SemifinalPairs([]int{11, 22, 33, 44})
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{HomeTeamID: 11, AwayTeamID: 44},
		{HomeTeamID: 22, AwayTeamID: 33},
	}, pairs)
}

func TestSemifinalPairsIgnoresExtraSeeds(t *testing.T) {
	pairs, err := SemifinalPairs([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	// Only the top four take part.
	assert.Equal(t, []Pair{{1, 4}, {2, 3}}, pairs)
}

func TestSemifinalPairsRequiresFourSeeds(t *testing.T) {
	_, err := SemifinalPairs([]int{1, 2, 3})
	require.Error(t, err)
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name                 string
		homeScore, awayScore int
		want                 int
	}{
		{"home win", 3, 1, 100},
		{"away win", 0, 2, 200},
		{"draw advances home side", 1, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Winner(100, 200, tt.homeScore, tt.awayScore))
		})
	}
}

func TestBracketDates(t *testing.T) {
	end := time.Date(2026, 7, 20, 18, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 7, 19, 12, 0, 0, 0, time.UTC), SemifinalDate(end))
	assert.Equal(t, time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC), FinalDate(end))
}
