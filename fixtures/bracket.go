package fixtures

import (
	"fmt"
	"time"
)

// semifinalSeeds is the number of standings rows a knockout bracket draws from.
const semifinalSeeds = 4

// SemifinalPairs seeds a four-team single-elimination bracket from team IDs
// ordered best-first: seed 1 hosts seed 4 and seed 2 hosts seed 3.
func SemifinalPairs(seededTeamIDs []int) ([]Pair, error) {
	if len(seededTeamIDs) < semifinalSeeds {
		return nil, fmt.Errorf("playoff seeding requires at least %d standings rows, got %d", semifinalSeeds, len(seededTeamIDs))
	}
	return []Pair{
		{HomeTeamID: seededTeamIDs[0], AwayTeamID: seededTeamIDs[3]},
		{HomeTeamID: seededTeamIDs[1], AwayTeamID: seededTeamIDs[2]},
	}, nil
}

// SemifinalDate is the shared kick-off for both semifinals: the day before the
// tournament ends, at noon. The final is played on the end date itself.
func SemifinalDate(tournamentEnd time.Time) time.Time {
	return atNoon(tournamentEnd.AddDate(0, 0, -1))
}

// FinalDate returns the final's kick-off on the tournament end date at noon.
func FinalDate(tournamentEnd time.Time) time.Time {
	return atNoon(tournamentEnd)
}

// Winner picks the advancing team of a completed bracket match. A level score
// advances the home side; there is no extra-time or shootout modelling.
func Winner(homeTeamID, awayTeamID, homeScore, awayScore int) int {
	if homeScore >= awayScore {
		return homeTeamID
	}
	return awayTeamID
}
