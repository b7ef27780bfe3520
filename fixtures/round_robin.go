package fixtures

import (
	"fmt"
	"math"
	"time"
)

// Pair is a single home/away pairing within a round. Home and away sides are
// determined purely by slot position in the rotation; no balancing is attempted.
type Pair struct {
	HomeTeamID int `json:"home_team_id"`
	AwayTeamID int `json:"away_team_id"`
}

// byeSlot marks the synthetic team inserted when the team count is odd.
// Pairings touching it are dropped from their round.
const byeSlot = -1

// Rounds builds a full single round-robin schedule for the given team IDs
// using the circle method: the first slot stays fixed while the remaining
// slots rotate one position between rounds. Every unordered team pair appears
// exactly once across all rounds. An even team count n yields n-1 rounds; an
// odd count yields n rounds (each team sits out once via the bye slot).
func Rounds(teamIDs []int) ([][]Pair, error) {
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("round-robin requires at least 2 teams, got %d", len(teamIDs))
	}

	slots := make([]int, 0, len(teamIDs)+1)
	slots = append(slots, teamIDs...)
	if len(slots)%2 != 0 {
		slots = append(slots, byeSlot)
	}

	totalRounds := len(slots) - 1
	rounds := make([][]Pair, totalRounds)
	for r := 0; r < totalRounds; r++ {
		rounds[r] = PairsForRound(slots, r)
	}
	return rounds, nil
}

// PairsForRound computes the pairings of round r directly from the slot array.
// The rotation is a pure function of the round index, so rounds can be
// produced independently and in any order. The slot array must have even
// length (pad odd team counts with byeSlot).
func PairsForRound(slots []int, round int) []Pair {
	n := len(slots)
	pairs := make([]Pair, 0, n/2)
	for i := 0; i < n/2; i++ {
		home := slots[slotAt(i, round, n)]
		away := slots[slotAt(n-1-i, round, n)]
		if home == byeSlot || away == byeSlot {
			continue
		}
		pairs = append(pairs, Pair{HomeTeamID: home, AwayTeamID: away})
	}
	return pairs
}

// slotAt maps a rotation position to an index into the original slot array
// for the given round. Position 0 is pinned; the classic rotation moves the
// last element into position 1 each round, which after r rounds leaves
// position p holding original index 1 + ((p-1-r) mod (n-1)).
func slotAt(pos, round, n int) int {
	if pos == 0 {
		return 0
	}
	m := n - 1
	return 1 + (((pos-1-round)%m)+m)%m
}

// RoundDate places round r (0-based) on the tournament calendar: rounds are
// spread linearly across the inclusive start..end window and kick off at noon.
// A single-round schedule lands on the start date.
func RoundDate(start, end time.Time, round, totalRounds int) time.Time {
	day := atNoon(start)
	if totalRounds > 1 {
		totalDays := int(end.Sub(start).Hours() / 24)
		step := float64(totalDays) / float64(totalRounds-1)
		offset := int(math.Round(step * float64(round)))
		day = day.AddDate(0, 0, offset)
	}
	return day
}

func atNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}
