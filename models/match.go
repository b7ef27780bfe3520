package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "SCHEDULED"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
	MatchStatusPostponed  MatchStatus = "POSTPONED"
	MatchStatusCancelled  MatchStatus = "CANCELLED"
)

// PlayoffRound distinguishes bracket fixtures from regular-season ones.
// A league match carries no round at all.
type PlayoffRound string

const (
	PlayoffRoundSemifinal PlayoffRound = "SEMIFINAL"
	PlayoffRoundFinal     PlayoffRound = "FINAL"
)

type Match struct {
	ID           int           `json:"id" db:"id"`
	DivisionID   int           `json:"division_id" db:"division_id"`
	HomeTeamID   int           `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int           `json:"away_team_id" db:"away_team_id"`
	VenueID      *int          `json:"venue_id,omitempty" db:"venue_id"`
	MatchDate    time.Time     `json:"match_date" db:"match_date"`
	HomeScore    *int          `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int          `json:"away_score,omitempty" db:"away_score"`
	Status       MatchStatus   `json:"status" db:"status"`
	PlayoffRound *PlayoffRound `json:"playoff_round,omitempty" db:"playoff_round"`
	RefereeID    *int          `json:"referee_id,omitempty" db:"referee_id"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// IsPlayoff reports whether the match belongs to the knockout bracket.
func (m *Match) IsPlayoff() bool {
	return m.PlayoffRound != nil
}

// HasResult reports whether both scores have been recorded.
func (m *Match) HasResult() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}
