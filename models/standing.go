package models

import "time"

// Standing is the accumulated record of one team within one division.
// The (division_id, team_id) pair is unique; rows are created lazily on the
// first result that touches the team and are never deleted by result edits.
type Standing struct {
	ID             int       `json:"id" db:"id"`
	DivisionID     int       `json:"division_id" db:"division_id"`
	TeamID         int       `json:"team_id" db:"team_id"`
	Played         int       `json:"played" db:"played"`
	Won            int       `json:"won" db:"won"`
	Drawn          int       `json:"drawn" db:"drawn"`
	Lost           int       `json:"lost" db:"lost"`
	GoalsFor       int       `json:"goals_for" db:"goals_for"`
	GoalsAgainst   int       `json:"goals_against" db:"goals_against"`
	GoalDifference int       `json:"goal_difference" db:"goal_difference"`
	Points         int       `json:"points" db:"points"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// Optional linked data, populated by the service layer.
	Team *Team `json:"team,omitempty" db:"-"`
}
