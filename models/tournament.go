package models

import "time"

type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "UPCOMING"
	TournamentStatusActive    TournamentStatus = "ACTIVE"
	TournamentStatusCompleted TournamentStatus = "COMPLETED"
	TournamentStatusCancelled TournamentStatus = "CANCELLED"
)

// Tournament dates form an inclusive window; EndDate must not precede StartDate.
type Tournament struct {
	ID             int              `json:"id" db:"id"`
	OrganizationID int              `json:"organization_id" db:"organization_id"`
	Name           string           `json:"name" db:"name"`
	StartDate      time.Time        `json:"start_date" db:"start_date"`
	EndDate        time.Time        `json:"end_date" db:"end_date"`
	Status         TournamentStatus `json:"status" db:"status"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}
