package models

type Venue struct {
	ID       int     `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Address  *string `json:"address,omitempty" db:"address"`
	City     *string `json:"city,omitempty" db:"city"`
	Capacity *int    `json:"capacity,omitempty" db:"capacity"`
}
