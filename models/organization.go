package models

type Organization struct {
	ID           int     `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	ContactEmail *string `json:"contact_email,omitempty" db:"contact_email"`
}
