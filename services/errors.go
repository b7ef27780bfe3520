package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Not-found errors (mapped to 404).
	ErrNotFound             = errors.New("requested resource not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrDivisionNotFound     = errors.New("division not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrMatchNotFound        = errors.New("match not found")

	// Validation and business-rule errors (mapped to 400).
	ErrValidationFailed           = errors.New("validation failed")
	ErrNameRequired               = errors.New("name is required")
	ErrTournamentDatesRequired    = errors.New("tournament start and end dates are required")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be on or after the start date")
	ErrTournamentInvalidStatus    = errors.New("invalid tournament status provided")
	ErrMatchSameTeam              = errors.New("home team and away team cannot be the same")
	ErrMatchScoresRequired        = errors.New("both home and away scores are required")
	ErrNotEnoughTeams             = errors.New("division must have at least 2 teams to generate a schedule")
	ErrNotEnoughStandings         = errors.New("division must have at least 4 teams in standings to generate playoffs")

	// Conflicts (mapped to 409).
	ErrOrganizationNameConflict = errors.New("organization name already exists")
	ErrTournamentNameConflict   = errors.New("tournament name already exists")
	ErrTeamNameConflict         = errors.New("team name already exists in this division")
	ErrOrganizationInUse        = errors.New("organization has tournaments and cannot be deleted")
	ErrTournamentInUse          = errors.New("tournament has divisions and cannot be deleted")
	ErrDivisionInUse            = errors.New("division has teams or matches and cannot be deleted")
	ErrTeamInUse                = errors.New("team has players or matches and cannot be deleted")
	ErrVenueInUse               = errors.New("venue is assigned to matches and cannot be deleted")

	// Authentication (mapped to 401/409).
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrAuthUsernameTaken      = errors.New("username is already taken")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
)
