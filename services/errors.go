package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Lookups
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrGroupNotFound = errors.New("record group has no members")

	// Validation and business rules
	ErrTeamNameRequired    = errors.New("both team names are required")
	ErrTeamNameEmpty       = errors.New("team name is required")
	ErrTeamNameConflict    = errors.New("team name already registered")
	ErrSameTeam            = errors.New("a team cannot be matched against itself")
	ErrInvalidRound        = errors.New("round must be at least 1")
	ErrInvalidRecord       = errors.New("malformed record, want \"wins-losses\"")
	ErrInvalidProbability  = errors.New("win probabilities must be between 0 and 1")
	ErrOddGroup            = errors.New("record group has an odd number of members")
	ErrEnumerationTooLarge = errors.New("group or impact-match set exceeds the enumeration bound")
	ErrMatchAlreadyDecided = errors.New("match already has a recorded result")
	ErrWinnerNotInMatch    = errors.New("winner is not part of the match")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid admin credentials")

	// Feature availability
	ErrSnapshotsDisabled = errors.New("snapshot storage is not configured")
)
