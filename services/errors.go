package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed          = errors.New("validation failed")
	ErrPasswordTooShort          = errors.New("password is too short")
	ErrNicknameRequired          = errors.New("nickname is required")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrNewsTitleRequired         = errors.New("news title is required")
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentInvalidWindow   = errors.New("tournament end time must be after start time")
	ErrPlayerNicknameRequired    = errors.New("player nickname is required")
	ErrCampaignInvalidWindow     = errors.New("campaign end time must be after start time")
	ErrCampaignInvalidSchema     = errors.New("campaign field schema is invalid")
	ErrPredictionInvalid         = errors.New("prediction responses failed validation")
	ErrPredictionUsernameMissing = errors.New("username and twitch id are required")
	ErrInvalidRole               = errors.New("role must be admin or user")

	// Conflicts
	ErrUserEmailConflict       = errors.New("email address is already in use")
	ErrPlayerNicknameConflict  = errors.New("player nickname is already in use")
	ErrTournamentNameConflict  = errors.New("tournament name already exists")
	ErrTournamentInUse         = errors.New("tournament has prediction campaigns attached")
	ErrCampaignOverlap         = errors.New("an overlapping campaign already exists for this tournament")
	ErrSubscriberEmailConflict = errors.New("email is already subscribed")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrCampaignNotActive      = errors.New("campaign is not accepting submissions")

	// Entity-specific not-found (more context than the generic one)
	ErrUserNotFound       = errors.New("user not found")
	ErrNewsNotFound       = errors.New("news item not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrCampaignNotFound   = errors.New("prediction campaign not found")
	ErrPredictionNotFound = errors.New("prediction not found")
	ErrSubscriberNotFound = errors.New("newsletter subscriber not found")

	// Upload errors
	ErrInvalidImageType = errors.New("unsupported image content type")
)

// ValidationError carries per-field problems from schema or form validation.
// It wraps ErrPredictionInvalid / ErrCampaignInvalidSchema so errors.Is keeps
// working at the HTTP mapping layer.
type ValidationError struct {
	Base     error
	Problems map[string]string
}

func (e *ValidationError) Error() string { return e.Base.Error() }
func (e *ValidationError) Unwrap() error { return e.Base }
