package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflicting state")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Guard failures that map to their own response codes.
var (
	ErrLeagueNotPublic    = errors.New("league is not open for joining")
	ErrDeadlinePassed     = errors.New("registration deadline has passed")
	ErrInvalidTransition  = errors.New("status transition is not allowed")
	ErrPreconditionFailed = errors.New("operation precondition not met")
	ErrGenerationFailed   = errors.New("fixture generation failed")
)
