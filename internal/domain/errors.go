package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Ride command errors
	ErrMsgRideNotFound     = "ride not found"
	ErrMsgRideCompleted    = "ride already completed"
	ErrMsgMissingParameter = "missing required parameter"
	ErrMsgRideNotOwned     = "ride does not belong to user"

	// User errors
	ErrMsgUserNotFound = "user not found"

	// Validation errors
	ErrMsgInvalidTransitType = "invalid transit type"
	ErrMsgInvalidWindow      = "invalid time window"
	ErrMsgInvalidMode        = "invalid transit mode"
	ErrMsgInvalidCategory    = "invalid leaderboard category"
	ErrMsgNegativeDistance   = "distance must not be negative"
	ErrMsgNegativeDuration   = "duration must not be negative"

	// Achievement errors
	ErrMsgUnknownAchievement = "unknown achievement id"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// Ride command errors
	ErrRideNotFound     = errors.New(ErrMsgRideNotFound)
	ErrRideCompleted    = errors.New(ErrMsgRideCompleted)
	ErrMissingParameter = errors.New(ErrMsgMissingParameter)
	ErrRideNotOwned     = errors.New(ErrMsgRideNotOwned)

	// User errors
	ErrUserNotFound = errors.New(ErrMsgUserNotFound)

	// Validation errors
	ErrInvalidTransitType = errors.New(ErrMsgInvalidTransitType)
	ErrInvalidWindow      = errors.New(ErrMsgInvalidWindow)
	ErrInvalidMode        = errors.New(ErrMsgInvalidMode)
	ErrInvalidCategory    = errors.New(ErrMsgInvalidCategory)
	ErrNegativeDistance   = errors.New(ErrMsgNegativeDistance)
	ErrNegativeDuration   = errors.New(ErrMsgNegativeDuration)

	// Achievement errors
	ErrUnknownAchievement = errors.New(ErrMsgUnknownAchievement)
)
