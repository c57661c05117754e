package domain

import "github.com/theEquinoxDev/LocalLoop/pkg/apperr"

// Sentinel errors for the user domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = apperr.New(apperr.NotFound, "User not found")

	// ErrUserAlreadyExists indicates the email is already registered.
	ErrUserAlreadyExists = apperr.New(apperr.Conflict, "User already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.Unauthenticated, "Invalid credentials")

	// ErrInvalidUser indicates missing or malformed registration fields.
	ErrInvalidUser = apperr.New(apperr.Validation, "All fields are required")

	// ErrUnknownReward indicates a reward reason with no point award.
	ErrUnknownReward = apperr.New(apperr.Validation, "Unknown reward reason")
)
