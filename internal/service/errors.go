package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business errors surfaced to the API layer. Validation, bounds, duplicate,
// not-found and unauthorized errors always propagate to the caller; nothing
// in the engine is fatal to the process.
var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrBoxNotFound      = errors.New("facility box not found")
	ErrVariableNotFound = errors.New("facility variable not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrUnauthorized     = errors.New("unauthorized access")

	// ErrUnconfigured means the deployment is missing its admin secret.
	// Operational error, not a caller error.
	ErrUnconfigured = errors.New("admin functionality not configured")
)

// DuplicateNameError reports a case-insensitive name conflict and names the
// conflicting record so a caller can choose to update instead of create.
type DuplicateNameError struct {
	Name       string
	ConflictID primitive.ObjectID
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a facility named %q already exists (ID: %s)", e.Name, e.ConflictID.Hex())
}

// ValidationError reports a bad shape, enum or reference in the input.
// The offending field is always named.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
