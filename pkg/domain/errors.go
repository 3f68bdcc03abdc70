package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned when a caller exceeded its request quota
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrUpstreamUnavailable is returned when an external provider failed or timed out
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
