package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidEmail = errors.New("invalid email address")
)

// MembershipErrors
var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrInvalidStatus      = errors.New("invalid membership status")
	ErrStatusFinal        = errors.New("membership already reviewed")
)
