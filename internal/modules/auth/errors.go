package auth

import "recipemarket/internal/domain"

var (
	ErrInvalidCredentials = domain.NewError(domain.ErrUnauthenticated, "INVALID_CREDENTIALS", "Invalid email or password")
	ErrEmailAlreadyExists = domain.NewError(domain.ErrConflict, "EMAIL_EXISTS", "This email is already registered")
	ErrProfileNotFound    = domain.NewError(domain.ErrNotFound, "PROFILE_NOT_FOUND", "Profile not found")
)
