package auth

import (
	"time"

	"recipemarket/internal/domain"
)

type RegisterClientRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Location string `json:"location,omitempty" validate:"max=200"`
}

type RegisterCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Location    string `json:"location,omitempty" validate:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileResponse is the public view of a client or company.
type ProfileResponse struct {
	ID           int64       `json:"id"`
	Role         domain.Role `json:"role"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	Location     *string     `json:"location"`
	RegisteredAt time.Time   `json:"registered_at"`
}

func ClientProfile(c *domain.Client) ProfileResponse {
	return ProfileResponse{
		ID:           c.ID,
		Role:         domain.RoleClient,
		Email:        c.Email,
		Name:         c.Name,
		Location:     optional(c.Location),
		RegisteredAt: c.RegisteredAt,
	}
}

func CompanyProfile(c *domain.Company) ProfileResponse {
	return ProfileResponse{
		ID:           c.ID,
		Role:         domain.RoleCompany,
		Email:        c.Email,
		Name:         c.Name,
		Description:  optional(c.Description),
		Location:     optional(c.Location),
		RegisteredAt: c.RegisteredAt,
	}
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// AuthResponse is returned by registration and login.
type AuthResponse struct {
	User  ProfileResponse `json:"user"`
	Token string          `json:"token"`
}
