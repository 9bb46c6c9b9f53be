package dto

import (
	"time"
)

// Request DTOs

type SignupRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=6"`
	FullName          string `json:"full_name" validate:"required,min=2"`
	Phone             string `json:"phone" validate:"omitempty,min=6,max=20"`
	PreferredLanguage string `json:"preferred_language" validate:"omitempty,max=16"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SessionResponse answers signup and login. The profile fields are what a
// caller UI needs to greet the user and pick the speech language.
type SessionResponse struct {
	TokenResponse
	FullName          string        `json:"full_name"`
	Role              string        `json:"role"`
	PreferredLanguage string        `json:"preferred_language"`
	User              *UserResponse `json:"user"`
}

type UserResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone,omitempty"`
	PreferredLanguage string     `json:"preferred_language,omitempty"`
	Role              string     `json:"role"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
