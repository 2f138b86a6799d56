package dto

import (
	"time"
)

// Request DTOs

type LoginRequest struct {
	CNIC     string `json:"cnic" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
