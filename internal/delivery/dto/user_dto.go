package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	CNIC             string          `json:"cnic" validate:"required,max=255"`
	Email            *string         `json:"email" validate:"omitempty,email,max=255"`
	Password         string          `json:"password" validate:"required,max=128"`
	Contact          string          `json:"contact" validate:"omitempty,max=255"`
	EmergencyContact string          `json:"emergency_contact" validate:"omitempty,max=255"`
	FirstName        string          `json:"first_name" validate:"omitempty,max=255"`
	MiddleName       string          `json:"middle_name" validate:"omitempty,max=255"`
	LastName         string          `json:"last_name" validate:"omitempty,max=255"`
	City             string          `json:"city" validate:"omitempty,max=255"`
	Country          string          `json:"country" validate:"omitempty,max=255"`
	Address          string          `json:"address" validate:"omitempty,max=255"`
	Gender           string          `json:"gender" validate:"omitempty,max=255"`
	Group            string          `json:"group" validate:"required,oneof=patient nurse doctor admin"`
	IsActive         *bool           `json:"is_active"`
	IsStaff          *bool           `json:"is_staff"`
	Role             json.RawMessage `json:"role"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Email            *string         `json:"email" validate:"omitempty,email,max=255"`
	Password         *string         `json:"password" validate:"omitempty,min=1,max=128"`
	Contact          *string         `json:"contact" validate:"omitempty,max=255"`
	EmergencyContact *string         `json:"emergency_contact" validate:"omitempty,max=255"`
	FirstName        *string         `json:"first_name" validate:"omitempty,max=255"`
	MiddleName       *string         `json:"middle_name" validate:"omitempty,max=255"`
	LastName         *string         `json:"last_name" validate:"omitempty,max=255"`
	City             *string         `json:"city" validate:"omitempty,max=255"`
	Country          *string         `json:"country" validate:"omitempty,max=255"`
	Address          *string         `json:"address" validate:"omitempty,max=255"`
	Gender           *string         `json:"gender" validate:"omitempty,max=255"`
	Group            *string         `json:"group"`
	IsActive         *bool           `json:"is_active"`
	IsStaff          *bool           `json:"is_staff"`
	Role             json.RawMessage `json:"role"`
}

// Response DTOs

// UserResponse carries the active role profile under "role", or null.
type UserResponse struct {
	ID               uuid.UUID   `json:"id"`
	CNIC             string      `json:"cnic"`
	Email            *string     `json:"email"`
	Contact          string      `json:"contact"`
	EmergencyContact string      `json:"emergency_contact"`
	FirstName        string      `json:"first_name"`
	MiddleName       string      `json:"middle_name"`
	LastName         string      `json:"last_name"`
	City             string      `json:"city"`
	Country          string      `json:"country"`
	Address          string      `json:"address"`
	Gender           string      `json:"gender"`
	Group            string      `json:"group"`
	IsActive         bool        `json:"is_active"`
	IsStaff          bool        `json:"is_staff"`
	Role             interface{} `json:"role"`
	LastLogin        *time.Time  `json:"last_login"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	CreatedBy        *uuid.UUID  `json:"created_by"`
	UpdatedBy        *uuid.UUID  `json:"updated_by"`
}
