package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken binds one bearer token to one Actor.
// ID doubles as the token's jti claim.
type AuthToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Key       string     `gorm:"type:text;uniqueIndex;not null" json:"-"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}

// Expired reports whether the token has an expiry at or before now.
func (t *AuthToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
