package repository

import (
	"context"
	"time"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthTokenRepository interface {
	Create(ctx context.Context, db *gorm.DB, token *entity.AuthToken) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.AuthToken, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.AuthToken, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}

// TokenCache fronts AuthTokenRepository for the per-request token lookup.
type TokenCache interface {
	Get(ctx context.Context, tokenID uuid.UUID) (userID uuid.UUID, ok bool, err error)
	Set(ctx context.Context, tokenID, userID uuid.UUID, expiresAt *time.Time) error
	Delete(ctx context.Context, tokenID uuid.UUID) error
}
