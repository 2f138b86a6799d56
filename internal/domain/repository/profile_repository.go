package repository

import (
	"context"

	"hospital-records/internal/domain/entity"

	"gorm.io/gorm"
)

// ProfileRepository stores the role profile variants.
type ProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error
	Update(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error
	Delete(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error
}
