package repository

import (
	"context"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository persists Actors. Finders return nil, nil when no row matches.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByCNIC(ctx context.Context, db *gorm.DB, cnic string) (*entity.User, error)
	// FindScoped returns the Actor only when it also matches filter.
	FindScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.UserFilter) (*entity.User, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	UpdateLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
