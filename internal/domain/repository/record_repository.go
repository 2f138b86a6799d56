package repository

import (
	"context"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecordRepository is implemented once for every clinical record kind.
type RecordRepository[E any] interface {
	Create(ctx context.Context, db *gorm.DB, record *E) error
	FindScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.RecordFilter) (*E, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.RecordFilter) ([]E, error)
	Update(ctx context.Context, db *gorm.DB, record *E) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
