package repository

import (
	"context"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"

	"gorm.io/gorm"
)

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

// Create assigns the profile its ID; callers attach it to the Actor afterwards.
func (r *profileRepository) Create(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error {
	return db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) Delete(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error {
	return db.WithContext(ctx).Delete(profile).Error
}
