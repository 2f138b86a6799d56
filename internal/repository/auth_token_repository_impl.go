package repository

import (
	"context"
	"errors"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type authTokenRepository struct{}

func NewAuthTokenRepository() domainRepo.AuthTokenRepository {
	return &authTokenRepository{}
}

func (r *authTokenRepository) Create(ctx context.Context, db *gorm.DB, token *entity.AuthToken) error {
	return db.WithContext(ctx).Create(token).Error
}

func (r *authTokenRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.AuthToken{}).Error
}

func (r *authTokenRepository) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.AuthToken{}).Error
}
