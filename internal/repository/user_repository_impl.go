package repository

import (
	"context"
	"errors"
	"time"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

// withProfiles preloads every profile variant; only the one matching the group is ever set.
func withProfiles(db *gorm.DB) *gorm.DB {
	return db.Preload("Patient").Preload("Nurse").Preload("Doctor").Preload("Admin")
}

// ApplyUserFilter translates a scope into WHERE clauses on the users table.
func ApplyUserFilter(db *gorm.DB, filter entity.UserFilter) *gorm.DB {
	if filter.OnlySelf {
		db = db.Where("users.id = ?", filter.SelfID)
	}
	if filter.OnlyGroup != "" {
		db = db.Where("users.user_group = ?", filter.OnlyGroup)
	}
	if filter.Unrestricted {
		return db
	}

	visible := db.Session(&gorm.Session{NewDB: true}).Where("users.id = ?", filter.SelfID)
	if filter.IncludePatients {
		visible = visible.Or("users.patient_id IS NOT NULL")
	}
	if filter.IncludeNurses {
		visible = visible.Or("users.nurse_id IS NOT NULL")
	}
	return db.Where(visible)
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := withProfiles(db.WithContext(ctx)).Where("users.id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByCNIC(ctx context.Context, db *gorm.DB, cnic string) (*entity.User, error) {
	var user entity.User
	err := db.WithContext(ctx).Where("cnic = ?", cnic).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.UserFilter) (*entity.User, error) {
	var user entity.User
	query := ApplyUserFilter(db.WithContext(ctx), filter).Where("users.id = ?", id)
	err := withProfiles(query).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, error) {
	var users []entity.User
	query := ApplyUserFilter(db.WithContext(ctx), filter)
	err := withProfiles(query).Order("users.created_at DESC").Order("users.id").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).UpdateColumn("last_login", time.Now()).Error
}

func (r *userRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{}).Error
}
