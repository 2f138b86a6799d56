package repository

import (
	"context"
	"errors"

	"hospital-records/internal/domain/entity"
	domainRepo "hospital-records/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordRepository[E any] struct{}

// NewRecordRepository serves the table of record kind E.
func NewRecordRepository[E any]() domainRepo.RecordRepository[E] {
	return &recordRepository[E]{}
}

// ApplyRecordFilter restricts a record query to the patient in filter unless it is unrestricted.
func ApplyRecordFilter(db *gorm.DB, filter entity.RecordFilter) *gorm.DB {
	if filter.Unrestricted {
		return db
	}
	return db.Where("patient_id = ?", filter.PatientID)
}

func (r *recordRepository[E]) Create(ctx context.Context, db *gorm.DB, record *E) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

func (r *recordRepository[E]) FindScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.RecordFilter) (*E, error) {
	var record E
	err := ApplyRecordFilter(db.WithContext(ctx), filter).
		Preload("Patient.Patient").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository[E]) FindAll(ctx context.Context, db *gorm.DB, filter entity.RecordFilter) ([]E, error) {
	var records []E
	err := ApplyRecordFilter(db.WithContext(ctx), filter).
		Preload("Patient.Patient").
		Order("created_at DESC").
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository[E]) Update(ctx context.Context, db *gorm.DB, record *E) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(record).Error
}

func (r *recordRepository[E]) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(new(E)).Error
}
