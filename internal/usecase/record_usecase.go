package usecase

import (
	"context"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/database"
	"hospital-records/internal/policy"
	"hospital-records/internal/service"
	"hospital-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RecordUsecase is the CRUD surface shared by every clinical record kind.
// P is the record pointer type and R its response DTO.
type RecordUsecase[P any, R any] interface {
	List(ctx context.Context, actor *entity.User) ([]R, error)
	Get(ctx context.Context, actor *entity.User, id uuid.UUID) (R, error)
	Create(ctx context.Context, actor *entity.User, req dto.RecordCreateRequest[P]) (R, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req dto.RecordUpdateRequest[P]) (R, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type recordUsecase[E any, P entity.RecordPtr[E], R any] struct {
	db           database.Transactor
	log          *logrus.Logger
	recordRepo   repository.RecordRepository[E]
	userRepo     repository.UserRepository
	auditService service.AuditService
	validator    *validator.CustomValidator
	entityName   string
	toResponse   func(P) R
}

// NewRecordUsecase wires the CRUD surface for record kind E. entityName
// prefixes audit actions, e.g. "visit.create".
func NewRecordUsecase[E any, P entity.RecordPtr[E], R any](
	db database.Transactor,
	log *logrus.Logger,
	recordRepo repository.RecordRepository[E],
	userRepo repository.UserRepository,
	auditService service.AuditService,
	validator *validator.CustomValidator,
	entityName string,
	toResponse func(P) R,
) RecordUsecase[P, R] {
	return &recordUsecase[E, P, R]{
		db:           db,
		log:          log,
		recordRepo:   recordRepo,
		userRepo:     userRepo,
		auditService: auditService,
		validator:    validator,
		entityName:   entityName,
		toResponse:   toResponse,
	}
}

func (u *recordUsecase[E, P, R]) List(ctx context.Context, actor *entity.User) ([]R, error) {
	records, err := u.recordRepo.FindAll(ctx, u.db.DB(ctx), policy.RecordScope(actor))
	if err != nil {
		u.log.Warnf("Failed to find %s records: %+v", u.entityName, err)
		return nil, err
	}

	responses := make([]R, len(records))
	for i := range records {
		responses[i] = u.toResponse(P(&records[i]))
	}
	return responses, nil
}

func (u *recordUsecase[E, P, R]) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (R, error) {
	var zero R

	record, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return zero, err
	}
	return u.toResponse(record), nil
}

func (u *recordUsecase[E, P, R]) findVisible(ctx context.Context, actor *entity.User, id uuid.UUID) (P, error) {
	record, err := u.recordRepo.FindScoped(ctx, u.db.DB(ctx), id, policy.RecordScope(actor))
	if err != nil {
		u.log.Warnf("Failed to find %s record: %+v", u.entityName, err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return P(record), nil
}

func (u *recordUsecase[E, P, R]) Create(ctx context.Context, actor *entity.User, req dto.RecordCreateRequest[P]) (R, error) {
	var zero R

	patientID := req.PatientRef()
	if patientID == uuid.Nil {
		return zero, NewValidationError("patient", "patient is required")
	}
	if !policy.CanCreateRecord(actor, patientID) {
		return zero, ErrForbidden
	}

	patient, err := u.userRepo.FindByID(ctx, u.db.DB(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return zero, err
	}
	if patient == nil || !patient.IsPatient() {
		return zero, NewValidationError("patient", "patient does not exist or is not a patient")
	}

	record := req.NewRecord()
	record.SetPatientID(patientID)
	record.StampCreated(actor.ID)

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := u.recordRepo.Create(ctx, tx, record); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, &actor.ID, u.entityName, record.GetID().String(), u.toResponse(record))
	})
	if err != nil {
		u.log.Warnf("Failed to create %s record: %+v", u.entityName, err)
		return zero, err
	}

	created, err := u.recordRepo.FindScoped(ctx, u.db.DB(ctx), record.GetID(), entity.RecordFilter{Unrestricted: true})
	if err != nil {
		u.log.Warnf("Failed to reload %s record: %+v", u.entityName, err)
		return zero, err
	}
	if created == nil {
		return u.toResponse(record), nil
	}
	return u.toResponse(P(created)), nil
}

func (u *recordUsecase[E, P, R]) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req dto.RecordUpdateRequest[P]) (R, error) {
	var zero R

	record, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return zero, err
	}
	if !policy.CanMutateRecord(actor) {
		return zero, ErrForbidden
	}
	// scope and permission come before the body
	if err := u.validator.Validate(req); err != nil {
		return zero, &ValidationError{Fields: u.validator.FormatValidationErrors(err)}
	}

	oldValue := u.toResponse(record)

	req.ApplyTo(record)
	record.StampUpdated(actor.ID)

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := u.recordRepo.Update(ctx, tx, record); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, &actor.ID, u.entityName, record.GetID().String(), oldValue, u.toResponse(record))
	})
	if err != nil {
		u.log.Warnf("Failed to update %s record: %+v", u.entityName, err)
		return zero, err
	}

	return u.toResponse(record), nil
}

func (u *recordUsecase[E, P, R]) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	record, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return err
	}
	if !policy.CanMutateRecord(actor) {
		return ErrForbidden
	}

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := u.auditService.LogDelete(ctx, tx, &actor.ID, u.entityName, record.GetID().String(), u.toResponse(record)); err != nil {
			return err
		}
		return u.recordRepo.Delete(ctx, tx, record.GetID())
	})
	if err != nil {
		u.log.Warnf("Failed to delete %s record: %+v", u.entityName, err)
		return err
	}

	return nil
}
