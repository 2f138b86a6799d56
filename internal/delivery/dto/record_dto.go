package dto

import (
	"time"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
)

// RecordCreateRequest builds a new record of kind P owned by PatientRef.
type RecordCreateRequest[P any] interface {
	PatientRef() uuid.UUID
	NewRecord() P
}

// RecordUpdateRequest applies the business fields present in a partial update.
// Id, patient and audit fields are never touched.
type RecordUpdateRequest[P any] interface {
	ApplyTo(record P)
}

// parsePatient returns uuid.Nil when the value did not pass validation.
func parsePatient(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Request DTOs

type MedicalHistoryCreateRequest struct {
	Patient     string     `json:"patient" validate:"required,uuid"`
	Type        string     `json:"type" validate:"omitempty,max=255"`
	Description string     `json:"description"`
	HappenedAt  *time.Time `json:"happened_at"`
}

func (r *MedicalHistoryCreateRequest) PatientRef() uuid.UUID {
	return parsePatient(r.Patient)
}

func (r *MedicalHistoryCreateRequest) NewRecord() *entity.MedicalHistory {
	return &entity.MedicalHistory{
		Type:        r.Type,
		Description: r.Description,
		HappenedAt:  r.HappenedAt,
	}
}

type MedicalHistoryUpdateRequest struct {
	Type        *string    `json:"type" validate:"omitempty,max=255"`
	Description *string    `json:"description"`
	HappenedAt  *time.Time `json:"happened_at"`
}

func (r *MedicalHistoryUpdateRequest) ApplyTo(record *entity.MedicalHistory) {
	setString(&record.Type, r.Type)
	setString(&record.Description, r.Description)
	if r.HappenedAt != nil {
		record.HappenedAt = r.HappenedAt
	}
}

type VisitCreateRequest struct {
	Patient   string     `json:"patient" validate:"required,uuid"`
	Purpose   string     `json:"purpose"`
	VisitedAt *time.Time `json:"visited_at" validate:"required"`
}

func (r *VisitCreateRequest) PatientRef() uuid.UUID {
	return parsePatient(r.Patient)
}

func (r *VisitCreateRequest) NewRecord() *entity.Visit {
	v := &entity.Visit{Purpose: r.Purpose}
	if r.VisitedAt != nil {
		v.VisitedAt = *r.VisitedAt
	}
	return v
}

type VisitUpdateRequest struct {
	Purpose   *string    `json:"purpose"`
	VisitedAt *time.Time `json:"visited_at"`
}

func (r *VisitUpdateRequest) ApplyTo(record *entity.Visit) {
	setString(&record.Purpose, r.Purpose)
	if r.VisitedAt != nil {
		record.VisitedAt = *r.VisitedAt
	}
}

type PrescriptionCreateRequest struct {
	Patient   string `json:"patient" validate:"required,uuid"`
	Medicine  string `json:"medicine" validate:"required,max=255"`
	Dose      string `json:"dose" validate:"omitempty,max=255"`
	Frequency string `json:"frequency" validate:"omitempty,max=255"`
	Notes     string `json:"notes"`
}

func (r *PrescriptionCreateRequest) PatientRef() uuid.UUID {
	return parsePatient(r.Patient)
}

func (r *PrescriptionCreateRequest) NewRecord() *entity.Prescription {
	return &entity.Prescription{
		Medicine:  r.Medicine,
		Dose:      r.Dose,
		Frequency: r.Frequency,
		Notes:     r.Notes,
	}
}

type PrescriptionUpdateRequest struct {
	Medicine  *string `json:"medicine" validate:"omitempty,min=1,max=255"`
	Dose      *string `json:"dose" validate:"omitempty,max=255"`
	Frequency *string `json:"frequency" validate:"omitempty,max=255"`
	Notes     *string `json:"notes"`
}

func (r *PrescriptionUpdateRequest) ApplyTo(record *entity.Prescription) {
	setString(&record.Medicine, r.Medicine)
	setString(&record.Dose, r.Dose)
	setString(&record.Frequency, r.Frequency)
	setString(&record.Notes, r.Notes)
}

type AllergyCreateRequest struct {
	Patient     string `json:"patient" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

func (r *AllergyCreateRequest) PatientRef() uuid.UUID {
	return parsePatient(r.Patient)
}

func (r *AllergyCreateRequest) NewRecord() *entity.Allergy {
	return &entity.Allergy{
		Name:        r.Name,
		Description: r.Description,
	}
}

type AllergyUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

func (r *AllergyUpdateRequest) ApplyTo(record *entity.Allergy) {
	setString(&record.Name, r.Name)
	setString(&record.Description, r.Description)
}

// Response DTOs

// RecordMetaResponse is embedded by every record response.
type RecordMetaResponse struct {
	ID        uuid.UUID     `json:"id"`
	Patient   *UserResponse `json:"patient"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	CreatedBy *uuid.UUID    `json:"created_by"`
	UpdatedBy *uuid.UUID    `json:"updated_by"`
}

type MedicalHistoryResponse struct {
	RecordMetaResponse
	Type        string     `json:"type"`
	Description string     `json:"description"`
	HappenedAt  *time.Time `json:"happened_at"`
}

type VisitResponse struct {
	RecordMetaResponse
	Purpose   string    `json:"purpose"`
	VisitedAt time.Time `json:"visited_at"`
}

type PrescriptionResponse struct {
	RecordMetaResponse
	Medicine  string `json:"medicine"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	Notes     string `json:"notes"`
}

type AllergyResponse struct {
	RecordMetaResponse
	Name        string `json:"name"`
	Description string `json:"description"`
}
