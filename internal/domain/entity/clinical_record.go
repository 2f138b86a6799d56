package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecordMeta holds the columns shared by every clinical record.
type RecordMeta struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *RecordMeta) GetID() uuid.UUID {
	return m.ID
}

// StampCreated sets both audit ids to the creating actor.
func (m *RecordMeta) StampCreated(actorID uuid.UUID) {
	m.CreatedByID = &actorID
	m.UpdatedByID = &actorID
}

func (m *RecordMeta) StampUpdated(actorID uuid.UUID) {
	m.UpdatedByID = &actorID
}

// ClinicalRecord is implemented by pointers to MedicalHistory, Visit, Prescription and Allergy.
type ClinicalRecord interface {
	GetID() uuid.UUID
	GetPatientID() uuid.UUID
	SetPatientID(id uuid.UUID)
	StampCreated(actorID uuid.UUID)
	StampUpdated(actorID uuid.UUID)
	TableName() string
}

// RecordPtr constrains generic code to a pointer to a concrete record struct.
type RecordPtr[E any] interface {
	*E
	ClinicalRecord
}

// RecordFilter is the domain-level scope applied to record queries.
// A zero PatientID with Unrestricted false matches nothing.
type RecordFilter struct {
	Unrestricted bool
	PatientID    uuid.UUID
}

// MedicalHistory is a past condition or event in a patient's history.
type MedicalHistory struct {
	RecordMeta
	Type        string     `gorm:"type:varchar(255);not null;default:''" json:"type"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	HappenedAt  *time.Time `gorm:"type:timestamptz" json:"happened_at"`
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (MedicalHistory) TableName() string {
	return "medical_histories"
}

func (r *MedicalHistory) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *MedicalHistory) SetPatientID(id uuid.UUID) { r.PatientID = id }

type Visit struct {
	RecordMeta
	Purpose   string    `gorm:"type:text;not null;default:''" json:"purpose"`
	VisitedAt time.Time `gorm:"type:timestamptz;not null" json:"visited_at"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Visit) TableName() string {
	return "visits"
}

func (r *Visit) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *Visit) SetPatientID(id uuid.UUID) { r.PatientID = id }

type Prescription struct {
	RecordMeta
	Medicine  string    `gorm:"type:varchar(255);not null" json:"medicine"`
	Dose      string    `gorm:"type:varchar(255);not null;default:''" json:"dose"`
	Frequency string    `gorm:"type:varchar(255);not null;default:''" json:"frequency"`
	Notes     string    `gorm:"type:text;not null;default:''" json:"notes"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

func (r *Prescription) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *Prescription) SetPatientID(id uuid.UUID) { r.PatientID = id }

type Allergy struct {
	RecordMeta
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`

	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Allergy) TableName() string {
	return "allergies"
}

func (r *Allergy) GetPatientID() uuid.UUID   { return r.PatientID }
func (r *Allergy) SetPatientID(id uuid.UUID) { r.PatientID = id }
