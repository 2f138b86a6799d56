package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Weight               decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"weight"`
	Height               decimal.NullDecimal `gorm:"type:numeric(6,2)" json:"height"`
	DateOfBirth          *time.Time          `gorm:"type:timestamptz" json:"date_of_birth"`
	GuardianName         string              `gorm:"type:varchar(255);not null;default:''" json:"guardian_name"`
	GuardianContact      string              `gorm:"type:varchar(255);not null;default:''" json:"guardian_contact"`
	GuardianRelationship string              `gorm:"type:varchar(255);not null;default:''" json:"guardian_relationship"`
	GuardianAddress      string              `gorm:"type:varchar(255);not null;default:''" json:"guardian_address"`
	CreatedAt            time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// NurseProfile represents nurse-specific profile data
type NurseProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Qualification string    `gorm:"type:varchar(255);not null;default:''" json:"qualification"`
	Department    string    `gorm:"type:varchar(255);not null;default:''" json:"department"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NurseProfile) TableName() string {
	return "nurse_profiles"
}

// DoctorProfile represents doctor-specific profile data.
// NurseID is nulled by the database when the referenced nurse profile goes away.
type DoctorProfile struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Specialization string     `gorm:"type:varchar(255);not null;default:''" json:"specialization"`
	Qualification  string     `gorm:"type:varchar(255);not null;default:''" json:"qualification"`
	NurseID        *uuid.UUID `gorm:"type:uuid;index" json:"nurse_id"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// AdminProfile represents admin-specific profile data
type AdminProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Designation string    `gorm:"type:varchar(255);not null;default:''" json:"designation"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}
