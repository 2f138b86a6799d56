package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the Actor: the single authentication table for every role.
// At most one of the profile keys is set, and only the one matching Group.
type User struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CNIC             string     `gorm:"column:cnic;type:varchar(255);uniqueIndex;not null" json:"cnic"`
	Email            *string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	Password         string     `gorm:"type:text;not null" json:"-"`
	Contact          string     `gorm:"type:varchar(255);not null;default:''" json:"contact"`
	EmergencyContact string     `gorm:"type:varchar(255);not null;default:''" json:"emergency_contact"`
	FirstName        string     `gorm:"type:varchar(255);not null;default:''" json:"first_name"`
	MiddleName       string     `gorm:"type:varchar(255);not null;default:''" json:"middle_name"`
	LastName         string     `gorm:"type:varchar(255);not null;default:''" json:"last_name"`
	City             string     `gorm:"type:varchar(255);not null;default:''" json:"city"`
	Country          string     `gorm:"type:varchar(255);not null;default:''" json:"country"`
	Address          string     `gorm:"type:varchar(255);not null;default:''" json:"address"`
	Gender           string     `gorm:"type:varchar(255);not null;default:'male'" json:"gender"`
	Group            Group      `gorm:"column:user_group;type:varchar(16);not null;index" json:"group"`
	IsActive         bool       `gorm:"not null;default:true" json:"is_active"`
	IsStaff          bool       `gorm:"not null;default:false" json:"is_staff"`
	PatientID        *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"patient_id,omitempty"`
	NurseID          *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"nurse_id,omitempty"`
	DoctorID         *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"doctor_id,omitempty"`
	AdminID          *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"admin_id,omitempty"`
	CreatedByID      *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	UpdatedByID      *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
	LastLogin        *time.Time `json:"last_login,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Nurse   *NurseProfile   `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`
	Doctor  *DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Admin   *AdminProfile   `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Profile returns the active role profile, or nil when none is linked.
func (u *User) Profile() RoleProfile {
	switch u.Group {
	case GroupPatient:
		if u.Patient != nil {
			return u.Patient
		}
	case GroupNurse:
		if u.Nurse != nil {
			return u.Nurse
		}
	case GroupDoctor:
		if u.Doctor != nil {
			return u.Doctor
		}
	case GroupAdmin:
		if u.Admin != nil {
			return u.Admin
		}
	}
	return nil
}

// AttachProfile links p to the user, clearing every other profile key.
// The profile must already have its ID assigned.
func (u *User) AttachProfile(p RoleProfile) {
	u.PatientID, u.NurseID, u.DoctorID, u.AdminID = nil, nil, nil, nil
	u.Patient, u.Nurse, u.Doctor, u.Admin = nil, nil, nil, nil

	switch v := p.(type) {
	case *PatientProfile:
		u.Patient, u.PatientID = v, &v.ID
	case *NurseProfile:
		u.Nurse, u.NurseID = v, &v.ID
	case *DoctorProfile:
		u.Doctor, u.DoctorID = v, &v.ID
	case *AdminProfile:
		u.Admin, u.AdminID = v, &v.ID
	}
}

// HasPatientProfile reports whether a patient profile is linked.
func (u *User) HasPatientProfile() bool {
	return u.PatientID != nil
}

// HasNurseProfile reports whether a nurse profile is linked.
func (u *User) HasNurseProfile() bool {
	return u.NurseID != nil
}

func (u *User) IsAdmin() bool {
	return u.Group == GroupAdmin
}

func (u *User) IsPatient() bool {
	return u.Group == GroupPatient
}

// EmailValue returns the email or an empty string.
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
