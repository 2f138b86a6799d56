package dto

import (
	"encoding/json"
	"errors"
	"time"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidRolePayload = errors.New("invalid role payload")

// RoleRequest is the "role" sub-object of an Actor payload, decoded by group.
// Nil fields are left untouched.
type RoleRequest interface {
	NewProfile() entity.RoleProfile
	ApplyTo(profile entity.RoleProfile)
}

// DecodeRole decodes raw into the payload type for group. An absent or null
// role yields nil, nil.
func DecodeRole(group entity.Group, raw json.RawMessage) (RoleRequest, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var req RoleRequest
	switch group {
	case entity.GroupPatient:
		req = &PatientRoleRequest{}
	case entity.GroupNurse:
		req = &NurseRoleRequest{}
	case entity.GroupDoctor:
		req = &DoctorRoleRequest{}
	case entity.GroupAdmin:
		req = &AdminRoleRequest{}
	default:
		return nil, ErrInvalidRolePayload
	}

	if err := json.Unmarshal(raw, req); err != nil {
		return nil, ErrInvalidRolePayload
	}
	return req, nil
}

type PatientRoleRequest struct {
	Weight               *decimal.Decimal `json:"weight"`
	Height               *decimal.Decimal `json:"height"`
	DateOfBirth          *time.Time       `json:"date_of_birth"`
	GuardianName         *string          `json:"guardian_name" validate:"omitempty,max=255"`
	GuardianContact      *string          `json:"guardian_contact" validate:"omitempty,max=255"`
	GuardianRelationship *string          `json:"guardian_relationship" validate:"omitempty,max=255"`
	GuardianAddress      *string          `json:"guardian_address" validate:"omitempty,max=255"`
}

func (r *PatientRoleRequest) NewProfile() entity.RoleProfile {
	p := &entity.PatientProfile{}
	r.ApplyTo(p)
	return p
}

func (r *PatientRoleRequest) ApplyTo(profile entity.RoleProfile) {
	p, ok := profile.(*entity.PatientProfile)
	if !ok {
		return
	}
	if r.Weight != nil {
		p.Weight = decimal.NewNullDecimal(*r.Weight)
	}
	if r.Height != nil {
		p.Height = decimal.NewNullDecimal(*r.Height)
	}
	if r.DateOfBirth != nil {
		p.DateOfBirth = r.DateOfBirth
	}
	setString(&p.GuardianName, r.GuardianName)
	setString(&p.GuardianContact, r.GuardianContact)
	setString(&p.GuardianRelationship, r.GuardianRelationship)
	setString(&p.GuardianAddress, r.GuardianAddress)
}

type NurseRoleRequest struct {
	Qualification *string `json:"qualification" validate:"omitempty,max=255"`
	Department    *string `json:"department" validate:"omitempty,max=255"`
}

func (r *NurseRoleRequest) NewProfile() entity.RoleProfile {
	p := &entity.NurseProfile{}
	r.ApplyTo(p)
	return p
}

func (r *NurseRoleRequest) ApplyTo(profile entity.RoleProfile) {
	p, ok := profile.(*entity.NurseProfile)
	if !ok {
		return
	}
	setString(&p.Qualification, r.Qualification)
	setString(&p.Department, r.Department)
}

type DoctorRoleRequest struct {
	Specialization *string    `json:"specialization" validate:"omitempty,max=255"`
	Qualification  *string    `json:"qualification" validate:"omitempty,max=255"`
	Nurse          *uuid.UUID `json:"nurse"`
}

func (r *DoctorRoleRequest) NewProfile() entity.RoleProfile {
	p := &entity.DoctorProfile{}
	r.ApplyTo(p)
	return p
}

func (r *DoctorRoleRequest) ApplyTo(profile entity.RoleProfile) {
	p, ok := profile.(*entity.DoctorProfile)
	if !ok {
		return
	}
	setString(&p.Specialization, r.Specialization)
	setString(&p.Qualification, r.Qualification)
	if r.Nurse != nil {
		p.NurseID = r.Nurse
	}
}

type AdminRoleRequest struct {
	Designation *string `json:"designation" validate:"omitempty,max=255"`
}

func (r *AdminRoleRequest) NewProfile() entity.RoleProfile {
	p := &entity.AdminProfile{}
	r.ApplyTo(p)
	return p
}

func (r *AdminRoleRequest) ApplyTo(profile entity.RoleProfile) {
	p, ok := profile.(*entity.AdminProfile)
	if !ok {
		return
	}
	setString(&p.Designation, r.Designation)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Response DTOs

type PatientProfileResponse struct {
	ID                   uuid.UUID        `json:"id"`
	Weight               *decimal.Decimal `json:"weight"`
	Height               *decimal.Decimal `json:"height"`
	DateOfBirth          *time.Time       `json:"date_of_birth"`
	GuardianName         string           `json:"guardian_name"`
	GuardianContact      string           `json:"guardian_contact"`
	GuardianRelationship string           `json:"guardian_relationship"`
	GuardianAddress      string           `json:"guardian_address"`
}

type NurseProfileResponse struct {
	ID            uuid.UUID `json:"id"`
	Qualification string    `json:"qualification"`
	Department    string    `json:"department"`
}

type DoctorProfileResponse struct {
	ID             uuid.UUID  `json:"id"`
	Specialization string     `json:"specialization"`
	Qualification  string     `json:"qualification"`
	Nurse          *uuid.UUID `json:"nurse"`
}

type AdminProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Designation string    `json:"designation"`
}
