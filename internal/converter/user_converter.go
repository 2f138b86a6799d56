package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// UserToResponse converts a User entity to UserResponse DTO
// The active role profile is rendered under Role when it is loaded
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:               user.ID,
		CNIC:             user.CNIC,
		Email:            user.Email,
		Contact:          user.Contact,
		EmergencyContact: user.EmergencyContact,
		FirstName:        user.FirstName,
		MiddleName:       user.MiddleName,
		LastName:         user.LastName,
		City:             user.City,
		Country:          user.Country,
		Address:          user.Address,
		Gender:           user.Gender,
		Group:            user.Group.String(),
		IsActive:         user.IsActive,
		IsStaff:          user.IsStaff,
		Role:             ProfileToResponse(user.Profile()),
		LastLogin:        user.LastLogin,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
		CreatedBy:        user.CreatedByID,
		UpdatedBy:        user.UpdatedByID,
	}
}

// UsersToResponses converts a slice of User entities to slice of UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

// ProfileToResponse returns nil for a nil profile so "role" encodes as null.
func ProfileToResponse(profile entity.RoleProfile) interface{} {
	switch p := profile.(type) {
	case *entity.PatientProfile:
		return &dto.PatientProfileResponse{
			ID:                   p.ID,
			Weight:               nullDecimal(p.Weight),
			Height:               nullDecimal(p.Height),
			DateOfBirth:          p.DateOfBirth,
			GuardianName:         p.GuardianName,
			GuardianContact:      p.GuardianContact,
			GuardianRelationship: p.GuardianRelationship,
			GuardianAddress:      p.GuardianAddress,
		}
	case *entity.NurseProfile:
		return &dto.NurseProfileResponse{
			ID:            p.ID,
			Qualification: p.Qualification,
			Department:    p.Department,
		}
	case *entity.DoctorProfile:
		return &dto.DoctorProfileResponse{
			ID:             p.ID,
			Specialization: p.Specialization,
			Qualification:  p.Qualification,
			Nurse:          p.NurseID,
		}
	case *entity.AdminProfile:
		return &dto.AdminProfileResponse{
			ID:          p.ID,
			Designation: p.Designation,
		}
	}
	return nil
}

func nullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
