// Package policy decides which Actors and clinical records a requester may see or change.
//
// Scopes are returned as domain filters for repositories to translate into queries.
// The matching predicates evaluate the same rules against rows already in memory.
package policy

import (
	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
)

// UserScope returns the Actors visible to actor, narrowed by listType.
// The narrowing intersects with the role-based set; it never widens it.
func UserScope(actor *entity.User, listType entity.UserListType) entity.UserFilter {
	filter := entity.UserFilter{SelfID: actor.ID}

	switch actor.Group {
	case entity.GroupAdmin:
		filter.Unrestricted = true
	case entity.GroupDoctor:
		filter.IncludePatients = true
		filter.IncludeNurses = true
	case entity.GroupNurse:
		filter.IncludePatients = true
	default:
		// patients and anything unrecognised see only themselves
	}

	switch listType {
	case entity.UserListSelf:
		filter.OnlySelf = true
	case entity.UserListPatient:
		filter.OnlyGroup = entity.GroupPatient
	}

	return filter
}

// UserVisible reports whether target falls inside filter.
func UserVisible(filter entity.UserFilter, target *entity.User) bool {
	if target == nil {
		return false
	}
	if filter.OnlySelf && target.ID != filter.SelfID {
		return false
	}
	if filter.OnlyGroup != "" && target.Group != filter.OnlyGroup {
		return false
	}
	if filter.Unrestricted || target.ID == filter.SelfID {
		return true
	}
	if filter.IncludePatients && target.HasPatientProfile() {
		return true
	}
	return filter.IncludeNurses && target.HasNurseProfile()
}

// CanDeleteUser is checked before visibility: only admins delete Actors.
func CanDeleteUser(actor *entity.User) bool {
	return actor.IsAdmin()
}

// CanChangeUserFlags guards is_active and is_staff.
func CanChangeUserFlags(actor *entity.User) bool {
	return actor.IsAdmin()
}

// RecordScope returns the clinical records visible to actor.
func RecordScope(actor *entity.User) entity.RecordFilter {
	switch actor.Group {
	case entity.GroupNurse, entity.GroupDoctor, entity.GroupAdmin:
		return entity.RecordFilter{Unrestricted: true}
	default:
		return entity.RecordFilter{PatientID: actor.ID}
	}
}

// RecordVisible reports whether a record owned by patientID falls inside filter.
func RecordVisible(filter entity.RecordFilter, patientID uuid.UUID) bool {
	if filter.Unrestricted {
		return true
	}
	return filter.PatientID != uuid.Nil && filter.PatientID == patientID
}

// CanMutateRecord guards update and delete of records the actor can already see.
func CanMutateRecord(actor *entity.User) bool {
	switch actor.Group {
	case entity.GroupNurse, entity.GroupDoctor, entity.GroupAdmin:
		return true
	}
	return false
}

// CanCreateRecord lets staff file records for any patient and patients only for themselves.
func CanCreateRecord(actor *entity.User, patientID uuid.UUID) bool {
	if CanMutateRecord(actor) {
		return true
	}
	return actor.ID == patientID
}
