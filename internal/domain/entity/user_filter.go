package entity

import "github.com/google/uuid"

// UserListType is the optional "type" narrowing on Actor listings.
type UserListType string

const (
	UserListAll     UserListType = ""
	UserListSelf    UserListType = "self"
	UserListPatient UserListType = "patient"
)

// ParseUserListType maps the raw query value; unknown values mean no narrowing.
func ParseUserListType(raw string) UserListType {
	switch UserListType(raw) {
	case UserListSelf, UserListPatient:
		return UserListType(raw)
	}
	return UserListAll
}

// UserFilter is the domain-level scope applied to Actor queries.
// When Unrestricted is false the base set is SelfID, widened by the Include flags.
// OnlySelf and OnlyGroup narrow whatever the base set is.
type UserFilter struct {
	Unrestricted    bool
	SelfID          uuid.UUID
	IncludePatients bool
	IncludeNurses   bool
	OnlySelf        bool
	OnlyGroup       Group
}
