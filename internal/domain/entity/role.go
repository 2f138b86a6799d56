package entity

// Group is the role discriminant stored on every Actor.
type Group string

const (
	GroupPatient Group = "patient"
	GroupNurse   Group = "nurse"
	GroupDoctor  Group = "doctor"
	GroupAdmin   Group = "admin"
)

// Groups lists every valid group in a stable order.
var Groups = []Group{GroupPatient, GroupNurse, GroupDoctor, GroupAdmin}

func (g Group) Valid() bool {
	switch g {
	case GroupPatient, GroupNurse, GroupDoctor, GroupAdmin:
		return true
	}
	return false
}

func (g Group) String() string {
	return string(g)
}

// RoleProfile is the closed set of role-specific attribute bags an Actor can carry.
// Only PatientProfile, NurseProfile, DoctorProfile and AdminProfile implement it.
type RoleProfile interface {
	Group() Group
	isRoleProfile()
}

func (*PatientProfile) Group() Group { return GroupPatient }
func (*NurseProfile) Group() Group   { return GroupNurse }
func (*DoctorProfile) Group() Group  { return GroupDoctor }
func (*AdminProfile) Group() Group   { return GroupAdmin }

func (*PatientProfile) isRoleProfile() {}
func (*NurseProfile) isRoleProfile()   {}
func (*DoctorProfile) isRoleProfile()  {}
func (*AdminProfile) isRoleProfile()   {}
