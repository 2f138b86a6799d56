package policy

import (
	"sort"
	"testing"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type population struct {
	patient, otherPatient, nurse, doctor, admin, bareAdmin *entity.User
}

func sampleUser(group entity.Group, withProfile bool) *entity.User {
	u := &entity.User{ID: uuid.New(), CNIC: uuid.NewString(), Group: group}
	if !withProfile {
		return u
	}
	switch group {
	case entity.GroupPatient:
		u.AttachProfile(&entity.PatientProfile{ID: uuid.New()})
	case entity.GroupNurse:
		u.AttachProfile(&entity.NurseProfile{ID: uuid.New()})
	case entity.GroupDoctor:
		u.AttachProfile(&entity.DoctorProfile{ID: uuid.New()})
	case entity.GroupAdmin:
		u.AttachProfile(&entity.AdminProfile{ID: uuid.New()})
	}
	return u
}

func newPopulation() population {
	return population{
		patient:      sampleUser(entity.GroupPatient, true),
		otherPatient: sampleUser(entity.GroupPatient, true),
		nurse:        sampleUser(entity.GroupNurse, true),
		doctor:       sampleUser(entity.GroupDoctor, true),
		admin:        sampleUser(entity.GroupAdmin, true),
		bareAdmin:    sampleUser(entity.GroupAdmin, false),
	}
}

func (p population) all() []*entity.User {
	return []*entity.User{p.patient, p.otherPatient, p.nurse, p.doctor, p.admin, p.bareAdmin}
}

func visibleIDs(filter entity.UserFilter, users []*entity.User) []string {
	ids := []string{}
	for _, u := range users {
		if UserVisible(filter, u) {
			ids = append(ids, u.ID.String())
		}
	}
	sort.Strings(ids)
	return ids
}

func idsOf(users ...*entity.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID.String())
	}
	sort.Strings(ids)
	return ids
}

func TestUserScope_RoleTable(t *testing.T) {
	p := newPopulation()

	tests := []struct {
		name  string
		actor *entity.User
		want  []string
	}{
		{"patient sees self", p.patient, idsOf(p.patient)},
		{"nurse sees self and patients", p.nurse, idsOf(p.nurse, p.patient, p.otherPatient)},
		{"doctor sees self, patients and nurses", p.doctor, idsOf(p.doctor, p.patient, p.otherPatient, p.nurse)},
		{"admin sees everyone", p.admin, idsOf(p.all()...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := UserScope(tt.actor, entity.UserListAll)
			assert.Equal(t, tt.want, visibleIDs(filter, p.all()))
		})
	}
}

func TestUserScope_TypeFilterIntersects(t *testing.T) {
	p := newPopulation()

	filter := UserScope(p.nurse, entity.UserListSelf)
	assert.Equal(t, idsOf(p.nurse), visibleIDs(filter, p.all()))

	filter = UserScope(p.doctor, entity.UserListPatient)
	assert.Equal(t, idsOf(p.patient, p.otherPatient), visibleIDs(filter, p.all()))

	// narrowing never widens: a patient asking for patients still sees only themselves
	filter = UserScope(p.patient, entity.UserListPatient)
	assert.Equal(t, idsOf(p.patient), visibleIDs(filter, p.all()))

	// a nurse listing patients gets nothing outside their base set
	filter = UserScope(p.nurse, entity.UserListPatient)
	assert.NotContains(t, visibleIDs(filter, p.all()), p.nurse.ID.String())
}

func TestUserScope_PatientWithoutProfileHiddenFromNurse(t *testing.T) {
	p := newPopulation()
	bare := sampleUser(entity.GroupPatient, false)

	filter := UserScope(p.nurse, entity.UserListAll)
	assert.False(t, UserVisible(filter, bare))
}

func TestUserScope_UnknownGroupIsSelfOnly(t *testing.T) {
	p := newPopulation()
	odd := &entity.User{ID: uuid.New(), Group: entity.Group("janitor")}

	filter := UserScope(odd, entity.UserListAll)
	assert.Equal(t, idsOf(odd), visibleIDs(filter, append(p.all(), odd)))
}

func TestUserVisible_Nil(t *testing.T) {
	assert.False(t, UserVisible(entity.UserFilter{Unrestricted: true}, nil))
}

func TestRecordScope(t *testing.T) {
	p := newPopulation()

	own := RecordScope(p.patient)
	assert.False(t, own.Unrestricted)
	assert.True(t, RecordVisible(own, p.patient.ID))
	assert.False(t, RecordVisible(own, p.otherPatient.ID))

	for _, staff := range []*entity.User{p.nurse, p.doctor, p.admin} {
		scope := RecordScope(staff)
		assert.True(t, scope.Unrestricted, staff.Group)
		assert.True(t, RecordVisible(scope, p.otherPatient.ID), staff.Group)
	}
}

func TestRecordVisible_ZeroPatientMatchesNothing(t *testing.T) {
	assert.False(t, RecordVisible(entity.RecordFilter{}, uuid.Nil))
}

func TestMutationGuards(t *testing.T) {
	p := newPopulation()

	assert.False(t, CanMutateRecord(p.patient))
	assert.True(t, CanMutateRecord(p.nurse))
	assert.True(t, CanMutateRecord(p.doctor))
	assert.True(t, CanMutateRecord(p.admin))

	assert.True(t, CanCreateRecord(p.patient, p.patient.ID))
	assert.False(t, CanCreateRecord(p.patient, p.otherPatient.ID))
	assert.True(t, CanCreateRecord(p.nurse, p.otherPatient.ID))

	assert.True(t, CanDeleteUser(p.admin))
	assert.True(t, CanDeleteUser(p.bareAdmin))
	assert.False(t, CanDeleteUser(p.doctor))
	assert.False(t, CanDeleteUser(p.patient))

	assert.True(t, CanChangeUserFlags(p.admin))
	assert.False(t, CanChangeUserFlags(p.nurse))
}
