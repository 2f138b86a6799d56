package usecase

import (
	"context"
	"io"
	"time"

	"hospital-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// fakeTransactor runs units of work without a database.
type fakeTransactor struct{}

func (fakeTransactor) DB(ctx context.Context) *gorm.DB {
	return nil
}

func (fakeTransactor) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// MockUserRepository provides a mock user repository for testing
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	args := m.Called(ctx, db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByCNIC(ctx context.Context, db *gorm.DB, cnic string) (*entity.User, error) {
	args := m.Called(ctx, db, cnic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.UserFilter) (*entity.User, error) {
	args := m.Called(ctx, db, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, error) {
	args := m.Called(ctx, db, filter)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	args := m.Called(ctx, db, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

// MockProfileRepository provides a mock profile repository for testing
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error {
	args := m.Called(ctx, db, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error {
	args := m.Called(ctx, db, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, db *gorm.DB, profile entity.RoleProfile) error {
	args := m.Called(ctx, db, profile)
	return args.Error(0)
}

// MockRecordRepository provides a mock record repository for any record kind
type MockRecordRepository[E any] struct {
	mock.Mock
}

func (m *MockRecordRepository[E]) Create(ctx context.Context, db *gorm.DB, record *E) error {
	args := m.Called(ctx, db, record)
	return args.Error(0)
}

func (m *MockRecordRepository[E]) FindScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, filter entity.RecordFilter) (*E, error) {
	args := m.Called(ctx, db, id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*E), args.Error(1)
}

func (m *MockRecordRepository[E]) FindAll(ctx context.Context, db *gorm.DB, filter entity.RecordFilter) ([]E, error) {
	args := m.Called(ctx, db, filter)
	return args.Get(0).([]E), args.Error(1)
}

func (m *MockRecordRepository[E]) Update(ctx context.Context, db *gorm.DB, record *E) error {
	args := m.Called(ctx, db, record)
	return args.Error(0)
}

func (m *MockRecordRepository[E]) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

// MockAuthTokenRepository provides a mock token repository for testing
type MockAuthTokenRepository struct {
	mock.Mock
}

func (m *MockAuthTokenRepository) Create(ctx context.Context, db *gorm.DB, token *entity.AuthToken) error {
	args := m.Called(ctx, db, token)
	return args.Error(0)
}

func (m *MockAuthTokenRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.AuthToken, error) {
	args := m.Called(ctx, db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

func (m *MockAuthTokenRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.AuthToken, error) {
	args := m.Called(ctx, db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthToken), args.Error(1)
}

func (m *MockAuthTokenRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *MockAuthTokenRepository) DeleteByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	args := m.Called(ctx, db, userID)
	return args.Error(0)
}

// MockTokenCache provides a mock token cache for testing
type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) Get(ctx context.Context, tokenID uuid.UUID) (uuid.UUID, bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.Bool(1), args.Error(2)
}

func (m *MockTokenCache) Set(ctx context.Context, tokenID, userID uuid.UUID, expiresAt *time.Time) error {
	args := m.Called(ctx, tokenID, userID, expiresAt)
	return args.Error(0)
}

func (m *MockTokenCache) Delete(ctx context.Context, tokenID uuid.UUID) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockAuditService records audit calls without storage
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, entityName string, entityID string, oldValue interface{}) error {
	args := m.Called(ctx, tx, userID, entityName, entityID, oldValue)
	return args.Error(0)
}

func (m *MockAuditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	args := m.Called(ctx, tx, userID, action, metadata)
	return args.Error(0)
}

// actors

func newActor(group entity.Group) *entity.User {
	u := &entity.User{ID: uuid.New(), CNIC: uuid.NewString(), Group: group, IsActive: true}
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
