package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/delivery/http/handler"
	"hospital-records/internal/delivery/http/middleware"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, actor *entity.User, tokenID uuid.UUID) error {
	args := m.Called(ctx, actor, tokenID)
	return args.Error(0)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, rawToken string) (*entity.User, uuid.UUID, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, uuid.Nil, args.Error(2)
	}
	return args.Get(0).(*entity.User), args.Get(1).(uuid.UUID), args.Error(2)
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) List(ctx context.Context, actor *entity.User, listType entity.UserListType) ([]dto.UserResponse, error) {
	args := m.Called(ctx, actor, listType)
	return args.Get(0).([]dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserResponse), args.Error(1)
}

func (m *MockUserUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockVisitUsecase struct {
	mock.Mock
}

func (m *MockVisitUsecase) List(ctx context.Context, actor *entity.User) ([]*dto.VisitResponse, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]*dto.VisitResponse), args.Error(1)
}

func (m *MockVisitUsecase) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.VisitResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VisitResponse), args.Error(1)
}

func (m *MockVisitUsecase) Create(ctx context.Context, actor *entity.User, req dto.RecordCreateRequest[*entity.Visit]) (*dto.VisitResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VisitResponse), args.Error(1)
}

func (m *MockVisitUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req dto.RecordUpdateRequest[*entity.Visit]) (*dto.VisitResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VisitResponse), args.Error(1)
}

func (m *MockVisitUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type MockAuditLogUsecase struct {
	mock.Mock
}

func (m *MockAuditLogUsecase) GetAllAuditLogs(ctx context.Context, limit, offset int) (*dto.AuditLogListResponse, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuditLogListResponse), args.Error(1)
}

func (m *MockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuditLogResponse), args.Error(1)
}

type testServer struct {
	router    *mux.Router
	providers []RouteProvider
	auth      *MockAuthUsecase
	users     *MockUserUsecase
	visits    *MockVisitUsecase
	auditLogs *MockAuditLogUsecase
	actors    map[string]*entity.User
}

func newTestServer() *testServer {
	s := &testServer{
		auth:      new(MockAuthUsecase),
		users:     new(MockUserUsecase),
		visits:    new(MockVisitUsecase),
		auditLogs: new(MockAuditLogUsecase),
		actors:    map[string]*entity.User{},
	}

	for _, group := range entity.Groups {
		actor := &entity.User{ID: uuid.New(), Group: group, IsActive: true}
		s.actors[group.String()] = actor
		s.auth.On("Authenticate", mock.Anything, group.String()+"-token").Return(actor, uuid.New(), nil)
	}
	s.auth.On("Authenticate", mock.Anything, mock.Anything).Return(nil, uuid.Nil, usecase.ErrInvalidToken)

	log := logrus.New()
	log.SetOutput(io.Discard)
	v := validator.NewValidator()

	s.providers = []RouteProvider{
		handler.NewHealthHandler(),
		handler.NewAuthHandler(s.auth, v),
		handler.NewUserHandler(s.users, v),
		handler.NewRecordHandler[*entity.Visit, *dto.VisitResponse]("visit", "Visit", s.visits, v,
			func() dto.RecordCreateRequest[*entity.Visit] { return &dto.VisitCreateRequest{} },
			func() dto.RecordUpdateRequest[*entity.Visit] { return &dto.VisitUpdateRequest{} },
		),
		handler.NewAuditLogHandler(s.auditLogs),
	}
	s.router = NewRouter(
		middleware.NewAuthMiddleware(s.auth),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
		s.providers...,
	).Setup()
	return s
}

func (s *testServer) do(method, path, group string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if group != "" {
		req.Header.Set("Authorization", "Bearer "+group+"-token")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer()
	id := uuid.NewString()

	for _, provider := range s.providers {
		for _, route := range provider.Routes() {
			if route.Public {
				continue
			}
			path := "/api" + strings.ReplaceAll(route.Path, "{id}", id)
			for _, p := range []string{path, path + "/"} {
				rec := s.do(route.Method, p, "", "")
				assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", route.Method, p)

				req := httptest.NewRequest(route.Method, p, nil)
				req.Header.Set("Authorization", "Bearer forged")
				rec = httptest.NewRecorder()
				s.router.ServeHTTP(rec, req)
				assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with bad token", route.Method, p)
			}
		}
	}
}

func TestRouter_TokenPrefixAccepted(t *testing.T) {
	s := newTestServer()
	s.users.On("List", mock.Anything, s.actors["nurse"], entity.UserListAll).Return([]dto.UserResponse{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/", nil)
	req.Header.Set("Authorization", "Token nurse-token")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_HealthIsPublic(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_LoginFailureIsGeneric(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, mock.Anything).Return(nil, usecase.ErrInvalidCredentials)

	rec := s.do(http.MethodPost, "/api/token/", "", `{"cnic":"nobody","password":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unable to authenticate with provided credentials", decodeBody(t, rec)["message"])
}

func TestRouter_LoginReturnsToken(t *testing.T) {
	s := newTestServer()
	s.auth.On("Login", mock.Anything, &dto.LoginRequest{CNIC: "c1", Password: "p"}).
		Return(&dto.TokenResponse{Token: "abc"}, nil)

	rec := s.do(http.MethodPost, "/api/token", "", `{"cnic":"c1","password":"p"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "abc", data["token"])
}

func TestRouter_Logout(t *testing.T) {
	s := newTestServer()
	s.auth.On("Logout", mock.Anything, s.actors["doctor"], mock.Anything).Return(nil)

	rec := s.do(http.MethodDelete, "/api/token/", "doctor", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestRouter_UserListTypeFilter(t *testing.T) {
	s := newTestServer()
	s.users.On("List", mock.Anything, s.actors["doctor"], entity.UserListPatient).Return([]dto.UserResponse{}, nil)
	s.users.On("List", mock.Anything, s.actors["doctor"], entity.UserListAll).Return([]dto.UserResponse{}, nil)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/user/?type=patient", "doctor", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/user/?type=unknown", "doctor", "").Code)
	s.users.AssertExpectations(t)
}

func TestRouter_CreateUserValidation(t *testing.T) {
	s := newTestServer()

	rec := s.do(http.MethodPost, "/api/user/", "admin", `{"cnic":"c","password":"p"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeBody(t, rec)["error"].(map[string]interface{})
	assert.Contains(t, fields, "group")
	s.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_CreateUserDuplicate(t *testing.T) {
	s := newTestServer()
	s.users.On("Create", mock.Anything, s.actors["admin"], mock.Anything).
		Return(nil, usecase.NewValidationError("cnic", "user with this cnic already exists"))

	rec := s.do(http.MethodPost, "/api/user/", "admin", `{"cnic":"c","password":"p","group":"admin"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields := decodeBody(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "user with this cnic already exists", fields["cnic"])
}

func TestRouter_StatusMapping(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		method     string
		path       string
		group      string
		body       string
		setup      func(s *testServer)
		wantStatus int
	}{
		{
			name: "record outside scope", method: http.MethodGet, path: "/api/record/visit/" + id.String() + "/", group: "patient",
			setup: func(s *testServer) {
				s.visits.On("Get", mock.Anything, s.actors["patient"], id).Return(nil, usecase.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "patient patches own record", method: http.MethodPatch, path: "/api/record/visit/" + id.String() + "/", group: "patient", body: `{"purpose":"x"}`,
			setup: func(s *testServer) {
				s.visits.On("Update", mock.Anything, s.actors["patient"], id, mock.Anything).Return(nil, usecase.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "patient patches other record", method: http.MethodPatch, path: "/api/record/visit/" + id.String() + "/", group: "patient",
			body: `{"purpose":"x"}`,
			setup: func(s *testServer) {
				s.visits.On("Update", mock.Anything, s.actors["patient"], id, mock.Anything).Return(nil, usecase.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "nurse creates staff user", method: http.MethodPost, path: "/api/user/", group: "nurse",
			body: `{"cnic":"x","password":"p","group":"admin","is_staff":true}`,
			setup: func(s *testServer) {
				s.users.On("Create", mock.Anything, s.actors["nurse"], mock.Anything).Return(nil, usecase.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "patient deletes own record", method: http.MethodDelete, path: "/api/record/visit/" + id.String(), group: "patient",
			setup: func(s *testServer) {
				s.visits.On("Delete", mock.Anything, s.actors["patient"], id).Return(usecase.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "nurse deletes record", method: http.MethodDelete, path: "/api/record/visit/" + id.String() + "/", group: "nurse",
			setup: func(s *testServer) {
				s.visits.On("Delete", mock.Anything, s.actors["nurse"], id).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "record create missing patient", method: http.MethodPost, path: "/api/record/visit/", group: "nurse",
			body:       `{"purpose":"x","visited_at":"2024-01-01T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "record create", method: http.MethodPost, path: "/api/record/visit/", group: "nurse",
			body: `{"patient":"` + id.String() + `","visited_at":"2024-01-01T00:00:00Z"}`,
			setup: func(s *testServer) {
				s.visits.On("Create", mock.Anything, s.actors["nurse"], mock.Anything).Return(&dto.VisitResponse{}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "malformed id", method: http.MethodGet, path: "/api/user/not-a-uuid/", group: "admin",
			wantStatus: http.StatusNotFound,
		},
		{
			name: "non-admin deletes user", method: http.MethodDelete, path: "/api/user/" + id.String() + "/", group: "doctor",
			setup: func(s *testServer) {
				s.users.On("Delete", mock.Anything, s.actors["doctor"], id).Return(usecase.ErrForbidden)
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "admin deletes user", method: http.MethodDelete, path: "/api/user/" + id.String() + "/", group: "admin",
			setup: func(s *testServer) {
				s.users.On("Delete", mock.Anything, s.actors["admin"], id).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "deleted user is gone", method: http.MethodGet, path: "/api/user/" + id.String() + "/", group: "admin",
			setup: func(s *testServer) {
				s.users.On("Get", mock.Anything, s.actors["admin"], id).Return(nil, usecase.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "audit log requires admin", method: http.MethodGet, path: "/api/audit-log/", group: "doctor",
			wantStatus: http.StatusForbidden,
		},
		{
			name: "audit log for admin", method: http.MethodGet, path: "/api/audit-log/?page=2&limit=10", group: "admin",
			setup: func(s *testServer) {
				s.auditLogs.On("GetAllAuditLogs", mock.Anything, 10, 10).
					Return(&dto.AuditLogListResponse{Logs: []dto.AuditLogResponse{}, Total: 15}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "unexpected failure", method: http.MethodGet, path: "/api/record/visit/", group: "doctor",
			setup: func(s *testServer) {
				s.visits.On("List", mock.Anything, s.actors["doctor"]).Return([]*dto.VisitResponse(nil), assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			if tt.setup != nil {
				tt.setup(s)
			}

			rec := s.do(tt.method, tt.path, tt.group, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rec.Body.Bytes())
			}
		})
	}
}

func TestRouter_RepeatedGetIsByteIdentical(t *testing.T) {
	s := newTestServer()
	id := uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.visits.On("Get", mock.Anything, s.actors["doctor"], id).Return(&dto.VisitResponse{
		RecordMetaResponse: dto.RecordMetaResponse{ID: id, CreatedAt: created, UpdatedAt: created},
		Purpose:            "checkup",
		VisitedAt:          created,
	}, nil)

	first := s.do(http.MethodGet, "/api/record/visit/"+id.String()+"/", "doctor", "")
	second := s.do(http.MethodGet, "/api/record/visit/"+id.String()+"/", "doctor", "")

	require.Equal(t, http.StatusOK, first.Code)
	assert.True(t, bytes.Equal(first.Body.Bytes(), second.Body.Bytes()))
}

func TestRouter_Preflight(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/record/visit/", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
}
