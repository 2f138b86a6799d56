package handler

import (
	"encoding/json"
	"net/http"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/delivery/http/middleware"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/response"
	"hospital-records/pkg/validator"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/user", Handler: h.ListUsers},
		{Method: http.MethodPost, Path: "/user", Handler: h.CreateUser},
		{Method: http.MethodGet, Path: "/user/{id}", Handler: h.GetUser},
		{Method: http.MethodPatch, Path: "/user/{id}", Handler: h.UpdateUser},
		{Method: http.MethodDelete, Path: "/user/{id}", Handler: h.DeleteUser},
	}
}

// ListUsers accepts ?type=self|patient to narrow the visible set.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	listType := entity.ParseUserListType(r.URL.Query().Get("type"))

	users, err := h.userUsecase.List(r.Context(), actor, listType)
	if err != nil {
		writeError(w, err, "", "Failed to get users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.Create(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err, "", "Failed to create user")
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	user, err := h.userUsecase.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, "User not found", "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "User not found")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.userUsecase.Update(r.Context(), actor, id, &req)
	if err != nil {
		writeError(w, err, "User not found", "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		// admin check still comes first
		if !actor.IsAdmin() {
			response.Forbidden(w, "You do not have permission to perform this action")
			return
		}
		response.NotFound(w, "User not found")
		return
	}

	if err := h.userUsecase.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err, "User not found", "Failed to delete user")
		return
	}

	response.NoContent(w)
}
