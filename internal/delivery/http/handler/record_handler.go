package handler

import (
	"encoding/json"
	"net/http"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/delivery/http/middleware"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/response"
	"hospital-records/pkg/validator"
)

// RecordHandler serves one clinical record kind under /record/{kind}.
type RecordHandler[P any, R any] struct {
	kind          string
	label         string
	recordUsecase usecase.RecordUsecase[P, R]
	validator     *validator.CustomValidator
	newCreate     func() dto.RecordCreateRequest[P]
	newUpdate     func() dto.RecordUpdateRequest[P]
}

// NewRecordHandler builds the handler for kind, the path segment such as "visit".
// label names the record in messages. newCreate and newUpdate return fresh
// request DTOs to decode into.
func NewRecordHandler[P any, R any](
	kind string,
	label string,
	recordUsecase usecase.RecordUsecase[P, R],
	validator *validator.CustomValidator,
	newCreate func() dto.RecordCreateRequest[P],
	newUpdate func() dto.RecordUpdateRequest[P],
) *RecordHandler[P, R] {
	return &RecordHandler[P, R]{
		kind:          kind,
		label:         label,
		recordUsecase: recordUsecase,
		validator:     validator,
		newCreate:     newCreate,
		newUpdate:     newUpdate,
	}
}

func (h *RecordHandler[P, R]) Routes() []Route {
	base := "/record/" + h.kind
	return []Route{
		{Method: http.MethodGet, Path: base, Handler: h.List},
		{Method: http.MethodPost, Path: base, Handler: h.Create},
		{Method: http.MethodGet, Path: base + "/{id}", Handler: h.Get},
		{Method: http.MethodPatch, Path: base + "/{id}", Handler: h.Update},
		{Method: http.MethodDelete, Path: base + "/{id}", Handler: h.Delete},
	}
}

func (h *RecordHandler[P, R]) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	records, err := h.recordUsecase.List(r.Context(), actor)
	if err != nil {
		writeError(w, err, "", "Failed to get "+h.label+" records")
		return
	}

	response.Success(w, http.StatusOK, h.label+" records retrieved successfully", records)
}

func (h *RecordHandler[P, R]) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	req := h.newCreate()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), actor, req)
	if err != nil {
		writeError(w, err, "", "Failed to create "+h.label+" record")
		return
	}

	response.Success(w, http.StatusCreated, h.label+" record created successfully", record)
}

func (h *RecordHandler[P, R]) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, h.label+" record not found")
		return
	}

	record, err := h.recordUsecase.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, err, h.label+" record not found", "Failed to get "+h.label+" record")
		return
	}

	response.Success(w, http.StatusOK, h.label+" record retrieved successfully", record)
}

func (h *RecordHandler[P, R]) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, h.label+" record not found")
		return
	}

	req := h.newUpdate()
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), actor, id, req)
	if err != nil {
		writeError(w, err, h.label+" record not found", "Failed to update "+h.label+" record")
		return
	}

	response.Success(w, http.StatusOK, h.label+" record updated successfully", record)
}

func (h *RecordHandler[P, R]) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, h.label+" record not found")
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), actor, id); err != nil {
		writeError(w, err, h.label+" record not found", "Failed to delete "+h.label+" record")
		return
	}

	response.NoContent(w)
}
