package handler

import (
	"errors"
	"net/http"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Route is one entry of the static route table.
// Paths are relative to /api and written without a trailing slash.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
	// Public routes skip authentication.
	Public bool
	// Groups restricts the route to the listed groups; empty means any authenticated Actor.
	Groups []entity.Group
}

// writeError maps use case errors onto the response envelope.
func writeError(w http.ResponseWriter, err error, notFound, failure string) {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrRecordNotFound),
		errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, notFound)
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.BadRequest(w, "Unable to authenticate with provided credentials")
	case errors.Is(err, usecase.ErrInvalidToken):
		response.Unauthorized(w, "Invalid token")
	default:
		response.InternalServerError(w, failure)
	}
}

// pathID parses the {id} path variable. A malformed id cannot name anything,
// so callers answer 404.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
