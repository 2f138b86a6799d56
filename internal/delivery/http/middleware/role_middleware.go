package middleware

import (
	"net/http"

	"hospital-records/internal/domain/entity"
	"hospital-records/pkg/response"
)

// RequireGroup creates a middleware that checks the Actor belongs to one of groups.
// It must run after AuthMiddleware.
func RequireGroup(groups ...entity.Group) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication credentials were not provided")
				return
			}

			allowed := false
			for _, group := range groups {
				if actor.Group == group {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You do not have permission to perform this action")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireGroup(entity.GroupAdmin)(next)
}
