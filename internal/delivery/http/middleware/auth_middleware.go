package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/usecase"
	"hospital-records/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorKey   contextKey = "actor"
	TokenIDKey contextKey = "token_id"
)

type AuthMiddleware struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthMiddleware(authUsecase usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		authUsecase: authUsecase,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authentication credentials were not provided")
			return
		}

		// "Bearer <token>" or "Token <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || (!strings.EqualFold(parts[0], "Bearer") && !strings.EqualFold(parts[0], "Token")) {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		actor, tokenID, err := m.authUsecase.Authenticate(r.Context(), parts[1])
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidToken) {
				response.Unauthorized(w, "Invalid token")
				return
			}
			response.InternalServerError(w, "Failed to validate token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor, tokenID)))
	})
}

// ActorFromContext returns the authenticated Actor
func ActorFromContext(ctx context.Context) (*entity.User, bool) {
	actor, ok := ctx.Value(ActorKey).(*entity.User)
	return actor, ok && actor != nil
}

// TokenIDFromContext returns the id of the token the request used
func TokenIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(uuid.UUID)
	return tokenID, ok
}

// WithActor stores actor and tokenID the way Authenticate does.
func WithActor(ctx context.Context, actor *entity.User, tokenID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, ActorKey, actor)
	return context.WithValue(ctx, TokenIDKey, tokenID)
}
