package usecase

import (
	"context"
	"time"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/database"
	"hospital-records/internal/service"
	"hospital-records/pkg/password"
	"hospital-records/pkg/token"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, actor *entity.User, tokenID uuid.UUID) error
	// Authenticate resolves a bearer token to an active Actor and the token id.
	Authenticate(ctx context.Context, rawToken string) (*entity.User, uuid.UUID, error)
}

type authUsecase struct {
	db           database.Transactor
	log          *logrus.Logger
	userRepo     repository.UserRepository
	tokenRepo    repository.AuthTokenRepository
	tokenCache   repository.TokenCache
	auditService service.AuditService
	tokens       *token.Service
	hasher       *password.Hasher
	dummyHash    string
	now          func() time.Time
}

func NewAuthUsecase(
	db database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	tokenRepo repository.AuthTokenRepository,
	tokenCache repository.TokenCache,
	auditService service.AuditService,
	tokens *token.Service,
	hasher *password.Hasher,
) AuthUsecase {
	// compared against when the cnic is unknown so both failure paths cost one bcrypt
	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		log.Warnf("Failed to prepare dummy password hash: %+v", err)
	}

	return &authUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenCache:   tokenCache,
		auditService: auditService,
		tokens:       tokens,
		hasher:       hasher,
		dummyHash:    dummyHash,
		now:          time.Now,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByCNIC(ctx, u.db.DB(ctx), req.CNIC)
	if err != nil {
		u.log.Warnf("Failed to find user by cnic: %+v", err)
		return nil, err
	}

	if user == nil {
		u.hasher.Check(u.dummyHash, req.Password)
		return nil, ErrInvalidCredentials
	}

	if !u.hasher.Check(user.Password, req.Password) || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	authToken, err := u.obtainToken(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to obtain auth token: %+v", err)
		return nil, err
	}

	if err := u.tokenCache.Set(ctx, authToken.ID, user.ID, authToken.ExpiresAt); err != nil {
		u.log.Warnf("Failed to cache auth token: %+v", err)
	}

	if err := u.userRepo.UpdateLastLogin(ctx, u.db.DB(ctx), user.ID); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
	}

	if err := u.auditService.LogEvent(ctx, u.db.DB(ctx), &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"user_id": user.ID.String(),
	}); err != nil {
		u.log.Warnf("Failed to audit login: %+v", err)
	}

	return &dto.TokenResponse{
		Token:     authToken.Key,
		ExpiresAt: authToken.ExpiresAt,
	}, nil
}

// obtainToken returns the Actor's live token, creating one on first login
// and replacing it once it has expired.
func (u *authUsecase) obtainToken(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	existing, err := u.tokenRepo.FindByUserID(ctx, u.db.DB(ctx), userID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.Expired(u.now()) {
		return existing, nil
	}

	tokenID := uuid.New()
	key, expiresAt, err := u.tokens.Issue(tokenID, userID)
	if err != nil {
		return nil, err
	}
	created := &entity.AuthToken{
		ID:        tokenID,
		UserID:    userID,
		Key:       key,
		ExpiresAt: expiresAt,
	}

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if existing != nil {
			if err := u.tokenRepo.Delete(ctx, tx, existing.ID); err != nil {
				return err
			}
		}
		return u.tokenRepo.Create(ctx, tx, created)
	})
	if err != nil {
		if isDuplicateKeyError(err, "user_id") {
			// a concurrent login created the token first
			winner, findErr := u.tokenRepo.FindByUserID(ctx, u.db.DB(ctx), userID)
			if findErr != nil {
				return nil, findErr
			}
			if winner != nil {
				return winner, nil
			}
		}
		return nil, err
	}

	if existing != nil {
		if err := u.tokenCache.Delete(ctx, existing.ID); err != nil {
			u.log.Warnf("Failed to evict expired token from cache: %+v", err)
		}
	}

	return created, nil
}

func (u *authUsecase) Logout(ctx context.Context, actor *entity.User, tokenID uuid.UUID) error {
	err := u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := u.tokenRepo.Delete(ctx, tx, tokenID); err != nil {
			return err
		}
		return u.auditService.LogEvent(ctx, tx, &actor.ID, entity.AuditActionUserLogout, entity.JSON{
			"user_id": actor.ID.String(),
		})
	})
	if err != nil {
		u.log.Warnf("Failed to revoke auth token: %+v", err)
		return err
	}

	if err := u.tokenCache.Delete(ctx, tokenID); err != nil {
		u.log.Warnf("Failed to evict auth token from cache: %+v", err)
	}

	return nil
}

func (u *authUsecase) Authenticate(ctx context.Context, rawToken string) (*entity.User, uuid.UUID, error) {
	claims, err := u.tokens.Parse(rawToken)
	if err != nil {
		return nil, uuid.Nil, ErrInvalidToken
	}
	// Parse guarantees both ids are well formed
	tokenID, _ := claims.TokenID()
	userID, _ := claims.UserID()

	cachedUserID, hit, err := u.tokenCache.Get(ctx, tokenID)
	if err != nil {
		u.log.Warnf("Failed to read token cache: %+v", err)
		hit = false
	}

	if hit {
		if cachedUserID != userID {
			return nil, uuid.Nil, ErrInvalidToken
		}
	} else {
		stored, err := u.tokenRepo.FindByID(ctx, u.db.DB(ctx), tokenID)
		if err != nil {
			u.log.Warnf("Failed to find auth token: %+v", err)
			return nil, uuid.Nil, err
		}
		if stored == nil || stored.Key != rawToken || stored.UserID != userID || stored.Expired(u.now()) {
			return nil, uuid.Nil, ErrInvalidToken
		}
		if err := u.tokenCache.Set(ctx, stored.ID, stored.UserID, stored.ExpiresAt); err != nil {
			u.log.Warnf("Failed to cache auth token: %+v", err)
		}
	}

	user, err := u.userRepo.FindByID(ctx, u.db.DB(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, uuid.Nil, err
	}
	if user == nil || !user.IsActive {
		if err := u.tokenCache.Delete(ctx, tokenID); err != nil {
			u.log.Warnf("Failed to evict auth token from cache: %+v", err)
		}
		return nil, uuid.Nil, ErrInvalidToken
	}

	return user, tokenID, nil
}
