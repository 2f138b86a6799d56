package usecase

import (
	"context"
	"errors"

	"hospital-records/internal/converter"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/database"
	"hospital-records/internal/policy"
	"hospital-records/internal/service"
	"hospital-records/pkg/password"
	"hospital-records/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const userEntityName = "user"

type UserUsecase interface {
	List(ctx context.Context, actor *entity.User, listType entity.UserListType) ([]dto.UserResponse, error)
	Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.UserResponse, error)
	// Create accepts a nil actor for system-created accounts.
	Create(ctx context.Context, actor *entity.User, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type UserUsecaseOptions struct {
	// ApplyProfileUpdates persists the role payload on update instead of discarding it.
	ApplyProfileUpdates bool
}

type userUsecase struct {
	db           database.Transactor
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	tokenRepo    repository.AuthTokenRepository
	tokenCache   repository.TokenCache
	auditService service.AuditService
	hasher       *password.Hasher
	validator    *validator.CustomValidator
	opts         UserUsecaseOptions
}

func NewUserUsecase(
	db database.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokenRepo repository.AuthTokenRepository,
	tokenCache repository.TokenCache,
	auditService service.AuditService,
	hasher *password.Hasher,
	validator *validator.CustomValidator,
	opts UserUsecaseOptions,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		tokenRepo:    tokenRepo,
		tokenCache:   tokenCache,
		auditService: auditService,
		hasher:       hasher,
		validator:    validator,
		opts:         opts,
	}
}

func (u *userUsecase) List(ctx context.Context, actor *entity.User, listType entity.UserListType) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx, u.db.DB(ctx), policy.UserScope(actor, listType))
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	return converter.UsersToResponses(users), nil
}

func (u *userUsecase) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) findVisible(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.User, error) {
	user, err := u.userRepo.FindScoped(ctx, u.db.DB(ctx), id, policy.UserScope(actor, entity.UserListAll))
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *userUsecase) Create(ctx context.Context, actor *entity.User, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	// a nil actor is the createadmin command
	if actor != nil && (req.IsActive != nil || req.IsStaff != nil) && !policy.CanChangeUserFlags(actor) {
		return nil, ErrForbidden
	}

	group := entity.Group(req.Group)
	if !group.Valid() {
		return nil, NewValidationError("group", "group must be one of: patient, nurse, doctor, admin")
	}

	role, err := u.decodeRole(group, req.Role)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		CNIC:             req.CNIC,
		Email:            req.Email,
		Password:         hashedPassword,
		Contact:          req.Contact,
		EmergencyContact: req.EmergencyContact,
		FirstName:        req.FirstName,
		MiddleName:       req.MiddleName,
		LastName:         req.LastName,
		City:             req.City,
		Country:          req.Country,
		Address:          req.Address,
		Gender:           req.Gender,
		Group:            group,
		IsActive:         true,
	}
	if user.Gender == "" {
		user.Gender = "male"
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if actor != nil {
		user.CreatedByID = &actor.ID
		user.UpdatedByID = &actor.ID
	}

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if role != nil {
			profile := role.NewProfile()
			if err := u.profileRepo.Create(ctx, tx, profile); err != nil {
				return err
			}
			user.AttachProfile(profile)
		}

		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		return u.auditService.LogCreate(ctx, tx, actorID(actor), userEntityName, user.ID.String(), converter.UserToResponse(user))
	})
	if err != nil {
		if verr := userConstraintError(err); verr != nil {
			return nil, verr
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Group != nil && entity.Group(*req.Group) != user.Group {
		return nil, NewValidationError("group", "group cannot be changed")
	}
	if (req.IsActive != nil || req.IsStaff != nil) && !policy.CanChangeUserFlags(actor) {
		return nil, ErrForbidden
	}

	// the role payload is always validated, but only persisted when enabled
	role, err := u.decodeRole(user.Group, req.Role)
	if err != nil {
		return nil, err
	}

	oldValue := converter.UserToResponse(user)

	if req.Password != nil {
		hashedPassword, err := u.hasher.Hash(*req.Password)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		user.Password = hashedPassword
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	setIfPresent(&user.Contact, req.Contact)
	setIfPresent(&user.EmergencyContact, req.EmergencyContact)
	setIfPresent(&user.FirstName, req.FirstName)
	setIfPresent(&user.MiddleName, req.MiddleName)
	setIfPresent(&user.LastName, req.LastName)
	setIfPresent(&user.City, req.City)
	setIfPresent(&user.Country, req.Country)
	setIfPresent(&user.Address, req.Address)
	setIfPresent(&user.Gender, req.Gender)
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	user.UpdatedByID = &actor.ID

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if role != nil && u.opts.ApplyProfileUpdates {
			if err := u.applyRole(ctx, tx, user, role); err != nil {
				return err
			}
		}

		if err := u.userRepo.Update(ctx, tx, user); err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, &actor.ID, userEntityName, user.ID.String(), oldValue, converter.UserToResponse(user))
	})
	if err != nil {
		if verr := userConstraintError(err); verr != nil {
			return nil, verr
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if req.IsActive != nil && !user.IsActive {
		u.revokeToken(ctx, user.ID)
	}

	return converter.UserToResponse(user), nil
}

// applyRole updates the linked profile, or creates and links one when none exists.
func (u *userUsecase) applyRole(ctx context.Context, tx *gorm.DB, user *entity.User, role dto.RoleRequest) error {
	profile := user.Profile()
	if profile == nil {
		profile = role.NewProfile()
		if err := u.profileRepo.Create(ctx, tx, profile); err != nil {
			return err
		}
		user.AttachProfile(profile)
		return nil
	}

	role.ApplyTo(profile)
	return u.profileRepo.Update(ctx, tx, profile)
}

func (u *userUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if !policy.CanDeleteUser(actor) {
		return ErrForbidden
	}

	user, err := u.findVisible(ctx, actor, id)
	if err != nil {
		return err
	}

	authToken, err := u.tokenRepo.FindByUserID(ctx, u.db.DB(ctx), user.ID)
	if err != nil {
		u.log.Warnf("Failed to find auth token: %+v", err)
		return err
	}

	err = u.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := u.auditService.LogDelete(ctx, tx, &actor.ID, userEntityName, user.ID.String(), converter.UserToResponse(user)); err != nil {
			return err
		}
		if err := u.tokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return err
		}
		// clinical records go with the user through ON DELETE CASCADE
		if err := u.userRepo.Delete(ctx, tx, user.ID); err != nil {
			return err
		}
		if profile := user.Profile(); profile != nil {
			return u.profileRepo.Delete(ctx, tx, profile)
		}
		return nil
	})
	if err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	if authToken != nil {
		if err := u.tokenCache.Delete(ctx, authToken.ID); err != nil {
			u.log.Warnf("Failed to evict auth token from cache: %+v", err)
		}
	}

	return nil
}

// decodeRole decodes and validates the role payload for group.
func (u *userUsecase) decodeRole(group entity.Group, raw []byte) (dto.RoleRequest, error) {
	role, err := dto.DecodeRole(group, raw)
	if err != nil {
		return nil, NewValidationError("role", "role is invalid for group "+group.String())
	}
	if role == nil {
		return nil, nil
	}

	if err := u.validator.Validate(role); err != nil {
		fields := u.validator.FormatValidationErrors(err)
		prefixed := make(map[string]string, len(fields))
		for k, v := range fields {
			prefixed["role."+k] = v
		}
		return nil, &ValidationError{Fields: prefixed}
	}
	return role, nil
}

// revokeToken drops the login token of a deactivated user.
func (u *userUsecase) revokeToken(ctx context.Context, userID uuid.UUID) {
	authToken, err := u.tokenRepo.FindByUserID(ctx, u.db.DB(ctx), userID)
	if err != nil || authToken == nil {
		return
	}
	if err := u.tokenRepo.Delete(ctx, u.db.DB(ctx), authToken.ID); err != nil {
		u.log.Warnf("Failed to revoke auth token: %+v", err)
		return
	}
	if err := u.tokenCache.Delete(ctx, authToken.ID); err != nil {
		u.log.Warnf("Failed to evict auth token from cache: %+v", err)
	}
}

// userConstraintError maps storage constraint violations to field errors.
func userConstraintError(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	switch {
	case isDuplicateKeyError(err, "cnic"):
		return NewValidationError("cnic", "user with this cnic already exists")
	case isDuplicateKeyError(err, "email"):
		return NewValidationError("email", "user with this email already exists")
	case isForeignKeyError(err, "nurse_id"):
		return NewValidationError("role.nurse", "nurse profile does not exist")
	}
	return nil
}

func actorID(actor *entity.User) *uuid.UUID {
	if actor == nil {
		return nil
	}
	return &actor.ID
}

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
