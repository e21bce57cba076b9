package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/scootly/scootly-backend/internal/stores"
	"github.com/scootly/scootly-backend/internal/users"
	"github.com/scootly/scootly-backend/pkg/config"
	"github.com/scootly/scootly-backend/pkg/db"
	"github.com/scootly/scootly-backend/pkg/enums"
	pkgerrors "github.com/scootly/scootly-backend/pkg/errors"
	"github.com/scootly/scootly-backend/pkg/security"
)

// RegisterService handles account onboarding.
type RegisterService interface {
	SignupRider(ctx context.Context, req SignupRiderRequest) (*users.UserDTO, error)
	SignupStore(ctx context.Context, req SignupStoreRequest) (*stores.StoreDTO, error)
}

type registerTxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RegisterServiceParams packages the dependencies for the registration flows.
type RegisterServiceParams struct {
	DB             registerTxRunner
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          registerTxRunner
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

// SignupRider creates a rider account ready to log in immediately.
func (s *registerService) SignupRider(ctx context.Context, req SignupRiderRequest) (*users.UserDTO, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var dto *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)

		if err := ensureEmailFree(ctx, userRepo, email); err != nil {
			return err
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         strings.TrimSpace(req.Name),
			Role:         enums.RoleRider,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		dto = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// SignupStore creates a store operator account plus its store in one
// transaction. The store starts unapproved: the operator cannot log in until
// an admin accepts it.
func (s *registerService) SignupStore(ctx context.Context, req SignupStoreRequest) (*stores.StoreDTO, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	storeEmail, err := normalizeEmail(req.StoreEmail)
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var dto *stores.StoreDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		storeRepo := stores.NewRepository(tx)

		if err := ensureEmailFree(ctx, userRepo, email); err != nil {
			return err
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			Name:         strings.TrimSpace(req.Name),
			Role:         enums.RoleStore,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}

		store, err := storeRepo.CreateWithTx(tx, stores.CreateStoreDTO{
			Name:        strings.TrimSpace(req.StoreName),
			Email:       storeEmail,
			Description: req.Description,
			Address:     strings.TrimSpace(req.Address),
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			OwnerID:     user.ID,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "store email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create store")
		}

		if err := userRepo.SetStoreIDWithTx(tx, user.ID, store.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "link store operator")
		}

		dto = stores.FromModel(store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	return email, nil
}

func ensureEmailFree(ctx context.Context, repo *users.Repository, email string) error {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}
	return nil
}
