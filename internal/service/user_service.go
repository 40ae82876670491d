package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/internal/repository"
	customError "github.com/crediteval/credit-engine/pkg/errors"
)

// UserService manages system accounts. Authentication and credential
// storage live outside this service.
type UserService struct {
	UserRepo repository.UserRepository

	logger *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UserService{
		UserRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser registers a new account with a validated role.
func (s *UserService) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	role, err := domain.ParseUserRole(req.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapUserExists(req.Username)
	}

	user := domain.NewUser(req.Username, req.FullName, role, req.Email, req.Phone, req.Department)

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)

	return user, nil
}

// GetUser retrieves an active user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapUserNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return user, nil
}
