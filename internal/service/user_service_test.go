package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crediteval/credit-engine/internal/domain"
	apperrors "github.com/crediteval/credit-engine/pkg/errors"
	"github.com/crediteval/credit-engine/tests/mocks"
)

func newUserRequest() *domain.CreateUserRequest {
	return &domain.CreateUserRequest{
		Username:   "jdoe",
		FullName:   "John Doe",
		Role:       "credit_officer",
		Email:      "jdoe@example.com",
		Phone:      "+1-555-0101",
		Department: "Lending",
	}
}

func TestCreateUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)

	userRepo.On("GetByUsername", mock.Anything, "jdoe").Return(nil, sql.ErrNoRows)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewUserService(userRepo, nil)

	user, err := svc.CreateUser(context.Background(), newUserRequest())

	require.NoError(t, err)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, domain.RoleCreditOfficer, user.Role)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+1-555-0101", *user.Phone)

	userRepo.AssertExpectations(t)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)

	existing := domain.NewUser("jdoe", "John Doe", domain.RoleCreditOfficer, "jdoe@example.com", "", "")
	userRepo.On("GetByUsername", mock.Anything, "jdoe").Return(existing, nil)

	svc := NewUserService(userRepo, nil)

	_, err := svc.CreateUser(context.Background(), newUserRequest())

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUserExists))
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUserUnknownRole(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)

	svc := NewUserService(userRepo, nil)

	req := newUserRequest()
	req.Role = "administrator"

	_, err := svc.CreateUser(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownRole))
	userRepo.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
}

func TestGetUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	existing := domain.NewUser("jdoe", "John Doe", domain.RoleBankManager, "jdoe@example.com", "", "")

	userRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	svc := NewUserService(userRepo, nil)

	user, err := svc.GetUser(context.Background(), existing.ID)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
}

func TestGetUserNotFound(t *testing.T) {
	userRepo := new(mocks.MockUserRepository)
	missingID := uuid.New()

	userRepo.On("GetByID", mock.Anything, missingID).Return(nil, sql.ErrNoRows)

	svc := NewUserService(userRepo, nil)

	_, err := svc.GetUser(context.Background(), missingID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUserNotFound))
}
