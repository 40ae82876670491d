package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/crediteval/credit-engine/internal/domain"
)

type MockBorrowerRepository struct {
	mock.Mock
}

func (m *MockBorrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) error {
	args := m.Called(ctx, borrower)
	return args.Error(0)
}

func (m *MockBorrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Borrower), args.Error(1)
}

func (m *MockBorrowerRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Borrower, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Borrower), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *domain.CreditReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditReport), args.Error(1)
}

func (m *MockReportRepository) Update(ctx context.Context, report *domain.CreditReport) (bool, error) {
	args := m.Called(ctx, report)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.CreditReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CreditReport), args.Error(1)
}

func (m *MockReportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.CreditReport, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CreditReport), args.Error(1)
}

func (m *MockReportRepository) ListAll(ctx context.Context) ([]*domain.CreditReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CreditReport), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) IsBlacklisted(ctx context.Context, fullName string) (bool, error) {
	args := m.Called(ctx, fullName)
	return args.Bool(0), args.Error(1)
}
