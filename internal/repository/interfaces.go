package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/crediteval/credit-engine/internal/domain"
)

// BorrowerRepository defines the interface for borrower data operations
type BorrowerRepository interface {
	// Create persists a new borrower
	Create(ctx context.Context, borrower *domain.Borrower) error

	// GetByID retrieves a borrower by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error)

	// ListByCreator retrieves borrowers entered by a given user
	ListByCreator(ctx context.Context, userID string) ([]*domain.Borrower, error)
}

// ReportRepository defines the interface for credit report data operations
type ReportRepository interface {
	// Create persists a new report
	Create(ctx context.Context, report *domain.CreditReport) error

	// GetByID retrieves a report by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditReport, error)

	// Update overwrites a persisted report; returns false when no row matched
	Update(ctx context.Context, report *domain.CreditReport) (bool, error)

	// ListByCreator retrieves reports created by a given user
	ListByCreator(ctx context.Context, userID string) ([]*domain.CreditReport, error)

	// ListByStatus retrieves reports in a given lifecycle state
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.CreditReport, error)

	// ListAll retrieves every report
	ListAll(ctx context.Context) ([]*domain.CreditReport, error)
}

// UserRepository defines the interface for user account data operations
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves an active user by id
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves an active user by username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// BlacklistRepository defines the interface for blacklist lookups
type BlacklistRepository interface {
	// IsBlacklisted reports whether the exact full name is blacklisted
	IsBlacklisted(ctx context.Context, fullName string) (bool, error)
}
