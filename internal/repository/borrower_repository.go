package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crediteval/credit-engine/internal/domain"
)

type borrowerRepository struct {
	db *sqlx.DB
}

func NewBorrowerRepository(db *sqlx.DB) BorrowerRepository {
	return &borrowerRepository{db: db}
}

func (r *borrowerRepository) Create(ctx context.Context, borrower *domain.Borrower) error {
	query := `
		INSERT INTO borrowers (id, full_name, passport_series, passport_number, birth_date,
			income, expenses, credit_history_score, existing_loans, employment_years,
			employer_name, position, address, phone, email,
			blacklisted, blacklist_reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.db.ExecContext(ctx, query,
		borrower.ID,
		borrower.FullName,
		borrower.PassportSeries,
		borrower.PassportNumber,
		borrower.BirthDate,
		borrower.Income,
		borrower.Expenses,
		borrower.CreditHistoryScore,
		borrower.ExistingLoans,
		borrower.EmploymentYears,
		borrower.EmployerName,
		borrower.Position,
		borrower.Address,
		borrower.Phone,
		borrower.Email,
		borrower.Blacklisted,
		borrower.BlacklistReason,
		borrower.CreatedAt,
		borrower.CreatedBy,
	)

	return err
}

func (r *borrowerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	query := `
		SELECT id, full_name, passport_series, passport_number, birth_date,
			income, expenses, credit_history_score, existing_loans, employment_years,
			employer_name, position, address, phone, email,
			blacklisted, blacklist_reason, created_at, created_by
		FROM borrowers
		WHERE id = $1
	`

	var borrower domain.Borrower
	err := r.db.GetContext(ctx, &borrower, query, id)
	if err != nil {
		return nil, err
	}

	return &borrower, nil
}

func (r *borrowerRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Borrower, error) {
	query := `
		SELECT id, full_name, passport_series, passport_number, birth_date,
			income, expenses, credit_history_score, existing_loans, employment_years,
			employer_name, position, address, phone, email,
			blacklisted, blacklist_reason, created_at, created_by
		FROM borrowers
		WHERE created_by = $1
		ORDER BY created_at DESC
	`

	var borrowers []*domain.Borrower
	err := r.db.SelectContext(ctx, &borrowers, query, userID)
	if err != nil {
		return nil, err
	}

	return borrowers, nil
}
