package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/crediteval/credit-engine/pkg/errors"
)

// Borrower represents a loan applicant. Financial attributes are immutable
// after creation; only the blacklist flags are set later, at scoring time.
type Borrower struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	FullName           string          `json:"full_name" db:"full_name"`
	PassportSeries     string          `json:"passport_series" db:"passport_series"`
	PassportNumber     string          `json:"passport_number" db:"passport_number"`
	BirthDate          time.Time       `json:"birth_date" db:"birth_date"`
	Income             decimal.Decimal `json:"income" db:"income"`
	Expenses           decimal.Decimal `json:"expenses" db:"expenses"`
	CreditHistoryScore int             `json:"credit_history_score" db:"credit_history_score"`
	ExistingLoans      decimal.Decimal `json:"existing_loans" db:"existing_loans"`
	EmploymentYears    int             `json:"employment_years" db:"employment_years"`
	EmployerName       string          `json:"employer_name" db:"employer_name"`
	Position           string          `json:"position" db:"position"`
	Address            string          `json:"address" db:"address"`
	Phone              string          `json:"phone" db:"phone"`
	Email              *string         `json:"email,omitempty" db:"email"`
	Blacklisted        bool            `json:"blacklisted" db:"blacklisted"`
	BlacklistReason    *string         `json:"blacklist_reason,omitempty" db:"blacklist_reason"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	CreatedBy          string          `json:"created_by" db:"created_by"`
}

// NewBorrower builds a Borrower from a create request with a fresh id.
func NewBorrower(req *CreateBorrowerRequest, createdBy string) *Borrower {
	b := &Borrower{
		ID:                 uuid.New(),
		FullName:           req.FullName,
		PassportSeries:     req.PassportSeries,
		PassportNumber:     req.PassportNumber,
		BirthDate:          req.BirthDate,
		Income:             req.Income,
		Expenses:           req.Expenses,
		CreditHistoryScore: req.CreditHistoryScore,
		ExistingLoans:      req.ExistingLoans,
		EmploymentYears:    req.EmploymentYears,
		EmployerName:       req.EmployerName,
		Position:           req.Position,
		Address:            req.Address,
		Phone:              req.Phone,
		CreatedAt:          time.Now(),
		CreatedBy:          createdBy,
	}

	if req.Email != "" {
		email := req.Email
		b.Email = &email
	}

	return b
}

// Validate enforces the structural invariants required before scoring:
// credit history in [0,100] and non-negative money fields.
func (b *Borrower) Validate() error {
	if b.FullName == "" {
		return apperrors.WrapValidationError("full_name", "must not be empty")
	}
	if b.CreditHistoryScore < 0 || b.CreditHistoryScore > 100 {
		return apperrors.WrapValidationError("credit_history_score", "must be between 0 and 100")
	}
	if b.Income.IsNegative() {
		return apperrors.WrapValidationError("income", "must not be negative")
	}
	if b.Expenses.IsNegative() {
		return apperrors.WrapValidationError("expenses", "must not be negative")
	}
	if b.ExistingLoans.IsNegative() {
		return apperrors.WrapValidationError("existing_loans", "must not be negative")
	}
	if b.EmploymentYears < 0 {
		return apperrors.WrapValidationError("employment_years", "must not be negative")
	}
	return nil
}

// MarkBlacklisted flags the borrower as blacklisted. The flag is never unset.
func (b *Borrower) MarkBlacklisted(reason string) {
	b.Blacklisted = true
	b.BlacklistReason = &reason
}

// DisposableIncome is income minus expenses; may be negative.
func (b *Borrower) DisposableIncome() decimal.Decimal {
	return b.Income.Sub(b.Expenses)
}

// DTOs for requests and responses

type CreateBorrowerRequest struct {
	FullName           string          `json:"full_name" validate:"required"`
	PassportSeries     string          `json:"passport_series" validate:"required"`
	PassportNumber     string          `json:"passport_number" validate:"required"`
	BirthDate          time.Time       `json:"birth_date" validate:"required"`
	Income             decimal.Decimal `json:"income"`
	Expenses           decimal.Decimal `json:"expenses"`
	CreditHistoryScore int             `json:"credit_history_score" validate:"gte=0,lte=100"`
	ExistingLoans      decimal.Decimal `json:"existing_loans"`
	EmploymentYears    int             `json:"employment_years" validate:"gte=0"`
	EmployerName       string          `json:"employer_name" validate:"required"`
	Position           string          `json:"position" validate:"required"`
	Address            string          `json:"address" validate:"required"`
	Phone              string          `json:"phone" validate:"required"`
	Email              string          `json:"email" validate:"omitempty,email"`
	ActorID            string          `json:"actor_id" validate:"required"`
	ActorName          string          `json:"actor_name" validate:"required"`
}

type ApplicationResponse struct {
	Borrower        *Borrower       `json:"borrower"`
	Report          *CreditReport   `json:"report"`
	Result          *AnalysisResult `json:"result"`
	Blacklisted     bool            `json:"blacklisted"`
	BlacklistReason string          `json:"blacklist_reason,omitempty"`
}

type AnalyzeResponse struct {
	Result          *AnalysisResult `json:"result"`
	Blacklisted     bool            `json:"blacklisted"`
	BlacklistReason string          `json:"blacklist_reason,omitempty"`
}
