package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crediteval/credit-engine/internal/domain"
)

const reportColumns = `id, borrower_id, borrower_name, max_loan_amount, attractiveness, risk_level,
	status, created_by, created_by_name, created_at, modified_at, modified_by, modified_by_name,
	recommendations, blacklist_check, blacklist_found, score, notes`

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.CreditReport) error {
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.BorrowerID,
		report.BorrowerName,
		report.MaxLoanAmount,
		report.Attractiveness,
		report.RiskLevel,
		report.Status,
		report.CreatedBy,
		report.CreatedByName,
		report.CreatedAt,
		report.ModifiedAt,
		report.ModifiedBy,
		report.ModifiedByName,
		report.Recommendations,
		report.BlacklistCheck,
		report.BlacklistFound,
		report.Score,
		report.Notes,
	)

	return err
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CreditReport, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	var report domain.CreditReport
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *reportRepository) Update(ctx context.Context, report *domain.CreditReport) (bool, error) {
	query := `
		UPDATE reports
		SET max_loan_amount = $2, attractiveness = $3, risk_level = $4, status = $5,
			modified_at = $6, modified_by = $7, modified_by_name = $8,
			recommendations = $9, notes = $10
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.MaxLoanAmount,
		report.Attractiveness,
		report.RiskLevel,
		report.Status,
		report.ModifiedAt,
		report.ModifiedBy,
		report.ModifiedByName,
		report.Recommendations,
		report.Notes,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func (r *reportRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.CreditReport, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE created_by = $1 ORDER BY created_at DESC`

	var reports []*domain.CreditReport
	err := r.db.SelectContext(ctx, &reports, query, userID)
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.CreditReport, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE status = $1 ORDER BY created_at DESC`

	var reports []*domain.CreditReport
	err := r.db.SelectContext(ctx, &reports, query, status)
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]*domain.CreditReport, error) {
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`

	var reports []*domain.CreditReport
	err := r.db.SelectContext(ctx, &reports, query)
	if err != nil {
		return nil, err
	}

	return reports, nil
}
