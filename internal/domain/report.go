package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// AnalysisResult is the outcome of one scoring run. It is copied into a
// CreditReport at creation and never persisted on its own.
type AnalysisResult struct {
	MaxLoanAmount   decimal.Decimal `json:"max_loan_amount"`
	Attractiveness  Attractiveness  `json:"attractiveness"`
	RiskLevel       RiskLevel       `json:"risk_level"`
	Recommendations []string        `json:"recommendations"`
	Score           int             `json:"score"`
}

// CreditReport is the persisted outcome of one scoring run plus its review
// lifecycle. The scoring snapshot mirrors the run that created the report and
// is never recomputed in place; reviewers may overwrite it via ApplyScoringEdit.
type CreditReport struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	BorrowerID      uuid.UUID       `json:"borrower_id" db:"borrower_id"`
	BorrowerName    string          `json:"borrower_name" db:"borrower_name"`
	MaxLoanAmount   decimal.Decimal `json:"max_loan_amount" db:"max_loan_amount"`
	Attractiveness  Attractiveness  `json:"attractiveness" db:"attractiveness"`
	RiskLevel       RiskLevel       `json:"risk_level" db:"risk_level"`
	Status          ReportStatus    `json:"status" db:"status"`
	CreatedBy       string          `json:"created_by" db:"created_by"`
	CreatedByName   string          `json:"created_by_name" db:"created_by_name"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	ModifiedAt      *time.Time      `json:"modified_at,omitempty" db:"modified_at"`
	ModifiedBy      *string         `json:"modified_by,omitempty" db:"modified_by"`
	ModifiedByName  *string         `json:"modified_by_name,omitempty" db:"modified_by_name"`
	Recommendations pq.StringArray  `json:"recommendations" db:"recommendations"`
	BlacklistCheck  bool            `json:"blacklist_check" db:"blacklist_check"`
	BlacklistFound  bool            `json:"blacklist_found" db:"blacklist_found"`
	Score           int             `json:"score" db:"score"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
}

// NewCreditReport snapshots an analysis result into a fresh report.
// Status starts as in_progress; the creating workflow is responsible for
// dispositioning it before persistence.
func NewCreditReport(borrower *Borrower, result *AnalysisResult, createdBy, createdByName string) *CreditReport {
	return &CreditReport{
		ID:              uuid.New(),
		BorrowerID:      borrower.ID,
		BorrowerName:    borrower.FullName,
		MaxLoanAmount:   result.MaxLoanAmount,
		Attractiveness:  result.Attractiveness,
		RiskLevel:       result.RiskLevel,
		Status:          StatusInProgress,
		CreatedBy:       createdBy,
		CreatedByName:   createdByName,
		CreatedAt:       time.Now(),
		Recommendations: append(pq.StringArray{}, result.Recommendations...),
		Score:           result.Score,
	}
}

// touch stamps the modification metadata for a reviewer action.
func (r *CreditReport) touch(actorID, actorName string) {
	now := time.Now()
	r.ModifiedAt = &now
	r.ModifiedBy = &actorID
	r.ModifiedByName = &actorName
}

// SetStatus moves the report to the given status. Any status is reachable
// from any other; reviewers retain full manual override.
func (r *CreditReport) SetStatus(status ReportStatus, actorID, actorName, notes string) {
	r.Status = status
	r.touch(actorID, actorName)
	if notes != "" {
		r.Notes = &notes
	}
}

// ApplyScoringEdit overwrites the scoring snapshot. An edited report always
// ends up in needs_correction, regardless of its current status.
func (r *CreditReport) ApplyScoringEdit(amount decimal.Decimal, attractiveness Attractiveness, risk RiskLevel, actorID, actorName, notes string) {
	r.MaxLoanAmount = amount
	r.Attractiveness = attractiveness
	r.RiskLevel = risk
	r.touch(actorID, actorName)
	if notes != "" {
		r.Notes = &notes
	}
	if r.Status != StatusNeedsCorrection {
		r.Status = StatusNeedsCorrection
	}
}

// SendToOfficer hands the report back to the originating officer. Only
// approved and needs_correction reports are eligible; a needs_correction
// report returns to the officer queue as pending, an approved one is
// delivered as-is. Returns false without mutation when ineligible.
func (r *CreditReport) SendToOfficer(actorID, actorName string) bool {
	if r.Status != StatusApproved && r.Status != StatusNeedsCorrection {
		return false
	}

	r.touch(actorID, actorName)
	if r.Status == StatusNeedsCorrection {
		r.Status = StatusPending
	}
	return true
}

// DTOs for requests and responses

type UpdateStatusRequest struct {
	Status    string `json:"status" validate:"required"`
	ActorID   string `json:"actor_id" validate:"required"`
	ActorName string `json:"actor_name" validate:"required"`
	Notes     string `json:"notes"`
}

type EditScoringRequest struct {
	MaxLoanAmount  decimal.Decimal `json:"max_loan_amount"`
	Attractiveness string          `json:"attractiveness" validate:"required"`
	RiskLevel      string          `json:"risk_level" validate:"required"`
	ActorID        string          `json:"actor_id" validate:"required"`
	ActorName      string          `json:"actor_name" validate:"required"`
	Notes          string          `json:"notes"`
}

type SendReportRequest struct {
	ActorID   string `json:"actor_id" validate:"required"`
	ActorName string `json:"actor_name" validate:"required"`
}

type TransitionResponse struct {
	ReportID string `json:"report_id"`
	Updated  bool   `json:"updated"`
}

// ReportStatistics aggregates review outcomes across all reports.
type ReportStatistics struct {
	Total                int            `json:"total"`
	ByStatus             map[string]int `json:"by_status"`
	AverageScore         float64        `json:"avg_score"`
	AverageLoan          decimal.Decimal `json:"avg_loan"`
	HighAttractiveness   int            `json:"high_attractiveness"`
	MediumAttractiveness int            `json:"medium_attractiveness"`
	LowAttractiveness    int            `json:"low_attractiveness"`
}
