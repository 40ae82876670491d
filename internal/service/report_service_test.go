package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/tests/mocks"
)

func storedReport(status domain.ReportStatus, score int, loan int64, attractiveness domain.Attractiveness) *domain.CreditReport {
	return &domain.CreditReport{
		ID:             uuid.New(),
		BorrowerID:     uuid.New(),
		BorrowerName:   "Jane Roe",
		MaxLoanAmount:  decimal.NewFromInt(loan),
		Attractiveness: attractiveness,
		RiskLevel:      domain.RiskMedium,
		Status:         status,
		CreatedBy:      "officer-1",
		CreatedByName:  "Officer One",
		Score:          score,
	}
}

func TestUpdateStatus(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	report := storedReport(domain.StatusPending, 70, 50000, domain.AttractivenessMedium)

	reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	reportRepo.On("Update", mock.Anything, report).Return(true, nil)

	svc := NewReportService(reportRepo, nil, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), report.ID, domain.StatusApproved, "manager-1", "Manager One", "looks good")

	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, domain.StatusApproved, report.Status)
	require.NotNil(t, report.ModifiedBy)
	assert.Equal(t, "manager-1", *report.ModifiedBy)
	require.NotNil(t, report.Notes)
	assert.Equal(t, "looks good", *report.Notes)

	reportRepo.AssertExpectations(t)
}

func TestUpdateStatusUnknownReport(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	missingID := uuid.New()

	reportRepo.On("GetByID", mock.Anything, missingID).Return(nil, sql.ErrNoRows)

	svc := NewReportService(reportRepo, nil, nil, nil)

	updated, err := svc.UpdateStatus(context.Background(), missingID, domain.StatusApproved, "manager-1", "Manager One", "")

	require.NoError(t, err)
	assert.False(t, updated)
	reportRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestModifyReport(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	report := storedReport(domain.StatusApproved, 82, 90000, domain.AttractivenessHigh)

	reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	reportRepo.On("Update", mock.Anything, report).Return(true, nil)

	svc := NewReportService(reportRepo, nil, nil, nil)

	amount := decimal.NewFromInt(60000)
	updated, err := svc.ModifyReport(context.Background(), report.ID, amount, domain.AttractivenessMedium, domain.RiskMedium, "manager-1", "Manager One", "offer trimmed")

	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, domain.StatusNeedsCorrection, report.Status)
	assert.True(t, report.MaxLoanAmount.Equal(amount))
	assert.Equal(t, domain.AttractivenessMedium, report.Attractiveness)
	assert.Equal(t, domain.RiskMedium, report.RiskLevel)

	reportRepo.AssertExpectations(t)
}

func TestSendToOfficer(t *testing.T) {
	t.Run("corrected report returns to pending", func(t *testing.T) {
		reportRepo := new(mocks.MockReportRepository)
		report := storedReport(domain.StatusNeedsCorrection, 70, 50000, domain.AttractivenessMedium)

		reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
		reportRepo.On("Update", mock.Anything, report).Return(true, nil)

		svc := NewReportService(reportRepo, nil, nil, nil)

		sent, err := svc.SendToOfficer(context.Background(), report.ID, "manager-1", "Manager One")

		require.NoError(t, err)
		assert.True(t, sent)
		assert.Equal(t, domain.StatusPending, report.Status)
	})

	t.Run("pending report is not eligible", func(t *testing.T) {
		reportRepo := new(mocks.MockReportRepository)
		report := storedReport(domain.StatusPending, 70, 50000, domain.AttractivenessMedium)

		reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)

		svc := NewReportService(reportRepo, nil, nil, nil)

		sent, err := svc.SendToOfficer(context.Background(), report.ID, "manager-1", "Manager One")

		require.NoError(t, err)
		assert.False(t, sent)
		assert.Equal(t, domain.StatusPending, report.Status)
		reportRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown report is a no-op", func(t *testing.T) {
		reportRepo := new(mocks.MockReportRepository)
		missingID := uuid.New()

		reportRepo.On("GetByID", mock.Anything, missingID).Return(nil, sql.ErrNoRows)

		svc := NewReportService(reportRepo, nil, nil, nil)

		sent, err := svc.SendToOfficer(context.Background(), missingID, "manager-1", "Manager One")

		require.NoError(t, err)
		assert.False(t, sent)
	})
}

func TestReportsForUser(t *testing.T) {
	t.Run("officer sees only own reports", func(t *testing.T) {
		reportRepo := new(mocks.MockReportRepository)
		own := []*domain.CreditReport{storedReport(domain.StatusPending, 70, 50000, domain.AttractivenessMedium)}

		reportRepo.On("ListByCreator", mock.Anything, "officer-1").Return(own, nil)

		svc := NewReportService(reportRepo, nil, nil, nil)

		reports, err := svc.ReportsForUser(context.Background(), "officer-1", domain.RoleCreditOfficer)

		require.NoError(t, err)
		assert.Len(t, reports, 1)
		reportRepo.AssertNotCalled(t, "ListAll", mock.Anything)
	})

	t.Run("manager sees everything", func(t *testing.T) {
		reportRepo := new(mocks.MockReportRepository)
		all := []*domain.CreditReport{
			storedReport(domain.StatusPending, 70, 50000, domain.AttractivenessMedium),
			storedReport(domain.StatusApproved, 85, 90000, domain.AttractivenessHigh),
		}

		reportRepo.On("ListAll", mock.Anything).Return(all, nil)

		svc := NewReportService(reportRepo, nil, nil, nil)

		reports, err := svc.ReportsForUser(context.Background(), "manager-1", domain.RoleBankManager)

		require.NoError(t, err)
		assert.Len(t, reports, 2)
		reportRepo.AssertNotCalled(t, "ListByCreator", mock.Anything, mock.Anything)
	})
}

func TestStatistics(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	reports := []*domain.CreditReport{
		storedReport(domain.StatusPending, 80, 100000, domain.AttractivenessHigh),
		storedReport(domain.StatusApproved, 65, 50000, domain.AttractivenessMedium),
		storedReport(domain.StatusRejected, 20, 0, domain.AttractivenessVeryLow),
	}

	reportRepo.On("ListAll", mock.Anything).Return(reports, nil)

	svc := NewReportService(reportRepo, nil, nil, nil)

	stats, err := svc.Statistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["pending"])
	assert.Equal(t, 1, stats.ByStatus["approved"])
	assert.Equal(t, 1, stats.ByStatus["rejected"])
	assert.Equal(t, 0, stats.ByStatus["in_progress"])
	assert.Equal(t, 0, stats.ByStatus["needs_correction"])
	// (80 + 65 + 20) / 3 = 55.0
	assert.Equal(t, 55.0, stats.AverageScore)
	// (100000 + 50000 + 0) / 3 = 50000
	assert.True(t, stats.AverageLoan.Equal(decimal.NewFromInt(50000)),
		"expected avg loan 50000, got %s", stats.AverageLoan)
	assert.Equal(t, 1, stats.HighAttractiveness)
	assert.Equal(t, 1, stats.MediumAttractiveness)
	assert.Equal(t, 0, stats.LowAttractiveness)
}

func TestStatisticsServedFromCache(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	reports := []*domain.CreditReport{
		storedReport(domain.StatusPending, 70, 50000, domain.AttractivenessMedium),
	}

	// Only the first call may reach the repository.
	reportRepo.On("ListAll", mock.Anything).Return(reports, nil).Once()

	svc := NewReportService(reportRepo, newTestRedis(t), nil, nil)

	first, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	second, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.AverageScore, second.AverageScore)
	reportRepo.AssertExpectations(t)
}

func TestStatisticsCacheInvalidatedOnWrite(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	report := storedReport(domain.StatusPending, 70, 50000, domain.AttractivenessMedium)

	reportRepo.On("ListAll", mock.Anything).Return([]*domain.CreditReport{report}, nil).Twice()
	reportRepo.On("GetByID", mock.Anything, report.ID).Return(report, nil)
	reportRepo.On("Update", mock.Anything, report).Return(true, nil)

	svc := NewReportService(reportRepo, newTestRedis(t), nil, nil)

	_, err := svc.Statistics(context.Background())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), report.ID, domain.StatusApproved, "manager-1", "Manager One", "")
	require.NoError(t, err)
	assert.True(t, updated)

	// Cache was dropped; this must hit the repository again.
	_, err = svc.Statistics(context.Background())
	require.NoError(t, err)

	reportRepo.AssertExpectations(t)
}

func TestFoldStatisticsEmpty(t *testing.T) {
	stats := foldStatistics(nil)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.AverageScore)
	assert.True(t, stats.AverageLoan.Equal(decimal.Zero))
	for _, status := range domain.AllStatuses {
		count, ok := stats.ByStatus[status.String()]
		assert.True(t, ok, "missing status %s", status)
		assert.Equal(t, 0, count)
	}
}
