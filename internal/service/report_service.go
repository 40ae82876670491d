package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/crediteval/credit-engine/internal/config"
	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/internal/repository"
	customError "github.com/crediteval/credit-engine/pkg/errors"
	"github.com/crediteval/credit-engine/pkg/utils"
)

const defaultStatsCacheTTL = 5 * time.Minute

// ReportService exposes the reviewer-facing lifecycle operations and the
// report listings. Transitions on unknown report ids return (false, nil) so
// reviewer workflows stay non-fatal.
type ReportService struct {
	ReportRepo repository.ReportRepository

	redis  *redis.Client
	config *config.Config
	logger *zap.Logger
}

func NewReportService(
	reportRepo repository.ReportRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ReportService{
		ReportRepo: reportRepo,
		redis:      redisClient,
		config:     cfg,
		logger:     logger,
	}
}

// GetReport retrieves a report by id.
func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID) (*domain.CreditReport, error) {
	report, err := s.ReportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapReportNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return report, nil
}

// ReportsForUser lists reports visible to the given user: officers see
// their own, managers see everything.
func (s *ReportService) ReportsForUser(ctx context.Context, userID string, role domain.UserRole) ([]*domain.CreditReport, error) {
	var (
		reports []*domain.CreditReport
		err     error
	)

	if role == domain.RoleCreditOfficer {
		reports, err = s.ReportRepo.ListByCreator(ctx, userID)
	} else {
		reports, err = s.ReportRepo.ListAll(ctx)
	}

	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return reports, nil
}

// ListByStatus lists reports in a given lifecycle state.
func (s *ReportService) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]*domain.CreditReport, error) {
	reports, err := s.ReportRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return reports, nil
}

// UpdateStatus moves a report to the given status and stamps modification
// metadata. Any status is reachable from any other.
func (s *ReportService) UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus, actorID, actorName, notes string) (bool, error) {
	report, err := s.ReportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, customError.WrapDatabaseError(err)
	}

	report.SetStatus(status, actorID, actorName, notes)

	updated, err := s.ReportRepo.Update(ctx, report)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("report status updated",
		zap.String("report_id", reportID.String()),
		zap.String("status", status.String()),
		zap.String("actor_id", actorID),
	)

	return updated, nil
}

// ModifyReport applies a reviewer edit to the scoring snapshot. The report
// always ends up in needs_correction.
func (s *ReportService) ModifyReport(ctx context.Context, reportID uuid.UUID, amount decimal.Decimal, attractiveness domain.Attractiveness, risk domain.RiskLevel, actorID, actorName, notes string) (bool, error) {
	report, err := s.ReportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, customError.WrapDatabaseError(err)
	}

	report.ApplyScoringEdit(amount, attractiveness, risk, actorID, actorName, notes)

	updated, err := s.ReportRepo.Update(ctx, report)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	s.invalidateStatsCache(ctx)

	return updated, nil
}

// SendToOfficer delivers an approved or corrected report back to the
// originating officer. Ineligible reports are left untouched.
func (s *ReportService) SendToOfficer(ctx context.Context, reportID uuid.UUID, actorID, actorName string) (bool, error) {
	report, err := s.ReportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, customError.WrapDatabaseError(err)
	}

	if !report.SendToOfficer(actorID, actorName) {
		return false, nil
	}

	updated, err := s.ReportRepo.Update(ctx, report)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("report sent to officer",
		zap.String("report_id", reportID.String()),
		zap.String("officer", report.CreatedByName),
	)

	return updated, nil
}

// Statistics folds all reports into the dashboard aggregates. Results are
// cached and invalidated on every report write.
func (s *ReportService) Statistics(ctx context.Context) (*domain.ReportStatistics, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats domain.ReportStatistics
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("statistics cache lookup failed", zap.Error(err))
		}
	}

	reports, err := s.ReportRepo.ListAll(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	stats := foldStatistics(reports)

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, payload, s.statsCacheTTL()).Err(); err != nil {
				s.logger.Warn("statistics cache write failed", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func foldStatistics(reports []*domain.CreditReport) *domain.ReportStatistics {
	stats := &domain.ReportStatistics{
		ByStatus:    make(map[string]int, len(domain.AllStatuses)),
		AverageLoan: decimal.Zero,
	}

	for _, status := range domain.AllStatuses {
		stats.ByStatus[status.String()] = 0
	}

	scoreSum := 0
	loans := make([]decimal.Decimal, 0, len(reports))

	for _, report := range reports {
		stats.Total++
		stats.ByStatus[report.Status.String()]++
		scoreSum += report.Score
		loans = append(loans, report.MaxLoanAmount)

		switch report.Attractiveness {
		case domain.AttractivenessHigh:
			stats.HighAttractiveness++
		case domain.AttractivenessMedium:
			stats.MediumAttractiveness++
		case domain.AttractivenessLow:
			stats.LowAttractiveness++
		}
	}

	if stats.Total > 0 {
		stats.AverageScore = utils.Round1(float64(scoreSum) / float64(stats.Total))
	}
	stats.AverageLoan = utils.AverageDecimal(loans)

	return stats
}

func (s *ReportService) statsCacheTTL() time.Duration {
	if s.config == nil {
		return defaultStatsCacheTTL
	}
	return s.config.GetStatsCacheTTL()
}

func (s *ReportService) invalidateStatsCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
	}
}
