package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crediteval/credit-engine/internal/config"
	"github.com/crediteval/credit-engine/internal/domain"
	"github.com/crediteval/credit-engine/internal/repository"
	"github.com/crediteval/credit-engine/internal/scoring"
	customError "github.com/crediteval/credit-engine/pkg/errors"
)

const (
	defaultApprovalThreshold = 60

	blacklistCachePrefix = "blacklist:"
	statsCacheKey        = "reports:statistics"

	defaultBlacklistCacheTTL = 10 * time.Minute
)

// CreditService runs the application workflow: blacklist check, scoring,
// report creation and persistence.
type CreditService struct {
	BorrowerRepo  repository.BorrowerRepository
	ReportRepo    repository.ReportRepository
	BlacklistRepo repository.BlacklistRepository
	Engine        scoring.Engine

	redis  *redis.Client
	config *config.Config
	logger *zap.Logger
}

func NewCreditService(
	borrowerRepo repository.BorrowerRepository,
	reportRepo repository.ReportRepository,
	blacklistRepo repository.BlacklistRepository,
	redisClient *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *CreditService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CreditService{
		BorrowerRepo:  borrowerRepo,
		ReportRepo:    reportRepo,
		BlacklistRepo: blacklistRepo,
		Engine:        scoring.NewEngine(),
		redis:         redisClient,
		config:        cfg,
		logger:        logger,
	}
}

// AnalyzeBorrower validates the borrower, consults the blacklist and runs
// the scoring engine. Blacklist membership is a normal outcome, not an
// error; it is reported through the returned flag and reason.
func (s *CreditService) AnalyzeBorrower(ctx context.Context, borrower *domain.Borrower) (*domain.AnalysisResult, bool, string, error) {
	if err := borrower.Validate(); err != nil {
		return nil, false, "", err
	}

	listed, err := s.checkBlacklist(ctx, borrower.FullName)
	if err != nil {
		return nil, false, "", err
	}

	result := s.Engine.Evaluate(borrower, listed)

	reason := ""
	if listed {
		reason = scoring.BlacklistReason
	}

	return result, listed, reason, nil
}

// CreateReport snapshots an analysis result into a report and dispositions
// it: blacklisted borrowers are rejected outright with the audit flags set,
// otherwise the score decides between pending and rejected.
func (s *CreditService) CreateReport(ctx context.Context, borrower *domain.Borrower, result *domain.AnalysisResult, actorID, actorName string) (*domain.CreditReport, error) {
	report := domain.NewCreditReport(borrower, result, actorID, actorName)

	switch {
	case borrower.Blacklisted:
		report.Status = domain.StatusRejected
		report.BlacklistCheck = true
		report.BlacklistFound = true
	case result.Score >= s.approvalThreshold():
		report.Status = domain.StatusPending
	default:
		report.Status = domain.StatusRejected
	}

	if err := s.ReportRepo.Create(ctx, report); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateStatsCache(ctx)

	s.logger.Info("credit report created",
		zap.String("report_id", report.ID.String()),
		zap.String("borrower_id", borrower.ID.String()),
		zap.String("status", report.Status.String()),
		zap.Int("score", report.Score),
	)

	return report, nil
}

// ProcessApplication is the full officer workflow: build the borrower,
// score it, persist both the borrower and the dispositioned report.
func (s *CreditService) ProcessApplication(ctx context.Context, req *domain.CreateBorrowerRequest) (*domain.ApplicationResponse, error) {
	borrower := domain.NewBorrower(req, req.ActorID)

	result, listed, reason, err := s.AnalyzeBorrower(ctx, borrower)
	if err != nil {
		return nil, err
	}

	if err := s.BorrowerRepo.Create(ctx, borrower); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	report, err := s.CreateReport(ctx, borrower, result, req.ActorID, req.ActorName)
	if err != nil {
		return nil, err
	}

	return &domain.ApplicationResponse{
		Borrower:        borrower,
		Report:          report,
		Result:          result,
		Blacklisted:     listed,
		BlacklistReason: reason,
	}, nil
}

// GetBorrower retrieves a stored borrower.
func (s *CreditService) GetBorrower(ctx context.Context, id uuid.UUID) (*domain.Borrower, error) {
	borrower, err := s.BorrowerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapBorrowerNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return borrower, nil
}

// checkBlacklist looks the name up in the cache first, then the repository.
// Cache failures degrade to a direct lookup.
func (s *CreditService) checkBlacklist(ctx context.Context, fullName string) (bool, error) {
	cacheKey := blacklistCachePrefix + fullName

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			return cached == "1", nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("blacklist cache lookup failed", zap.Error(err))
		}
	}

	listed, err := s.BlacklistRepo.IsBlacklisted(ctx, fullName)
	if err != nil {
		return false, customError.WrapDatabaseError(err)
	}

	if s.redis != nil {
		value := "0"
		if listed {
			value = "1"
		}
		if err := s.redis.Set(ctx, cacheKey, value, s.blacklistCacheTTL()).Err(); err != nil {
			s.logger.Warn("blacklist cache write failed", zap.Error(err))
		}
	}

	return listed, nil
}

func (s *CreditService) approvalThreshold() int {
	if s.config == nil {
		return defaultApprovalThreshold
	}
	return s.config.Business.ApprovalThreshold
}

func (s *CreditService) blacklistCacheTTL() time.Duration {
	if s.config == nil {
		return defaultBlacklistCacheTTL
	}
	return s.config.GetBlacklistCacheTTL()
}

func (s *CreditService) invalidateStatsCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
	}
}
