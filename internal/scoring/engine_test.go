package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crediteval/credit-engine/internal/domain"
)

func testBorrower(income, expenses, existingLoans int64, historyScore, employmentYears int) *domain.Borrower {
	return &domain.Borrower{
		FullName:           "John Smith",
		Income:             decimal.NewFromInt(income),
		Expenses:           decimal.NewFromInt(expenses),
		ExistingLoans:      decimal.NewFromInt(existingLoans),
		CreditHistoryScore: historyScore,
		EmploymentYears:    employmentYears,
	}
}

func TestEvaluate(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name                 string
		borrower             *domain.Borrower
		expectedScore        int
		expectedLoan         decimal.Decimal
		expectedCategory     domain.Attractiveness
		expectedRisk         domain.RiskLevel
		expectedRecommendations []string
	}{
		{
			name:             "strong applicant scores high with clean recommendation",
			borrower:         testBorrower(100000, 40000, 10000, 80, 6),
			expectedScore:    95,
			expectedLoan:     decimal.NewFromInt(164160),
			expectedCategory: domain.AttractivenessHigh,
			expectedRisk:     domain.RiskLow,
			expectedRecommendations: []string{RecommendationGoodStanding},
		},
		{
			name:             "mid-range applicant lands in medium bracket",
			borrower:         testBorrower(60000, 40000, 12000, 60, 3),
			expectedScore:    71,
			expectedLoan:     decimal.NewFromFloat(18403.2),
			expectedCategory: domain.AttractivenessMedium,
			expectedRisk:     domain.RiskMedium,
			expectedRecommendations: []string{
				RecommendationImproveHistory,
				RecommendationRaiseIncome,
			},
		},
		{
			name:             "weak applicant lands in low bracket with full advice",
			borrower:         testBorrower(50000, 30000, 20000, 40, 1),
			expectedScore:    53,
			expectedLoan:     decimal.NewFromFloat(3052.8),
			expectedCategory: domain.AttractivenessLow,
			expectedRisk:     domain.RiskHigh,
			expectedRecommendations: []string{
				RecommendationReduceDebt,
				RecommendationImproveHistory,
				RecommendationGrowTenure,
				RecommendationRaiseIncome,
				RecommendationSmallLoan,
			},
		},
		{
			name:             "zero income zeroes debt and income sub-scores",
			borrower:         testBorrower(0, 10000, 5000, 70, 0),
			expectedScore:    26,
			expectedLoan:     decimal.Zero,
			expectedCategory: domain.AttractivenessVeryLow,
			expectedRisk:     domain.RiskCritical,
			expectedRecommendations: []string{
				RecommendationReduceDebt,
				RecommendationGrowTenure,
				RecommendationRaiseIncome,
				RecommendationBuildSavings,
				RecommendationStabilizeJob,
			},
		},
		{
			name:             "negative disposable income yields a negative offer",
			borrower:         testBorrower(0, 10000, 0, 50, 5),
			expectedScore:    35,
			expectedLoan:     decimal.NewFromInt(-6300),
			expectedCategory: domain.AttractivenessVeryLow,
			expectedRisk:     domain.RiskCritical,
			expectedRecommendations: []string{
				RecommendationReduceDebt,
				RecommendationImproveHistory,
				RecommendationRaiseIncome,
				RecommendationBuildSavings,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Evaluate(tt.borrower, false)

			assert.Equal(t, tt.expectedScore, result.Score)
			assert.True(t, result.MaxLoanAmount.Equal(tt.expectedLoan),
				"expected loan %s, got %s", tt.expectedLoan, result.MaxLoanAmount)
			assert.Equal(t, tt.expectedCategory, result.Attractiveness)
			assert.Equal(t, tt.expectedRisk, result.RiskLevel)
			assert.Equal(t, tt.expectedRecommendations, result.Recommendations)
			assert.False(t, tt.borrower.Blacklisted)
		})
	}
}

func TestEvaluateBlacklisted(t *testing.T) {
	engine := NewEngine()

	// Otherwise excellent applicant: blacklist overrides everything
	borrower := testBorrower(500000, 50000, 0, 100, 10)

	result := engine.Evaluate(borrower, true)

	assert.Equal(t, 0, result.Score)
	assert.True(t, result.MaxLoanAmount.Equal(decimal.Zero))
	assert.Equal(t, domain.AttractivenessNone, result.Attractiveness)
	assert.Equal(t, domain.RiskCritical, result.RiskLevel)
	assert.Equal(t, []string{RecommendationBlacklisted}, result.Recommendations)

	assert.True(t, borrower.Blacklisted)
	require.NotNil(t, borrower.BlacklistReason)
	assert.Equal(t, BlacklistReason, *borrower.BlacklistReason)
}

func TestEvaluateDeterministic(t *testing.T) {
	engine := NewEngine()
	borrower := testBorrower(80000, 35000, 9000, 65, 2)

	first := engine.Evaluate(borrower, false)
	second := engine.Evaluate(borrower, false)

	assert.Equal(t, first.Score, second.Score)
	assert.True(t, first.MaxLoanAmount.Equal(second.MaxLoanAmount))
	assert.Equal(t, first.Attractiveness, second.Attractiveness)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestEvaluateScoreBounds(t *testing.T) {
	engine := NewEngine()

	borrowers := []*domain.Borrower{
		testBorrower(0, 0, 0, 0, 0),
		testBorrower(1000000, 0, 0, 100, 50),
		testBorrower(30000, 60000, 90000, 13, 4),
		testBorrower(45000, 44999, 1, 99, 1),
	}

	for _, b := range borrowers {
		result := engine.Evaluate(b, false)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
		assert.NotEmpty(t, result.Recommendations)
		// rounded to 2 decimal places
		assert.LessOrEqual(t, int(result.MaxLoanAmount.Exponent())*-1, 2)
	}
}

func TestDebtSubScore(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		loans    int64
		expected int
	}{
		{"ratio above 50 percent", 100000, 50001, 20},
		{"ratio exactly 50 percent stays in next bracket", 100000, 50000, 40},
		{"ratio above 30 percent", 100000, 30001, 40},
		{"ratio exactly 30 percent stays in next bracket", 100000, 30000, 70},
		{"ratio above 15 percent", 100000, 15001, 70},
		{"ratio exactly 15 percent scores full", 100000, 15000, 100},
		{"no existing loans", 100000, 0, 100},
		{"zero income scores zero regardless of loans", 0, 0, 0},
		{"zero income with loans scores zero", 0, 99999, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := debtSubScore(decimal.NewFromInt(tt.income), decimal.NewFromInt(tt.loans))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEmploymentSubScore(t *testing.T) {
	assert.Equal(t, 100, employmentSubScore(5))
	assert.Equal(t, 100, employmentSubScore(12))
	assert.Equal(t, 80, employmentSubScore(3))
	assert.Equal(t, 80, employmentSubScore(4))
	assert.Equal(t, 60, employmentSubScore(1))
	assert.Equal(t, 60, employmentSubScore(2))
	assert.Equal(t, 30, employmentSubScore(0))
}

func TestIncomeSubScore(t *testing.T) {
	tests := []struct {
		disposable int64
		expected   int
	}{
		{50001, 100},
		{50000, 80},
		{30001, 80},
		{30000, 60},
		{15001, 60},
		{15000, 40},
		{1, 40},
		{0, 0},
		{-10000, 0},
	}

	for _, tt := range tests {
		got := incomeSubScore(decimal.NewFromInt(tt.disposable))
		assert.Equal(t, tt.expected, got, "disposable %d", tt.disposable)
	}
}

func TestSavingsSubScore(t *testing.T) {
	tests := []struct {
		name       string
		disposable int64
		income     int64
		expected   int
	}{
		{"ratio above 0.3", 31000, 100000, 100},
		{"ratio exactly 0.3 stays in next bracket", 30000, 100000, 80},
		{"ratio above 0.2", 21000, 100000, 80},
		{"ratio above 0.1", 11000, 100000, 60},
		{"ratio at or below 0.1", 10000, 100000, 30},
		{"negative disposable", -5000, 100000, 30},
		{"zero income resolves to lowest bracket", 0, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := savingsSubScore(decimal.NewFromInt(tt.disposable), decimal.NewFromInt(tt.income))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompositeScoreTruncates(t *testing.T) {
	// 70*0.25 + 30*0.2 + 30*0.1 = 26.5, truncated to 26
	assert.Equal(t, 26, compositeScore(0, 70, 30, 0, 30))
	// all max sub-scores stay within bounds
	assert.Equal(t, 100, compositeScore(100, 100, 100, 100, 100))
	assert.Equal(t, 0, compositeScore(0, 0, 0, 0, 0))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score          int
		attractiveness domain.Attractiveness
		risk           domain.RiskLevel
	}{
		{100, domain.AttractivenessHigh, domain.RiskLow},
		{80, domain.AttractivenessHigh, domain.RiskLow},
		{79, domain.AttractivenessMedium, domain.RiskMedium},
		{60, domain.AttractivenessMedium, domain.RiskMedium},
		{59, domain.AttractivenessLow, domain.RiskHigh},
		{40, domain.AttractivenessLow, domain.RiskHigh},
		{39, domain.AttractivenessVeryLow, domain.RiskCritical},
		{0, domain.AttractivenessVeryLow, domain.RiskCritical},
	}

	for _, tt := range tests {
		attractiveness, risk := categorize(tt.score)
		assert.Equal(t, tt.attractiveness, attractiveness, "score %d", tt.score)
		assert.Equal(t, tt.risk, risk, "score %d", tt.score)
	}
}
