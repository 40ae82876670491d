package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/crediteval/credit-engine/internal/domain"
)

// Recommendation texts returned by the engine. They are part of the
// report snapshot, so treat them as stable tokens.
const (
	RecommendationReduceDebt     = "Reduce your existing debt load"
	RecommendationImproveHistory = "Improve your credit history by paying bills on time"
	RecommendationGrowTenure     = "Increase tenure at your current employer"
	RecommendationRaiseIncome    = "Increase your disposable income"
	RecommendationBuildSavings   = "Build a financial safety cushion"
	RecommendationSmallLoan      = "Consider taking a small loan and repaying it on time"
	RecommendationStabilizeJob   = "Stable employment of more than one year will improve approval chances"
	RecommendationGoodStanding   = "Your financial indicators are at a good level"
	RecommendationBlacklisted    = "Applicant is listed in the bank blacklist"
)

// BlacklistReason is recorded on the borrower when the blacklist check hits.
const BlacklistReason = "listed in the bank blacklist"

// Composite weights. The five sub-scores are each on a 0-100 scale, so the
// weighted sum stays within [0,100].
var (
	weightDebt       = decimal.NewFromFloat(0.30)
	weightHistory    = decimal.NewFromFloat(0.25)
	weightEmployment = decimal.NewFromFloat(0.20)
	weightIncome     = decimal.NewFromFloat(0.15)
	weightSavings    = decimal.NewFromFloat(0.10)

	hundred = decimal.NewFromInt(100)

	// Offer base: 30% of annualized disposable income.
	annualMonths    = decimal.NewFromInt(12)
	offerAllocation = decimal.NewFromFloat(0.30)
	maxTenureYears  = decimal.NewFromInt(5)
)

// Engine computes creditworthiness scores and loan offers. It is stateless
// and performs no I/O; the same borrower always yields the same result.
type Engine struct{}

func NewEngine() Engine {
	return Engine{}
}

// Evaluate scores a borrower. When inBlacklist is set the evaluation halts
// with the fixed terminal result and the borrower is flagged; no further
// computation happens. Otherwise the five sub-scores, the weighted composite,
// the dampened loan offer and the recommendation list are produced.
func (e Engine) Evaluate(b *domain.Borrower, inBlacklist bool) *domain.AnalysisResult {
	if inBlacklist {
		b.MarkBlacklisted(BlacklistReason)

		return &domain.AnalysisResult{
			MaxLoanAmount:   decimal.Zero,
			Attractiveness:  domain.AttractivenessNone,
			RiskLevel:       domain.RiskCritical,
			Recommendations: []string{RecommendationBlacklisted},
			Score:           0,
		}
	}

	disposable := b.DisposableIncome()

	debtScore := debtSubScore(b.Income, b.ExistingLoans)
	historyScore := b.CreditHistoryScore
	employmentScore := employmentSubScore(b.EmploymentYears)
	incomeScore := incomeSubScore(disposable)
	savingsScore := savingsSubScore(disposable, b.Income)

	totalScore := compositeScore(debtScore, historyScore, employmentScore, incomeScore, savingsScore)

	maxLoan := maxLoanAmount(disposable, totalScore, b.CreditHistoryScore, b.EmploymentYears)

	attractiveness, risk := categorize(totalScore)

	recommendations := buildRecommendations(totalScore, debtScore, historyScore,
		employmentScore, incomeScore, savingsScore, b.CreditHistoryScore, b.EmploymentYears)

	return &domain.AnalysisResult{
		MaxLoanAmount:   maxLoan,
		Attractiveness:  attractiveness,
		RiskLevel:       risk,
		Recommendations: recommendations,
		Score:           totalScore,
	}
}

// debtSubScore grades the share of income already committed to existing
// loans. Zero income means the ratio is undefined and scores 0.
func debtSubScore(income, existingLoans decimal.Decimal) int {
	if !income.IsPositive() {
		return 0
	}

	debtRatio := existingLoans.Div(income).Mul(hundred)
	switch {
	case debtRatio.GreaterThan(decimal.NewFromInt(50)):
		return 20
	case debtRatio.GreaterThan(decimal.NewFromInt(30)):
		return 40
	case debtRatio.GreaterThan(decimal.NewFromInt(15)):
		return 70
	default:
		return 100
	}
}

func employmentSubScore(years int) int {
	switch {
	case years >= 5:
		return 100
	case years >= 3:
		return 80
	case years >= 1:
		return 60
	default:
		return 30
	}
}

func incomeSubScore(disposable decimal.Decimal) int {
	switch {
	case disposable.GreaterThan(decimal.NewFromInt(50000)):
		return 100
	case disposable.GreaterThan(decimal.NewFromInt(30000)):
		return 80
	case disposable.GreaterThan(decimal.NewFromInt(15000)):
		return 60
	case disposable.IsPositive():
		return 40
	default:
		return 0
	}
}

// savingsSubScore grades what fraction of income is left after expenses.
// Zero income resolves to the lowest bracket.
func savingsSubScore(disposable, income decimal.Decimal) int {
	if !income.IsPositive() {
		return 30
	}

	savingsRatio := disposable.Div(income)
	switch {
	case savingsRatio.GreaterThan(decimal.NewFromFloat(0.3)):
		return 100
	case savingsRatio.GreaterThan(decimal.NewFromFloat(0.2)):
		return 80
	case savingsRatio.GreaterThan(decimal.NewFromFloat(0.1)):
		return 60
	default:
		return 30
	}
}

// compositeScore folds the five sub-scores into one 0-100 integer.
// The weighted sum is truncated, not rounded.
func compositeScore(debt, history, employment, income, savings int) int {
	weighted := decimal.NewFromInt(int64(debt)).Mul(weightDebt).
		Add(decimal.NewFromInt(int64(history)).Mul(weightHistory)).
		Add(decimal.NewFromInt(int64(employment)).Mul(weightEmployment)).
		Add(decimal.NewFromInt(int64(income)).Mul(weightIncome)).
		Add(decimal.NewFromInt(int64(savings)).Mul(weightSavings))

	return int(weighted.IntPart())
}

// maxLoanAmount derives the bounded offer: 30% of annualized disposable
// income, dampened by score, history and tenure factors, rounded to 2
// decimal places. A negative disposable income produces a negative offer;
// the arithmetic is preserved as-is rather than clamped.
func maxLoanAmount(disposable decimal.Decimal, totalScore, historyScore, employmentYears int) decimal.Decimal {
	baseAmount := disposable.Mul(annualMonths).Mul(offerAllocation)

	scoreFactor := decimal.NewFromInt(int64(totalScore)).Div(hundred)
	historyFactor := decimal.NewFromInt(int64(historyScore)).Div(hundred)

	employmentFactor := decimal.NewFromInt(int64(employmentYears)).Div(maxTenureYears)
	if employmentFactor.GreaterThan(decimal.NewFromInt(1)) {
		employmentFactor = decimal.NewFromInt(1)
	}

	return baseAmount.Mul(scoreFactor).Mul(historyFactor).Mul(employmentFactor).Round(2)
}

func categorize(totalScore int) (domain.Attractiveness, domain.RiskLevel) {
	switch {
	case totalScore >= 80:
		return domain.AttractivenessHigh, domain.RiskLow
	case totalScore >= 60:
		return domain.AttractivenessMedium, domain.RiskMedium
	case totalScore >= 40:
		return domain.AttractivenessLow, domain.RiskHigh
	default:
		return domain.AttractivenessVeryLow, domain.RiskCritical
	}
}

// buildRecommendations assembles improvement advice in a fixed order.
// The list is never empty: strong applicants get a single positive note.
func buildRecommendations(totalScore, debtScore, historyScore, employmentScore, incomeScore, savingsScore, rawHistoryScore, employmentYears int) []string {
	recommendations := make([]string, 0, 7)

	if totalScore < 80 {
		if debtScore < 60 {
			recommendations = append(recommendations, RecommendationReduceDebt)
		}
		if historyScore < 70 {
			recommendations = append(recommendations, RecommendationImproveHistory)
		}
		if employmentScore < 80 {
			recommendations = append(recommendations, RecommendationGrowTenure)
		}
		if incomeScore < 70 {
			recommendations = append(recommendations, RecommendationRaiseIncome)
		}
		if savingsScore < 60 {
			recommendations = append(recommendations, RecommendationBuildSavings)
		}
	}

	if rawHistoryScore < 50 {
		recommendations = append(recommendations, RecommendationSmallLoan)
	}

	if employmentYears < 1 {
		recommendations = append(recommendations, RecommendationStabilizeJob)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, RecommendationGoodStanding)
	}

	return recommendations
}
