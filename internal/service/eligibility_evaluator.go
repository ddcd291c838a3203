package service

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/loan-simulator/internal/domain"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
	"github.com/segyhp/loan-simulator/pkg/utils"
)

// Business logic constants
const (
	DefaultCreditScore     = 600
	MinEmploymentMonths    = 3
	MinEligibleCreditScore = 580

	ReasonEligible   = "Strong income-to-expense ratio and manageable existing debt"
	ReasonIneligible = "Application does not meet minimum eligibility criteria"
)

var (
	maxDebtToIncome     = decimal.NewFromInt(40)
	minDisposableIncome = decimal.NewFromInt(3000)
	affordableShare     = decimal.RequireFromString("0.4")
	maxAmountCeiling    = decimal.NewFromInt(300000)

	riskRates = map[domain.RiskCategory]decimal.Decimal{
		domain.RiskCategoryLow:    decimal.RequireFromString("12.5"),
		domain.RiskCategoryMedium: decimal.RequireFromString("15.0"),
		domain.RiskCategoryHigh:   decimal.RequireFromString("18.5"),
	}
)

type riskAssessment struct {
	category   domain.RiskCategory
	likelihood int
	score      domain.AffordabilityScore
}

// ineligibleAssessment is also what an eligible applicant keeps when no tier matches.
var ineligibleAssessment = riskAssessment{domain.RiskCategoryHigh, 30, domain.AffordabilityPoor}

// riskTiers are tried in order; the first tier the applicant qualifies for wins.
var riskTiers = []struct {
	minCreditScore int
	maxDTI         decimal.Decimal // exclusive
	assessment     riskAssessment
}{
	{720, decimal.NewFromInt(20), riskAssessment{domain.RiskCategoryLow, 92, domain.AffordabilityExcellent}},
	{650, decimal.NewFromInt(30), riskAssessment{domain.RiskCategoryLow, 85, domain.AffordabilityGood}},
	{580, decimal.NewFromInt(40), riskAssessment{domain.RiskCategoryMedium, 65, domain.AffordabilityFair}},
}

// EligibilityEvaluator turns an application into a verdict, a recommended
// loan and an affordability breakdown. It holds no state and is safe for
// concurrent use.
type EligibilityEvaluator struct{}

func NewEligibilityEvaluator() *EligibilityEvaluator {
	return &EligibilityEvaluator{}
}

// Evaluate assumes the request already passed the rule table. It only guards
// the two inputs used as divisors and the presence of expenses.
func (e *EligibilityEvaluator) Evaluate(request *domain.EligibilityRequest) (*domain.EligibilityResponse, error) {
	personal := request.PersonalInfo
	financial := request.FinancialInfo
	loan := request.LoanDetails

	if !financial.MonthlyIncome.IsPositive() {
		return nil, customError.WrapInvalidIncome(financial.MonthlyIncome.String())
	}
	if loan.LoanTerm <= 0 {
		return nil, customError.WrapInvalidLoanTerm(loan.LoanTerm)
	}
	if financial.MonthlyExpenses == nil {
		return nil, customError.WrapMissingExpenses()
	}

	disposableIncome := financial.MonthlyIncome.Sub(*financial.MonthlyExpenses)
	debtToIncome := utils.Percentage(financial.ExistingDebt, financial.MonthlyIncome)
	loanToIncome := utils.Percentage(loan.RequestedAmount, financial.MonthlyIncome.Mul(decimal.NewFromInt(12)))
	creditScore := ResolveCreditScore(financial.CreditScore)

	isEligible := personal.EmploymentDuration >= MinEmploymentMonths &&
		personal.EmploymentStatus != domain.EmploymentStatusUnemployed &&
		debtToIncome.LessThan(maxDebtToIncome) &&
		disposableIncome.GreaterThan(minDisposableIncome) &&
		creditScore >= MinEligibleCreditScore

	assessment := assessRisk(isEligible, creditScore, debtToIncome)
	interestRate := riskRates[assessment.category]

	monthlyPayment := utils.CalculateMonthlyPayment(loan.RequestedAmount, interestRate, loan.LoanTerm)
	totalRepayment := utils.CalculateTotalRepayment(monthlyPayment, loan.LoanTerm)

	maxAmount := decimal.Zero
	if isEligible {
		capacity := disposableIncome.Mul(affordableShare).Mul(decimal.NewFromInt(int64(loan.LoanTerm)))
		maxAmount = utils.RoundWhole(decimal.Min(capacity, maxAmountCeiling))
	}

	reason := ReasonIneligible
	if isEligible {
		reason = ReasonEligible
	}

	return &domain.EligibilityResponse{
		EligibilityResult: domain.EligibilityResult{
			IsEligible:         isEligible,
			ApprovalLikelihood: assessment.likelihood,
			RiskCategory:       assessment.category,
			DecisionReason:     reason,
		},
		RecommendedLoan: domain.RecommendedLoan{
			MaxAmount:         maxAmount,
			RecommendedAmount: loan.RequestedAmount,
			InterestRate:      interestRate,
			MonthlyPayment:    utils.RoundCurrency(monthlyPayment),
			TotalRepayment:    utils.RoundCurrency(totalRepayment),
		},
		AffordabilityAnalysis: domain.AffordabilityAnalysis{
			DisposableIncome:   utils.RoundCurrency(disposableIncome),
			DebtToIncomeRatio:  utils.RoundCurrency(debtToIncome),
			LoanToIncomeRatio:  utils.RoundCurrency(loanToIncome),
			AffordabilityScore: assessment.score,
		},
	}, nil
}

// ResolveCreditScore applies the conservative default for a missing score
func ResolveCreditScore(score *int) int {
	if score == nil {
		return DefaultCreditScore
	}
	return *score
}

// assessRisk refines an eligible applicant into a tier. The cascade has no
// final fallback: an eligible applicant matching no tier stays high risk.
func assessRisk(isEligible bool, creditScore int, debtToIncome decimal.Decimal) riskAssessment {
	if !isEligible {
		return ineligibleAssessment
	}

	for _, tier := range riskTiers {
		if creditScore >= tier.minCreditScore && debtToIncome.LessThan(tier.maxDTI) {
			return tier.assessment
		}
	}

	return ineligibleAssessment
}
