package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Money and percentages travel as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type EmploymentStatus string

const (
	EmploymentStatusEmployed     EmploymentStatus = "employed"
	EmploymentStatusSelfEmployed EmploymentStatus = "self_employed"
	EmploymentStatusUnemployed   EmploymentStatus = "unemployed"
	EmploymentStatusRetired      EmploymentStatus = "retired"
)

type RiskCategory string

const (
	RiskCategoryLow    RiskCategory = "low"
	RiskCategoryMedium RiskCategory = "medium"
	RiskCategoryHigh   RiskCategory = "high"
)

type AffordabilityScore string

const (
	AffordabilityExcellent AffordabilityScore = "excellent"
	AffordabilityGood      AffordabilityScore = "good"
	AffordabilityFair      AffordabilityScore = "fair"
	AffordabilityPoor      AffordabilityScore = "poor"
)

// DTOs for requests and responses

type PersonalInfo struct {
	Age                int              `json:"age" validate:"loanrule=personalInfo.age"`
	EmploymentStatus   EmploymentStatus `json:"employmentStatus" validate:"loanrule=personalInfo.employmentStatus"`
	EmploymentDuration int              `json:"employmentDuration" validate:"loanrule=personalInfo.employmentDuration"`
}

type FinancialInfo struct {
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome" validate:"loanrule=financialInfo.monthlyIncome"`
	MonthlyExpenses *decimal.Decimal `json:"monthlyExpenses" validate:"loanrule=financialInfo.monthlyExpenses"`
	ExistingDebt    decimal.Decimal `json:"existingDebt" validate:"loanrule=financialInfo.existingDebt"`
	CreditScore     *int            `json:"creditScore,omitempty" validate:"loanrule=financialInfo.creditScore"`
}

type LoanDetails struct {
	RequestedAmount decimal.Decimal `json:"requestedAmount" validate:"loanrule=loanDetails.requestedAmount"`
	LoanTerm        int             `json:"loanTerm" validate:"loanrule=loanDetails.loanTerm"`
	LoanPurpose     string          `json:"loanPurpose" validate:"loanrule=loanDetails.loanPurpose"`
}

// EligibilityRequest is the applicant's submission to the eligibility check
type EligibilityRequest struct {
	PersonalInfo  PersonalInfo  `json:"personalInfo"`
	FinancialInfo FinancialInfo `json:"financialInfo"`
	LoanDetails   LoanDetails   `json:"loanDetails"`
}

type EligibilityResult struct {
	IsEligible         bool         `json:"isEligible"`
	ApprovalLikelihood int          `json:"approvalLikelihood"`
	RiskCategory       RiskCategory `json:"riskCategory"`
	DecisionReason     string       `json:"decisionReason"`
}

type RecommendedLoan struct {
	MaxAmount         decimal.Decimal `json:"maxAmount"`
	RecommendedAmount decimal.Decimal `json:"recommendedAmount"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	TotalRepayment    decimal.Decimal `json:"totalRepayment"`
}

type AffordabilityAnalysis struct {
	DisposableIncome   decimal.Decimal    `json:"disposableIncome"`
	DebtToIncomeRatio  decimal.Decimal    `json:"debtToIncomeRatio"`
	LoanToIncomeRatio  decimal.Decimal    `json:"loanToIncomeRatio"`
	AffordabilityScore AffordabilityScore `json:"affordabilityScore"`
}

// EligibilityResponse is the verdict returned for an EligibilityRequest
type EligibilityResponse struct {
	EligibilityResult     EligibilityResult     `json:"eligibilityResult"`
	RecommendedLoan       RecommendedLoan       `json:"recommendedLoan"`
	AffordabilityAnalysis AffordabilityAnalysis `json:"affordabilityAnalysis"`
}
