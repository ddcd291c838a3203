package domain

import (
	"github.com/shopspring/decimal"
)

type LoanType string

const (
	LoanTypePersonal LoanType = "personal_loan"
	LoanTypeVehicle  LoanType = "vehicle_loan"
)

// RateCalculationRequest carries only loan mechanics, no applicant profile
type RateCalculationRequest struct {
	LoanAmount  decimal.Decimal `json:"loanAmount" validate:"loanrule=rateCalculation.loanAmount"`
	LoanTerm    int             `json:"loanTerm" validate:"loanrule=rateCalculation.loanTerm"`
	CreditScore int             `json:"creditScore" validate:"loanrule=rateCalculation.creditScore"`
	LoanType    LoanType        `json:"loanType" validate:"loanrule=rateCalculation.loanType"`
}

// PaymentScheduleItem represents one month of the repayment preview
type PaymentScheduleItem struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

type RateCalculationResponse struct {
	InterestRate    decimal.Decimal       `json:"interestRate"`
	MonthlyPayment  decimal.Decimal       `json:"monthlyPayment"`
	TotalInterest   decimal.Decimal       `json:"totalInterest"`
	TotalRepayment  decimal.Decimal       `json:"totalRepayment"`
	PaymentSchedule []PaymentScheduleItem `json:"paymentSchedule"`
}
