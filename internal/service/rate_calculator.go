package service

import (
	"github.com/shopspring/decimal"

	"github.com/segyhp/loan-simulator/internal/domain"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
	"github.com/segyhp/loan-simulator/pkg/utils"
)

// SchedulePreviewMonths is the number of installments returned with a rate calculation
const SchedulePreviewMonths = 6

var (
	vehicleBaseRate  = decimal.NewFromInt(10)
	defaultBaseRate  = decimal.NewFromInt(14)
	vehicleRateFloor = decimal.RequireFromString("8.5")
	defaultRateFloor = decimal.RequireFromString("10.5")
)

// creditAdjustments are checked top to bottom; only the first matching bracket applies.
// Scores in [580, 650) carry no adjustment.
var creditAdjustments = []struct {
	matches    func(score int) bool
	adjustment decimal.Decimal
}{
	{func(score int) bool { return score >= 750 }, decimal.NewFromInt(-3)},
	{func(score int) bool { return score >= 700 }, decimal.NewFromInt(-2)},
	{func(score int) bool { return score >= 650 }, decimal.NewFromInt(-1)},
	{func(score int) bool { return score < 580 }, decimal.NewFromInt(2)},
}

// RateCalculator prices a loan from its mechanics alone. It holds no state
// and is safe for concurrent use.
type RateCalculator struct{}

func NewRateCalculator() *RateCalculator {
	return &RateCalculator{}
}

// InterestRate returns the annual percentage rate for a loan type and credit score
func (c *RateCalculator) InterestRate(loanType domain.LoanType, creditScore int) decimal.Decimal {
	rate, floor := defaultBaseRate, defaultRateFloor
	if loanType == domain.LoanTypeVehicle {
		rate, floor = vehicleBaseRate, vehicleRateFloor
	}

	for _, bracket := range creditAdjustments {
		if bracket.matches(creditScore) {
			rate = rate.Add(bracket.adjustment)
			break
		}
	}

	return decimal.Max(rate, floor)
}

// Calculate returns the rate, installment, totals and a repayment preview of
// at most SchedulePreviewMonths entries.
func (c *RateCalculator) Calculate(request *domain.RateCalculationRequest) (*domain.RateCalculationResponse, error) {
	if request.LoanTerm <= 0 {
		return nil, customError.WrapInvalidLoanTerm(request.LoanTerm)
	}
	if !request.LoanAmount.IsPositive() {
		return nil, customError.WrapInvalidLoanAmount(request.LoanAmount.String())
	}

	interestRate := c.InterestRate(request.LoanType, request.CreditScore)
	monthlyPayment := utils.CalculateMonthlyPayment(request.LoanAmount, interestRate, request.LoanTerm)
	totalRepayment := utils.CalculateTotalRepayment(monthlyPayment, request.LoanTerm)
	totalInterest := totalRepayment.Sub(request.LoanAmount)

	entries := utils.BuildSchedule(request.LoanAmount, interestRate, request.LoanTerm, SchedulePreviewMonths)
	schedule := make([]domain.PaymentScheduleItem, 0, len(entries))
	for _, entry := range entries {
		schedule = append(schedule, domain.PaymentScheduleItem{
			Month:     entry.Month,
			Payment:   utils.RoundCurrency(entry.Payment),
			Principal: utils.RoundCurrency(entry.Principal),
			Interest:  utils.RoundCurrency(entry.Interest),
			Balance:   utils.RoundCurrency(entry.Balance),
		})
	}

	return &domain.RateCalculationResponse{
		InterestRate:    utils.RoundCurrency(interestRate),
		MonthlyPayment:  utils.RoundCurrency(monthlyPayment),
		TotalInterest:   utils.RoundCurrency(totalInterest),
		TotalRepayment:  utils.RoundCurrency(totalRepayment),
		PaymentSchedule: schedule,
	}, nil
}
