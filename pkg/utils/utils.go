package utils

import (
	"github.com/shopspring/decimal"
)

var (
	one           = decimal.NewFromInt(1)
	half          = decimal.RequireFromString("0.5")
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
)

// ScheduleEntry is a single month of the amortization recurrence.
// Values are unrounded; callers round once for display.
type ScheduleEntry struct {
	Month     int
	Payment   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Balance   decimal.Decimal
}

// MonthlyRate converts an annual percentage rate into a monthly fraction
// Formula: annualRatePercent / 100 / 12
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(hundred).Div(monthsPerYear)
}

// CalculateMonthlyPayment calculates the fixed monthly installment of an amortizing loan
// Formula: P * r * (1+r)^n / ((1+r)^n - 1)
// A zero rate degrades to straight-line repayment P / n. termMonths must be >= 1.
func CalculateMonthlyPayment(principal decimal.Decimal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	r := MonthlyRate(annualRatePercent)
	if r.IsZero() {
		return principal.Div(n)
	}

	growth := one.Add(r).Pow(n)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(one))
}

// CalculateTotalRepayment returns the sum of all installments
func CalculateTotalRepayment(monthlyPayment decimal.Decimal, termMonths int) decimal.Decimal {
	return monthlyPayment.Mul(decimal.NewFromInt(int64(termMonths)))
}

// BuildSchedule runs the amortization recurrence for the first min(termMonths, limit) months.
// Each month: interest = balance * r, principal = payment - interest, balance -= principal.
// The reported balance is clamped at zero.
func BuildSchedule(principal decimal.Decimal, annualRatePercent decimal.Decimal, termMonths int, limit int) []ScheduleEntry {
	months := min(termMonths, limit)
	if months <= 0 {
		return []ScheduleEntry{}
	}

	payment := CalculateMonthlyPayment(principal, annualRatePercent, termMonths)
	r := MonthlyRate(annualRatePercent)

	schedule := make([]ScheduleEntry, 0, months)
	balance := principal
	for month := 1; month <= months; month++ {
		interest := balance.Mul(r)
		principalPart := payment.Sub(interest)
		balance = balance.Sub(principalPart)

		schedule = append(schedule, ScheduleEntry{
			Month:     month,
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Balance:   decimal.Max(balance, decimal.Zero),
		})
	}

	return schedule
}

// Percentage returns part / whole * 100
func Percentage(part decimal.Decimal, whole decimal.Decimal) decimal.Decimal {
	return part.Div(whole).Mul(hundred)
}

// RoundCurrency rounds to 2 decimal places, halves toward positive infinity
// (-999.995 becomes -999.99)
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d, 2)
}

// RoundWhole rounds to the nearest integer currency unit, halves toward positive infinity
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return roundHalfUp(d, 0)
}

func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}
