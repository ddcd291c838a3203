package domain

import (
	"github.com/shopspring/decimal"
)

type InterestRateRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// LoanProduct is an informational catalog entry; the evaluator never consults it
type LoanProduct struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	MinAmount         decimal.Decimal   `json:"minAmount"`
	MaxAmount         decimal.Decimal   `json:"maxAmount"`
	MinTerm           int               `json:"minTerm"`
	MaxTerm           int               `json:"maxTerm"`
	InterestRateRange InterestRateRange `json:"interestRateRange"`
	Purposes          []string          `json:"purposes"`
}

type LoanProductsResponse struct {
	Products []*LoanProduct `json:"products"`
}
