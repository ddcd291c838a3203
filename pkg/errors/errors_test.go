package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessError_Unwrap(t *testing.T) {
	err := fmt.Errorf("evaluate: %w", WrapInvalidIncome("0"))

	var businessErr *BusinessError
	assert.True(t, errors.As(err, &businessErr))
	assert.Equal(t, ErrCodeInvalidIncome, businessErr.Code)
	assert.True(t, errors.Is(err, ErrInvalidIncome))
	assert.Contains(t, err.Error(), "INVALID_INCOME")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{
		"personalInfo.age":          "Age must be between 18 and 65",
		"loanDetails.loanTerm":      "Loan term must be between 6 and 60 months",
		"financialInfo.creditScore": "Credit score must be between 300 and 850",
	})

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t,
		"VALIDATION_FAILED: financialInfo.creditScore: Credit score must be between 300 and 850; "+
			"loanDetails.loanTerm: Loan term must be between 6 and 60 months; "+
			"personalInfo.age: Age must be between 18 and 65",
		err.Error())
}

func TestIsPrecondition(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"invalid income", WrapInvalidIncome("0"), true},
		{"invalid term", WrapInvalidLoanTerm(0), true},
		{"invalid amount", WrapInvalidLoanAmount("-1"), true},
		{"missing expenses", WrapMissingExpenses(), true},
		{"cache", WrapCacheError(errors.New("connection refused")), false},
		{"validation", NewValidationError(map[string]string{}), false},
		{"database", WrapDatabaseError(errors.New("boom")), false},
		{"product not found", WrapProductNotFound("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPrecondition(tt.err))
		})
	}
}
