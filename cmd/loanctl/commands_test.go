package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/loan-simulator/internal/domain"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	application := `{
		"personalInfo": {"age": 35, "employmentStatus": "employed", "employmentDuration": 24},
		"financialInfo": {"monthlyIncome": 25000, "monthlyExpenses": 15000, "existingDebt": 2000, "creditScore": 750},
		"loanDetails": {"requestedAmount": 150000, "loanTerm": 24, "loanPurpose": "home_improvement"}
	}`

	out, err := execute(t, application, "evaluate")
	require.NoError(t, err)

	var result domain.EligibilityResponse
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.EligibilityResult.IsEligible)
	assert.Equal(t, "96000", result.RecommendedLoan.MaxAmount.String())
}

func TestEvaluateCommand_InvalidInput(t *testing.T) {
	_, err := execute(t, `{"unexpected": true}`, "evaluate")
	assert.Error(t, err)

	_, err = execute(t, `{}`, "evaluate")
	assert.True(t, errors.Is(err, customError.ErrValidationFailed))

	_, err = execute(t, `{"financialInfo": {"monthlyIncome": "25000"}}`, "evaluate")
	assert.True(t, errors.Is(err, domain.ErrQuotedNumber))
}

func TestRateCommand(t *testing.T) {
	out, err := execute(t, "", "rate", "--amount", "150000", "--term", "24", "--credit-score", "780", "--type", "vehicle_loan")
	require.NoError(t, err)

	var result domain.RateCalculationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "8.5", result.InterestRate.String())
	assert.Equal(t, "6818.35", result.MonthlyPayment.StringFixed(2))
	assert.Len(t, result.PaymentSchedule, 6)
}

func TestRateCommand_MissingFlags(t *testing.T) {
	_, err := execute(t, "", "rate", "--amount", "150000")
	assert.Error(t, err)

	_, err = execute(t, "", "rate", "--amount", "lots", "--term", "24", "--credit-score", "700")
	assert.Error(t, err)
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "", "rules")
	require.NoError(t, err)

	var table domain.ValidationRulesTable
	require.NoError(t, json.Unmarshal([]byte(out), &table))
	assert.Len(t, table, 4)
}

func TestProductsCommand(t *testing.T) {
	out, err := execute(t, "", "products")
	require.NoError(t, err)
	assert.Contains(t, out, "personal_loan")
	assert.Contains(t, out, "vehicle_loan")

	out, err = execute(t, "", "products", "vehicle_loan")
	require.NoError(t, err)
	assert.Contains(t, out, "Vehicle Finance")

	_, err = execute(t, "", "products", "mortgage")
	assert.True(t, errors.Is(err, customError.ErrProductNotFound))
}
