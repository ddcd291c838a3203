package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/segyhp/loan-simulator/internal/domain"
	"github.com/segyhp/loan-simulator/internal/metrics"
	"github.com/segyhp/loan-simulator/internal/mocks"
	"github.com/segyhp/loan-simulator/internal/repository"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
)

const testTTL = 5 * time.Minute

func newTestService(cache repository.ResultCache, products repository.ProductRepository) *LoanService {
	return NewLoanService(products, cache, testTTL, metrics.NewCollector(prometheus.NewRegistry()), nil)
}

func rateRequest() *domain.RateCalculationRequest {
	return &domain.RateCalculationRequest{
		LoanAmount:  decimal.NewFromInt(100000),
		LoanTerm:    12,
		CreditScore: 620,
		LoanType:    domain.LoanTypePersonal,
	}
}

func eligibilityKey(t *testing.T, request *domain.EligibilityRequest) string {
	key, err := cacheKey(OperationEligibility, request)
	require.NoError(t, err)
	return key
}

func TestCheckEligibility_CacheMissStoresResult(t *testing.T) {
	ctx := context.Background()
	cache := &mocks.MockResultCache{}
	service := newTestService(cache, nil)

	request := strongApplicant()
	key := eligibilityKey(t, request)

	cache.On("Get", ctx, key).Return(nil, false, nil).Once()
	cache.On("Set", ctx, key, mock.MatchedBy(func(payload []byte) bool {
		return strings.Contains(string(payload), `"monthlyPayment":7096.1`)
	}), testTTL).Return(nil).Once()

	result, err := service.CheckEligibility(ctx, request)

	require.NoError(t, err)
	assert.True(t, result.EligibilityResult.IsEligible)
	assert.Equal(t, "7096.10", result.RecommendedLoan.MonthlyPayment.StringFixed(2))
	cache.AssertExpectations(t)
}

func TestCheckEligibility_CacheHit(t *testing.T) {
	ctx := context.Background()
	cache := &mocks.MockResultCache{}
	service := newTestService(cache, nil)

	request := strongApplicant()
	computed, err := NewEligibilityEvaluator().Evaluate(request)
	require.NoError(t, err)
	payload, err := json.Marshal(computed)
	require.NoError(t, err)

	cache.On("Get", ctx, eligibilityKey(t, request)).Return(payload, true, nil).Once()

	result, err := service.CheckEligibility(ctx, request)

	require.NoError(t, err)
	assert.Equal(t, computed.EligibilityResult, result.EligibilityResult)
	assert.True(t, computed.RecommendedLoan.MaxAmount.Equal(result.RecommendedLoan.MaxAmount))
	assert.True(t, computed.RecommendedLoan.TotalRepayment.Equal(result.RecommendedLoan.TotalRepayment))
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckEligibility_CacheFailuresAreIgnored(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(cache *mocks.MockResultCache, key string)
	}{
		{
			name: "read error",
			setup: func(cache *mocks.MockResultCache, key string) {
				cache.On("Get", ctx, key).Return(nil, false, errors.New("connection refused"))
				cache.On("Set", ctx, key, mock.Anything, testTTL).Return(nil)
			},
		},
		{
			name: "write error",
			setup: func(cache *mocks.MockResultCache, key string) {
				cache.On("Get", ctx, key).Return(nil, false, nil)
				cache.On("Set", ctx, key, mock.Anything, testTTL).Return(errors.New("OOM command not allowed"))
			},
		},
		{
			name: "corrupt entry",
			setup: func(cache *mocks.MockResultCache, key string) {
				cache.On("Get", ctx, key).Return([]byte("{not json"), true, nil)
				cache.On("Set", ctx, key, mock.Anything, testTTL).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := &mocks.MockResultCache{}
			service := newTestService(cache, nil)
			request := strongApplicant()
			tt.setup(cache, eligibilityKey(t, request))

			result, err := service.CheckEligibility(ctx, request)

			require.NoError(t, err)
			assert.Equal(t, 92, result.EligibilityResult.ApprovalLikelihood)
			cache.AssertCalled(t, "Set", ctx, mock.Anything, mock.Anything, testTTL)
		})
	}
}

func TestCheckEligibility_CacheFailureIsLoggedAsCacheError(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	cache := &mocks.MockResultCache{}
	service := NewLoanService(nil, cache, testTTL, nil, zap.New(core))

	request := strongApplicant()
	key := eligibilityKey(t, request)
	cache.On("Get", ctx, key).Return(nil, false, errors.New("connection refused"))
	cache.On("Set", ctx, key, mock.Anything, testTTL).Return(nil)

	_, err := service.CheckEligibility(ctx, request)
	require.NoError(t, err)

	entries := logs.FilterMessage("Cache read failed").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], customError.ErrCodeCacheError)
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
}

func TestCheckEligibility_MissingExpensesRejected(t *testing.T) {
	cache := &mocks.MockResultCache{}
	service := newTestService(cache, nil)

	request := strongApplicant()
	request.FinancialInfo.MonthlyExpenses = nil

	result, err := service.CheckEligibility(context.Background(), request)

	assert.Nil(t, result)
	var validationErr *customError.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, map[string]string{
		"financialInfo.monthlyExpenses": "Please enter your monthly expenses",
	}, validationErr.Fields)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCheckEligibility_ValidationFailure(t *testing.T) {
	cache := &mocks.MockResultCache{}
	service := newTestService(cache, nil)

	request := strongApplicant()
	request.PersonalInfo.Age = 70
	request.LoanDetails.LoanTerm = 0

	result, err := service.CheckEligibility(context.Background(), request)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, customError.ErrValidationFailed))

	var validationErr *customError.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "Age must be between 18 and 65", validationErr.Fields["personalInfo.age"])
	assert.Equal(t, "Loan term must be between 6 and 60 months", validationErr.Fields["loanDetails.loanTerm"])

	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestCalculateRate_WithoutCache(t *testing.T) {
	service := newTestService(nil, nil)

	result, err := service.CalculateRate(context.Background(), rateRequest())

	require.NoError(t, err)
	assert.Equal(t, "14", result.InterestRate.String())
	assert.Equal(t, "8978.71", result.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "107744.54", result.TotalRepayment.StringFixed(2))
	assert.Equal(t, "7744.54", result.TotalInterest.StringFixed(2))
	assert.Len(t, result.PaymentSchedule, SchedulePreviewMonths)
}

func TestCalculateRate_UsesMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := repository.NewMemoryCache()
	service := newTestService(cache, nil)

	first, err := service.CalculateRate(ctx, rateRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := service.CalculateRate(ctx, rateRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	assert.True(t, first.MonthlyPayment.Equal(second.MonthlyPayment))
	require.Len(t, second.PaymentSchedule, len(first.PaymentSchedule))
	for i := range first.PaymentSchedule {
		assert.True(t, first.PaymentSchedule[i].Balance.Equal(second.PaymentSchedule[i].Balance))
	}

	other := rateRequest()
	other.LoanType = domain.LoanTypeVehicle
	_, err = service.CalculateRate(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestCalculateRate_ValidationFailure(t *testing.T) {
	service := newTestService(nil, nil)

	request := rateRequest()
	request.LoanType = "mortgage"

	_, err := service.CalculateRate(context.Background(), request)

	var validationErr *customError.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, map[string]string{"loanType": "Please select a loan type"}, validationErr.Fields)
}

func TestCacheKey(t *testing.T) {
	a, err := cacheKey(OperationRate, rateRequest())
	require.NoError(t, err)
	b, err := cacheKey(OperationRate, rateRequest())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "v1:rate:"))

	other := rateRequest()
	other.CreditScore = 621
	c, err := cacheKey(OperationRate, other)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := cacheKey(OperationEligibility, rateRequest())
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestGetValidationRules(t *testing.T) {
	service := newTestService(nil, nil)

	table := service.GetValidationRules(context.Background())

	assert.Contains(t, table, "personalInfo")
	assert.Equal(t, "Minimum monthly income of R5,000 required", table["financialInfo"]["monthlyIncome"].ErrorMessage)
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	products := &mocks.MockProductRepository{}
	service := newTestService(nil, products)

	products.On("List", ctx).Return(repository.DefaultProducts(), nil).Once()
	products.On("GetByID", ctx, "vehicle_loan").Return(repository.DefaultProducts()[1], nil).Once()
	products.On("GetByID", ctx, "mortgage").Return(nil, customError.WrapProductNotFound("mortgage")).Once()

	list, err := service.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Products, 2)

	product, err := service.GetProduct(ctx, "vehicle_loan")
	require.NoError(t, err)
	assert.Equal(t, "Vehicle Finance", product.Name)

	_, err = service.GetProduct(ctx, "mortgage")
	assert.True(t, errors.Is(err, customError.ErrProductNotFound))

	products.AssertExpectations(t)
}

func TestListProducts_RepositoryError(t *testing.T) {
	ctx := context.Background()
	products := &mocks.MockProductRepository{}
	service := newTestService(nil, products)

	products.On("List", ctx).Return(nil, customError.WrapDatabaseError(errors.New("timeout")))

	result, err := service.ListProducts(ctx)
	assert.Nil(t, result)
	assert.Error(t, err)
}
