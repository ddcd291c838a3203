package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/segyhp/loan-simulator/internal/domain"
)

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CheckEligibility(ctx context.Context, request *domain.EligibilityRequest) (*domain.EligibilityResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EligibilityResponse), args.Error(1)
}

func (m *MockLoanService) CalculateRate(ctx context.Context, request *domain.RateCalculationRequest) (*domain.RateCalculationResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateCalculationResponse), args.Error(1)
}

func (m *MockLoanService) GetValidationRules(ctx context.Context) domain.ValidationRulesTable {
	args := m.Called(ctx)
	return args.Get(0).(domain.ValidationRulesTable)
}

func (m *MockLoanService) ListProducts(ctx context.Context) (*domain.LoanProductsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProductsResponse), args.Error(1)
}

func (m *MockLoanService) GetProduct(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProduct), args.Error(1)
}

// NewMockLoanService creates a new mock loan service instance
func NewMockLoanService() *MockLoanService {
	return &MockLoanService{}
}
