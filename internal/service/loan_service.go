package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/segyhp/loan-simulator/internal/domain"
	"github.com/segyhp/loan-simulator/internal/metrics"
	"github.com/segyhp/loan-simulator/internal/repository"
	"github.com/segyhp/loan-simulator/internal/rules"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
)

// Cache operations, also used as metric labels
const (
	OperationEligibility = "eligibility"
	OperationRate        = "rate"
)

// cacheKeyVersion changes whenever a cached response shape changes
const cacheKeyVersion = "v1"

// LoanService validates requests, runs the engine and caches results.
// The cache is optional: pass a nil cache to always compute.
type LoanService struct {
	evaluator  *EligibilityEvaluator
	calculator *RateCalculator
	validator  *rules.Validator
	products   repository.ProductRepository
	cache      repository.ResultCache
	cacheTTL   time.Duration
	metrics    *metrics.Collector
	logger     *zap.Logger
}

func NewLoanService(
	products repository.ProductRepository,
	cache repository.ResultCache,
	cacheTTL time.Duration,
	collector *metrics.Collector,
	logger *zap.Logger,
) *LoanService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LoanService{
		evaluator:  NewEligibilityEvaluator(),
		calculator: NewRateCalculator(),
		validator:  rules.NewValidator(),
		products:   products,
		cache:      cache,
		cacheTTL:   cacheTTL,
		metrics:    collector,
		logger:     logger.Named("loan_service"),
	}
}

// CheckEligibility validates the application against the rule table and evaluates it
func (s *LoanService) CheckEligibility(ctx context.Context, request *domain.EligibilityRequest) (*domain.EligibilityResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, err
	}

	return cached(ctx, s, OperationEligibility, request, func() (*domain.EligibilityResponse, error) {
		start := time.Now()
		result, err := s.evaluator.Evaluate(request)
		if err != nil {
			return nil, err
		}

		s.metrics.RecordEvaluation(result.EligibilityResult.IsEligible, string(result.EligibilityResult.RiskCategory), time.Since(start))
		s.logger.Debug("Eligibility evaluated",
			zap.Bool("eligible", result.EligibilityResult.IsEligible),
			zap.String("risk_category", string(result.EligibilityResult.RiskCategory)),
			zap.Int("approval_likelihood", result.EligibilityResult.ApprovalLikelihood),
		)
		return result, nil
	})
}

// CalculateRate validates the request and prices the loan
func (s *LoanService) CalculateRate(ctx context.Context, request *domain.RateCalculationRequest) (*domain.RateCalculationResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return nil, err
	}

	return cached(ctx, s, OperationRate, request, func() (*domain.RateCalculationResponse, error) {
		start := time.Now()
		result, err := s.calculator.Calculate(request)
		if err != nil {
			return nil, err
		}

		s.metrics.RecordCalculation(string(request.LoanType), time.Since(start))
		s.logger.Debug("Rate calculated",
			zap.String("loan_type", string(request.LoanType)),
			zap.String("interest_rate", result.InterestRate.String()),
		)
		return result, nil
	})
}

// GetValidationRules returns a copy of the rule table
func (s *LoanService) GetValidationRules(_ context.Context) domain.ValidationRulesTable {
	return rules.Table()
}

func (s *LoanService) ListProducts(ctx context.Context) (*domain.LoanProductsResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.LoanProductsResponse{Products: products}, nil
}

func (s *LoanService) GetProduct(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	return s.products.GetByID(ctx, productID)
}

// cached returns the stored result for request or computes and stores it.
// Cache failures are logged and never fail the call.
func cached[T any](ctx context.Context, s *LoanService, operation string, request interface{}, compute func() (*T, error)) (*T, error) {
	if s.cache == nil {
		return compute()
	}

	key, err := cacheKey(operation, request)
	if err != nil {
		s.logger.Warn("Failed to build cache key", zap.String("operation", operation), zap.Error(err))
		return compute()
	}

	payload, found, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.RecordCacheError(operation, "get")
		s.logger.Warn("Cache read failed", zap.String("operation", operation), zap.Error(customError.WrapCacheError(err)))
	case found:
		var result T
		if err := json.Unmarshal(payload, &result); err == nil {
			s.metrics.RecordCacheLookup(operation, true)
			return &result, nil
		}
		s.metrics.RecordCacheError(operation, "decode")
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}
	s.metrics.RecordCacheLookup(operation, false)

	result, err := compute()
	if err != nil {
		return nil, err
	}

	payload, err = json.Marshal(result)
	if err == nil {
		err = s.cache.Set(ctx, key, payload, s.cacheTTL)
	}
	if err != nil {
		s.metrics.RecordCacheError(operation, "set")
		s.logger.Warn("Cache write failed", zap.String("operation", operation), zap.Error(customError.WrapCacheError(err)))
	}

	return result, nil
}

// cacheKey fingerprints the canonical JSON form of a request
func cacheKey(operation string, request interface{}) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	return cacheKeyVersion + ":" + operation + ":" + strconv.FormatUint(xxhash.Sum64(body), 16), nil
}
