package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/loan-simulator/internal/domain"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
	"github.com/segyhp/loan-simulator/pkg/response"
)

const maxBodyBytes = 1 << 20

// LoanService is the behaviour the loan endpoints depend on
type LoanService interface {
	CheckEligibility(ctx context.Context, request *domain.EligibilityRequest) (*domain.EligibilityResponse, error)
	CalculateRate(ctx context.Context, request *domain.RateCalculationRequest) (*domain.RateCalculationResponse, error)
	GetValidationRules(ctx context.Context) domain.ValidationRulesTable
	ListProducts(ctx context.Context) (*domain.LoanProductsResponse, error)
	GetProduct(ctx context.Context, productID string) (*domain.LoanProduct, error)
}

type LoanHandler struct {
	service LoanService
	logger  *zap.Logger
}

func NewLoanHandler(service LoanService, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{
		service: service,
		logger:  logger.Named("loan_handler"),
	}
}

// CheckEligibility handles POST /loans/eligibility
func (h *LoanHandler) CheckEligibility(w http.ResponseWriter, r *http.Request) {
	var request domain.EligibilityRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.CheckEligibility(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, result)
}

// CalculateRate handles POST /loans/calculate-rate
func (h *LoanHandler) CalculateRate(w http.ResponseWriter, r *http.Request) {
	var request domain.RateCalculationRequest
	if err := decodeJSON(w, r, &request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.CalculateRate(r.Context(), &request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, result)
}

// GetValidationRules handles GET /loans/validation-rules
func (h *LoanHandler) GetValidationRules(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.GetValidationRules(r.Context()))
}

// ListProducts handles GET /loans/products
func (h *LoanHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, result)
}

// GetProduct handles GET /loans/products/{productId}
func (h *LoanHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["productId"]

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, product)
}

// decodeJSON reads exactly one strictly typed JSON object of bounded size
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return domain.DecodeStrict(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst)
}

func (h *LoanHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *customError.ValidationError
	if errors.As(err, &validationErr) {
		response.Detailed(w, http.StatusBadRequest, customError.ErrCodeValidationFailed,
			"Validation failed", nil, validationErr.Fields)
		return
	}

	code, message := "", err.Error()
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		code, message = businessErr.Code, businessErr.Message
	}

	switch {
	case customError.IsPrecondition(err):
		response.Detailed(w, http.StatusUnprocessableEntity, code, message, nil, nil)
	case errors.Is(err, customError.ErrProductNotFound):
		response.Detailed(w, http.StatusNotFound, code, message, nil, nil)
	default:
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", response.RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		response.Detailed(w, http.StatusInternalServerError, code, "Internal server error", nil, nil)
	}
}
