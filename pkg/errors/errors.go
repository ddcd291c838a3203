package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors
var (
	ErrInvalidIncome     = errors.New("monthly income must be greater than zero")
	ErrInvalidLoanTerm   = errors.New("loan term must be at least one month")
	ErrInvalidLoanAmount = errors.New("loan amount must be greater than zero")
	ErrMissingExpenses   = errors.New("monthly expenses are required")
	ErrValidationFailed  = errors.New("validation failed")
	ErrProductNotFound   = errors.New("loan product not found")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidIncome     = "INVALID_INCOME"
	ErrCodeInvalidLoanTerm   = "INVALID_LOAN_TERM"
	ErrCodeInvalidLoanAmount = "INVALID_LOAN_AMOUNT"
	ErrCodeMissingExpenses   = "MISSING_EXPENSES"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// ValidationError lists the fields that broke a validation rule, keyed by
// their JSON path, with the rule's user-facing message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrCodeValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from field messages
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Wrap common errors with business context
func WrapInvalidIncome(income string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidIncome,
		fmt.Sprintf("Monthly income %s must be greater than zero", income),
		ErrInvalidIncome,
	)
}

func WrapInvalidLoanTerm(term int) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanTerm,
		fmt.Sprintf("Loan term of %d months is not allowed", term),
		ErrInvalidLoanTerm,
	)
}

func WrapInvalidLoanAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanAmount,
		fmt.Sprintf("Loan amount %s must be greater than zero", amount),
		ErrInvalidLoanAmount,
	)
}

func WrapMissingExpenses() *BusinessError {
	return NewBusinessError(
		ErrCodeMissingExpenses,
		"Monthly expenses must be provided",
		ErrMissingExpenses,
	)
}

func WrapProductNotFound(productID string) *BusinessError {
	return NewBusinessError(
		ErrCodeProductNotFound,
		fmt.Sprintf("Loan product with ID %s not found", productID),
		ErrProductNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// IsPrecondition reports whether err is a violated computation precondition
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrInvalidIncome) ||
		errors.Is(err, ErrInvalidLoanTerm) ||
		errors.Is(err, ErrInvalidLoanAmount) ||
		errors.Is(err, ErrMissingExpenses)
}
