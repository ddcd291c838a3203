package repository

import (
	"context"
	"time"

	"github.com/segyhp/loan-simulator/internal/domain"
)

// ResultCache stores serialized computation results keyed by request fingerprint
type ResultCache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value that expires after ttl; a zero ttl never expires
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ProductRepository defines the interface for loan product catalog reads
type ProductRepository interface {
	// List returns every product ordered by ID
	List(ctx context.Context) ([]*domain.LoanProduct, error)

	// GetByID retrieves a product by its ID
	GetByID(ctx context.Context, productID string) (*domain.LoanProduct, error)
}
