package repository

import (
	"context"
	"sync"

	"github.com/segyhp/loan-simulator/internal/domain"
)

// ProductCatalog serves reads from an in-memory snapshot of a backing
// repository. Until the first successful Refresh, reads go to the source.
type ProductCatalog struct {
	source ProductRepository

	mu       sync.RWMutex
	snapshot []*domain.LoanProduct
	loaded   bool
}

func NewProductCatalog(source ProductRepository) *ProductCatalog {
	return &ProductCatalog{source: source}
}

// Refresh reloads the snapshot. On failure the previous snapshot is kept.
func (c *ProductCatalog) Refresh(ctx context.Context) (int, error) {
	products, err := c.source.List(ctx)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.snapshot = products
	c.loaded = true
	c.mu.Unlock()

	return len(products), nil
}

func (c *ProductCatalog) List(ctx context.Context) ([]*domain.LoanProduct, error) {
	c.mu.RLock()
	snapshot, loaded := c.snapshot, c.loaded
	c.mu.RUnlock()

	if !loaded {
		return c.source.List(ctx)
	}
	return cloneProducts(snapshot), nil
}

func (c *ProductCatalog) GetByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	c.mu.RLock()
	snapshot, loaded := c.snapshot, c.loaded
	c.mu.RUnlock()

	if !loaded {
		return c.source.GetByID(ctx, productID)
	}
	return findProduct(snapshot, productID)
}
