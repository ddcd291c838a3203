package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/segyhp/loan-simulator/internal/domain"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
)

// DefaultProducts returns the built-in catalog, ordered by ID
func DefaultProducts() []*domain.LoanProduct {
	return []*domain.LoanProduct{
		{
			ID:          string(domain.LoanTypePersonal),
			Name:        "Personal Loan",
			Description: "Flexible personal financing for various needs",
			MinAmount:   decimal.NewFromInt(5000),
			MaxAmount:   decimal.NewFromInt(300000),
			MinTerm:     6,
			MaxTerm:     60,
			InterestRateRange: domain.InterestRateRange{
				Min: decimal.RequireFromString("10.5"),
				Max: decimal.RequireFromString("18.5"),
			},
			Purposes: []string{"debt_consolidation", "home_improvement", "education", "medical", "other"},
		},
		{
			ID:          string(domain.LoanTypeVehicle),
			Name:        "Vehicle Finance",
			Description: "Financing for new and used vehicles",
			MinAmount:   decimal.NewFromInt(50000),
			MaxAmount:   decimal.NewFromInt(1500000),
			MinTerm:     12,
			MaxTerm:     72,
			InterestRateRange: domain.InterestRateRange{
				Min: decimal.RequireFromString("8.5"),
				Max: decimal.RequireFromString("15.0"),
			},
			Purposes: []string{"new_vehicle", "used_vehicle"},
		},
	}
}

type staticProductRepository struct {
	products []*domain.LoanProduct
}

func NewStaticProductRepository() ProductRepository {
	return &staticProductRepository{products: DefaultProducts()}
}

func (r *staticProductRepository) List(_ context.Context) ([]*domain.LoanProduct, error) {
	return cloneProducts(r.products), nil
}

func (r *staticProductRepository) GetByID(_ context.Context, productID string) (*domain.LoanProduct, error) {
	return findProduct(r.products, productID)
}

func findProduct(products []*domain.LoanProduct, productID string) (*domain.LoanProduct, error) {
	for _, product := range products {
		if product.ID == productID {
			return cloneProduct(product), nil
		}
	}
	return nil, customError.WrapProductNotFound(productID)
}

func cloneProducts(products []*domain.LoanProduct) []*domain.LoanProduct {
	out := make([]*domain.LoanProduct, 0, len(products))
	for _, product := range products {
		out = append(out, cloneProduct(product))
	}
	return out
}

func cloneProduct(product *domain.LoanProduct) *domain.LoanProduct {
	copied := *product
	copied.Purposes = append([]string(nil), product.Purposes...)
	return &copied
}
