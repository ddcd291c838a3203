package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/segyhp/loan-simulator/internal/domain"
	customError "github.com/segyhp/loan-simulator/pkg/errors"
)

type productRow struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	MinAmount   decimal.Decimal `db:"min_amount"`
	MaxAmount   decimal.Decimal `db:"max_amount"`
	MinTerm     int             `db:"min_term"`
	MaxTerm     int             `db:"max_term"`
	MinRate     decimal.Decimal `db:"min_rate"`
	MaxRate     decimal.Decimal `db:"max_rate"`
	Purposes    pq.StringArray  `db:"purposes"`
}

func (row productRow) toDomain() *domain.LoanProduct {
	return &domain.LoanProduct{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		MinAmount:   row.MinAmount,
		MaxAmount:   row.MaxAmount,
		MinTerm:     row.MinTerm,
		MaxTerm:     row.MaxTerm,
		InterestRateRange: domain.InterestRateRange{
			Min: row.MinRate,
			Max: row.MaxRate,
		},
		Purposes: []string(row.Purposes),
	}
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]*domain.LoanProduct, error) {
	query := `
		SELECT id, name, description, min_amount, max_amount, min_term, max_term, min_rate, max_rate, purposes
		FROM loan_products
		ORDER BY id
	`

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	products := make([]*domain.LoanProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toDomain())
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	query := `
		SELECT id, name, description, min_amount, max_amount, min_term, max_term, min_rate, max_rate, purposes
		FROM loan_products
		WHERE id = $1
	`

	var row productRow
	err := r.db.GetContext(ctx, &row, query, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapProductNotFound(productID)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return row.toDomain(), nil
}
