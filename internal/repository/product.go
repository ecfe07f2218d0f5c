package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"orm-lessons/internal/models"
	"orm-lessons/internal/sqlerr"
)

// AddProduct stores price rounded to models.PriceScale digits. An empty
// description is stored as NULL.
func (r *Repo) AddProduct(ctx context.Context, title, description string, price decimal.Decimal) (*models.Product, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Title: title,
		Price: price.Round(models.PriceScale),
	}
	if description != "" {
		product.Description = &description
	}

	if err := tx.Create(&product).Error; err != nil {
		return nil, r.abort(fmt.Errorf("add product %q: %w", title, sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct fails with sqlerr.ErrConstraintViolation while any order
// still links the product.
func (r *Repo) DeleteProduct(ctx context.Context, productID int) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if err := tx.Where("product_id = ?", productID).Delete(&models.Product{}).Error; err != nil {
		return r.abort(fmt.Errorf("delete product %d: %w", productID, sqlerr.Translate(err)))
	}
	return r.session.Commit()
}
