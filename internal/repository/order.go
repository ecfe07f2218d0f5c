package repository

import (
	"context"
	"fmt"

	"orm-lessons/internal/models"
	"orm-lessons/internal/sqlerr"
)

// AddOrder fails with sqlerr.ErrConstraintViolation when userID is unknown.
func (r *Repo) AddOrder(ctx context.Context, userID int64) (*models.Order, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	order := models.Order{UserID: userID}
	if err := tx.Create(&order).Error; err != nil {
		return nil, r.abort(fmt.Errorf("add order for user %d: %w", userID, sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return nil, err
	}
	r.log.Debug().Int("order_id", order.OrderID).Int64("user_id", userID).Msg("order added")
	return &order, nil
}

func (r *Repo) AddProductToOrder(ctx context.Context, orderID, productID, quantity int) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	link := models.OrderProduct{OrderID: orderID, ProductID: productID, Quantity: quantity}
	if err := tx.Create(&link).Error; err != nil {
		return r.abort(fmt.Errorf("add product %d to order %d: %w", productID, orderID, sqlerr.Translate(err)))
	}
	return r.session.Commit()
}

// OrderProducts lists the links of one order by product id.
func (r *Repo) OrderProducts(ctx context.Context, orderID int) ([]models.OrderProduct, error) {
	tx, err := r.tx(ctx)
	if err != nil {
		return nil, err
	}

	var links []models.OrderProduct
	if err := tx.Where("order_id = ?", orderID).Order("product_id").Find(&links).Error; err != nil {
		return nil, r.abort(fmt.Errorf("list products of order %d: %w", orderID, sqlerr.Translate(err)))
	}

	if err := r.session.Commit(); err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteOrder removes an order together with its product links.
func (r *Repo) DeleteOrder(ctx context.Context, orderID int) error {
	tx, err := r.tx(ctx)
	if err != nil {
		return err
	}

	if err := tx.Where("order_id = ?", orderID).Delete(&models.Order{}).Error; err != nil {
		return r.abort(fmt.Errorf("delete order %d: %w", orderID, sqlerr.Translate(err)))
	}
	return r.session.Commit()
}
