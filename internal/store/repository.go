package store

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, instrument_id, price_cents, stock, is_active, created_at`

func (r *repository) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	query := `
		INSERT INTO products (name, description, instrument_id, price_cents, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + productColumns

	var p Product
	err := r.db.GetContext(ctx, &p, query,
		req.Name, req.Description, req.InstrumentID, req.PriceCents, req.Stock)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetProductByID(ctx context.Context, id int) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p Product
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetProducts(ctx context.Context, onlyActive bool) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	var products []Product
	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) SetProductActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE products SET is_active = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, active)
	return err
}

func (r *repository) UpsertCartItem(ctx context.Context, userID, productID, quantity int) (*CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + $3
		RETURNING id, user_id, product_id, quantity, created_at
	`

	var item CartItem
	err := r.db.GetContext(ctx, &item, query, userID, productID, quantity)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) GetCart(ctx context.Context, userID int) ([]CartItemWithProduct, error) {
	query := `
		SELECT
			c.id,
			c.user_id,
			c.product_id,
			c.quantity,
			c.created_at,
			p.name AS product_name,
			p.price_cents,
			p.stock
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.created_at ASC
	`

	var items []CartItemWithProduct
	err := r.db.SelectContext(ctx, &items, query, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *repository) RemoveCartItem(ctx context.Context, userID, productID int) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	_, err := r.db.ExecContext(ctx, query, userID, productID)
	return err
}

func (r *repository) ClearCart(ctx context.Context, userID int) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *repository) Checkout(ctx context.Context, userID int, reference string) (*Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var items []CartItemWithProduct
	cartQuery := `
		SELECT
			c.id,
			c.user_id,
			c.product_id,
			c.quantity,
			c.created_at,
			p.name AS product_name,
			p.price_cents,
			p.stock
		FROM cart_items c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		FOR UPDATE OF p
	`
	if err := tx.SelectContext(ctx, &items, cartQuery, userID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	var total int64
	for _, item := range items {
		if item.Quantity > item.Stock {
			return nil, ErrInsufficientStock
		}
		total += item.PriceCents * int64(item.Quantity)
	}

	var order Order
	orderQuery := `
		INSERT INTO orders (reference, user_id, total_cents)
		VALUES ($1, $2, $3)
		RETURNING id, reference, user_id, total_cents, status, created_at
	`
	if err := tx.GetContext(ctx, &order, orderQuery, reference, userID, total); err != nil {
		return nil, err
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price_cents) VALUES ($1, $2, $3, $4)`,
			order.ID, item.ProductID, item.Quantity, item.PriceCents); err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $2 WHERE id = $1`,
			item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *repository) GetUserOrders(ctx context.Context, userID int) ([]Order, error) {
	query := `
		SELECT id, reference, user_id, total_cents, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var orders []Order
	err := r.db.SelectContext(ctx, &orders, query, userID)
	if err != nil {
		return nil, err
	}

	return orders, nil
}
