package store

import "time"

type Product struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	InstrumentID *int      `db:"instrument_id" json:"instrument_id,omitempty"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	Stock        int       `db:"stock" json:"stock"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type CartItem struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	ProductID int       `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CartItemWithProduct struct {
	CartItem
	ProductName string `db:"product_name" json:"product_name"`
	PriceCents  int64  `db:"price_cents" json:"price_cents"`
	Stock       int    `db:"stock" json:"stock"`
}

type Order struct {
	ID         int       `db:"id" json:"id"`
	Reference  string    `db:"reference" json:"reference"`
	UserID     int       `db:"user_id" json:"user_id"`
	TotalCents int64     `db:"total_cents" json:"total_cents"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type OrderItem struct {
	ID         int   `db:"id" json:"id"`
	OrderID    int   `db:"order_id" json:"order_id"`
	ProductID  int   `db:"product_id" json:"product_id"`
	Quantity   int   `db:"quantity" json:"quantity"`
	PriceCents int64 `db:"price_cents" json:"price_cents"`
}

type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	InstrumentID *int   `json:"instrument_id"`
	PriceCents   int64  `json:"price_cents" binding:"required,min=0"`
	Stock        int    `json:"stock" binding:"min=0"`
}

type AddToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,min=1"`
}

type CheckoutResponse struct {
	Order     *Order `json:"order"`
	PaymentID int    `json:"payment_id"`
}
