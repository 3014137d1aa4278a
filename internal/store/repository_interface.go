package store

import "context"

type Repository interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProductByID(ctx context.Context, id int) (*Product, error)
	GetProducts(ctx context.Context, onlyActive bool) ([]Product, error)
	SetProductActive(ctx context.Context, id int, active bool) error

	UpsertCartItem(ctx context.Context, userID, productID, quantity int) (*CartItem, error)
	GetCart(ctx context.Context, userID int) ([]CartItemWithProduct, error)
	RemoveCartItem(ctx context.Context, userID, productID int) error
	ClearCart(ctx context.Context, userID int) error

	// Checkout converts the user's cart into an order inside one
	// transaction, decrementing stock per item; it fails without side
	// effects when any item exceeds the available stock.
	Checkout(ctx context.Context, userID int, reference string) (*Order, error)
	GetUserOrders(ctx context.Context, userID int) ([]Order, error)
}
