package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tuneslot/internal/email"
	"tuneslot/internal/logger"
	"tuneslot/internal/payment"
	"tuneslot/internal/user"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	os.Exit(m.Run())
}

type MockRepo struct{ mock.Mock }
type MockPaymentRepo struct{ mock.Mock }
type MockUserRepo struct{ mock.Mock }

func (m *MockRepo) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepo) GetProductByID(ctx context.Context, id int) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepo) GetProducts(ctx context.Context, onlyActive bool) ([]Product, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepo) SetProductActive(ctx context.Context, id int, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockRepo) UpsertCartItem(ctx context.Context, userID, productID, quantity int) (*CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepo) GetCart(ctx context.Context, userID int) ([]CartItemWithProduct, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CartItemWithProduct), args.Error(1)
}

func (m *MockRepo) RemoveCartItem(ctx context.Context, userID, productID int) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockRepo) ClearCart(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRepo) Checkout(ctx context.Context, userID int, reference string) (*Order, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepo) GetUserOrders(ctx context.Context, userID int) ([]Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockPaymentRepo) CreateForBooking(ctx context.Context, userID, bookingID int, amountCents int64) (*payment.Payment, error) {
	args := m.Called(ctx, userID, bookingID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepo) CreateForOrder(ctx context.Context, userID, orderID int, amountCents int64) (*payment.Payment, error) {
	args := m.Called(ctx, userID, orderID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByID(ctx context.Context, id int) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetForUser(ctx context.Context, userID int) ([]payment.Payment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *MockPaymentRepo) UpdateStatus(ctx context.Context, id int, status string) (*payment.Payment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role, phone string) (*user.User, error) {
	args := m.Called(ctx, name, email, passwordHash, role, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestStoreService() (Service, *MockRepo, *MockPaymentRepo, *MockUserRepo) {
	repo := new(MockRepo)
	payments := new(MockPaymentRepo)
	users := new(MockUserRepo)

	emailService := email.New("from@test.com", "Test", "localhost", "1025", "", "", "localhost:6379")
	svc := NewService(repo, payments, users, emailService)

	return svc, repo, payments, users
}

func TestService_AddToCart(t *testing.T) {
	guitarStrings := &Product{ID: 3, Name: "Guitar Strings", PriceCents: 1200, Stock: 5, IsActive: true}

	t.Run("in-stock product is added", func(t *testing.T) {
		svc, repo, _, _ := newTestStoreService()
		repo.On("GetProductByID", mock.Anything, 3).Return(guitarStrings, nil)
		repo.On("UpsertCartItem", mock.Anything, 5, 3, 2).Return(&CartItem{ID: 1, UserID: 5, ProductID: 3, Quantity: 2}, nil)

		item, err := svc.AddToCart(context.Background(), 5, AddToCartRequest{ProductID: 3, Quantity: 2})

		assert.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("quantity above stock is refused", func(t *testing.T) {
		svc, repo, _, _ := newTestStoreService()
		repo.On("GetProductByID", mock.Anything, 3).Return(guitarStrings, nil)

		_, err := svc.AddToCart(context.Background(), 5, AddToCartRequest{ProductID: 3, Quantity: 6})

		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("inactive product is refused", func(t *testing.T) {
		inactive := *guitarStrings
		inactive.IsActive = false

		svc, repo, _, _ := newTestStoreService()
		repo.On("GetProductByID", mock.Anything, 3).Return(&inactive, nil)

		_, err := svc.AddToCart(context.Background(), 5, AddToCartRequest{ProductID: 3, Quantity: 1})

		assert.ErrorIs(t, err, ErrProductInactive)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, repo, _, _ := newTestStoreService()
		repo.On("GetProductByID", mock.Anything, 99).Return(nil, errors.New("no rows"))

		_, err := svc.AddToCart(context.Background(), 5, AddToCartRequest{ProductID: 99, Quantity: 1})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_Checkout(t *testing.T) {
	t.Run("order gets a payment row", func(t *testing.T) {
		svc, repo, payments, users := newTestStoreService()

		repo.On("Checkout", mock.Anything, 5, mock.AnythingOfType("string")).
			Return(&Order{ID: 7, Reference: "ref-1", UserID: 5, TotalCents: 2400, Status: "PLACED"}, nil)
		payments.On("CreateForOrder", mock.Anything, 5, 7, int64(2400)).Return(&payment.Payment{ID: 44}, nil)
		users.On("FindByID", mock.Anything, 5).Return(&user.User{ID: 5, Email: "a@b.c", Name: "A"}, nil)

		order, paymentID, err := svc.Checkout(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, 7, order.ID)
		assert.Equal(t, 44, paymentID)
		repo.AssertExpectations(t)
		payments.AssertExpectations(t)
	})

	t.Run("empty cart aborts checkout", func(t *testing.T) {
		svc, repo, payments, _ := newTestStoreService()
		repo.On("Checkout", mock.Anything, 5, mock.AnythingOfType("string")).Return(nil, ErrCartEmpty)

		_, _, err := svc.Checkout(context.Background(), 5)

		assert.ErrorIs(t, err, ErrCartEmpty)
		payments.AssertNotCalled(t, "CreateForOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("payment failure does not undo the order", func(t *testing.T) {
		svc, repo, payments, users := newTestStoreService()

		repo.On("Checkout", mock.Anything, 5, mock.AnythingOfType("string")).
			Return(&Order{ID: 8, Reference: "ref-2", UserID: 5, TotalCents: 900, Status: "PLACED"}, nil)
		payments.On("CreateForOrder", mock.Anything, 5, 8, int64(900)).Return(nil, errors.New("db down"))
		users.On("FindByID", mock.Anything, 5).Return(&user.User{ID: 5, Email: "a@b.c", Name: "A"}, nil)

		order, paymentID, err := svc.Checkout(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, 8, order.ID)
		assert.Zero(t, paymentID)
	})
}
