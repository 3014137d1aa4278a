package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"tuneslot/internal/email"
	"tuneslot/internal/logger"
	"tuneslot/internal/metrics"
	"tuneslot/internal/payment"
	"tuneslot/internal/user"
)

var ErrProductInactive = errors.New("product is not available")

type Service interface {
	AddToCart(ctx context.Context, userID int, req AddToCartRequest) (*CartItem, error)
	Checkout(ctx context.Context, userID int) (*Order, int, error)
}

type service struct {
	repo         Repository
	paymentRepo  payment.Repository
	userRepo     user.Repository
	emailService *email.Service
}

func NewService(repo Repository, paymentRepo payment.Repository, userRepo user.Repository, emailService *email.Service) Service {
	return &service{
		repo:         repo,
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *service) AddToCart(ctx context.Context, userID int, req AddToCartRequest) (*CartItem, error) {
	product, err := s.repo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductInactive
	}
	if req.Quantity > product.Stock {
		return nil, ErrInsufficientStock
	}

	return s.repo.UpsertCartItem(ctx, userID, req.ProductID, req.Quantity)
}

// Checkout turns the cart into an order, then records a pending payment and
// queues the confirmation email. The order stands even if those follow-ups
// fail.
func (s *service) Checkout(ctx context.Context, userID int) (*Order, int, error) {
	order, err := s.repo.Checkout(ctx, userID, uuid.NewString())
	if err != nil {
		return nil, 0, err
	}

	metrics.RecordOrder()

	paymentID := 0
	p, err := s.paymentRepo.CreateForOrder(ctx, userID, order.ID, order.TotalCents)
	if err != nil {
		logger.Warnf("Order %d placed but payment row failed: %v", order.ID, err)
	} else {
		paymentID = p.ID
	}

	if u, err := s.userRepo.FindByID(ctx, userID); err == nil {
		if err := s.emailService.SendOrderConfirmation(ctx, u.Email, u.Name, order.Reference, order.TotalCents); err != nil {
			logger.Warnf("Order %d confirmation email failed: %v", order.ID, err)
		}
	}

	return order, paymentID, nil
}
