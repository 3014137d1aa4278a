package store

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
	"tuneslot/internal/auth"
)

type Handler struct {
	repo    Repository
	service Service
}

func NewHandler(repo Repository, service Service) *Handler {
	return &Handler{repo: repo, service: service}
}

// ListProducts godoc
// @Summary      List store products
// @Tags         store
// @Produce      json
// @Success      200  {array}   Product
// @Failure      500  {object}  api.ErrorResponse
// @Router       /store/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.repo.GetProducts(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct godoc
// @Summary      Create product
// @Tags         store
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateProductRequest  true  "Product data"
// @Success      201      {object}  Product
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/store/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	product, err := h.repo.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// DeactivateProduct godoc
// @Summary      Deactivate product
// @Tags         store
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Router       /admin/store/products/{id} [delete]
func (h *Handler) DeactivateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	if err := h.repo.SetProductActive(c.Request.Context(), id, false); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to deactivate product"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Product deactivated"})
}

// GetCart godoc
// @Summary      View cart
// @Tags         store
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   CartItemWithProduct
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /store/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	items, err := h.repo.GetCart(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddToCart godoc
// @Summary      Add product to cart
// @Tags         store
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AddToCartRequest  true  "Cart item"
// @Success      200      {object}  CartItem
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /store/cart [post]
func (h *Handler) AddToCart(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	item, err := h.service.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Product not found"})
		case errors.Is(err, ErrProductInactive):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Product is not available"})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Not enough stock"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to add to cart"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveFromCart godoc
// @Summary      Remove product from cart
// @Tags         store
// @Security     BearerAuth
// @Produce      json
// @Param        productID  path      int  true  "Product ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Router       /store/cart/{productID} [delete]
func (h *Handler) RemoveFromCart(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	productID, err := strconv.Atoi(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid product ID"})
		return
	}

	if err := h.repo.RemoveCartItem(c.Request.Context(), userID, productID); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Item removed from cart"})
}

// Checkout godoc
// @Summary      Checkout cart
// @Description  Converts the cart into an order, decrements stock and records a pending payment.
// @Tags         store
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  CheckoutResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /store/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	order, paymentID, err := h.service.Checkout(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCartEmpty):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cart is empty"})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Not enough stock for one or more items"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Checkout failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, CheckoutResponse{
		Order:     order,
		PaymentID: paymentID,
	})
}

// ListMyOrders godoc
// @Summary      List my orders
// @Tags         store
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Order
// @Failure      500  {object}  api.ErrorResponse
// @Router       /store/orders [get]
func (h *Handler) ListMyOrders(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	orders, err := h.repo.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
