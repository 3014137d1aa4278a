package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
	"tuneslot/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListMyPayments godoc
// @Summary      List my payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Payment
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /payments [get]
func (h *Handler) ListMyPayments(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	payments, err := h.repo.GetForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// UpdatePaymentStatus godoc
// @Summary      Update payment status
// @Description  Marks a payment PAID or REFUNDED. Admin only.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        paymentID  path      int                         true  "Payment ID"
// @Param        request    body      UpdatePaymentStatusRequest  true  "New status"
// @Success      200        {object}  Payment
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /admin/payments/{paymentID} [put]
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid payment ID"})
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	p, err := h.repo.UpdateStatus(c.Request.Context(), paymentID, req.Status)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}
