package newsletter

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request  body      SubscribeRequest  true  "Email address"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /newsletter/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := h.service.Subscribe(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to subscribe"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscribed to newsletter"})
}

// Unsubscribe godoc
// @Summary      Unsubscribe from the newsletter
// @Tags         newsletter
// @Produce      json
// @Param        token  path      string  true  "Unsubscribe token"
// @Success      200    {object}  api.MessageResponse
// @Failure      404    {object}  api.ErrorResponse
// @Router       /newsletter/unsubscribe/{token} [get]
func (h *Handler) Unsubscribe(c *gin.Context) {
	err := h.service.Unsubscribe(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Unknown unsubscribe link"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to unsubscribe"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Unsubscribed from newsletter"})
}

// Broadcast godoc
// @Summary      Send a newsletter to all subscribers
// @Tags         newsletter
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BroadcastRequest  true  "Newsletter content"
// @Success      200      {object}  BroadcastResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/newsletter/broadcast [post]
func (h *Handler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sent, err := h.service.Broadcast(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to send newsletter"})
		return
	}

	c.JSON(http.StatusOK, BroadcastResponse{Recipients: sent})
}
