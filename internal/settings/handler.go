package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetSettings godoc
// @Summary      Studio settings
// @Tags         settings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  StudioSettings
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.repo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpdateSettings godoc
// @Summary      Update studio settings
// @Tags         settings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateSettingsRequest  true  "Settings"
// @Success      200      {object}  StudioSettings
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	s, err := h.repo.Update(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, s)
}
