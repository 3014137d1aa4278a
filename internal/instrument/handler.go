package instrument

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListInstruments godoc
// @Summary      List instruments
// @Tags         instruments
// @Produce      json
// @Success      200  {array}   Instrument
// @Failure      500  {object}  api.ErrorResponse
// @Router       /instruments [get]
func (h *Handler) ListInstruments(c *gin.Context) {
	instruments, err := h.repo.GetAll(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch instruments"})
		return
	}

	c.JSON(http.StatusOK, instruments)
}

// CreateInstrument godoc
// @Summary      Create instrument
// @Tags         instruments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateInstrumentRequest  true  "Instrument data"
// @Success      201      {object}  Instrument
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/instruments [post]
func (h *Handler) CreateInstrument(c *gin.Context) {
	var req CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	instrument, err := h.repo.Create(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create instrument"})
		return
	}

	c.JSON(http.StatusCreated, instrument)
}

// DeactivateInstrument godoc
// @Summary      Deactivate instrument
// @Tags         instruments
// @Security     BearerAuth
// @Produce      json
// @Param        instrumentID  path      int  true  "Instrument ID"
// @Success      200           {object}  api.MessageResponse
// @Failure      400           {object}  api.ErrorResponse
// @Failure      500           {object}  api.ErrorResponse
// @Router       /admin/instruments/{instrumentID}/deactivate [post]
func (h *Handler) DeactivateInstrument(c *gin.Context) {
	instrumentID, err := strconv.Atoi(c.Param("instrumentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid instrument ID"})
		return
	}

	if err := h.repo.SetActive(c.Request.Context(), instrumentID, false); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update instrument"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Instrument deactivated"})
}
