package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
	"tuneslot/internal/auth"
	"tuneslot/internal/lesson"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking godoc
// @Summary      Book a lesson
// @Description  Creates a booking for a lesson on a concrete date, either against a time slot or a free-form window. At most one live booking can hold a given date and start time.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking data"
// @Success      201      {object}  CreateBookingResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	booking, paymentID, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrLessonNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lesson not found"})
		case errors.Is(err, ErrSlotNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time slot not found"})
		case errors.Is(err, ErrSlotInactive):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Time slot is not active"})
		case errors.Is(err, ErrSlotDateMismatch):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Time slot does not occur on that date"})
		case errors.Is(err, ErrInvalidBooking):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking request"})
		case errors.Is(err, ErrBookingInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot book a lesson in the past"})
		case errors.Is(err, ErrBookingConflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "This time slot is already booked"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, CreateBookingResponse{
		Booking:   booking,
		PaymentID: paymentID,
	})
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels a live booking. Students must respect the configured notice window; admins bypass it.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  CancelBookingResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      422        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	err = h.service.Cancel(c.Request.Context(), userID, auth.IsAdmin(c), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own bookings"})
		case errors.Is(err, ErrBookingFinal):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking is already cancelled or completed"})
		case errors.Is(err, ErrCancellationNotice):
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "Too late to cancel this booking"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{Message: "Booking cancelled successfully"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListBookingsByLesson godoc
// @Summary      List bookings by lesson
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        lessonID  path      int  true  "Lesson ID"
// @Success      200       {array}   BookingWithDetails
// @Failure      400       {object}  api.ErrorResponse
// @Failure      500       {object}  api.ErrorResponse
// @Router       /admin/lessons/{lessonID}/bookings [get]
func (h *Handler) ListBookingsByLesson(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("lessonID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lesson ID"})
		return
	}

	bookings, err := h.service.GetBookingsByLesson(c.Request.Context(), lessonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListBookingsByDate godoc
// @Summary      List bookings by date
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Calendar date (YYYY-MM-DD)"
// @Success      200   {array}   BookingWithDetails
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) ListBookingsByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query parameter required"})
		return
	}

	date, err := lesson.ParseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, use YYYY-MM-DD"})
		return
	}

	bookings, err := h.service.GetBookingsByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ConfirmBooking godoc
// @Summary      Confirm pending booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/confirm [post]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	h.adminTransition(c, h.service.Confirm, "Booking confirmed")
}

// MarkNoShow godoc
// @Summary      Mark booking as no-show
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.MessageResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/no-show [post]
func (h *Handler) MarkNoShow(c *gin.Context) {
	h.adminTransition(c, h.service.MarkNoShow, "Booking marked as no-show")
}

func (h *Handler) adminTransition(c *gin.Context, fn func(ctx context.Context, bookingID int) error, message string) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if err := fn(c.Request.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrBookingFinal):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking is not in a transitionable state"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: message})
}
