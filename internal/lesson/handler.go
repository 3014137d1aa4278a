package lesson

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListLessons godoc
// @Summary      List lessons
// @Description  Returns the active lesson catalog.
// @Tags         lessons
// @Produce      json
// @Success      200  {array}   Lesson
// @Failure      500  {object}  api.ErrorResponse
// @Router       /lessons [get]
func (h *Handler) ListLessons(c *gin.Context) {
	lessons, err := h.service.ListLessons(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch lessons"})
		return
	}

	c.JSON(http.StatusOK, lessons)
}

// GetLesson godoc
// @Summary      Get lesson
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true  "Lesson ID"
// @Success      200       {object}  Lesson
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /lessons/{lessonID} [get]
func (h *Handler) GetLesson(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("lessonID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lesson ID"})
		return
	}

	lesson, err := h.service.GetLesson(c.Request.Context(), lessonID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// GetAvailability godoc
// @Summary      Lesson availability for a date
// @Description  Projects the lesson's weekly time slots onto a concrete date and marks each as available or taken.
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int     true  "Lesson ID"
// @Param        date      query     string  true  "Calendar date (YYYY-MM-DD)"
// @Success      200       {array}   SlotAvailability
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Failure      500       {object}  api.ErrorResponse
// @Router       /lessons/{lessonID}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("lessonID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lesson ID"})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query parameter required"})
		return
	}

	date, err := ParseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, use YYYY-MM-DD"})
		return
	}

	availability, err := h.service.ResolveAvailability(c.Request.Context(), lessonID, date)
	if err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to resolve availability"})
		return
	}

	c.JSON(http.StatusOK, availability)
}

// ListTimeSlots godoc
// @Summary      List lesson time slots
// @Tags         lessons
// @Produce      json
// @Param        lessonID  path      int  true  "Lesson ID"
// @Success      200       {array}   TimeSlot
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /lessons/{lessonID}/slots [get]
func (h *Handler) ListTimeSlots(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("lessonID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lesson ID"})
		return
	}

	slots, err := h.service.ListTimeSlots(c.Request.Context(), lessonID)
	if err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch time slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// CreateLesson godoc
// @Summary      Create lesson
// @Description  Adds a lesson to the catalog. Admin only.
// @Tags         lessons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateLessonRequest  true  "Lesson data"
// @Success      201      {object}  Lesson
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/lessons [post]
func (h *Handler) CreateLesson(c *gin.Context) {
	var req CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	lesson, err := h.service.CreateLesson(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create lesson"})
		return
	}

	c.JSON(http.StatusCreated, lesson)
}

// UpdateLesson godoc
// @Summary      Update lesson
// @Tags         lessons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        lessonID  path      int                  true  "Lesson ID"
// @Param        request   body      UpdateLessonRequest  true  "Lesson data"
// @Success      200       {object}  Lesson
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Router       /admin/lessons/{lessonID} [put]
func (h *Handler) UpdateLesson(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("lessonID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lesson ID"})
		return
	}

	var req UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	lesson, err := h.service.UpdateLesson(c.Request.Context(), lessonID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lesson not found"})
		return
	}

	c.JSON(http.StatusOK, lesson)
}

// CreateTimeSlot godoc
// @Summary      Create time slot
// @Description  Adds a weekly availability window to a lesson. Rejects overlaps with existing active slots. Admin only.
// @Tags         lessons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        lessonID  path      int                    true  "Lesson ID"
// @Param        request   body      CreateTimeSlotRequest  true  "Slot data"
// @Success      201       {object}  TimeSlot
// @Failure      400       {object}  api.ErrorResponse
// @Failure      404       {object}  api.ErrorResponse
// @Failure      409       {object}  api.ErrorResponse
// @Router       /admin/lessons/{lessonID}/slots [post]
func (h *Handler) CreateTimeSlot(c *gin.Context) {
	lessonID, err := strconv.Atoi(c.Param("lessonID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid lesson ID"})
		return
	}

	var req CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.CreateTimeSlot(c.Request.Context(), lessonID, req)
	if err != nil {
		h.respondSlotError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// UpdateTimeSlot godoc
// @Summary      Update time slot
// @Description  Re-checks overlap against the lesson's other active slots. Admin only.
// @Tags         lessons
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int                    true  "Time slot ID"
// @Param        request  body      UpdateTimeSlotRequest  true  "Slot data"
// @Success      200      {object}  TimeSlot
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/slots/{slotID} [put]
func (h *Handler) UpdateTimeSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	var req UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.UpdateTimeSlot(c.Request.Context(), slotID, req)
	if err != nil {
		h.respondSlotError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// DeactivateTimeSlot godoc
// @Summary      Deactivate time slot
// @Description  Soft-disables a slot so new bookings stop while existing ones keep their reference. Admin only.
// @Tags         lessons
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Time slot ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /admin/slots/{slotID}/deactivate [post]
func (h *Handler) DeactivateTimeSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.DeactivateTimeSlot(c.Request.Context(), slotID); err != nil {
		h.respondSlotError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Time slot deactivated"})
}

// DeleteTimeSlot godoc
// @Summary      Delete time slot
// @Description  Removes a slot with no future bookings. Slots still referenced must be deactivated instead. Admin only.
// @Tags         lessons
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Time slot ID"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Failure      409     {object}  api.ErrorResponse
// @Router       /admin/slots/{slotID} [delete]
func (h *Handler) DeleteTimeSlot(c *gin.Context) {
	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.DeleteTimeSlot(c.Request.Context(), slotID); err != nil {
		h.respondSlotError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Time slot deleted"})
}

func (h *Handler) respondSlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrLessonNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Lesson not found"})
	case errors.Is(err, ErrSlotNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Time slot not found"})
	case errors.Is(err, ErrInvalidSlot):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid time slot window"})
	case errors.Is(err, ErrSlotOverlap):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Time slot overlaps an existing slot"})
	case errors.Is(err, ErrSlotHasBookings):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Time slot has future bookings; deactivate it instead"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
	}
}
