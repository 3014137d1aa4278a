package contact

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
	"tuneslot/internal/email"
	"tuneslot/internal/logger"
)

type Handler struct {
	repo         Repository
	emailService *email.Service
}

func NewHandler(repo Repository, emailService *email.Service) *Handler {
	return &Handler{repo: repo, emailService: emailService}
}

// SubmitEnquiry godoc
// @Summary      Submit a contact enquiry
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        request  body      CreateEnquiryRequest  true  "Enquiry"
// @Success      201      {object}  Enquiry
// @Failure      400      {object}  api.ErrorResponse
// @Router       /contact [post]
func (h *Handler) SubmitEnquiry(c *gin.Context) {
	var req CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	enquiry, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to submit enquiry"})
		return
	}

	c.JSON(http.StatusCreated, enquiry)
}

// ListEnquiries godoc
// @Summary      List contact enquiries
// @Tags         contact
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"  Enums(NEW, RESPONDED)
// @Success      200     {array}   Enquiry
// @Failure      500     {object}  api.ErrorResponse
// @Router       /admin/enquiries [get]
func (h *Handler) ListEnquiries(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != StatusNew && status != StatusResponded {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status filter"})
		return
	}

	enquiries, err := h.repo.GetAll(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch enquiries"})
		return
	}

	c.JSON(http.StatusOK, enquiries)
}

// RespondToEnquiry godoc
// @Summary      Respond to an enquiry
// @Description  Emails the reply to the enquirer and marks the enquiry as responded.
// @Tags         contact
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Enquiry ID"
// @Param        request  body      RespondRequest  true  "Reply text"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/enquiries/{id}/respond [post]
func (h *Handler) RespondToEnquiry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid enquiry ID"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	enquiry, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEnquiryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Enquiry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch enquiry"})
		return
	}

	if err := h.repo.MarkResponded(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update enquiry"})
		return
	}

	subject := "Re: " + enquiry.Subject
	if enquiry.Subject == "" {
		subject = "Re: your enquiry"
	}
	if err := h.emailService.Send(c.Request.Context(), enquiry.Email, enquiry.Name, subject, req.Reply, "enquiry_reply"); err != nil {
		logger.Warnf("Failed to queue enquiry reply for %s: %v", enquiry.Email, err)
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Reply sent"})
}
