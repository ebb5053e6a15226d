package contact

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"forms-backend/internal/shared/server/respond"
	"forms-backend/internal/validation"
)

const (
	msgInvalidBody    = "Invalid request body."
	msgSubmitted      = "Your inquiry has been submitted successfully!"
	msgConfirmSent    = " You'll receive a confirmation email shortly."
	msgConfirmNotSent = " There was an issue sending a confirmation email, but we received your message and will contact you soon."
)

// Handler serves the contact form.
type Handler struct {
	Svc *Service
}

type submitResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ConfirmationSent bool   `json:"confirmationSent"`
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/submit_contact", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	var req Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", msgInvalidBody)
		return
	}

	res, err := h.Svc.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, validation.ErrInvalid) {
			respond.Error(c, http.StatusBadRequest, "validation_error", validation.Message(err))
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", respond.GenericErrorMessage)
		return
	}

	message := msgSubmitted + msgConfirmNotSent
	if res.ConfirmationSent {
		message = msgSubmitted + msgConfirmSent
	}
	respond.OK(c, submitResponse{
		Success:          true,
		Message:          message,
		ConfirmationSent: res.ConfirmationSent,
	})
}
