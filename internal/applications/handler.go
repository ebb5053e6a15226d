package applications

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"forms-backend/internal/shared/server/respond"
	"forms-backend/internal/validation"
)

const (
	msgSubmitted   = "Thank you for your application! We will review it and get back to you soon."
	msgStoreFailed = "Failed to save application. Please try again later."
	msgTooLarge    = "Uploaded file is too large."

	multipartMemory = 8 << 20
)

// Handler serves the job application form.
type Handler struct {
	Svc *Service
	// MaxUploadBytes caps the request body. Zero disables the cap.
	MaxUploadBytes int64
}

type submitResponse struct {
	Success          bool   `json:"success"`
	Status           string `json:"status"`
	Message          string `json:"message"`
	ConfirmationSent bool   `json:"confirmationSent"`
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/submit_application", h.submit)
}

func (h *Handler) submit(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}
	// Other parse errors leave the form empty; the required field check
	// answers those.
	if err := c.Request.ParseMultipartForm(multipartMemory); isTooLarge(err) {
		respond.Error(c, http.StatusBadRequest, "too_large", msgTooLarge)
		return
	}

	form := Form{
		FirstName:   c.PostForm("firstName"),
		LastName:    c.PostForm("lastName"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		WorkExp:     c.PostForm("workExp"),
		ApplyingFor: c.PostForm("applyingFor"),
		Github:      c.PostForm("github"),
		Linkedin:    c.PostForm("linkedin"),
		Intro:       c.PostForm("intro"),
	}
	resume, err := c.FormFile("resume")
	if err != nil {
		resume = nil
	}

	res, err := h.Svc.Submit(c.Request.Context(), form, resume)
	if err != nil {
		var storeErr *StoreError
		switch {
		case errors.Is(err, validation.ErrInvalid):
			respond.Error(c, http.StatusBadRequest, "validation_error", validation.Message(err))
		case errors.As(err, &storeErr):
			respond.Error(c, http.StatusInternalServerError, "store_error", msgStoreFailed)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", respond.GenericErrorMessage)
		}
		return
	}

	c.Set("applicationId", res.Record.ID)
	respond.OK(c, submitResponse{
		Success:          true,
		Status:           "ok",
		Message:          msgSubmitted,
		ConfirmationSent: res.ConfirmationSent,
	})
}

func isTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
