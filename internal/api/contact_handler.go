package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/models"
	"github.com/personal-blog-api/internal/service"
)

// ContactHandler handles the contact form relay
type ContactHandler struct {
	services *service.Services
	errors   errorResponder
	log      zerolog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(services *service.Services, errs errorResponder, log zerolog.Logger) *ContactHandler {
	l := log.With().Str("handler", "contact").Logger()
	errs.log = l
	return &ContactHandler{
		services: services,
		errors:   errs,
		log:      l,
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var sub models.ContactSubmission
	if !bindJSON(c, &sub) {
		return
	}

	messageID, err := h.services.Contact.Submit(c.Request.Context(), &sub)
	if err != nil {
		h.errors.respondWithFallback(c, err, "Failed to send email")
		return
	}

	h.log.Info().Str("message_id", messageID).Msg("Email sent successfully")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Email sent successfully",
		"messageId": messageID,
	})
}
