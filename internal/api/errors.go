package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/auth"
	"github.com/personal-blog-api/internal/mail"
	"github.com/personal-blog-api/internal/repository"
	"github.com/personal-blog-api/internal/service"
	"github.com/personal-blog-api/internal/validation"
)

// errorResponder translates service errors into HTTP responses
type errorResponder struct {
	development bool
	log         zerolog.Logger
}

// respond writes the status and body for err. Internal detail is only exposed in development.
func (e errorResponder) respond(c *gin.Context, err error) {
	e.respondWithFallback(c, err, "Internal server error")
}

// respondWithFallback is respond with a custom message for unclassified failures
func (e errorResponder) respondWithFallback(c *gin.Context, err error, fallback string) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": verrs,
		})

	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})

	case errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})

	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing access token"})

	case errors.Is(err, mail.ErrAuth):
		e.internal(c, err, "Email authentication failed. Please check your email credentials.")

	case errors.Is(err, mail.ErrConnection):
		e.internal(c, err, "Could not connect to email server. Please check your network connection.")

	default:
		e.internal(c, err, fallback)
	}
}

func (e errorResponder) internal(c *gin.Context, err error, message string) {
	requestLogger(c, e.log).Error().Err(err).Str("path", c.Request.URL.Path).Msg(message)

	body := gin.H{"error": message}
	if e.development {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
