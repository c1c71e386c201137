package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/personal-blog-api/internal/auth"
	"github.com/personal-blog-api/internal/service"
)

// AdminHandler handles admin session endpoints
type AdminHandler struct {
	services *service.Services
	errors   errorResponder
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, errs errorResponder, log zerolog.Logger) *AdminHandler {
	l := log.With().Str("handler", "admin").Logger()
	errs.log = l
	return &AdminHandler{
		services: services,
		errors:   errs,
		log:      l,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.services.Admin.Login(c.Request.Context(), req.Password)
	if err != nil {
		h.log.Warn().Str("client_ip", c.ClientIP()).Msg("Admin login failed")
		h.errors.respond(c, err)
		return
	}

	h.log.Info().Str("client_ip", c.ClientIP()).Msg("Admin login succeeded")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"user":      gin.H{"role": result.Role},
		"message":   "Login successful",
	})
}

// Verify handles GET /api/admin/verify; requireAdmin has already checked the credential
func (h *AdminHandler) Verify(c *gin.Context) {
	role := auth.RoleAdmin
	if claims := adminClaims(c); claims != nil {
		role = claims.Role
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  gin.H{"role": role},
	})
}
