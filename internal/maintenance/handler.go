package maintenance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusvoice/student-portal/internal/session"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/middleware"
)

// Handler exposes the maintenance banner over HTTP
type Handler struct {
	service  *Service
	sessions *session.Store
}

// NewHandler creates a maintenance handler
func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// GetBanner returns the current banner state for the caller's language
// GET /api/v1/maintenance/banner
func (h *Handler) GetBanner(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	lang := h.sessions.Language(c.Request.Context(), userID.String())
	common.SuccessResponse(c, h.service.Banner(c.Request.Context(), lang))
}

// RegisterRoutes registers maintenance routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	maintenance := r.Group("/api/v1/maintenance")
	maintenance.Use(middleware.AuthMiddleware(jwtSecret))
	{
		maintenance.GET("/banner", h.GetBanner)
	}
}
