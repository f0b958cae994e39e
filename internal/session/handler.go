package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/middleware"
	"github.com/campusvoice/student-portal/pkg/validation"
)

// Handler exposes session state over HTTP
type Handler struct {
	store *Store
}

// NewHandler creates a session handler
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// GetSession returns the caller's persisted client state
// GET /api/v1/session
func (h *Handler) GetSession(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx := c.Request.Context()
	common.SuccessResponse(c, gin.H{
		"language": h.store.Language(ctx, userID.String()),
		"theme":    h.store.Theme(ctx, userID.String()),
	})
}

// ToggleLanguage flips the UI language between en and am
// POST /api/v1/session/language/toggle
func (h *Handler) ToggleLanguage(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	lang, err := h.store.ToggleLanguage(c.Request.Context(), userID.String())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to toggle language")
		return
	}

	common.SuccessResponse(c, gin.H{"language": lang})
}

// SetLanguage sets the UI language directly
// PUT /api/v1/session/language
func (h *Handler) SetLanguage(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Language string `json:"language" validate:"required,language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "language is required")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SetLanguage(c.Request.Context(), userID.String(), i18n.Language(req.Language)); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to persist language")
		return
	}

	common.SuccessResponse(c, gin.H{"language": req.Language})
}

// SetTheme persists the caller's theme flag
// PUT /api/v1/session/theme
func (h *Handler) SetTheme(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Theme string `json:"theme" binding:"required,oneof=light dark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "theme must be light or dark")
		return
	}

	if err := h.store.SetTheme(c.Request.Context(), userID.String(), req.Theme); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to persist theme")
		return
	}

	common.SuccessResponse(c, gin.H{"theme": req.Theme})
}

// RegisterRoutes registers session routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	session := r.Group("/api/v1/session")
	session.Use(middleware.AuthMiddleware(jwtSecret))
	{
		session.GET("", h.GetSession)
		session.POST("/language/toggle", h.ToggleLanguage)
		session.PUT("/language", h.SetLanguage)
		session.PUT("/theme", h.SetTheme)
	}
}
