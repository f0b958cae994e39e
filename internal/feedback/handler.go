package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusvoice/student-portal/internal/session"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/middleware"
)

// Handler exposes anonymous feedback forms over HTTP
type Handler struct {
	service  *Service
	sessions *session.Store
}

// NewHandler creates a feedback handler
func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// ListTemplates returns the active feedback forms
// GET /api/v1/feedback/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListActiveTemplates(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusBadGateway, "backend request failed")
		return
	}
	common.SuccessResponse(c, templates)
}

// SubmitFeedback validates and forwards an anonymous submission. The
// caller is authenticated to reach the portal, but no identity is attached
// to what goes out.
// POST /api/v1/feedback/templates/:id/responses
func (h *Handler) SubmitFeedback(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Answers map[string]interface{} `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "answers are required")
		return
	}

	lang := h.sessions.Language(c.Request.Context(), userID.String())
	fieldErrs, msg, err := h.service.Submit(c.Request.Context(), c.Param("id"), req.Answers, lang)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusBadGateway, "backend request failed")
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, common.Response{
			Success: false,
			Data:    gin.H{"field_errors": fieldErrs},
		})
		return
	}

	common.CreatedResponse(c, gin.H{"message": msg})
}

// RegisterRoutes registers feedback routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	feedback := r.Group("/api/v1/feedback")
	feedback.Use(middleware.AuthMiddleware(jwtSecret), session.Track(h.sessions))
	{
		feedback.GET("/templates", h.ListTemplates)
		feedback.POST("/templates/:id/responses", h.SubmitFeedback)
	}
}
