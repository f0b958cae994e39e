package notifications

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusvoice/student-portal/internal/session"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/middleware"
)

// Handler exposes the notification inbox over HTTP
type Handler struct {
	service  *Service
	sessions *session.Store
}

// NewHandler creates a notification handler
func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// ListNotifications returns the caller's notifications, optionally filtered
// GET /api/v1/notifications?filter=all|unread|read
func (h *Handler) ListNotifications(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := Filter(c.DefaultQuery("filter", string(FilterAll)))
	if !filter.Valid() {
		common.ErrorResponse(c, http.StatusBadRequest, "filter must be all, unread, or read")
		return
	}

	lang := h.sessions.Language(c.Request.Context(), userID.String())
	items := h.service.List(userID.String(), filter, lang)
	common.SuccessResponseWithMeta(c, items, gin.H{
		"unread": h.service.UnreadCount(userID.String()),
	})
}

// MarkRead marks one notification as read
// POST /api/v1/notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.service.MarkRead(userID.String(), c.Param("id"))
	common.SuccessResponse(c, gin.H{"unread": h.service.UnreadCount(userID.String())})
}

// MarkAllRead marks every notification as read
// POST /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.service.MarkAllRead(userID.String())
	lang := h.sessions.Language(c.Request.Context(), userID.String())
	common.SuccessResponse(c, gin.H{
		"message": i18n.Translate("notification.all_read", lang),
		"unread":  0,
	})
}

// DeleteNotification removes a notification locally
// DELETE /api/v1/notifications/:id
func (h *Handler) DeleteNotification(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.service.Delete(userID.String(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers notification routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	notifications := r.Group("/api/v1/notifications")
	notifications.Use(middleware.AuthMiddleware(jwtSecret), session.Track(h.sessions))
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}
