package complaints

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campusvoice/student-portal/internal/session"
	"github.com/campusvoice/student-portal/pkg/common"
	"github.com/campusvoice/student-portal/pkg/i18n"
	"github.com/campusvoice/student-portal/pkg/logger"
	"github.com/campusvoice/student-portal/pkg/middleware"
	"github.com/campusvoice/student-portal/pkg/validation"
)

// Handler exposes the complaint workflows over HTTP
type Handler struct {
	service  *Service
	sessions *session.Store
}

// NewHandler creates a complaint handler
func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// identity extracts the caller's user ID and bearer token, or writes 401
func identity(c *gin.Context) (userID, token string, ok bool) {
	id, err := middleware.GetUserID(c)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return "", "", false
	}
	return id.String(), middleware.GetBearerToken(c), true
}

func (h *Handler) lang(c *gin.Context, userID string) i18n.Language {
	return h.sessions.Language(c.Request.Context(), userID)
}

func respondErr(c *gin.Context, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.AppErrorResponse(c, appErr)
		return
	}
	logger.Error("backend request failed",
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	common.ErrorResponse(c, http.StatusBadGateway, "backend request failed")
}

// ListComplaints returns the caller's complaints, filtered
// GET /api/v1/complaints?status=&category=&priority=
func (h *Handler) ListComplaints(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	var filter FilterSet
	if err := c.ShouldBindQuery(&filter); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid filter")
		return
	}
	if err := validation.ValidateStruct(&filter); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	complaints, err := h.service.List(c.Request.Context(), userID, token, filter)
	if err != nil {
		respondErr(c, err)
		return
	}

	common.SuccessResponseWithMeta(c, complaints, gin.H{
		"filter": h.service.Filter(userID),
		"count":  len(complaints),
	})
}

// GetComplaint opens the detail view for one complaint
// GET /api/v1/complaints/:id
func (h *Handler) GetComplaint(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	view, err := h.service.Select(c.Request.Context(), userID, token, c.Param("id"), h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	common.SuccessResponse(c, view)
}

// DeleteComplaint removes a pending or draft complaint after confirmation
// DELETE /api/v1/complaints/:id?confirm=true
func (h *Handler) DeleteComplaint(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	confirmed := c.Query("confirm") == "true"
	msg, err := h.service.Delete(c.Request.Context(), userID, token, c.Param("id"), confirmed, h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": msg})
}

// AddComment posts a comment on a complaint
// POST /api/v1/complaints/:id/comments
func (h *Handler) AddComment(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "message is required")
		return
	}

	created, err := h.service.AddComment(c.Request.Context(), userID, token, c.Param("id"), req.Message, h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	common.CreatedResponse(c, created)
}

// EditComment updates the caller's own comment
// PUT /api/v1/complaints/:id/comments/:commentID
func (h *Handler) EditComment(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "message is required")
		return
	}

	err := h.service.EditComment(c.Request.Context(), userID, token,
		c.Param("id"), c.Param("commentID"), req.Message, h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": req.Message})
}

// DeleteComment removes the caller's own comment
// DELETE /api/v1/complaints/:id/comments/:commentID
func (h *Handler) DeleteComment(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	err := h.service.RemoveComment(c.Request.Context(), userID, token,
		c.Param("id"), c.Param("commentID"), h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RateComplaint submits a 1-5 star rating on a resolved complaint
// POST /api/v1/complaints/:id/rating
func (h *Handler) RateComplaint(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Rating   int    `json:"rating" binding:"required,min=1,max=5"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	msg, err := h.service.Rate(c.Request.Context(), userID, token, c.Param("id"),
		req.Rating, req.Feedback, h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"message": msg})
}

// ListCategories returns complaint categories localized for the caller
// GET /api/v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	categories, err := h.service.Categories(c.Request.Context(), token, h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	common.SuccessResponse(c, categories)
}

// ListInstitutions returns the institutions a complaint can target
// GET /api/v1/institutions
func (h *Handler) ListInstitutions(c *gin.Context) {
	_, token, ok := identity(c)
	if !ok {
		return
	}

	institutions, err := h.service.Institutions(c.Request.Context(), token)
	if err != nil {
		respondErr(c, err)
		return
	}
	common.SuccessResponse(c, institutions)
}

// ─── Complaint form ──────────────────────────────────────────────────────

// GetDraft returns the caller's current complaint draft
// GET /api/v1/complaint-form
func (h *Handler) GetDraft(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}
	common.SuccessResponse(c, h.service.Draft(userID))
}

// UpdateDraft applies partial field edits to the draft
// PATCH /api/v1/complaint-form
func (h *Handler) UpdateDraft(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	var update DraftUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid draft update")
		return
	}
	if err := validation.ValidateStruct(&update); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	common.SuccessResponse(c, h.service.UpdateDraft(userID, update))
}

// AttachFiles adds multipart files to the draft under the attachment policy
// POST /api/v1/complaint-form/attachments
func (h *Handler) AttachFiles(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "multipart form required")
		return
	}

	var files []DraftFile
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "unreadable file "+header.Filename)
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "unreadable file "+header.Filename)
			return
		}

		mediaType := header.Header.Get("Content-Type")
		if mediaType == "" {
			mediaType = http.DetectContentType(content)
		}
		files = append(files, DraftFile{
			Name:      header.Filename,
			MediaType: mediaType,
			Size:      int64(len(content)),
			Content:   content,
		})
	}

	draft, warning := h.service.AttachFiles(userID, files, h.lang(c, userID))
	if warning != "" {
		common.SuccessResponseWithMeta(c, draft, gin.H{"warning": warning})
		return
	}
	common.SuccessResponse(c, draft)
}

// RemoveFile drops one attached file from the draft by position
// DELETE /api/v1/complaint-form/attachments/:index
func (h *Handler) RemoveFile(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid attachment index")
		return
	}
	common.SuccessResponse(c, h.service.RemoveFile(userID, index))
}

// SubmitDraft validates and submits the draft
// POST /api/v1/complaint-form/submit
func (h *Handler) SubmitDraft(c *gin.Context) {
	userID, token, ok := identity(c)
	if !ok {
		return
	}

	draft, err := h.service.SubmitDraft(c.Request.Context(), userID, token, h.lang(c, userID))
	if err != nil {
		respondErr(c, err)
		return
	}
	if len(draft.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, common.Response{Success: false, Data: draft})
		return
	}
	common.SuccessResponse(c, draft)
}

// ResetDraft discards the draft and starts over
// POST /api/v1/complaint-form/reset
func (h *Handler) ResetDraft(c *gin.Context) {
	userID, _, ok := identity(c)
	if !ok {
		return
	}
	common.SuccessResponse(c, h.service.ResetDraft(userID))
}

// RegisterRoutes registers complaint routes
func (h *Handler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtSecret), session.Track(h.sessions))
	{
		api.GET("/complaints", h.ListComplaints)
		api.GET("/complaints/:id", h.GetComplaint)
		api.DELETE("/complaints/:id", h.DeleteComplaint)
		api.POST("/complaints/:id/comments", h.AddComment)
		api.PUT("/complaints/:id/comments/:commentID", h.EditComment)
		api.DELETE("/complaints/:id/comments/:commentID", h.DeleteComment)
		api.POST("/complaints/:id/rating", h.RateComplaint)

		api.GET("/categories", h.ListCategories)
		api.GET("/institutions", h.ListInstitutions)

		api.GET("/complaint-form", h.GetDraft)
		api.PATCH("/complaint-form", h.UpdateDraft)
		api.POST("/complaint-form/attachments", h.AttachFiles)
		api.DELETE("/complaint-form/attachments/:index", h.RemoveFile)
		api.POST("/complaint-form/submit", h.SubmitDraft)
		api.POST("/complaint-form/reset", h.ResetDraft)
	}
}
