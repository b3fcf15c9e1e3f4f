package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"coachly/database/repository"
	notificationRepo "coachly/database/repository/notification"
	"coachly/middleware"
	"coachly/models"
	"coachly/services/notification"
	"coachly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler exposes the notification tray's HTTP surface.
type NotificationHandler struct {
	Service notification.NotificationService
	Logger  *zap.Logger
}

func NewNotificationHandler(svc notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Service: svc, Logger: logger}
}

// ListNotifications returns a page of the caller's notifications.
// Query params: status (active|archived|trash), unread, page, perPage.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)

	opts := notificationRepo.ListOptions{
		Status:  c.DefaultQuery("status", models.NotificationStatusActive),
		Page:    parseInt64(c.Query("page"), 1),
		PerPage: parseInt64(c.Query("perPage"), 20),
	}
	switch opts.Status {
	case models.NotificationStatusActive, models.NotificationStatusArchived, models.NotificationStatusTrash:
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid status filter", opts.Status)
		return
	}
	if unread := c.Query("unread"); unread != "" {
		v := unread == "true"
		opts.Unread = &v
	}

	items, total, err := h.Service.List(recipient, opts)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list notifications", err.Error())
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"total":         total,
		"page":          opts.Page,
		"perPage":       opts.PerPage,
	})
}

// UnreadCount returns the caller's unread active notification count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)
	count, err := h.Service.UnreadCount(recipient)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to count unread notifications", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead flags one notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)
	n, err := h.Service.MarkRead(recipient, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to mark notification read")
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkReadBatch flags many notifications as read and reports the modified
// count.
func (h *NotificationHandler) MarkReadBatch(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)

	var input struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	count, err := h.Service.MarkReadBatch(recipient, input.IDs)
	if err != nil {
		h.respondError(c, err, "failed to mark notifications read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": count})
}

// UpdateStatus moves a notification between active, archived and trash.
func (h *NotificationHandler) UpdateStatus(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	n, err := h.Service.UpdateStatus(recipient, c.Param("id"), input.Status)
	if err != nil {
		h.respondError(c, err, "failed to update notification status")
		return
	}
	c.JSON(http.StatusOK, n)
}

// MarkActioned records completion of the requested action. Idempotent.
func (h *NotificationHandler) MarkActioned(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)
	n, err := h.Service.MarkActioned(recipient, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to mark notification actioned")
		return
	}
	c.JSON(http.StatusOK, n)
}

// TrashBatch moves many notifications to trash.
func (h *NotificationHandler) TrashBatch(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)

	var input struct {
		IDs []string `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	count, err := h.Service.TrashBatch(recipient, input.IDs)
	if err != nil {
		h.respondError(c, err, "failed to trash notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"modified": count})
}

// EmptyTrash terminally deletes the caller's trash.
func (h *NotificationHandler) EmptyTrash(c *gin.Context) {
	recipient := middleware.AuthenticatedUserID(c)
	count, err := h.Service.EmptyTrash(recipient)
	if err != nil {
		h.respondError(c, err, "failed to empty trash")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

func (h *NotificationHandler) respondError(c *gin.Context, err error, message string) {
	var validationErr *notification.ValidationError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "notification not found", "")
	case errors.As(err, &validationErr):
		utils.JSONError(c, http.StatusBadRequest, message, validationErr.Message)
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}

func parseInt64(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
