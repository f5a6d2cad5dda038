package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/pagination"
	"followuply/internal/services"
	"followuply/internal/toast"
)

// NotificationHandler handles in-app notifications.
type NotificationHandler struct {
	notifications services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotificationsQuery holds the paging and unread filter.
type ListNotificationsQuery struct {
	pagination.PageRequest
	Unread bool `form:"unread"`
}

// ListNotifications returns a page of notifications, newest first
// @Summary     List notifications
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int  false "Page number"
// @Param       page_size query int  false "Page size (max 100)"
// @Param       unread    query bool false "Only unread notifications"
// @Success     200 {object} map[string]interface{}
// @Router      /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListNotificationsQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}

	page, err := h.notifications.ListNotifications(requestContext(c), userID, q.PageRequest, q.Unread)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// MarkNotificationRead marks one notification read
// @Summary     Mark a notification read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Notification ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /notifications/{id}/read [post]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrNotificationNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notifications.MarkNotificationRead(requestContext(c), userID, id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "read": true})
}

// MarkAllNotificationsRead marks every notification read
// @Summary     Mark all notifications read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{}
// @Router      /notifications/read-all [post]
func (h *NotificationHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	n, err := h.notifications.MarkAllNotificationsRead(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n, "toast": toast.Success("All caught up", "")})
}
