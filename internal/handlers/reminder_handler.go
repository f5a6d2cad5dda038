package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/metrics"
	"followuply/internal/models"
	"followuply/internal/services"
	"followuply/internal/toast"
)

// ReminderHandler handles reminder-related requests.
type ReminderHandler struct {
	reminders services.ReminderServicer
	metrics   *metrics.Metrics
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminders services.ReminderServicer, m *metrics.Metrics) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, metrics: m}
}

// ListRemindersQuery holds the reminder list filters.
type ListRemindersQuery struct {
	Status   string `form:"status" binding:"omitempty,reminder_status"`
	Priority string `form:"priority" binding:"omitempty,reminder_priority"`
	Type     string `form:"type" binding:"omitempty,reminder_type"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// CreateReminder schedules a follow-up
// @Summary     Create a reminder
// @Tags        reminders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body forms.ReminderInput true "Reminder details"
// @Success     201 {object} map[string]interface{} "Reminder created"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /reminders [post]
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ReminderInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	reminder, warnings, err := h.reminders.CreateReminder(requestContext(c), userID, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "reminder", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"reminder": reminder,
		"warnings": warnings,
		"toast":    toast.Saved("Reminder set", warnings),
	})
}

// GetReminder returns one reminder
// @Summary     Get a reminder
// @Tags        reminders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Reminder ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /reminders/{id} [get]
func (h *ReminderHandler) GetReminder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrReminderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reminder, err := h.reminders.GetReminder(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": reminder})
}

// UpdateReminder applies a partial update
// @Summary     Update a reminder
// @Tags        reminders
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Reminder ID"
// @Param       request body forms.ReminderPatch true "Fields to change"
// @Success     200 {object} map[string]interface{}
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /reminders/{id} [put]
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrReminderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ReminderPatch
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	reminder, warnings, err := h.reminders.UpdateReminder(requestContext(c), userID, id, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "reminder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reminder": reminder,
		"warnings": warnings,
		"toast":    toast.Saved("Reminder updated", warnings),
	})
}

// CompleteReminder marks a reminder done
// @Summary     Complete a reminder
// @Tags        reminders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Reminder ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /reminders/{id}/complete [post]
func (h *ReminderHandler) CompleteReminder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrReminderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reminder, err := h.reminders.CompleteReminder(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": reminder, "toast": toast.Success("Reminder completed", "")})
}

// DeleteReminder soft-deletes a reminder
// @Summary     Delete a reminder
// @Tags        reminders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Reminder ID"
// @Success     200 {object} DeleteResponse
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /reminders/{id} [delete]
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrReminderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	undoUntil, err := h.reminders.DeleteReminder(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	deleted(c, "Reminder deleted", id, undoUntil)
}

// RestoreReminder undoes a recent delete
// @Summary     Restore a deleted reminder
// @Tags        reminders
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Reminder ID"
// @Success     200 {object} map[string]interface{}
// @Failure     410 {object} ErrorResponse "Undo window closed"
// @Router      /reminders/{id}/restore [post]
func (h *ReminderHandler) RestoreReminder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrReminderNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reminder, err := h.reminders.RestoreReminder(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminder": reminder, "toast": toast.Success("Reminder restored", "")})
}

// ListReminders returns the user's reminders, soonest first
// @Summary     List reminders
// @Tags        reminders
// @Produce     json
// @Security    BearerAuth
// @Param       status   query string false "Filter by status"
// @Param       priority query string false "Filter by priority"
// @Param       type     query string false "Filter by type"
// @Param       limit    query int    false "Maximum results (1-1000)"
// @Success     200 {object} map[string]interface{}
// @Router      /reminders [get]
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListRemindersQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}

	reminders, err := h.reminders.ListReminders(requestContext(c), userID, services.ReminderFilter{
		Status:   models.ReminderStatus(q.Status),
		Priority: models.ReminderPriority(q.Priority),
		Type:     models.ReminderType(q.Type),
		Limit:    q.Limit,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// SearchReminders matches title and description
// @Summary     Search reminders
// @Tags        reminders
// @Produce     json
// @Security    BearerAuth
// @Param       q query string true "Search text (2-100 characters)"
// @Success     200 {object} map[string]interface{}
// @Router      /reminders/search [get]
func (h *ReminderHandler) SearchReminders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q SearchQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}

	reminders, err := h.reminders.SearchReminders(requestContext(c), userID, q.Q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}
