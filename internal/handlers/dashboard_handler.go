package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"followuply/internal/services"
)

// DashboardHandler serves the landing page snapshot.
type DashboardHandler struct {
	dashboard services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard returns recent invoices, clients and upcoming reminders
// @Summary     Dashboard
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Dashboard
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dash, err := h.dashboard.Load(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
