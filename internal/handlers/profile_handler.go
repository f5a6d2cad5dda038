package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"followuply/internal/forms"
	"followuply/internal/metrics"
	"followuply/internal/services"
	"followuply/internal/toast"
)

// ProfileHandler handles the user's display settings.
type ProfileHandler struct {
	profiles services.ProfileServicer
	metrics  *metrics.Metrics
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles services.ProfileServicer, m *metrics.Metrics) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, metrics: m}
}

// GetProfile returns the user's profile
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "No profile saved yet"
// @Router      /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profiles.GetProfile(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SaveProfile creates or updates the profile
// @Summary     Save profile
// @Description The plan cannot be changed here.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body forms.ProfilePatch true "Settings to change"
// @Success     200 {object} map[string]interface{}
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /profile [put]
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ProfilePatch
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profiles.SaveProfile(requestContext(c), userID, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "toast": toast.Success("Settings saved", "")})
}
