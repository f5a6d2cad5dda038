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

// ClientHandler handles client-related requests.
type ClientHandler struct {
	clients services.ClientServicer
	metrics *metrics.Metrics
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients services.ClientServicer, m *metrics.Metrics) *ClientHandler {
	return &ClientHandler{clients: clients, metrics: m}
}

// ListClientsQuery holds the client list filters.
type ListClientsQuery struct {
	Status   string `form:"status" binding:"omitempty,client_status"`
	Platform string `form:"platform" binding:"omitempty,client_platform"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// CreateClient handles the creation of a new client
// @Summary     Create a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body forms.ClientInput true "Client details"
// @Success     201 {object} map[string]interface{} "Client created"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Failure     429 {object} ErrorResponse "Rate limited"
// @Router      /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ClientInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	client, warnings, err := h.clients.CreateClient(requestContext(c), userID, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "client", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client":   client,
		"warnings": warnings,
		"toast":    toast.Saved("Client added", warnings),
	})
}

// GetClient returns one client
// @Summary     Get a client
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clients.GetClient(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// UpdateClient applies a partial update
// @Summary     Update a client
// @Tags        clients
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Param       request body forms.ClientPatch true "Fields to change"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ClientPatch
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	client, warnings, err := h.clients.UpdateClient(requestContext(c), userID, id, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "client", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client":   client,
		"warnings": warnings,
		"toast":    toast.Saved("Client updated", warnings),
	})
}

// DeleteClient soft-deletes a client
// @Summary     Delete a client
// @Description The delete can be undone with the restore endpoint until undo_until.
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Success     200 {object} DeleteResponse
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Client still has invoices"
// @Router      /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	undoUntil, err := h.clients.DeleteClient(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	deleted(c, "Client deleted", id, undoUntil)
}

// RestoreClient undoes a recent delete
// @Summary     Restore a deleted client
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Client ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     410 {object} ErrorResponse "Undo window closed"
// @Router      /clients/{id}/restore [post]
func (h *ClientHandler) RestoreClient(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrClientNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	client, err := h.clients.RestoreClient(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client, "toast": toast.Success("Client restored", "")})
}

// ListClients returns the user's clients
// @Summary     List clients
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       status   query string false "Filter by status"
// @Param       platform query string false "Filter by platform"
// @Param       limit    query int    false "Maximum results (1-1000)"
// @Success     200 {object} map[string]interface{}
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Router      /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListClientsQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}

	clients, err := h.clients.ListClients(requestContext(c), userID, services.ClientFilter{
		Status:   models.ClientStatus(q.Status),
		Platform: models.Platform(q.Platform),
		Limit:    q.Limit,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// SearchClients matches name, email and company
// @Summary     Search clients
// @Tags        clients
// @Produce     json
// @Security    BearerAuth
// @Param       q query string true "Search text (2-100 characters)"
// @Success     200 {object} map[string]interface{}
// @Failure     422 {object} ErrorResponse "Query too short or too long"
// @Router      /clients/search [get]
func (h *ClientHandler) SearchClients(c *gin.Context) {
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

	clients, err := h.clients.SearchClients(requestContext(c), userID, q.Q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}
