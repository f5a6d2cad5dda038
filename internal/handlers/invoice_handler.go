package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/metrics"
	"followuply/internal/models"
	"followuply/internal/services"
	"followuply/internal/toast"
)

// InvoiceHandler handles invoice-related requests.
type InvoiceHandler struct {
	invoices services.InvoiceServicer
	metrics  *metrics.Metrics
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoices services.InvoiceServicer, m *metrics.Metrics) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, metrics: m}
}

// ListInvoicesQuery holds the invoice list filters.
type ListInvoicesQuery struct {
	Status   string `form:"status" binding:"omitempty,invoice_status"`
	ClientID string `form:"client_id" binding:"omitempty,uuid_v"`
	Currency string `form:"currency" binding:"omitempty,currency"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// UpdateInvoiceStatusRequest is the body of the status endpoint.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateInvoice bills one of the user's clients
// @Summary     Create an invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body forms.InvoiceInput true "Invoice details"
// @Success     201 {object} map[string]interface{} "Invoice created"
// @Failure     404 {object} ErrorResponse "Client not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.InvoiceInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	invoice, warnings, err := h.invoices.CreateInvoice(requestContext(c), userID, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "invoice", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"invoice":  invoice,
		"warnings": warnings,
		"toast":    toast.Saved("Invoice created", warnings),
	})
}

// GetInvoice returns one invoice
// @Summary     Get an invoice
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrInvoiceNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoices.GetInvoice(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}

// UpdateInvoice applies a partial update
// @Summary     Update an invoice
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Param       request body forms.InvoicePatch true "Fields to change"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /invoices/{id} [put]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrInvoiceNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.InvoicePatch
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	invoice, warnings, err := h.invoices.UpdateInvoice(requestContext(c), userID, id, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice":  invoice,
		"warnings": warnings,
		"toast":    toast.Saved("Invoice updated", warnings),
	})
}

// UpdateInvoiceStatus changes only the status
// @Summary     Change an invoice status
// @Description Use the paid endpoint to record a payment.
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Param       request body UpdateInvoiceStatusRequest true "New status"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrInvoiceNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvoiceStatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoices.UpdateInvoiceStatus(requestContext(c), userID, id, req.Status)
	if err != nil {
		respondWithFormError(c, h.metrics, "invoice", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice, "toast": toast.Success("Status updated", "")})
}

// MarkInvoicePaid records a payment
// @Summary     Mark an invoice as paid
// @Tags        invoices
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Param       request body forms.PaymentInput false "Payment details"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Already paid"
// @Router      /invoices/{id}/paid [post]
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrInvoiceNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.PaymentInput
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, err)
			return
		}
	}

	invoice, warnings, err := h.invoices.MarkInvoicePaid(requestContext(c), userID, id, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"invoice":  invoice,
		"warnings": warnings,
		"toast":    toast.Saved("Invoice marked as paid", warnings),
	})
}

// MarkOverdueInvoices flags outstanding invoices past their due date
// @Summary     Mark overdue invoices
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{}
// @Router      /invoices/overdue [post]
func (h *InvoiceHandler) MarkOverdueInvoices(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	n, err := h.invoices.MarkOverdueInvoices(requestContext(c), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	t := toast.Info("No overdue invoices", "")
	if n > 0 {
		t = toast.Warning("Invoices overdue", pluralInvoices(n)+" marked as overdue")
	}
	c.JSON(http.StatusOK, gin.H{"updated": n, "toast": t})
}

// DeleteInvoice soft-deletes an invoice
// @Summary     Delete an invoice
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Success     200 {object} DeleteResponse
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrInvoiceNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	undoUntil, err := h.invoices.DeleteInvoice(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	deleted(c, "Invoice deleted", id, undoUntil)
}

// RestoreInvoice undoes a recent delete
// @Summary     Restore a deleted invoice
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Invoice ID"
// @Success     200 {object} map[string]interface{}
// @Failure     410 {object} ErrorResponse "Undo window closed"
// @Router      /invoices/{id}/restore [post]
func (h *InvoiceHandler) RestoreInvoice(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrInvoiceNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invoice, err := h.invoices.RestoreInvoice(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice, "toast": toast.Success("Invoice restored", "")})
}

// ListInvoices returns the user's invoices
// @Summary     List invoices
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Filter by status"
// @Param       client_id query string false "Filter by client"
// @Param       currency  query string false "Filter by currency"
// @Param       limit     query int    false "Maximum results (1-1000)"
// @Success     200 {object} map[string]interface{}
// @Router      /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListInvoicesQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}

	invoices, err := h.invoices.ListInvoices(requestContext(c), userID, services.InvoiceFilter{
		Status:   models.InvoiceStatus(q.Status),
		ClientID: q.ClientID,
		Currency: models.Currency(q.Currency),
		Limit:    q.Limit,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// SearchInvoices matches project and description
// @Summary     Search invoices
// @Tags        invoices
// @Produce     json
// @Security    BearerAuth
// @Param       q query string true "Search text (2-100 characters)"
// @Success     200 {object} map[string]interface{}
// @Router      /invoices/search [get]
func (h *InvoiceHandler) SearchInvoices(c *gin.Context) {
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

	invoices, err := h.invoices.SearchInvoices(requestContext(c), userID, q.Q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func pluralInvoices(n int64) string {
	if n == 1 {
		return "1 invoice"
	}
	return strconv.FormatInt(n, 10) + " invoices"
}
