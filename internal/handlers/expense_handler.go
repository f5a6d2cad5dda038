package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/metrics"
	"followuply/internal/models"
	"followuply/internal/services"
	"followuply/internal/toast"
	"followuply/internal/validator"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenses services.ExpenseServicer
	metrics  *metrics.Metrics
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses services.ExpenseServicer, m *metrics.Metrics) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, metrics: m}
}

// ListExpensesQuery holds the expense list and summary filters. From and To
// are YYYY-MM-DD and inclusive.
type ListExpensesQuery struct {
	Category      string `form:"category" binding:"omitempty,expense_category"`
	Status        string `form:"status" binding:"omitempty,expense_status"`
	PaymentMethod string `form:"payment_method" binding:"omitempty,payment_method"`
	Currency      string `form:"currency" binding:"omitempty,currency"`
	From          string `form:"from"`
	To            string `form:"to"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

func (q ListExpensesQuery) filter() (services.ExpenseFilter, error) {
	f := services.ExpenseFilter{
		Category:      models.ExpenseCategory(q.Category),
		Status:        models.ExpenseStatus(q.Status),
		PaymentMethod: models.PaymentMethod(q.PaymentMethod),
		Currency:      models.Currency(q.Currency),
		Limit:         q.Limit,
	}
	var err error
	if f.From, err = queryDate("from", q.From); err != nil {
		return f, err
	}
	if f.To, err = queryDate("to", q.To); err != nil {
		return f, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must not be before from")
	}
	return f, nil
}

func queryDate(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, ok := validator.ParseDate(raw)
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name+" date, use YYYY-MM-DD")
	}
	return &d, nil
}

// CreateExpense records spending
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body forms.ExpenseInput true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ExpenseInput
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	expense, warnings, err := h.expenses.CreateExpense(requestContext(c), userID, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "expense", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"expense":  expense,
		"warnings": warnings,
		"toast":    toast.Saved("Expense added", warnings),
	})
}

// GetExpense returns one expense
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]interface{}
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrExpenseNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenses.GetExpense(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense applies a partial update
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body forms.ExpensePatch true "Fields to change"
// @Success     200 {object} map[string]interface{}
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrExpenseNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req forms.ExpensePatch
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	expense, warnings, err := h.expenses.UpdateExpense(requestContext(c), userID, id, req)
	if err != nil {
		respondWithFormError(c, h.metrics, "expense", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"expense":  expense,
		"warnings": warnings,
		"toast":    toast.Saved("Expense updated", warnings),
	})
}

// DeleteExpense soft-deletes an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} DeleteResponse
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrExpenseNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	undoUntil, err := h.expenses.DeleteExpense(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	deleted(c, "Expense deleted", id, undoUntil)
}

// RestoreExpense undoes a recent delete
// @Summary     Restore a deleted expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} map[string]interface{}
// @Failure     410 {object} ErrorResponse "Undo window closed"
// @Router      /expenses/{id}/restore [post]
func (h *ExpenseHandler) RestoreExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	id, err := pathID(c, apperrors.ErrExpenseNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenses.RestoreExpense(requestContext(c), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense, "toast": toast.Success("Expense restored", "")})
}

// ListExpenses returns the user's expenses
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       status   query string false "Filter by status"
// @Param       payment_method query string false "Filter by payment method"
// @Param       currency query string false "Filter by currency"
// @Param       from     query string false "Earliest expense date (YYYY-MM-DD)"
// @Param       to       query string false "Latest expense date (YYYY-MM-DD)"
// @Param       limit    query int    false "Maximum results (1-1000)"
// @Success     200 {object} map[string]interface{}
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListExpensesQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := q.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenses.ListExpenses(requestContext(c), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// SearchExpenses matches title and subcategory
// @Summary     Search expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       q query string true "Search text (2-100 characters)"
// @Success     200 {object} map[string]interface{}
// @Router      /expenses/search [get]
func (h *ExpenseHandler) SearchExpenses(c *gin.Context) {
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

	expenses, err := h.expenses.SearchExpenses(requestContext(c), userID, q.Q)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

// SummarizeExpenses totals expenses per currency
// @Summary     Expense summary
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       from     query string false "Earliest expense date (YYYY-MM-DD)"
// @Param       to       query string false "Latest expense date (YYYY-MM-DD)"
// @Success     200 {object} map[string]interface{}
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) SummarizeExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q ListExpensesQuery
	if err := bindQuery(c, &q); err != nil {
		respondWithError(c, err)
		return
	}
	filter, err := q.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenses.SummarizeExpenses(requestContext(c), userID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
