package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/metrics"
)

// ValidateHandler runs the form validators without saving anything, so the
// UI can show field errors and warnings while the user types.
type ValidateHandler struct {
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(m *metrics.Metrics) *ValidateHandler {
	return &ValidateHandler{metrics: m, now: time.Now}
}

// Validate checks a form for the entity in the path
// @Summary     Validate a form
// @Description Supported entities: client, invoice, reminder, expense, profile, payment, search.
// @Tags        validation
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       entity path string true "Form to validate"
// @Success     200 {object} map[string]interface{} "Validation result"
// @Failure     400 {object} ErrorResponse "Unknown form or malformed body"
// @Router      /validate/{entity} [post]
func (h *ValidateHandler) Validate(c *gin.Context) {
	entity := c.Param("entity")
	now := h.now()

	var (
		result interface{}
		valid  bool
		err    error
	)
	switch entity {
	case "client":
		result, valid, err = check(c, forms.ValidateClient)
	case "invoice":
		result, valid, err = check(c, func(in forms.InvoiceInput) forms.Result[forms.InvoiceFields] {
			return forms.ValidateInvoice(in, now)
		})
	case "reminder":
		result, valid, err = check(c, func(in forms.ReminderInput) forms.Result[forms.ReminderFields] {
			return forms.ValidateReminder(in, now)
		})
	case "expense":
		result, valid, err = check(c, func(in forms.ExpenseInput) forms.Result[forms.ExpenseFields] {
			return forms.ValidateExpense(in, now)
		})
	case "profile":
		result, valid, err = check(c, forms.ValidateProfile)
	case "payment":
		result, valid, err = check(c, func(in forms.PaymentInput) forms.Result[forms.PaymentFields] {
			return forms.ValidatePayment(in, now)
		})
	case "search":
		result, valid, err = check(c, func(in SearchQuery) forms.Result[string] {
			return forms.ValidateSearchQuery(in.Q)
		})
	default:
		err = apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown form: "+entity)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	if !valid {
		h.metrics.ValidationFailed(entity)
	}
	c.JSON(http.StatusOK, result)
}

// check binds the body into T and runs validate on it.
func check[T any, V any](c *gin.Context, validate func(T) forms.Result[V]) (interface{}, bool, error) {
	var in T
	if err := bindJSON(c, &in); err != nil {
		return nil, false, err
	}
	res := validate(in)
	return res, res.IsValid, nil
}
