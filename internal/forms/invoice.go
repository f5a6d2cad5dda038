package forms

import (
	"time"

	"github.com/shopspring/decimal"

	"followuply/internal/models"
)

// InvoiceInput is a raw invoice form submission. Amount may be a string or
// a JSON number.
type InvoiceInput struct {
	ClientID    string      `json:"client_id"`
	Project     string      `json:"project"`
	Description string      `json:"description"`
	Amount      interface{} `json:"amount"`
	Currency    string      `json:"currency"`
	DueDate     string      `json:"due_date"`
	Status      string      `json:"status"`
}

// InvoiceFields is a sanitized invoice ready to store.
type InvoiceFields struct {
	ClientID    string               `json:"client_id"`
	Project     string               `json:"project"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    models.Currency      `json:"currency"`
	DueDate     time.Time            `json:"due_date"`
	Status      models.InvoiceStatus `json:"status"`
}

// Apply copies the fields onto an invoice model.
func (f InvoiceFields) Apply(inv *models.Invoice) {
	inv.ClientID = f.ClientID
	inv.Project = f.Project
	inv.Description = f.Description
	inv.Amount = f.Amount
	inv.Currency = f.Currency
	inv.DueDate = f.DueDate
	inv.Status = f.Status
}

// ValidateInvoice validates a full invoice form against the calendar day of
// now.
func ValidateInvoice(in InvoiceInput, now time.Time) Result[InvoiceFields] {
	c := &checker{}
	var out InvoiceFields

	out.ClientID, _ = c.requiredUUID("Client", in.ClientID)
	out.Project, _ = c.requiredLine("Project", in.Project, TitleMaxLength)
	out.Description, _ = c.optionalText("Description", in.Description, NotesMaxLength)
	amount, amountOK := c.amount(in.Amount, true)
	out.Amount = amount
	out.Currency, _ = c.currencyField(in.Currency, models.CurrencyUSD)
	due, dueOK := c.date("Due date", in.DueDate, true)
	out.DueDate = due
	out.Status, _ = c.invoiceStatus(in.Status, models.InvoiceStatusDraft)

	if amountOK {
		c.largeInvoice(amount)
	}
	if dueOK {
		c.pastDue(due, now)
	}

	return finish(c, out)
}

// InvoicePatch is a partial invoice update. Nil fields are left unchanged.
type InvoicePatch struct {
	ClientID    *string     `json:"client_id"`
	Project     *string     `json:"project"`
	Description *string     `json:"description"`
	Amount      interface{} `json:"amount"`
	Currency    *string     `json:"currency"`
	DueDate     *string     `json:"due_date"`
	Status      *string     `json:"status"`
}

// ValidateInvoicePatch validates only the fields present in p.
func ValidateInvoicePatch(p InvoicePatch, now time.Time) Result[Changes] {
	c := &checker{}
	changes := Changes{}

	if p.ClientID != nil {
		if v, ok := c.requiredUUID("Client", *p.ClientID); ok {
			changes["client_id"] = v
		}
	}
	if p.Project != nil {
		if v, ok := c.requiredLine("Project", *p.Project, TitleMaxLength); ok {
			changes["project"] = v
		}
	}
	if p.Description != nil {
		if v, ok := c.optionalText("Description", *p.Description, NotesMaxLength); ok {
			changes["description"] = v
		}
	}
	if p.Amount != nil {
		if v, ok := c.amount(p.Amount, true); ok {
			changes["amount"] = v
			c.largeInvoice(v)
		}
	}
	if p.Currency != nil {
		if isBlank(*p.Currency) {
			c.fail("Currency is required")
		} else if v, ok := c.currencyField(*p.Currency, ""); ok {
			changes["currency"] = v
		}
	}
	if p.DueDate != nil {
		if v, ok := c.date("Due date", *p.DueDate, true); ok {
			changes["due_date"] = v
			c.pastDue(v, now)
		}
	}
	if p.Status != nil {
		if isBlank(*p.Status) {
			c.fail("Status is required")
		} else if v, ok := c.invoiceStatus(*p.Status, ""); ok {
			changes["status"] = v
		}
	}

	return finish(c, changes)
}

// ValidateInvoiceStatus validates a single-field status transition.
func ValidateInvoiceStatus(raw string) Result[models.InvoiceStatus] {
	c := &checker{}
	var status models.InvoiceStatus
	if isBlank(raw) {
		c.fail("Status is required")
	} else {
		status, _ = c.invoiceStatus(raw, "")
	}
	return finish(c, status)
}

// PaymentInput is a raw mark-paid form submission.
type PaymentInput struct {
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method"`
}

// PaymentFields is a sanitized mark-paid form.
type PaymentFields struct {
	PaymentDate   time.Time            `json:"payment_date"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// ValidatePayment validates a mark-paid form. The payment date defaults to
// today.
func ValidatePayment(in PaymentInput, now time.Time) Result[PaymentFields] {
	c := &checker{}
	today := truncateDay(now)
	out := PaymentFields{PaymentDate: today}

	if d, ok := c.date("Payment date", in.PaymentDate, false); ok && !d.IsZero() {
		out.PaymentDate = d
		if d.After(today) {
			c.warn("Payment date is in the future")
		}
	}
	out.PaymentMethod, _ = enumField(c, "Payment method", in.PaymentMethod, models.PaymentMethod.IsValid, "")

	return finish(c, out)
}

// invoiceStatus rejects "paid": invoices only become paid through
// ValidatePayment, which also records the payment details.
func (c *checker) invoiceStatus(raw string, def models.InvoiceStatus) (models.InvoiceStatus, bool) {
	v, ok := enumField(c, "Status", raw, models.InvoiceStatus.IsValid, def)
	if ok && v == models.InvoiceStatusPaid && !isBlank(raw) {
		c.fail("Use mark as paid to record a payment")
		return def, false
	}
	return v, ok
}

func (c *checker) largeInvoice(amount decimal.Decimal) {
	if amount.GreaterThan(LargeInvoiceAmount) {
		c.warn("This is a large amount, please double-check it")
	}
}

func (c *checker) pastDue(due, now time.Time) {
	if due.Before(truncateDay(now)) {
		c.warn("Due date is in the past, the invoice will be overdue")
	}
}
