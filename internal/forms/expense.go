package forms

import (
	"time"

	"github.com/shopspring/decimal"

	"followuply/internal/models"
)

// ExpenseInput is a raw expense form submission. Amount may be a string or
// a JSON number.
type ExpenseInput struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Amount        interface{} `json:"amount"`
	Currency      string      `json:"currency"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	PaymentMethod string      `json:"payment_method"`
	ExpenseDate   string      `json:"expense_date"`
	TaxDeductible bool        `json:"tax_deductible"`
	Status        string      `json:"status"`
	ClientID      string      `json:"client_id"`
	Tags          []string    `json:"tags"`
}

// ExpenseFields is a sanitized expense ready to store.
type ExpenseFields struct {
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      models.Currency        `json:"currency"`
	Category      models.ExpenseCategory `json:"category"`
	Subcategory   string                 `json:"subcategory"`
	PaymentMethod models.PaymentMethod   `json:"payment_method"`
	ExpenseDate   time.Time              `json:"expense_date"`
	TaxDeductible bool                   `json:"tax_deductible"`
	Status        models.ExpenseStatus   `json:"status"`
	ClientID      string                 `json:"client_id"`
	Tags          []string               `json:"tags"`
}

// Apply copies the fields onto an expense model.
func (f ExpenseFields) Apply(e *models.Expense) {
	e.Title = f.Title
	e.Description = f.Description
	e.Amount = f.Amount
	e.Currency = f.Currency
	e.Category = f.Category
	e.Subcategory = f.Subcategory
	e.PaymentMethod = f.PaymentMethod
	e.ExpenseDate = f.ExpenseDate
	e.TaxDeductible = f.TaxDeductible
	e.Status = f.Status
	e.ClientID = optionalRef(f.ClientID)
	e.Tags = models.StringList(f.Tags)
}

// ValidateExpense validates a full expense form. The expense date defaults to
// the calendar day of now.
func ValidateExpense(in ExpenseInput, now time.Time) Result[ExpenseFields] {
	c := &checker{}
	out := ExpenseFields{TaxDeductible: in.TaxDeductible}

	out.Title, _ = c.requiredLine("Title", in.Title, TitleMaxLength)
	out.Description, _ = c.optionalText("Description", in.Description, NotesMaxLength)
	amount, amountOK := c.amount(in.Amount, true)
	out.Amount = amount
	out.Currency, _ = c.currencyField(in.Currency, models.CurrencyUSD)
	out.Category, _ = enumField(c, "Category", in.Category, models.ExpenseCategory.IsValid, models.ExpenseCategoryOther)
	out.Subcategory, _ = c.optionalLine("Subcategory", in.Subcategory, SubcategoryMaxLength)
	out.PaymentMethod, _ = enumField(c, "Payment method", in.PaymentMethod, models.PaymentMethod.IsValid, "")
	out.Status, _ = enumField(c, "Status", in.Status, models.ExpenseStatus.IsValid, models.ExpenseStatusPending)
	out.ClientID, _ = c.optionalUUID("Client", in.ClientID)
	out.Tags, _ = c.tags(in.Tags)

	out.ExpenseDate = truncateDay(now)
	if d, ok := c.date("Expense date", in.ExpenseDate, false); ok && !d.IsZero() {
		out.ExpenseDate = d
	}
	c.futureExpense(out.ExpenseDate, now)

	if amountOK {
		c.largeExpense(amount)
	}

	return finish(c, out)
}

// ExpensePatch is a partial expense update. Nil fields are left unchanged.
type ExpensePatch struct {
	Title         *string     `json:"title"`
	Description   *string     `json:"description"`
	Amount        interface{} `json:"amount"`
	Currency      *string     `json:"currency"`
	Category      *string     `json:"category"`
	Subcategory   *string     `json:"subcategory"`
	PaymentMethod *string     `json:"payment_method"`
	ExpenseDate   *string     `json:"expense_date"`
	TaxDeductible *bool       `json:"tax_deductible"`
	Status        *string     `json:"status"`
	ClientID      *string     `json:"client_id"`
	Tags          *[]string   `json:"tags"`
}

// ValidateExpensePatch validates only the fields present in p.
func ValidateExpensePatch(p ExpensePatch, now time.Time) Result[Changes] {
	c := &checker{}
	changes := Changes{}

	if p.Title != nil {
		if v, ok := c.requiredLine("Title", *p.Title, TitleMaxLength); ok {
			changes["title"] = v
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
			c.largeExpense(v)
		}
	}
	if p.Currency != nil {
		if isBlank(*p.Currency) {
			c.fail("Currency is required")
		} else if v, ok := c.currencyField(*p.Currency, ""); ok {
			changes["currency"] = v
		}
	}
	if p.Category != nil {
		if v, ok := requiredEnum(c, "Category", *p.Category, models.ExpenseCategory.IsValid); ok {
			changes["category"] = v
		}
	}
	if p.Subcategory != nil {
		if v, ok := c.optionalLine("Subcategory", *p.Subcategory, SubcategoryMaxLength); ok {
			changes["subcategory"] = v
		}
	}
	if p.PaymentMethod != nil {
		if v, ok := enumField(c, "Payment method", *p.PaymentMethod, models.PaymentMethod.IsValid, ""); ok {
			changes["payment_method"] = v
		}
	}
	if p.ExpenseDate != nil {
		if v, ok := c.date("Expense date", *p.ExpenseDate, true); ok {
			changes["expense_date"] = v
			c.futureExpense(v, now)
		}
	}
	if p.TaxDeductible != nil {
		changes["tax_deductible"] = *p.TaxDeductible
	}
	if p.Status != nil {
		if v, ok := requiredEnum(c, "Status", *p.Status, models.ExpenseStatus.IsValid); ok {
			changes["status"] = v
		}
	}
	if p.ClientID != nil {
		if v, ok := c.optionalUUID("Client", *p.ClientID); ok {
			changes["client_id"] = optionalRef(v)
		}
	}
	if p.Tags != nil {
		if v, ok := c.tags(*p.Tags); ok {
			changes["tags"] = models.StringList(v)
		}
	}

	return finish(c, changes)
}

func (c *checker) largeExpense(amount decimal.Decimal) {
	if amount.GreaterThan(LargeExpenseAmount) {
		c.warn("This is a large expense, please double-check the amount")
	}
}

func (c *checker) futureExpense(date, now time.Time) {
	if date.After(truncateDay(now)) {
		c.warn("Expense date is in the future")
	}
}
