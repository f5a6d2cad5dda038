package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed bookkeeping categories
type ExpenseCategory string

const (
	ExpenseCategorySoftware             ExpenseCategory = "software"
	ExpenseCategoryHardware             ExpenseCategory = "hardware"
	ExpenseCategoryOfficeSupplies       ExpenseCategory = "office_supplies"
	ExpenseCategoryTravel               ExpenseCategory = "travel"
	ExpenseCategoryMarketing            ExpenseCategory = "marketing"
	ExpenseCategoryEducation            ExpenseCategory = "education"
	ExpenseCategoryProfessionalServices ExpenseCategory = "professional_services"
	ExpenseCategoryUtilities            ExpenseCategory = "utilities"
	ExpenseCategoryOther                ExpenseCategory = "other"
)

// ExpenseCategories lists the nine expense categories.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategorySoftware, ExpenseCategoryHardware, ExpenseCategoryOfficeSupplies,
	ExpenseCategoryTravel, ExpenseCategoryMarketing, ExpenseCategoryEducation,
	ExpenseCategoryProfessionalServices, ExpenseCategoryUtilities, ExpenseCategoryOther,
}

// IsValid reports whether c is one of the fixed categories.
func (c ExpenseCategory) IsValid() bool { return contains(ExpenseCategories, c) }

// ExpenseStatus tracks reimbursement and reconciliation
type ExpenseStatus string

const (
	ExpenseStatusPending    ExpenseStatus = "pending"
	ExpenseStatusApproved   ExpenseStatus = "approved"
	ExpenseStatusReimbursed ExpenseStatus = "reimbursed"
	ExpenseStatusReconciled ExpenseStatus = "reconciled"
)

// ExpenseStatuses lists the valid expense statuses.
var ExpenseStatuses = []ExpenseStatus{
	ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusReimbursed, ExpenseStatusReconciled,
}

// IsValid reports whether s is a known expense status.
func (s ExpenseStatus) IsValid() bool { return contains(ExpenseStatuses, s) }

// Expense is money the freelancer spent
type Expense struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID      *string         `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Title         string          `gorm:"size:200;not null" json:"title"`
	Description   string          `gorm:"size:1000" json:"description,omitempty"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency      Currency        `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Category      ExpenseCategory `gorm:"size:32;not null;default:'other';index" json:"category"`
	Subcategory   string          `gorm:"size:100" json:"subcategory,omitempty"`
	PaymentMethod PaymentMethod   `gorm:"size:32" json:"payment_method,omitempty"`
	ExpenseDate   time.Time       `gorm:"not null;index" json:"expense_date"`
	TaxDeductible bool            `gorm:"not null;default:false" json:"tax_deductible"`
	Status        ExpenseStatus   `gorm:"size:16;not null;default:'pending'" json:"status"`
	Tags          StringList      `gorm:"type:text" json:"tags"`
}
