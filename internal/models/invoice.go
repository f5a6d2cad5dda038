package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents where an invoice is in its billing cycle
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusUnpaid    InvoiceStatus = "unpaid"
)

// InvoiceStatuses lists the valid invoice statuses.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPending, InvoiceStatusPaid,
	InvoiceStatusOverdue, InvoiceStatusCancelled, InvoiceStatusUnpaid,
}

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool { return contains(InvoiceStatuses, s) }

// Outstanding reports whether an invoice in status s is still awaiting payment
// and can become overdue.
func (s InvoiceStatus) Outstanding() bool {
	return s == InvoiceStatusSent || s == InvoiceStatusPending || s == InvoiceStatusUnpaid
}

// Invoice bills a client for a project
type Invoice struct {
	Base
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID      string          `gorm:"type:uuid;not null;index" json:"client_id"`
	Project       string          `gorm:"size:200;not null" json:"project"`
	Description   string          `gorm:"size:1000" json:"description,omitempty"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency      Currency        `gorm:"size:3;not null;default:'USD'" json:"currency"`
	DueDate       time.Time       `gorm:"not null;index" json:"due_date"`
	Status        InvoiceStatus   `gorm:"size:16;not null;default:'draft';index" json:"status"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	PaymentMethod PaymentMethod   `gorm:"size:32" json:"payment_method,omitempty"`

	Client *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}
