package models

// Resource types recorded on audit rows and notifications.
const (
	ResourceClient   = "client"
	ResourceInvoice  = "invoice"
	ResourceReminder = "reminder"
	ResourceExpense  = "expense"
	ResourceProfile  = "profile"
)

// AuditLog is one row of the append-only trail of deletes, restores, status
// transitions and settings changes. ResourceID is empty for bulk actions such
// as marking invoices overdue.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;not null;index" json:"user_id"`
	Action       string `gorm:"size:32;not null" json:"action"`
	ResourceType string `gorm:"size:32;not null" json:"resource_type"`
	ResourceID   string `gorm:"size:36;index" json:"resource_id,omitempty"`
	IPAddress    string `gorm:"size:45" json:"ip_address,omitempty"`
	Changes      string `gorm:"type:text" json:"changes,omitempty"`
}
