package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"followuply/internal/forms"
	"followuply/internal/models"
	"followuply/internal/pagination"
)

// Create and update operations return the saved record together with the
// non-blocking warnings raised while validating it. Delete operations return
// the deadline until which the delete can be undone.

// ClientFilter holds optional filter parameters for listing clients.
type ClientFilter struct {
	Status   models.ClientStatus
	Platform models.Platform
	Limit    int
}

// ClientServicer defines the contract for client-related business logic.
type ClientServicer interface {
	CreateClient(ctx context.Context, userID string, in forms.ClientInput) (*models.Client, []string, error)
	GetClient(ctx context.Context, userID, clientID string) (*models.Client, error)
	UpdateClient(ctx context.Context, userID, clientID string, patch forms.ClientPatch) (*models.Client, []string, error)
	DeleteClient(ctx context.Context, userID, clientID string) (time.Time, error)
	RestoreClient(ctx context.Context, userID, clientID string) (*models.Client, error)
	ListClients(ctx context.Context, userID string, filter ClientFilter) ([]models.Client, error)
	SearchClients(ctx context.Context, userID, query string) ([]models.Client, error)
}

// InvoiceFilter holds optional filter parameters for listing invoices.
type InvoiceFilter struct {
	Status   models.InvoiceStatus
	ClientID string
	Currency models.Currency
	Limit    int
}

// InvoiceServicer defines the contract for invoice-related business logic.
type InvoiceServicer interface {
	CreateInvoice(ctx context.Context, userID string, in forms.InvoiceInput) (*models.Invoice, []string, error)
	GetInvoice(ctx context.Context, userID, invoiceID string) (*models.Invoice, error)
	UpdateInvoice(ctx context.Context, userID, invoiceID string, patch forms.InvoicePatch) (*models.Invoice, []string, error)
	UpdateInvoiceStatus(ctx context.Context, userID, invoiceID, status string) (*models.Invoice, error)
	MarkInvoicePaid(ctx context.Context, userID, invoiceID string, in forms.PaymentInput) (*models.Invoice, []string, error)
	MarkOverdueInvoices(ctx context.Context, userID string) (int64, error)
	DeleteInvoice(ctx context.Context, userID, invoiceID string) (time.Time, error)
	RestoreInvoice(ctx context.Context, userID, invoiceID string) (*models.Invoice, error)
	ListInvoices(ctx context.Context, userID string, filter InvoiceFilter) ([]models.Invoice, error)
	SearchInvoices(ctx context.Context, userID, query string) ([]models.Invoice, error)
}

// ReminderFilter holds optional filter parameters for listing reminders.
type ReminderFilter struct {
	Status   models.ReminderStatus
	Priority models.ReminderPriority
	Type     models.ReminderType
	Limit    int
}

// ReminderServicer defines the contract for reminder-related business logic.
type ReminderServicer interface {
	CreateReminder(ctx context.Context, userID string, in forms.ReminderInput) (*models.Reminder, []string, error)
	GetReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error)
	UpdateReminder(ctx context.Context, userID, reminderID string, patch forms.ReminderPatch) (*models.Reminder, []string, error)
	CompleteReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, userID, reminderID string) (time.Time, error)
	RestoreReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error)
	ListReminders(ctx context.Context, userID string, filter ReminderFilter) ([]models.Reminder, error)
	SearchReminders(ctx context.Context, userID, query string) ([]models.Reminder, error)
}

// ExpenseFilter holds optional filter parameters for listing and
// summarizing expenses. From and To bound the expense date, inclusive.
type ExpenseFilter struct {
	Category      models.ExpenseCategory
	Status        models.ExpenseStatus
	PaymentMethod models.PaymentMethod
	Currency      models.Currency
	From          *time.Time
	To            *time.Time
	Limit         int
}

// ExpenseSummary totals a user's expenses in one currency.
type ExpenseSummary struct {
	Currency      models.Currency                            `json:"currency"`
	Count         int64                                      `json:"count"`
	Total         decimal.Decimal                            `json:"total"`
	TaxDeductible decimal.Decimal                            `json:"tax_deductible"`
	ByCategory    map[models.ExpenseCategory]decimal.Decimal `json:"by_category"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(ctx context.Context, userID string, in forms.ExpenseInput) (*models.Expense, []string, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, patch forms.ExpensePatch) (*models.Expense, []string, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) (time.Time, error)
	RestoreExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)
	ListExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]models.Expense, error)
	SearchExpenses(ctx context.Context, userID, query string) ([]models.Expense, error)
	SummarizeExpenses(ctx context.Context, userID string, filter ExpenseFilter) ([]ExpenseSummary, error)
}

// ProfileServicer defines the contract for profile settings.
type ProfileServicer interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, userID string, patch forms.ProfilePatch) (*models.Profile, error)
}

// NotificationServicer defines the contract for in-app notifications.
type NotificationServicer interface {
	Notify(ctx context.Context, userID string, kind models.NotificationKind, title, message, resourceType, resourceID string) (*models.Notification, error)
	ListNotifications(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Notification], error)
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
}

// AuditServicer defines the contract for audit log recording.
type AuditServicer interface {
	Log(ctx context.Context, userID, action, resourceType, resourceID string, changes map[string]any)
}

// Dashboard is the landing page snapshot.
type Dashboard struct {
	Invoices          []models.Invoice  `json:"invoices"`
	Clients           []models.Client   `json:"clients"`
	UpcomingReminders []models.Reminder `json:"upcoming_reminders"`
}

// DashboardServicer loads the dashboard.
type DashboardServicer interface {
	Load(ctx context.Context, userID string) (*Dashboard, error)
}
