package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"followuply/internal/models"
	"followuply/internal/uuid"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a fresh account ID. Accounts live with the auth
// provider, so there is no row to create.
func NewUserID() string {
	return uuid.New()
}

// CreateTestClient creates an active client with a unique name.
func CreateTestClient(t *testing.T, db *gorm.DB, userID string) *models.Client {
	t.Helper()

	n := nextID()
	client := &models.Client{
		UserID:   userID,
		Name:     fmt.Sprintf("Client %d", n),
		Email:    fmt.Sprintf("client%d@test.com", n),
		Tags:     models.StringList{},
		Status:   models.ClientStatusActive,
		Platform: models.PlatformDirect,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("failed to create test client: %v", err)
	}
	return client
}

// CreateTestInvoice creates a sent invoice due in a week.
func CreateTestInvoice(t *testing.T, db *gorm.DB, userID, clientID string) *models.Invoice {
	t.Helper()
	return CreateTestInvoiceWith(t, db, userID, clientID, models.InvoiceStatusSent, time.Now().UTC().AddDate(0, 0, 7))
}

// CreateTestInvoiceWith creates an invoice with the given status and due date.
func CreateTestInvoiceWith(t *testing.T, db *gorm.DB, userID, clientID string, status models.InvoiceStatus, due time.Time) *models.Invoice {
	t.Helper()

	invoice := &models.Invoice{
		UserID:   userID,
		ClientID: clientID,
		Project:  fmt.Sprintf("Project %d", nextID()),
		Amount:   decimal.NewFromInt(1500),
		Currency: models.CurrencyUSD,
		DueDate:  due,
		Status:   status,
	}
	if err := db.Create(invoice).Error; err != nil {
		t.Fatalf("failed to create test invoice: %v", err)
	}
	return invoice
}

// CreateTestReminder creates a pending reminder due at due.
func CreateTestReminder(t *testing.T, db *gorm.DB, userID string, due time.Time) *models.Reminder {
	t.Helper()

	reminder := &models.Reminder{
		UserID:   userID,
		Title:    fmt.Sprintf("Follow up %d", nextID()),
		DueAt:    due,
		Priority: models.ReminderPriorityMedium,
		Type:     models.ReminderTypeFollowUp,
		Status:   models.ReminderStatusPending,
	}
	if err := db.Create(reminder).Error; err != nil {
		t.Fatalf("failed to create test reminder: %v", err)
	}
	return reminder
}

// CreateTestExpense creates a pending expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, amount string, category models.ExpenseCategory, taxDeductible bool) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Title:         fmt.Sprintf("Expense %d", nextID()),
		Amount:        decimal.RequireFromString(amount),
		Currency:      models.CurrencyUSD,
		Category:      category,
		ExpenseDate:   time.Now().UTC().Truncate(24 * time.Hour),
		TaxDeductible: taxDeductible,
		Status:        models.ExpenseStatusPending,
		Tags:          models.StringList{},
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestProfile creates a free-plan profile.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		UserID:      userID,
		DisplayName: "Test User",
		Currency:    models.CurrencyUSD,
		Language:    models.LanguageEnglish,
		Plan:        models.PlanFree,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}
