package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"followuply/internal/forms"
	"followuply/internal/logger"
	"followuply/internal/middleware"
	"followuply/internal/models"
	"followuply/internal/pagination"
	"followuply/internal/services"
	"followuply/internal/validator"
)

const (
	testUserID   = "0190f5a2-7c4e-7b3a-9d2e-000000000001"
	testClientID = "0190f5a2-7c4e-7b3a-9d2e-1f2a3b4c5d6e"
)

// --- mock client service ---

type mockClientService struct {
	createClientFn  func(ctx context.Context, userID string, in forms.ClientInput) (*models.Client, []string, error)
	getClientFn     func(ctx context.Context, userID, clientID string) (*models.Client, error)
	updateClientFn  func(ctx context.Context, userID, clientID string, patch forms.ClientPatch) (*models.Client, []string, error)
	deleteClientFn  func(ctx context.Context, userID, clientID string) (time.Time, error)
	restoreClientFn func(ctx context.Context, userID, clientID string) (*models.Client, error)
	listClientsFn   func(ctx context.Context, userID string, filter services.ClientFilter) ([]models.Client, error)
	searchClientsFn func(ctx context.Context, userID, query string) ([]models.Client, error)
}

func (m *mockClientService) CreateClient(ctx context.Context, userID string, in forms.ClientInput) (*models.Client, []string, error) {
	if m.createClientFn != nil {
		return m.createClientFn(ctx, userID, in)
	}
	return &models.Client{}, nil, nil
}

func (m *mockClientService) GetClient(ctx context.Context, userID, clientID string) (*models.Client, error) {
	if m.getClientFn != nil {
		return m.getClientFn(ctx, userID, clientID)
	}
	return &models.Client{}, nil
}

func (m *mockClientService) UpdateClient(ctx context.Context, userID, clientID string, patch forms.ClientPatch) (*models.Client, []string, error) {
	if m.updateClientFn != nil {
		return m.updateClientFn(ctx, userID, clientID, patch)
	}
	return &models.Client{}, nil, nil
}

func (m *mockClientService) DeleteClient(ctx context.Context, userID, clientID string) (time.Time, error) {
	if m.deleteClientFn != nil {
		return m.deleteClientFn(ctx, userID, clientID)
	}
	return time.Now().Add(services.DefaultUndoWindow), nil
}

func (m *mockClientService) RestoreClient(ctx context.Context, userID, clientID string) (*models.Client, error) {
	if m.restoreClientFn != nil {
		return m.restoreClientFn(ctx, userID, clientID)
	}
	return &models.Client{}, nil
}

func (m *mockClientService) ListClients(ctx context.Context, userID string, filter services.ClientFilter) ([]models.Client, error) {
	if m.listClientsFn != nil {
		return m.listClientsFn(ctx, userID, filter)
	}
	return []models.Client{}, nil
}

func (m *mockClientService) SearchClients(ctx context.Context, userID, query string) ([]models.Client, error) {
	if m.searchClientsFn != nil {
		return m.searchClientsFn(ctx, userID, query)
	}
	return []models.Client{}, nil
}

// --- mock invoice service ---

type mockInvoiceService struct {
	createInvoiceFn       func(ctx context.Context, userID string, in forms.InvoiceInput) (*models.Invoice, []string, error)
	updateInvoiceStatusFn func(ctx context.Context, userID, invoiceID, status string) (*models.Invoice, error)
	markInvoicePaidFn     func(ctx context.Context, userID, invoiceID string, in forms.PaymentInput) (*models.Invoice, []string, error)
	markOverdueFn         func(ctx context.Context, userID string) (int64, error)
	listInvoicesFn        func(ctx context.Context, userID string, filter services.InvoiceFilter) ([]models.Invoice, error)
}

func (m *mockInvoiceService) CreateInvoice(ctx context.Context, userID string, in forms.InvoiceInput) (*models.Invoice, []string, error) {
	if m.createInvoiceFn != nil {
		return m.createInvoiceFn(ctx, userID, in)
	}
	return &models.Invoice{}, nil, nil
}

func (m *mockInvoiceService) GetInvoice(context.Context, string, string) (*models.Invoice, error) {
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) UpdateInvoice(context.Context, string, string, forms.InvoicePatch) (*models.Invoice, []string, error) {
	return &models.Invoice{}, nil, nil
}

func (m *mockInvoiceService) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID, status string) (*models.Invoice, error) {
	if m.updateInvoiceStatusFn != nil {
		return m.updateInvoiceStatusFn(ctx, userID, invoiceID, status)
	}
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) MarkInvoicePaid(ctx context.Context, userID, invoiceID string, in forms.PaymentInput) (*models.Invoice, []string, error) {
	if m.markInvoicePaidFn != nil {
		return m.markInvoicePaidFn(ctx, userID, invoiceID, in)
	}
	return &models.Invoice{}, nil, nil
}

func (m *mockInvoiceService) MarkOverdueInvoices(ctx context.Context, userID string) (int64, error) {
	if m.markOverdueFn != nil {
		return m.markOverdueFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockInvoiceService) DeleteInvoice(context.Context, string, string) (time.Time, error) {
	return time.Now().Add(services.DefaultUndoWindow), nil
}

func (m *mockInvoiceService) RestoreInvoice(context.Context, string, string) (*models.Invoice, error) {
	return &models.Invoice{}, nil
}

func (m *mockInvoiceService) ListInvoices(ctx context.Context, userID string, filter services.InvoiceFilter) ([]models.Invoice, error) {
	if m.listInvoicesFn != nil {
		return m.listInvoicesFn(ctx, userID, filter)
	}
	return []models.Invoice{}, nil
}

func (m *mockInvoiceService) SearchInvoices(context.Context, string, string) ([]models.Invoice, error) {
	return []models.Invoice{}, nil
}

// --- mock reminder service ---

type mockReminderService struct {
	completeReminderFn func(ctx context.Context, userID, reminderID string) (*models.Reminder, error)
	listRemindersFn    func(ctx context.Context, userID string, filter services.ReminderFilter) ([]models.Reminder, error)
}

func (m *mockReminderService) CreateReminder(context.Context, string, forms.ReminderInput) (*models.Reminder, []string, error) {
	return &models.Reminder{}, nil, nil
}

func (m *mockReminderService) GetReminder(context.Context, string, string) (*models.Reminder, error) {
	return &models.Reminder{}, nil
}

func (m *mockReminderService) UpdateReminder(context.Context, string, string, forms.ReminderPatch) (*models.Reminder, []string, error) {
	return &models.Reminder{}, nil, nil
}

func (m *mockReminderService) CompleteReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	if m.completeReminderFn != nil {
		return m.completeReminderFn(ctx, userID, reminderID)
	}
	return &models.Reminder{}, nil
}

func (m *mockReminderService) DeleteReminder(context.Context, string, string) (time.Time, error) {
	return time.Now().Add(services.DefaultUndoWindow), nil
}

func (m *mockReminderService) RestoreReminder(context.Context, string, string) (*models.Reminder, error) {
	return &models.Reminder{}, nil
}

func (m *mockReminderService) ListReminders(ctx context.Context, userID string, filter services.ReminderFilter) ([]models.Reminder, error) {
	if m.listRemindersFn != nil {
		return m.listRemindersFn(ctx, userID, filter)
	}
	return []models.Reminder{}, nil
}

func (m *mockReminderService) SearchReminders(context.Context, string, string) ([]models.Reminder, error) {
	return []models.Reminder{}, nil
}

// --- mock expense service ---

type mockExpenseService struct {
	listExpensesFn      func(ctx context.Context, userID string, filter services.ExpenseFilter) ([]models.Expense, error)
	summarizeExpensesFn func(ctx context.Context, userID string, filter services.ExpenseFilter) ([]services.ExpenseSummary, error)
}

func (m *mockExpenseService) CreateExpense(context.Context, string, forms.ExpenseInput) (*models.Expense, []string, error) {
	return &models.Expense{}, nil, nil
}

func (m *mockExpenseService) GetExpense(context.Context, string, string) (*models.Expense, error) {
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(context.Context, string, string, forms.ExpensePatch) (*models.Expense, []string, error) {
	return &models.Expense{}, nil, nil
}

func (m *mockExpenseService) DeleteExpense(context.Context, string, string) (time.Time, error) {
	return time.Now().Add(services.DefaultUndoWindow), nil
}

func (m *mockExpenseService) RestoreExpense(context.Context, string, string) (*models.Expense, error) {
	return &models.Expense{}, nil
}

func (m *mockExpenseService) ListExpenses(ctx context.Context, userID string, filter services.ExpenseFilter) ([]models.Expense, error) {
	if m.listExpensesFn != nil {
		return m.listExpensesFn(ctx, userID, filter)
	}
	return []models.Expense{}, nil
}

func (m *mockExpenseService) SearchExpenses(context.Context, string, string) ([]models.Expense, error) {
	return []models.Expense{}, nil
}

func (m *mockExpenseService) SummarizeExpenses(ctx context.Context, userID string, filter services.ExpenseFilter) ([]services.ExpenseSummary, error) {
	if m.summarizeExpensesFn != nil {
		return m.summarizeExpensesFn(ctx, userID, filter)
	}
	return []services.ExpenseSummary{}, nil
}

// --- mock profile, notification and dashboard services ---

type mockProfileService struct {
	getProfileFn  func(ctx context.Context, userID string) (*models.Profile, error)
	saveProfileFn func(ctx context.Context, userID string, patch forms.ProfilePatch) (*models.Profile, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if m.getProfileFn != nil {
		return m.getProfileFn(ctx, userID)
	}
	return &models.Profile{}, nil
}

func (m *mockProfileService) SaveProfile(ctx context.Context, userID string, patch forms.ProfilePatch) (*models.Profile, error) {
	if m.saveProfileFn != nil {
		return m.saveProfileFn(ctx, userID, patch)
	}
	return &models.Profile{}, nil
}

type mockNotificationService struct {
	listFn     func(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Notification], error)
	markReadFn func(ctx context.Context, userID, notificationID string) error
}

func (m *mockNotificationService) Notify(context.Context, string, models.NotificationKind, string, string, string, string) (*models.Notification, error) {
	return &models.Notification{}, nil
}

func (m *mockNotificationService) ListNotifications(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Notification], error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, page, unreadOnly)
	}
	resp := pagination.NewPageResponse([]models.Notification{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockNotificationService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) MarkAllNotificationsRead(context.Context, string) (int64, error) {
	return 0, nil
}

type mockDashboardService struct {
	loadFn func(ctx context.Context, userID string) (*services.Dashboard, error)
}

func (m *mockDashboardService) Load(ctx context.Context, userID string) (*services.Dashboard, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx, userID)
	}
	return &services.Dashboard{}, nil
}

// verify interface compliance
var (
	_ services.ClientServicer       = (*mockClientService)(nil)
	_ services.InvoiceServicer      = (*mockInvoiceService)(nil)
	_ services.ReminderServicer     = (*mockReminderService)(nil)
	_ services.ExpenseServicer      = (*mockExpenseService)(nil)
	_ services.ProfileServicer      = (*mockProfileService)(nil)
	_ services.NotificationServicer = (*mockNotificationService)(nil)
	_ services.DashboardServicer    = (*mockDashboardService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertToastKind(t *testing.T, result map[string]interface{}, kind string) map[string]interface{} {
	t.Helper()
	tst, ok := result["toast"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected toast in response, got: %v", result)
	}
	if tst["kind"] != kind {
		t.Errorf("expected toast kind %q, got %q", kind, tst["kind"])
	}
	return tst
}
