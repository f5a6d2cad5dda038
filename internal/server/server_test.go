package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"followuply/internal/config"
	"followuply/internal/logger"
	"followuply/internal/metrics"
	"followuply/internal/middleware"
	"followuply/internal/ratelimit"
	"followuply/internal/services"
	internaltestutil "followuply/internal/testutil"
	"followuply/internal/validator"
)

const testSecret = "test-secret"

// testApp holds the full application stack backed by in-memory SQLite.
type testApp struct {
	Router  *gin.Engine
	Metrics *metrics.Metrics
	now     time.Time
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func setupApp(t *testing.T, mutationsPerWindow int) *testApp {
	t.Helper()

	db := internaltestutil.SetupTestDB(t)
	t.Cleanup(func() { internaltestutil.TeardownTestDB(t, db) })

	app := &testApp{Metrics: metrics.New(), now: time.Now()}
	policy := services.Policy{
		UndoWindow: services.DefaultUndoWindow,
		Now:        func() time.Time { return app.now },
	}
	cfg := &config.Config{
		JWTSecret:          testSecret,
		MetricsAPIKey:      "scrape",
		RequestTimeout:     5 * time.Second,
		UndoWindow:         services.DefaultUndoWindow,
		RateLimitMutations: mutationsPerWindow,
		RateLimitWindow:    time.Minute,
	}
	app.Router = NewRouter(Deps{
		DB:      db,
		Config:  cfg,
		Metrics: app.Metrics,
		Limiter: ratelimit.New(),
		Policy:  &policy,
	})
	return app
}

// token signs an access token for a fresh user.
func token(t *testing.T) string {
	t.Helper()
	tok, err := middleware.GenerateAccessToken(internaltestutil.NewUserID(), "user@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]interface{} {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func TestHealthAndAuth(t *testing.T) {
	app := setupApp(t, 10)

	expectStatus(t, app.request("GET", "/api/health", "", ""), http.StatusOK)
	expectStatus(t, app.request("GET", "/api/v1/clients", "", ""), http.StatusUnauthorized)
	expectStatus(t, app.request("GET", "/api/v1/clients", "", "garbage"), http.StatusUnauthorized)
}

func TestInvoicePaymentFlow(t *testing.T) {
	app := setupApp(t, 100)
	tok := token(t)

	client := expectStatus(t, app.request("POST", "/api/v1/clients",
		`{"name":"  Acme  Co ","email":"Billing@Acme.io","tags":["retainer"]}`, tok), http.StatusCreated)
	clientID := client["client"].(map[string]interface{})["id"].(string)
	if name := client["client"].(map[string]interface{})["name"]; name != "Acme Co" {
		t.Errorf("expected sanitized name, got %q", name)
	}

	due := app.now.AddDate(0, 0, 14).Format(time.DateOnly)
	invoice := expectStatus(t, app.request("POST", "/api/v1/invoices",
		fmt.Sprintf(`{"client_id":%q,"project":"Website","amount":"2400.00","due_date":%q,"status":"sent"}`, clientID, due),
		tok), http.StatusCreated)
	invoiceID := invoice["invoice"].(map[string]interface{})["id"].(string)

	paid := expectStatus(t, app.request("POST", "/api/v1/invoices/"+invoiceID+"/paid",
		`{"payment_method":"bank_transfer"}`, tok), http.StatusOK)
	if status := paid["invoice"].(map[string]interface{})["status"]; status != "paid" {
		t.Errorf("expected paid, got %v", status)
	}

	again := expectStatus(t, app.request("POST", "/api/v1/invoices/"+invoiceID+"/paid", "", tok), http.StatusConflict)
	if again["error"].(map[string]interface{})["code"] != "INVOICE_ALREADY_PAID" {
		t.Errorf("unexpected error %v", again["error"])
	}

	notes := expectStatus(t, app.request("GET", "/api/v1/notifications?unread=true", "", tok), http.StatusOK)
	if notes["total_items"].(float64) != 1 {
		t.Fatalf("expected one notification, got %v", notes["total_items"])
	}

	// The client cannot be deleted while it has invoices.
	blocked := expectStatus(t, app.request("DELETE", "/api/v1/clients/"+clientID, "", tok), http.StatusConflict)
	if blocked["error"].(map[string]interface{})["code"] != "CLIENT_HAS_INVOICES" {
		t.Errorf("unexpected error %v", blocked["error"])
	}

	dash := expectStatus(t, app.request("GET", "/api/v1/dashboard", "", tok), http.StatusOK)
	if n := len(dash["invoices"].([]interface{})); n != 1 {
		t.Errorf("expected 1 invoice on dashboard, got %d", n)
	}

	// Another user sees none of it.
	other := token(t)
	expectStatus(t, app.request("GET", "/api/v1/invoices/"+invoiceID, "", other), http.StatusNotFound)
}

func TestDeleteAndUndo(t *testing.T) {
	app := setupApp(t, 100)
	tok := token(t)

	created := expectStatus(t, app.request("POST", "/api/v1/reminders",
		`{"title":"Chase invoice","due_date":"`+app.now.AddDate(0, 0, 1).Format(time.DateOnly)+`"}`, tok), http.StatusCreated)
	id := created["reminder"].(map[string]interface{})["id"].(string)

	deleted := expectStatus(t, app.request("DELETE", "/api/v1/reminders/"+id, "", tok), http.StatusOK)
	if deleted["toast"].(map[string]interface{})["undo_until"] == nil {
		t.Errorf("expected undo toast, got %v", deleted["toast"])
	}
	expectStatus(t, app.request("GET", "/api/v1/reminders/"+id, "", tok), http.StatusNotFound)

	app.now = app.now.Add(5 * time.Second)
	expectStatus(t, app.request("POST", "/api/v1/reminders/"+id+"/restore", "", tok), http.StatusOK)
	expectStatus(t, app.request("GET", "/api/v1/reminders/"+id, "", tok), http.StatusOK)

	expectStatus(t, app.request("DELETE", "/api/v1/reminders/"+id, "", tok), http.StatusOK)
	app.now = app.now.Add(services.DefaultUndoWindow + time.Second)
	gone := expectStatus(t, app.request("POST", "/api/v1/reminders/"+id+"/restore", "", tok), http.StatusGone)
	if gone["error"].(map[string]interface{})["code"] != "UNDO_WINDOW_CLOSED" {
		t.Errorf("unexpected error %v", gone["error"])
	}
}

func TestMutationRateLimit(t *testing.T) {
	app := setupApp(t, 3)
	tok := token(t)

	for i := 0; i < 3; i++ {
		expectStatus(t, app.request("POST", "/api/v1/clients", fmt.Sprintf(`{"name":"Client %d"}`, i), tok), http.StatusCreated)
	}

	rec := app.request("POST", "/api/v1/clients", `{"name":"One too many"}`, tok)
	result := expectStatus(t, rec, http.StatusTooManyRequests)
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
	if result["error"].(map[string]interface{})["code"] != "RATE_LIMITED" {
		t.Errorf("unexpected error %v", result["error"])
	}
	if got := testutil.ToFloat64(app.Metrics.RateLimited.WithLabelValues(ActionMutate)); got != 1 {
		t.Errorf("expected 1 rate limit hit, got %v", got)
	}

	// Reads are not throttled, and other users have their own budget.
	expectStatus(t, app.request("GET", "/api/v1/clients", "", tok), http.StatusOK)
	expectStatus(t, app.request("POST", "/api/v1/clients", `{"name":"Fresh"}`, token(t)), http.StatusCreated)
}

func TestRestoreHasItsOwnBudget(t *testing.T) {
	app := setupApp(t, 3)
	tok := token(t)

	created := expectStatus(t, app.request("POST", "/api/v1/clients", `{"name":"Acme"}`, tok), http.StatusCreated)
	id := created["client"].(map[string]interface{})["id"].(string)
	expectStatus(t, app.request("DELETE", "/api/v1/clients/"+id, "", tok), http.StatusOK)
	expectStatus(t, app.request("POST", "/api/v1/clients", `{"name":"Globex"}`, tok), http.StatusCreated)
	expectStatus(t, app.request("POST", "/api/v1/clients", `{"name":"Initech"}`, tok), http.StatusTooManyRequests)

	expectStatus(t, app.request("POST", "/api/v1/clients/"+id+"/restore", "", tok), http.StatusOK)
	expectStatus(t, app.request("GET", "/api/v1/clients/"+id, "", tok), http.StatusOK)
	if got := testutil.ToFloat64(app.Metrics.RateLimited.WithLabelValues(ActionRestore)); got != 0 {
		t.Errorf("expected no restore rate limit hits, got %v", got)
	}
}

func TestExpenseSummaryAndValidate(t *testing.T) {
	app := setupApp(t, 100)
	tok := token(t)

	for _, body := range []string{
		`{"title":"Figma","amount":"15.00","category":"software","tax_deductible":true}`,
		`{"title":"Lunch","amount":"24.50"}`,
	} {
		expectStatus(t, app.request("POST", "/api/v1/expenses", body, tok), http.StatusCreated)
	}

	summary := expectStatus(t, app.request("GET", "/api/v1/expenses/summary", "", tok), http.StatusOK)
	rows := summary["summary"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected one currency, got %d", len(rows))
	}
	usd := rows[0].(map[string]interface{})
	total := decimal.RequireFromString(usd["total"].(string))
	deductible := decimal.RequireFromString(usd["tax_deductible"].(string))
	if !total.Equal(decimal.RequireFromString("39.50")) || !deductible.Equal(decimal.NewFromInt(15)) {
		t.Errorf("unexpected totals %v", usd)
	}

	check := expectStatus(t, app.request("POST", "/api/v1/validate/expense", `{"title":"","amount":"-3"}`, tok), http.StatusOK)
	if check["is_valid"] != false {
		t.Errorf("expected invalid, got %v", check)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupApp(t, 10)

	expectStatus(t, app.request("GET", "/metrics", "", ""), http.StatusUnauthorized)

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.Header.Set("X-API-Key", "scrape")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
