package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/models"
	"followuply/internal/pagination"
	"followuply/internal/services"
)

func TestReminderHandler(t *testing.T) {
	const reminderID = "0190f5a2-7c4e-7b3a-9d2e-3f2a3b4c5d6e"

	svc := &mockReminderService{
		completeReminderFn: func(_ context.Context, _ string, id string) (*models.Reminder, error) {
			if id != reminderID {
				return nil, apperrors.ErrReminderNotFound
			}
			return &models.Reminder{Status: models.ReminderStatusCompleted}, nil
		},
		listRemindersFn: func(_ context.Context, _ string, f services.ReminderFilter) ([]models.Reminder, error) {
			if f.Status != models.ReminderStatusPending {
				t.Errorf("expected pending filter, got %q", f.Status)
			}
			return []models.Reminder{}, nil
		},
	}
	h := NewReminderHandler(svc, nil)
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/reminders", h.ListReminders)
	auth.POST("/reminders/:id/complete", h.CompleteReminder)
	auth.DELETE("/reminders/:id", h.DeleteReminder)

	rec := doRequest(r, "POST", "/reminders/"+reminderID+"/complete", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	assertToastKind(t, parseJSON(t, rec), "success")

	rec = doRequest(r, "POST", "/reminders/"+testClientID+"/complete", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doRequest(r, "GET", "/reminders?status=pending", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doRequest(r, "DELETE", "/reminders/"+reminderID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["undo_until"] == nil {
		t.Error("expected undo_until")
	}
}

func TestExpenseHandler(t *testing.T) {
	t.Run("date range filter", func(t *testing.T) {
		svc := &mockExpenseService{
			listExpensesFn: func(_ context.Context, _ string, f services.ExpenseFilter) ([]models.Expense, error) {
				if f.From == nil || f.From.Format(time.DateOnly) != "2026-03-01" {
					t.Errorf("unexpected from %v", f.From)
				}
				if f.To == nil || f.To.Format(time.DateOnly) != "2026-03-31" {
					t.Errorf("unexpected to %v", f.To)
				}
				if f.Category != models.ExpenseCategoryTravel {
					t.Errorf("unexpected category %q", f.Category)
				}
				return []models.Expense{}, nil
			},
		}
		r := gin.New()
		r.GET("/expenses", injectUserID(testUserID), NewExpenseHandler(svc, nil).ListExpenses)

		rec := doRequest(r, "GET", "/expenses?from=2026-03-01&to=2026-03-31&category=travel", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("bad dates", func(t *testing.T) {
		r := gin.New()
		r.GET("/expenses", injectUserID(testUserID), NewExpenseHandler(&mockExpenseService{}, nil).ListExpenses)

		for _, q := range []string{"from=2026-02-30", "from=2026-03-10&to=2026-03-01", "category=food"} {
			rec := doRequest(r, "GET", "/expenses?"+q, "")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", q, rec.Code)
			}
		}
	})

	t.Run("summary", func(t *testing.T) {
		svc := &mockExpenseService{
			summarizeExpensesFn: func(context.Context, string, services.ExpenseFilter) ([]services.ExpenseSummary, error) {
				return []services.ExpenseSummary{{Currency: models.CurrencyUSD, Count: 2}}, nil
			},
		}
		r := gin.New()
		r.GET("/expenses/summary", injectUserID(testUserID), NewExpenseHandler(svc, nil).SummarizeExpenses)

		rec := doRequest(r, "GET", "/expenses/summary", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if n := len(parseJSON(t, rec)["summary"].([]interface{})); n != 1 {
			t.Errorf("expected 1 summary, got %d", n)
		}
	})
}

func TestProfileHandler(t *testing.T) {
	svc := &mockProfileService{
		getProfileFn: func(context.Context, string) (*models.Profile, error) {
			return nil, apperrors.ErrProfileNotFound
		},
		saveProfileFn: func(_ context.Context, _ string, p forms.ProfilePatch) (*models.Profile, error) {
			if p.DisplayName == nil || *p.DisplayName != "Dana" {
				t.Errorf("unexpected patch %+v", p)
			}
			return &models.Profile{DisplayName: "Dana", Plan: models.PlanFree}, nil
		},
	}
	h := NewProfileHandler(svc, nil)
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/profile", h.GetProfile)
	auth.PUT("/profile", h.SaveProfile)

	rec := doRequest(r, "GET", "/profile", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doRequest(r, "PUT", "/profile", `{"display_name":"Dana","plan":"pro"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	profile := parseJSON(t, rec)["profile"].(map[string]interface{})
	if profile["plan"] != "free" {
		t.Errorf("plan must not be editable, got %v", profile["plan"])
	}
}

func TestNotificationHandler(t *testing.T) {
	const noteID = "0190f5a2-7c4e-7b3a-9d2e-4f2a3b4c5d6e"

	svc := &mockNotificationService{
		listFn: func(_ context.Context, _ string, page pagination.PageRequest, unread bool) (*pagination.PageResponse[models.Notification], error) {
			if page.Page != 2 || !unread {
				t.Errorf("unexpected paging %+v unread=%v", page, unread)
			}
			resp := pagination.NewPageResponse([]models.Notification{{Title: "Invoice paid"}}, 2, 20, 21)
			return &resp, nil
		},
		markReadFn: func(_ context.Context, _ string, id string) error {
			if id != noteID {
				return apperrors.ErrNotificationNotFound
			}
			return nil
		},
	}
	h := NewNotificationHandler(svc)
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/notifications", h.ListNotifications)
	auth.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	auth.POST("/notifications/:id/read", h.MarkNotificationRead)

	rec := doRequest(r, "GET", "/notifications?page=2&unread=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if parseJSON(t, rec)["total_items"].(float64) != 21 {
		t.Error("expected total_items 21")
	}

	rec = doRequest(r, "GET", "/notifications?page_size=500", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized page, got %d", rec.Code)
	}

	rec = doRequest(r, "POST", "/notifications/"+noteID+"/read", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doRequest(r, "POST", "/notifications/"+testClientID+"/read", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec = doRequest(r, "POST", "/notifications/read-all", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestDashboardHandler(t *testing.T) {
	t.Run("returns lists", func(t *testing.T) {
		svc := &mockDashboardService{
			loadFn: func(context.Context, string) (*services.Dashboard, error) {
				return &services.Dashboard{
					Invoices:          []models.Invoice{},
					Clients:           []models.Client{{Name: "Acme"}},
					UpcomingReminders: []models.Reminder{},
				}, nil
			},
		}
		r := gin.New()
		r.GET("/dashboard", injectUserID(testUserID), NewDashboardHandler(svc).GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if n := len(parseJSON(t, rec)["clients"].([]interface{})); n != 1 {
			t.Errorf("expected 1 client, got %d", n)
		}
	})

	t.Run("any failure fails the load", func(t *testing.T) {
		svc := &mockDashboardService{
			loadFn: func(context.Context, string) (*services.Dashboard, error) {
				return nil, apperrors.ErrTransient
			},
		}
		r := gin.New()
		r.GET("/dashboard", injectUserID(testUserID), NewDashboardHandler(svc).GetDashboard)

		rec := doRequest(r, "GET", "/dashboard", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
	})
}

func TestListFilters_EnumQueries(t *testing.T) {
	var (
		client   services.ClientFilter
		invoice  services.InvoiceFilter
		reminder services.ReminderFilter
		expense  services.ExpenseFilter
	)
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/clients", NewClientHandler(&mockClientService{
		listClientsFn: func(_ context.Context, _ string, f services.ClientFilter) ([]models.Client, error) {
			client = f
			return []models.Client{}, nil
		},
	}, nil).ListClients)
	auth.GET("/invoices", NewInvoiceHandler(&mockInvoiceService{
		listInvoicesFn: func(_ context.Context, _ string, f services.InvoiceFilter) ([]models.Invoice, error) {
			invoice = f
			return []models.Invoice{}, nil
		},
	}, nil).ListInvoices)
	auth.GET("/reminders", NewReminderHandler(&mockReminderService{
		listRemindersFn: func(_ context.Context, _ string, f services.ReminderFilter) ([]models.Reminder, error) {
			reminder = f
			return []models.Reminder{}, nil
		},
	}, nil).ListReminders)
	auth.GET("/expenses", NewExpenseHandler(&mockExpenseService{
		listExpensesFn: func(_ context.Context, _ string, f services.ExpenseFilter) ([]models.Expense, error) {
			expense = f
			return []models.Expense{}, nil
		},
	}, nil).ListExpenses)

	for _, path := range []string{
		"/clients?platform=myspace",
		"/invoices?currency=usd",
		"/reminders?priority=critical",
		"/reminders?type=meeting",
		"/expenses?payment_method=barter",
		"/expenses?currency=XYZ",
	} {
		rec := doRequest(r, "GET", path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}

	for _, path := range []string{
		"/clients?platform=upwork",
		"/invoices?currency=EUR",
		"/reminders?priority=urgent&type=payment",
		"/expenses?payment_method=paypal&currency=GBP",
	} {
		rec := doRequest(r, "GET", path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, rec.Code, rec.Body.String())
		}
	}
	if client.Platform != models.PlatformUpwork {
		t.Errorf("unexpected platform %q", client.Platform)
	}
	if invoice.Currency != models.CurrencyEUR {
		t.Errorf("unexpected invoice currency %q", invoice.Currency)
	}
	if reminder.Priority != models.ReminderPriorityUrgent || reminder.Type != models.ReminderTypePayment {
		t.Errorf("unexpected reminder filter %+v", reminder)
	}
	if expense.PaymentMethod != models.PaymentMethodPayPal || expense.Currency != models.CurrencyGBP {
		t.Errorf("unexpected expense filter %+v", expense)
	}
}
