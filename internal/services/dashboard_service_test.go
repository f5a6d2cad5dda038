package services

import (
	"context"
	"testing"
	"time"

	apperrors "followuply/internal/errors"
	"followuply/internal/models"
	"followuply/internal/testutil"
)

// failingReminders fails every list call.
type failingReminders struct {
	ReminderServicer
}

func (failingReminders) ListReminders(context.Context, string, ReminderFilter) ([]models.Reminder, error) {
	return nil, apperrors.ErrTransient
}

func TestDashboardLoad(t *testing.T) {
	db, clock := setup(t)
	policy := testPolicy(clock)
	clients := NewClientService(db, nil, policy)
	invoices := NewInvoiceService(db, nil, policy)
	reminders := NewReminderService(db, nil, policy)
	ctx := context.Background()
	userID := testutil.NewUserID()

	client := testutil.CreateTestClient(t, db, userID)
	testutil.CreateTestInvoice(t, db, userID, client.ID)
	testutil.CreateTestReminder(t, db, userID, clock.now.Add(time.Hour))
	done := testutil.CreateTestReminder(t, db, userID, clock.now.Add(2*time.Hour))
	_, err := reminders.CompleteReminder(ctx, userID, done.ID)
	testutil.AssertNoError(t, err)

	t.Run("loads_all_lists", func(t *testing.T) {
		svc := NewDashboardService(invoices, clients, reminders)
		dash, err := svc.Load(ctx, userID)
		testutil.AssertNoError(t, err)

		if len(dash.Clients) != 1 || len(dash.Invoices) != 1 {
			t.Errorf("expected 1 client and 1 invoice, got %d and %d", len(dash.Clients), len(dash.Invoices))
		}
		if len(dash.UpcomingReminders) != 1 {
			t.Errorf("expected only the pending reminder, got %d", len(dash.UpcomingReminders))
		}
	})

	t.Run("one_failure_fails_all", func(t *testing.T) {
		svc := NewDashboardService(invoices, clients, failingReminders{})
		_, err := svc.Load(ctx, userID)
		testutil.AssertAppError(t, err, "SERVICE_UNAVAILABLE")
	})
}
