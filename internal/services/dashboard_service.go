package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"followuply/internal/models"
)

// Dashboard list sizes.
const (
	DashboardInvoices  = 20
	DashboardClients   = 20
	DashboardReminders = 10
)

// dashboardService assembles the landing page from the entity services.
type dashboardService struct {
	invoices  InvoiceServicer
	clients   ClientServicer
	reminders ReminderServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(invoices InvoiceServicer, clients ClientServicer, reminders ReminderServicer) DashboardServicer {
	return &dashboardService{invoices: invoices, clients: clients, reminders: reminders}
}

// Load runs the three list loads concurrently. The first failure cancels the
// others and fails the whole load.
func (s *dashboardService) Load(ctx context.Context, userID string) (*Dashboard, error) {
	g, gctx := errgroup.WithContext(ctx)
	var out Dashboard

	g.Go(func() error {
		invoices, err := s.invoices.ListInvoices(gctx, userID, InvoiceFilter{Limit: DashboardInvoices})
		out.Invoices = invoices
		return err
	})
	g.Go(func() error {
		clients, err := s.clients.ListClients(gctx, userID, ClientFilter{Limit: DashboardClients})
		out.Clients = clients
		return err
	})
	g.Go(func() error {
		reminders, err := s.reminders.ListReminders(gctx, userID, ReminderFilter{
			Status: models.ReminderStatusPending,
			Limit:  DashboardReminders,
		})
		out.UpcomingReminders = reminders
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
