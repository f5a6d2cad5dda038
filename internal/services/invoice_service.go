package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/models"
	"followuply/internal/pagination"
)

// invoiceService handles invoice-related business logic.
type invoiceService struct {
	db     *gorm.DB
	audit  AuditServicer
	policy Policy
}

// NewInvoiceService creates a new InvoiceServicer.
func NewInvoiceService(db *gorm.DB, audit AuditServicer, policy Policy) InvoiceServicer {
	return &invoiceService{db: db, audit: auditOrNop(audit), policy: policy}
}

// CreateInvoice validates the form and bills one of the user's clients.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, in forms.InvoiceInput) (*models.Invoice, []string, error) {
	res := forms.ValidateInvoice(in, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}
	if err := ownsClient(ctx, s.db, userID, res.Value.ClientID); err != nil {
		return nil, nil, err
	}

	invoice := &models.Invoice{UserID: userID}
	res.Value.Apply(invoice)

	if err := s.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, nil, apperrors.Classify(err, apperrors.ErrInvoiceNotFound)
	}
	return invoice, res.Warnings, nil
}

// GetInvoice retrieves an invoice by ID for a specific user
func (s *invoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*models.Invoice, error) {
	return findOwned[models.Invoice](ctx, s.db, userID, invoiceID, apperrors.ErrInvoiceNotFound)
}

// UpdateInvoice applies the fields present in patch.
func (s *invoiceService) UpdateInvoice(ctx context.Context, userID, invoiceID string, patch forms.InvoicePatch) (*models.Invoice, []string, error) {
	res := forms.ValidateInvoicePatch(patch, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}
	if clientID, ok := res.Value["client_id"].(string); ok {
		if err := ownsClient(ctx, s.db, userID, clientID); err != nil {
			return nil, nil, err
		}
	}
	if res.Value.Has("status") {
		current, err := s.GetInvoice(ctx, userID, invoiceID)
		if err != nil {
			return nil, nil, err
		}
		clearPaymentIfReopened(current, res.Value)
	}

	invoice, err := updateOwned[models.Invoice](ctx, s.db, userID, invoiceID, res.Value, apperrors.ErrInvoiceNotFound)
	if err != nil {
		return nil, nil, err
	}
	if res.Value.Has("status") {
		s.audit.Log(ctx, userID, AuditStatusChange, models.ResourceInvoice, invoiceID, map[string]any{"status": invoice.Status})
	}
	return invoice, res.Warnings, nil
}

// UpdateInvoiceStatus changes only the status. Leaving "paid" clears the
// payment details.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, userID, invoiceID, status string) (*models.Invoice, error) {
	res := forms.ValidateInvoiceStatus(status)
	if err := validationError(res); err != nil {
		return nil, err
	}

	current, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	changes := forms.Changes{"status": res.Value}
	clearPaymentIfReopened(current, changes)

	invoice, err := updateOwned[models.Invoice](ctx, s.db, userID, invoiceID, changes, apperrors.ErrInvoiceNotFound)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, AuditStatusChange, models.ResourceInvoice, invoiceID, map[string]any{
		"from": current.Status,
		"to":   invoice.Status,
	})
	return invoice, nil
}

// clearPaymentIfReopened drops the payment details when changes move a paid
// invoice to another status.
func clearPaymentIfReopened(current *models.Invoice, changes forms.Changes) {
	if current.Status != models.InvoiceStatusPaid || changes["status"] == models.InvoiceStatusPaid {
		return
	}
	changes["payment_date"] = nil
	changes["payment_method"] = ""
}

// MarkInvoicePaid records a payment and notifies the user in the same
// transaction.
func (s *invoiceService) MarkInvoicePaid(ctx context.Context, userID, invoiceID string, in forms.PaymentInput) (*models.Invoice, []string, error) {
	res := forms.ValidatePayment(in, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}

	invoice, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if invoice.Status == models.InvoiceStatusPaid {
		return nil, nil, apperrors.ErrInvoiceAlreadyPaid
	}

	paidAt := res.Value.PaymentDate
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(invoice).Updates(map[string]interface{}{
			"status":         models.InvoiceStatusPaid,
			"payment_date":   paidAt,
			"payment_method": res.Value.PaymentMethod,
		}).Error; err != nil {
			return err
		}

		note := &models.Notification{
			UserID:       userID,
			Kind:         models.NotificationKindSuccess,
			Title:        "Invoice paid",
			Message:      fmt.Sprintf("%s was marked as paid (%s %s)", invoice.Project, invoice.Amount.StringFixed(2), invoice.Currency),
			ResourceType: models.ResourceInvoice,
			ResourceID:   invoice.ID,
		}
		return tx.Create(note).Error
	})
	if err != nil {
		return nil, nil, apperrors.Classify(err, apperrors.ErrInvoiceNotFound)
	}

	s.audit.Log(ctx, userID, AuditMarkPaid, models.ResourceInvoice, invoiceID, map[string]any{
		"payment_date":   paidAt.Format(time.DateOnly),
		"payment_method": res.Value.PaymentMethod,
	})

	paid, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	return paid, res.Warnings, nil
}

// MarkOverdueInvoices moves outstanding invoices whose due date has passed to
// overdue and returns how many changed.
func (s *invoiceService) MarkOverdueInvoices(ctx context.Context, userID string) (int64, error) {
	now := s.policy.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	res := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("user_id = ? AND status IN ? AND due_date < ?", userID, outstandingStatuses(), today).
		Update("status", models.InvoiceStatusOverdue)
	if res.Error != nil {
		return 0, apperrors.Classify(res.Error, nil)
	}
	if res.RowsAffected > 0 {
		s.audit.Log(ctx, userID, AuditMarkOverdue, models.ResourceInvoice, "", map[string]any{"count": res.RowsAffected})
	}
	return res.RowsAffected, nil
}

// DeleteInvoice soft-deletes an invoice.
func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) (time.Time, error) {
	deletedAt, err := softDelete[models.Invoice](ctx, s.db, userID, invoiceID, s.policy.now(), apperrors.ErrInvoiceNotFound)
	if err != nil {
		return time.Time{}, err
	}
	s.audit.Log(ctx, userID, AuditDelete, models.ResourceInvoice, invoiceID, nil)
	return s.policy.UndoDeadline(deletedAt), nil
}

// RestoreInvoice undoes a recent delete.
func (s *invoiceService) RestoreInvoice(ctx context.Context, userID, invoiceID string) (*models.Invoice, error) {
	invoice, err := restoreOwned[models.Invoice](ctx, s.db, s.policy, userID, invoiceID, apperrors.ErrInvoiceNotFound)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, AuditRestore, models.ResourceInvoice, invoiceID, nil)
	return invoice, nil
}

// ListInvoices returns the user's invoices, newest first, with their client.
func (s *invoiceService) ListInvoices(ctx context.Context, userID string, filter InvoiceFilter) ([]models.Invoice, error) {
	query := s.db.WithContext(ctx).Preload("Client").Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != "" {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.Currency != "" {
		query = query.Where("currency = ?", filter.Currency)
	}

	var invoices []models.Invoice
	err := query.Order("created_at DESC, id DESC").
		Limit(pagination.ClampLimit(filter.Limit, pagination.MaxListSize)).
		Find(&invoices).Error
	if err != nil {
		return nil, apperrors.Classify(err, nil)
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

// SearchInvoices matches project and description.
func (s *invoiceService) SearchInvoices(ctx context.Context, userID, query string) ([]models.Invoice, error) {
	return searchOwned[models.Invoice](ctx, s.db, userID, query,
		[]string{"project", "description"}, "created_at DESC, id DESC")
}

func outstandingStatuses() []models.InvoiceStatus {
	var out []models.InvoiceStatus
	for _, st := range models.InvoiceStatuses {
		if st.Outstanding() {
			out = append(out, st)
		}
	}
	return out
}
