package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/models"
	"followuply/internal/pagination"
)

// clientService handles client-related business logic.
type clientService struct {
	db     *gorm.DB
	audit  AuditServicer
	policy Policy
}

// NewClientService creates a new ClientServicer.
func NewClientService(db *gorm.DB, audit AuditServicer, policy Policy) ClientServicer {
	return &clientService{db: db, audit: auditOrNop(audit), policy: policy}
}

// CreateClient validates the form and stores a new client.
func (s *clientService) CreateClient(ctx context.Context, userID string, in forms.ClientInput) (*models.Client, []string, error) {
	res := forms.ValidateClient(in)
	if err := validationError(res); err != nil {
		return nil, nil, err
	}

	client := &models.Client{UserID: userID}
	res.Value.Apply(client)

	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, nil, apperrors.Classify(err, apperrors.ErrClientNotFound)
	}
	return client, res.Warnings, nil
}

// GetClient retrieves a client by ID for a specific user
func (s *clientService) GetClient(ctx context.Context, userID, clientID string) (*models.Client, error) {
	return findOwned[models.Client](ctx, s.db, userID, clientID, apperrors.ErrClientNotFound)
}

// UpdateClient applies the fields present in patch.
func (s *clientService) UpdateClient(ctx context.Context, userID, clientID string, patch forms.ClientPatch) (*models.Client, []string, error) {
	res := forms.ValidateClientPatch(patch)
	if err := validationError(res); err != nil {
		return nil, nil, err
	}

	client, err := updateOwned[models.Client](ctx, s.db, userID, clientID, res.Value, apperrors.ErrClientNotFound)
	if err != nil {
		return nil, nil, err
	}
	if res.Value.Has("status") {
		s.audit.Log(ctx, userID, AuditStatusChange, models.ResourceClient, clientID, map[string]any{"status": client.Status})
	}
	return client, res.Warnings, nil
}

// DeleteClient soft-deletes a client. Clients with live invoices cannot be
// deleted.
func (s *clientService) DeleteClient(ctx context.Context, userID, clientID string) (time.Time, error) {
	if _, err := s.GetClient(ctx, userID, clientID); err != nil {
		return time.Time{}, err
	}

	var invoiceCount int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).
		Where("client_id = ? AND user_id = ?", clientID, userID).
		Count(&invoiceCount).Error; err != nil {
		return time.Time{}, apperrors.Classify(err, nil)
	}
	if invoiceCount > 0 {
		return time.Time{}, apperrors.ErrClientHasInvoice
	}

	deletedAt, err := softDelete[models.Client](ctx, s.db, userID, clientID, s.policy.now(), apperrors.ErrClientNotFound)
	if err != nil {
		return time.Time{}, err
	}
	s.audit.Log(ctx, userID, AuditDelete, models.ResourceClient, clientID, nil)
	return s.policy.UndoDeadline(deletedAt), nil
}

// RestoreClient undoes a recent delete.
func (s *clientService) RestoreClient(ctx context.Context, userID, clientID string) (*models.Client, error) {
	client, err := restoreOwned[models.Client](ctx, s.db, s.policy, userID, clientID, apperrors.ErrClientNotFound)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, AuditRestore, models.ResourceClient, clientID, nil)
	return client, nil
}

// ListClients returns the user's clients, newest first.
func (s *clientService) ListClients(ctx context.Context, userID string, filter ClientFilter) ([]models.Client, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Platform != "" {
		query = query.Where("platform = ?", filter.Platform)
	}

	var clients []models.Client
	err := query.Order("created_at DESC, id DESC").
		Limit(pagination.ClampLimit(filter.Limit, pagination.MaxListSize)).
		Find(&clients).Error
	if err != nil {
		return nil, apperrors.Classify(err, nil)
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

// SearchClients matches name, email and company.
func (s *clientService) SearchClients(ctx context.Context, userID, query string) ([]models.Client, error) {
	return searchOwned[models.Client](ctx, s.db, userID, query,
		[]string{"name", "email", "company"}, "created_at DESC, id DESC")
}

// ownsClient checks that clientID is a live client of userID.
func ownsClient(ctx context.Context, db *gorm.DB, userID, clientID string) error {
	_, err := findOwned[models.Client](ctx, db, userID, clientID, apperrors.ErrClientNotFound)
	return err
}
