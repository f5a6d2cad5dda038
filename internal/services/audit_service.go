package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"followuply/internal/logger"
	"followuply/internal/models"
)

// Audit actions.
const (
	AuditDelete       = "delete"
	AuditRestore      = "restore"
	AuditStatusChange = "status_change"
	AuditMarkPaid     = "mark_paid"
	AuditMarkOverdue  = "mark_overdue"
	AuditComplete     = "complete"
	AuditUpdate       = "update"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID string, changes map[string]any) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    clientIPFrom(ctx),
		Changes:      changesJSON,
	}

	// The entry outlives a cancelled request.
	if err := s.db.WithContext(context.WithoutCancel(ctx)).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// nopAudit discards audit events.
type nopAudit struct{}

func (nopAudit) Log(context.Context, string, string, string, string, map[string]any) {}

func auditOrNop(a AuditServicer) AuditServicer {
	if a == nil {
		return nopAudit{}
	}
	return a
}
