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

// reminderService handles reminder-related business logic.
type reminderService struct {
	db     *gorm.DB
	audit  AuditServicer
	policy Policy
}

// NewReminderService creates a new ReminderServicer.
func NewReminderService(db *gorm.DB, audit AuditServicer, policy Policy) ReminderServicer {
	return &reminderService{db: db, audit: auditOrNop(audit), policy: policy}
}

// CreateReminder validates the form and stores a new reminder.
func (s *reminderService) CreateReminder(ctx context.Context, userID string, in forms.ReminderInput) (*models.Reminder, []string, error) {
	res := forms.ValidateReminder(in, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}
	if res.Value.ClientID != "" {
		if err := ownsClient(ctx, s.db, userID, res.Value.ClientID); err != nil {
			return nil, nil, err
		}
	}

	reminder := &models.Reminder{UserID: userID}
	res.Value.Apply(reminder)
	if reminder.Status == models.ReminderStatusCompleted {
		now := s.policy.now()
		reminder.CompletedAt = &now
	}

	if err := s.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return nil, nil, apperrors.Classify(err, apperrors.ErrReminderNotFound)
	}
	return reminder, res.Warnings, nil
}

// GetReminder retrieves a reminder by ID for a specific user
func (s *reminderService) GetReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	return findOwned[models.Reminder](ctx, s.db, userID, reminderID, apperrors.ErrReminderNotFound)
}

// UpdateReminder applies the fields present in patch.
func (s *reminderService) UpdateReminder(ctx context.Context, userID, reminderID string, patch forms.ReminderPatch) (*models.Reminder, []string, error) {
	res := forms.ValidateReminderPatch(patch, s.policy.now())
	if err := validationError(res); err != nil {
		return nil, nil, err
	}
	if ref, ok := res.Value["client_id"].(*string); ok && ref != nil {
		if err := ownsClient(ctx, s.db, userID, *ref); err != nil {
			return nil, nil, err
		}
	}
	if status, ok := res.Value["status"].(models.ReminderStatus); ok {
		if status == models.ReminderStatusCompleted {
			res.Value["completed_at"] = s.policy.now()
		} else {
			res.Value["completed_at"] = nil
		}
	}

	reminder, err := updateOwned[models.Reminder](ctx, s.db, userID, reminderID, res.Value, apperrors.ErrReminderNotFound)
	if err != nil {
		return nil, nil, err
	}
	return reminder, res.Warnings, nil
}

// CompleteReminder marks a reminder done. Completing it again is a no-op.
func (s *reminderService) CompleteReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	reminder, err := s.GetReminder(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	if reminder.Status == models.ReminderStatusCompleted {
		return reminder, nil
	}

	changes := forms.Changes{
		"status":       models.ReminderStatusCompleted,
		"completed_at": s.policy.now(),
	}
	reminder, err = updateOwned[models.Reminder](ctx, s.db, userID, reminderID, changes, apperrors.ErrReminderNotFound)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, AuditComplete, models.ResourceReminder, reminderID, nil)
	return reminder, nil
}

// DeleteReminder soft-deletes a reminder.
func (s *reminderService) DeleteReminder(ctx context.Context, userID, reminderID string) (time.Time, error) {
	deletedAt, err := softDelete[models.Reminder](ctx, s.db, userID, reminderID, s.policy.now(), apperrors.ErrReminderNotFound)
	if err != nil {
		return time.Time{}, err
	}
	s.audit.Log(ctx, userID, AuditDelete, models.ResourceReminder, reminderID, nil)
	return s.policy.UndoDeadline(deletedAt), nil
}

// RestoreReminder undoes a recent delete.
func (s *reminderService) RestoreReminder(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	reminder, err := restoreOwned[models.Reminder](ctx, s.db, s.policy, userID, reminderID, apperrors.ErrReminderNotFound)
	if err != nil {
		return nil, err
	}
	s.audit.Log(ctx, userID, AuditRestore, models.ResourceReminder, reminderID, nil)
	return reminder, nil
}

// ListReminders returns the user's reminders, soonest due first.
func (s *reminderService) ListReminders(ctx context.Context, userID string, filter ReminderFilter) ([]models.Reminder, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var reminders []models.Reminder
	err := query.Order("due_at ASC, id ASC").
		Limit(pagination.ClampLimit(filter.Limit, pagination.MaxListSize)).
		Find(&reminders).Error
	if err != nil {
		return nil, apperrors.Classify(err, nil)
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return reminders, nil
}

// SearchReminders matches title and description.
func (s *reminderService) SearchReminders(ctx context.Context, userID, query string) ([]models.Reminder, error) {
	return searchOwned[models.Reminder](ctx, s.db, userID, query,
		[]string{"title", "description"}, "due_at ASC, id ASC")
}
