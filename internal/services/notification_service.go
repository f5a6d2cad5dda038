package services

import (
	"context"

	"gorm.io/gorm"

	apperrors "followuply/internal/errors"
	"followuply/internal/models"
	"followuply/internal/pagination"
	"followuply/internal/sanitizer"
	"followuply/internal/uuid"
)

// notificationService handles in-app notifications.
type notificationService struct {
	db     *gorm.DB
	policy Policy
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB, policy Policy) NotificationServicer {
	return &notificationService{db: db, policy: policy}
}

// Notify stores a notification for the user.
func (s *notificationService) Notify(ctx context.Context, userID string, kind models.NotificationKind, title, message, resourceType, resourceID string) (*models.Notification, error) {
	title = sanitizer.Line(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "notification title is required")
	}
	if kind == "" {
		kind = models.NotificationKindInfo
	}

	note := &models.Notification{
		UserID:       userID,
		Kind:         kind,
		Title:        title,
		Message:      sanitizer.Text(message),
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrNotificationNotFound)
	}
	return note, nil
}

// ListNotifications retrieves a paginated list of notifications, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, userID string, page pagination.PageRequest, unreadOnly bool) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		base = base.Where("read_at IS NULL")
	}
	base = base.Session(&gorm.Session{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Classify(err, nil)
	}

	var notes []models.Notification
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&notes).Error; err != nil {
		return nil, apperrors.Classify(err, nil)
	}

	result := pagination.NewPageResponse(notes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// MarkNotificationRead marks one notification read. Marking it again is a
// no-op.
func (s *notificationService) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	if !uuid.IsValid(notificationID) {
		return apperrors.ErrNotificationNotFound
	}

	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", notificationID, userID).
		Update("read_at", s.policy.now())
	if res.Error != nil {
		return apperrors.Classify(res.Error, apperrors.ErrNotificationNotFound)
	}
	if res.RowsAffected == 0 {
		_, err := findOwned[models.Notification](ctx, s.db, userID, notificationID, apperrors.ErrNotificationNotFound)
		return err
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification read and returns
// how many changed.
func (s *notificationService) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", s.policy.now())
	if res.Error != nil {
		return 0, apperrors.Classify(res.Error, nil)
	}
	return res.RowsAffected, nil
}
