package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "followuply/internal/errors"
	"followuply/internal/forms"
	"followuply/internal/pagination"
	"followuply/internal/sanitizer"
	"followuply/internal/uuid"
)

// The helpers below implement the operations every user-owned entity shares.
// Every query is scoped by user_id.

func findOwned[T any](ctx context.Context, db *gorm.DB, userID, id string, notFound *apperrors.AppError) (*T, error) {
	if !uuid.IsValid(id) {
		return nil, notFound
	}

	var rec T
	if err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&rec).Error; err != nil {
		return nil, apperrors.Classify(err, notFound)
	}
	return &rec, nil
}

// updateOwned applies validated changes and reloads the record.
func updateOwned[T any](ctx context.Context, db *gorm.DB, userID, id string, changes forms.Changes, notFound *apperrors.AppError) (*T, error) {
	if len(changes) > 0 {
		res := db.WithContext(ctx).Model(new(T)).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}(changes))
		if res.Error != nil {
			return nil, apperrors.Classify(res.Error, notFound)
		}
		if res.RowsAffected == 0 {
			return nil, notFound
		}
	}
	return findOwned[T](ctx, db, userID, id, notFound)
}

// softDelete marks the record deleted at now and returns the time.
func softDelete[T any](ctx context.Context, db *gorm.DB, userID, id string, now time.Time, notFound *apperrors.AppError) (time.Time, error) {
	if !uuid.IsValid(id) {
		return time.Time{}, notFound
	}

	res := db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND user_id = ?", id, userID).
		Update("deleted_at", now)
	if res.Error != nil {
		return time.Time{}, apperrors.Classify(res.Error, notFound)
	}
	if res.RowsAffected == 0 {
		return time.Time{}, notFound
	}
	return now, nil
}

// restoreOwned reverses a soft delete made within the undo window. A record
// that was never deleted is reported as not found.
func restoreOwned[T any](ctx context.Context, db *gorm.DB, p Policy, userID, id string, notFound *apperrors.AppError) (*T, error) {
	if !uuid.IsValid(id) {
		return nil, notFound
	}

	var row struct {
		DeletedAt gorm.DeletedAt
	}
	err := db.WithContext(ctx).Unscoped().Model(new(T)).
		Select("deleted_at").
		Where("id = ? AND user_id = ? AND deleted_at IS NOT NULL", id, userID).
		Take(&row).Error
	if err != nil {
		return nil, apperrors.Classify(err, notFound)
	}

	if p.now().After(p.UndoDeadline(row.DeletedAt.Time)) {
		return nil, apperrors.ErrUndoExpired
	}

	res := db.WithContext(ctx).Unscoped().Model(new(T)).
		Where("id = ? AND user_id = ?", id, userID).
		Update("deleted_at", nil)
	if res.Error != nil {
		return nil, apperrors.Classify(res.Error, notFound)
	}
	return findOwned[T](ctx, db, userID, id, notFound)
}

// searchOwned runs a case-insensitive substring search over columns.
func searchOwned[T any](ctx context.Context, db *gorm.DB, userID, query string, columns []string, order string) ([]T, error) {
	res := forms.ValidateSearchQuery(query)
	if !res.IsValid {
		return nil, apperrors.Validation(res.Errors)
	}

	pattern := sanitizer.LikePattern(res.Value)
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}

	var out []T
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Order(order).
		Limit(pagination.MaxSearchResults).
		Find(&out).Error
	if err != nil {
		return nil, apperrors.Classify(err, nil)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// validationError converts a failed form result into an AppError.
func validationError[T any](res forms.Result[T]) error {
	if res.IsValid {
		return nil
	}
	return apperrors.Validation(res.Errors)
}
