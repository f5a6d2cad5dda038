package models

import "time"

// NotificationKind controls how the UI styles a notification
type NotificationKind string

const (
	NotificationKindInfo    NotificationKind = "info"
	NotificationKindSuccess NotificationKind = "success"
	NotificationKindWarning NotificationKind = "warning"
	NotificationKindError   NotificationKind = "error"
)

// Notification is a persisted in-app message for a user
type Notification struct {
	Base
	UserID       string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind         NotificationKind `gorm:"size:16;not null;default:'info'" json:"kind"`
	Title        string           `gorm:"size:200;not null" json:"title"`
	Message      string           `gorm:"size:1000" json:"message"`
	ResourceType string           `gorm:"size:32" json:"resource_type,omitempty"`
	ResourceID   string           `gorm:"size:36" json:"resource_id,omitempty"`
	ReadAt       *time.Time       `json:"read_at,omitempty"`
}
