package models

import "time"

// ReminderPriority orders reminders by urgency
type ReminderPriority string

const (
	ReminderPriorityLow    ReminderPriority = "low"
	ReminderPriorityMedium ReminderPriority = "medium"
	ReminderPriorityHigh   ReminderPriority = "high"
	ReminderPriorityUrgent ReminderPriority = "urgent"
)

// ReminderPriorities lists the valid priorities.
var ReminderPriorities = []ReminderPriority{
	ReminderPriorityLow, ReminderPriorityMedium, ReminderPriorityHigh, ReminderPriorityUrgent,
}

// IsValid reports whether p is a known priority.
func (p ReminderPriority) IsValid() bool { return contains(ReminderPriorities, p) }

// ReminderType classifies what the reminder is about
type ReminderType string

const (
	ReminderTypeFollowUp        ReminderType = "follow_up"
	ReminderTypePayment         ReminderType = "payment"
	ReminderTypeProjectDeadline ReminderType = "project_deadline"
	ReminderTypeCustom          ReminderType = "custom"
)

// ReminderTypes lists the valid reminder types.
var ReminderTypes = []ReminderType{
	ReminderTypeFollowUp, ReminderTypePayment, ReminderTypeProjectDeadline, ReminderTypeCustom,
}

// IsValid reports whether t is a known reminder type.
func (t ReminderType) IsValid() bool { return contains(ReminderTypes, t) }

// ReminderStatus tracks whether a reminder still needs attention
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusCompleted ReminderStatus = "completed"
	ReminderStatusDismissed ReminderStatus = "dismissed"
)

// ReminderStatuses lists the valid reminder statuses.
var ReminderStatuses = []ReminderStatus{ReminderStatusPending, ReminderStatusCompleted, ReminderStatusDismissed}

// IsValid reports whether s is a known reminder status.
func (s ReminderStatus) IsValid() bool { return contains(ReminderStatuses, s) }

// Reminder is a dated follow-up task
type Reminder struct {
	Base
	UserID      string           `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID    *string          `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Title       string           `gorm:"size:200;not null" json:"title"`
	Description string           `gorm:"size:1000" json:"description,omitempty"`
	DueAt       time.Time        `gorm:"not null;index" json:"due_at"`
	Priority    ReminderPriority `gorm:"size:16;not null;default:'medium'" json:"priority"`
	Type        ReminderType     `gorm:"size:32;not null;default:'follow_up'" json:"type"`
	Status      ReminderStatus   `gorm:"size:16;not null;default:'pending';index" json:"status"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}
