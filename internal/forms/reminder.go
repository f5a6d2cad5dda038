package forms

import (
	"strings"
	"time"

	"followuply/internal/models"
)

// TimeLayout is the HH:MM time-of-day format accepted from forms.
const TimeLayout = "15:04"

// DefaultReminderTime is used when a reminder has a date but no time.
const DefaultReminderTime = 9 * time.Hour

// ReminderInput is a raw reminder form submission.
type ReminderInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ClientID    string `json:"client_id"`
	DueDate     string `json:"due_date"`
	DueTime     string `json:"due_time"`
	Priority    string `json:"priority"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

// ReminderFields is a sanitized reminder ready to store.
type ReminderFields struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	ClientID    string                  `json:"client_id"`
	DueAt       time.Time               `json:"due_at"`
	Priority    models.ReminderPriority `json:"priority"`
	Type        models.ReminderType     `json:"type"`
	Status      models.ReminderStatus   `json:"status"`
}

// Apply copies the fields onto a reminder model.
func (f ReminderFields) Apply(r *models.Reminder) {
	r.Title = f.Title
	r.Description = f.Description
	r.ClientID = optionalRef(f.ClientID)
	r.DueAt = f.DueAt
	r.Priority = f.Priority
	r.Type = f.Type
	r.Status = f.Status
}

// ValidateReminder validates a full reminder form.
func ValidateReminder(in ReminderInput, now time.Time) Result[ReminderFields] {
	c := &checker{}
	var out ReminderFields

	out.Title, _ = c.requiredLine("Title", in.Title, TitleMaxLength)
	out.Description, _ = c.optionalText("Description", in.Description, NotesMaxLength)
	out.ClientID, _ = c.optionalUUID("Client", in.ClientID)
	due, dueOK := c.dueAt(in.DueDate, in.DueTime)
	out.DueAt = due
	out.Priority, _ = enumField(c, "Priority", in.Priority, models.ReminderPriority.IsValid, models.ReminderPriorityMedium)
	out.Type, _ = enumField(c, "Type", in.Type, models.ReminderType.IsValid, models.ReminderTypeFollowUp)
	out.Status, _ = enumField(c, "Status", in.Status, models.ReminderStatus.IsValid, models.ReminderStatusPending)

	if dueOK && due.Before(now) {
		c.warn("This reminder is due in the past")
	}

	return finish(c, out)
}

// ReminderPatch is a partial reminder update. DueTime is only read together
// with DueDate.
type ReminderPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ClientID    *string `json:"client_id"`
	DueDate     *string `json:"due_date"`
	DueTime     *string `json:"due_time"`
	Priority    *string `json:"priority"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
}

// ValidateReminderPatch validates only the fields present in p.
func ValidateReminderPatch(p ReminderPatch, now time.Time) Result[Changes] {
	c := &checker{}
	changes := Changes{}

	if p.Title != nil {
		if v, ok := c.requiredLine("Title", *p.Title, TitleMaxLength); ok {
			changes["title"] = v
		}
	}
	if p.Description != nil {
		if v, ok := c.optionalText("Description", *p.Description, NotesMaxLength); ok {
			changes["description"] = v
		}
	}
	if p.ClientID != nil {
		if v, ok := c.optionalUUID("Client", *p.ClientID); ok {
			changes["client_id"] = optionalRef(v)
		}
	}
	switch {
	case p.DueDate != nil:
		var dueTime string
		if p.DueTime != nil {
			dueTime = *p.DueTime
		}
		if v, ok := c.dueAt(*p.DueDate, dueTime); ok {
			changes["due_at"] = v
			if v.Before(now) {
				c.warn("This reminder is due in the past")
			}
		}
	case p.DueTime != nil:
		c.fail("Due date is required when changing the time")
	}
	if p.Priority != nil {
		if v, ok := requiredEnum(c, "Priority", *p.Priority, models.ReminderPriority.IsValid); ok {
			changes["priority"] = v
		}
	}
	if p.Type != nil {
		if v, ok := requiredEnum(c, "Type", *p.Type, models.ReminderType.IsValid); ok {
			changes["type"] = v
		}
	}
	if p.Status != nil {
		if v, ok := requiredEnum(c, "Status", *p.Status, models.ReminderStatus.IsValid); ok {
			changes["status"] = v
		}
	}

	return finish(c, changes)
}

// dueAt combines a required date with an optional HH:MM time.
func (c *checker) dueAt(date, clock string) (time.Time, bool) {
	day, ok := c.date("Due date", date, true)
	if !ok {
		return time.Time{}, false
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day.Add(DefaultReminderTime), true
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		c.fail("Due time must be HH:MM")
		return time.Time{}, false
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), true
}

// optionalRef turns an empty reference into NULL.
func optionalRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
