package forms

import (
	"testing"
	"time"

	"followuply/internal/models"
)

func TestValidateReminder(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		res := ValidateReminder(ReminderInput{Title: "Call Jane", DueDate: "2026-03-20"}, testNow)
		if !res.IsValid {
			t.Fatalf("errors %v", res.Errors)
		}
		want := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
		if !res.Value.DueAt.Equal(want) {
			t.Errorf("DueAt = %v, want %v", res.Value.DueAt, want)
		}
		if res.Value.Priority != models.ReminderPriorityMedium ||
			res.Value.Type != models.ReminderTypeFollowUp ||
			res.Value.Status != models.ReminderStatusPending {
			t.Errorf("defaults = %+v", res.Value)
		}
	})

	t.Run("explicit time", func(t *testing.T) {
		res := ValidateReminder(ReminderInput{Title: "Call", DueDate: "2026-03-20", DueTime: "14:30"}, testNow)
		want := time.Date(2026, 3, 20, 14, 30, 0, 0, time.UTC)
		if !res.Value.DueAt.Equal(want) {
			t.Errorf("DueAt = %v, want %v", res.Value.DueAt, want)
		}
	})

	t.Run("past due warns", func(t *testing.T) {
		res := ValidateReminder(ReminderInput{Title: "Call", DueDate: "2026-03-15", DueTime: "08:00"}, testNow)
		if !res.IsValid || len(res.Warnings) != 1 {
			t.Errorf("res = %+v", res)
		}
	})

	t.Run("invalid fields", func(t *testing.T) {
		tests := []struct {
			name string
			in   ReminderInput
		}{
			{"missing title", ReminderInput{DueDate: "2026-03-20"}},
			{"missing date", ReminderInput{Title: "Call"}},
			{"bad time", ReminderInput{Title: "Call", DueDate: "2026-03-20", DueTime: "25:00"}},
			{"bad client", ReminderInput{Title: "Call", DueDate: "2026-03-20", ClientID: "42"}},
			{"bad priority", ReminderInput{Title: "Call", DueDate: "2026-03-20", Priority: "asap"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if ValidateReminder(tt.in, testNow).IsValid {
					t.Error("expected invalid")
				}
			})
		}
	})
}

func TestValidateReminderPatch(t *testing.T) {
	str := func(s string) *string { return &s }

	res := ValidateReminderPatch(ReminderPatch{DueTime: str("10:00")}, testNow)
	if res.IsValid {
		t.Error("time without date should be rejected")
	}

	res = ValidateReminderPatch(ReminderPatch{DueDate: str("2026-04-01"), ClientID: str("")}, testNow)
	if !res.IsValid {
		t.Fatalf("errors %v", res.Errors)
	}
	if ref, ok := res.Value["client_id"].(*string); !ok || ref != nil {
		t.Errorf("client_id = %#v, want nil reference", res.Value["client_id"])
	}
	if !res.Value.Has("due_at") {
		t.Errorf("Changes = %v", res.Value)
	}
}
