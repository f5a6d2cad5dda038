package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"followuply/internal/testutil"
)

// testClock is a settable time source for Policy.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func testPolicy(clock *testClock) Policy {
	return Policy{UndoWindow: DefaultUndoWindow, Now: clock.Now}
}

func setup(t *testing.T) (*gorm.DB, *testClock) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	return db, newTestClock()
}

func strPtr(s string) *string { return &s }

func auditCount(t *testing.T, db *gorm.DB, action, resourceID string) int64 {
	t.Helper()
	var n int64
	q := db.Table("audit_logs").Where("action = ?", action)
	if resourceID != "" {
		q = q.Where("resource_id = ?", resourceID)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count audit logs: %v", err)
	}
	return n
}
