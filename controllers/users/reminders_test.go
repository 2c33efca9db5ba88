package users

import (
	"testing"
	"time"

	"github.com/works360/meta-partner-demos-sub000/models"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestReminderDue_WithinWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !ReminderDue(models.StatusShipped, date(2026, 3, 12), false, now, 3) {
		t.Fatal("return date 2 days out should be due")
	}
	if !ReminderDue(models.StatusShipped, date(2026, 3, 9), false, now, 3) {
		t.Fatal("already-past return date should be due")
	}
}

func TestReminderDue_OutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if ReminderDue(models.StatusShipped, date(2026, 3, 20), false, now, 3) {
		t.Fatal("return date 10 days out should not be due")
	}
}

func TestReminderDue_Suppressed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if ReminderDue(models.StatusShipped, date(2026, 3, 11), true, now, 3) {
		t.Fatal("already-sent reminder must not repeat")
	}
	if ReminderDue(models.StatusProcessing, date(2026, 3, 11), false, now, 3) {
		t.Fatal("only shipped orders get reminders")
	}
	if ReminderDue(models.StatusShipped, nil, false, now, 3) {
		t.Fatal("nil return date must not be due")
	}
}

func TestOverdueNoticeDue(t *testing.T) {
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	if !OverdueNoticeDue(models.StatusShipped, date(2026, 3, 10), false, now, 10) {
		t.Fatal("exactly 10 days overdue should be due")
	}
	if OverdueNoticeDue(models.StatusShipped, date(2026, 3, 11), false, now, 10) {
		t.Fatal("9 days overdue should not be due")
	}
	if OverdueNoticeDue(models.StatusShipped, date(2026, 3, 1), true, now, 10) {
		t.Fatal("overdue notice is one-time")
	}
	if OverdueNoticeDue(models.StatusReturned, date(2026, 3, 1), false, now, 10) {
		t.Fatal("returned orders are no longer overdue")
	}
}
