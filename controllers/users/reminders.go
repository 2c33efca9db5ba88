package users

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"
)

// Scheduled reminder jobs. Both run as periodic batch calls; the per-order
// reminder_sent / overdue10_sent flags make repeated runs idempotent.

// overdueGraceDays is how long past the return date an order sits before
// the one-time overdue notice goes out.
const overdueGraceDays = 10

func reminderWindowDays() int {
	days := 3
	if s := os.Getenv("REMINDER_WINDOW_DAYS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			days = v
		}
	}
	return days
}

// ReminderDue reports whether a return-date reminder should go out: the
// order is shipped, the return date falls within the window, and no
// reminder has been sent yet.
func ReminderDue(status string, returnDate *time.Time, reminderSent bool, now time.Time, windowDays int) bool {
	if status != models.StatusShipped || returnDate == nil || reminderSent {
		return false
	}
	cutoff := now.AddDate(0, 0, windowDays)
	return !returnDate.After(cutoff)
}

// OverdueNoticeDue reports whether the one-time overdue notice should go
// out: shipped, graceDays or more past the return date, not yet sent.
func OverdueNoticeDue(status string, returnDate *time.Time, overdueSent bool, now time.Time, graceDays int) bool {
	if status != models.StatusShipped || returnDate == nil || overdueSent {
		return false
	}
	return !returnDate.After(now.AddDate(0, 0, -graceDays))
}

// POST /v1/cron/return-reminders (protected via X-CRON-KEY header)
func CronReturnRemindersHandler(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-CRON-KEY")
	if key == "" || key != os.Getenv("CRON_KEY") {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	now := time.Now()
	window := reminderWindowDays()

	var due []models.Order
	cutoff := now.AddDate(0, 0, window)
	if err := db.Where("order_status = ? AND return_date IS NOT NULL AND return_date <= ? AND reminder_sent = ?", models.StatusShipped, cutoff, false).Find(&due).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	processed := 0
	for i := range due {
		order := due[i]
		if !ReminderDue(order.OrderStatus, order.ReturnDate, order.ReminderSent, now, window) {
			continue
		}
		if err := utils.SendEmail(utils.BuildReturnReminderEmail(order.SalesEmail, order.OrderRef, *order.ReturnDate)); err != nil {
			log.Printf("[reminders] send for order=%d failed: %v", order.ID, err)
			continue
		}
		// flag only after a successful send so a failed run retries
		if err := db.Model(&order).Update("reminder_sent", true).Error; err != nil {
			log.Printf("[reminders] flag order=%d failed: %v", order.ID, err)
			continue
		}
		processed++
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Reminders processed",
		Data:    map[string]interface{}{"processed": processed, "candidates": len(due)},
	})
}

// POST /v1/cron/overdue-reminders (protected via X-CRON-KEY header)
func CronOverdueRemindersHandler(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("X-CRON-KEY")
	if key == "" || key != os.Getenv("CRON_KEY") {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	db := database.DB
	now := time.Now()

	var due []models.Order
	cutoff := now.AddDate(0, 0, -overdueGraceDays)
	if err := db.Where("order_status = ? AND return_date IS NOT NULL AND return_date <= ? AND overdue10_sent = ?", models.StatusShipped, cutoff, false).Find(&due).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	processed := 0
	for i := range due {
		order := due[i]
		if !OverdueNoticeDue(order.OrderStatus, order.ReturnDate, order.Overdue10Sent, now, overdueGraceDays) {
			continue
		}
		if err := utils.SendEmail(utils.BuildOverdueEmail(order.SalesEmail, order.OrderRef, *order.ReturnDate)); err != nil {
			log.Printf("[reminders] overdue send for order=%d failed: %v", order.ID, err)
			continue
		}
		if err := db.Model(&order).Update("overdue10_sent", true).Error; err != nil {
			log.Printf("[reminders] flag order=%d failed: %v", order.ID, err)
			continue
		}
		processed++
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Overdue notices processed",
		Data:    map[string]interface{}{"processed": processed, "candidates": len(due)},
	})
}
