package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// GET /v1/admin/orders?status=
func ListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	q := db.Model(&models.Order{}).Order("created_at DESC")
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		q = q.Where("order_status = ?", status)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load orders"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"orders": orders},
	})
}

// GET /v1/admin/orders/overdue
//
// Orders that are out in the field past their return date.
func ListOverdueOrdersHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var orders []models.Order
	today := time.Now().Truncate(24 * time.Hour)
	if err := db.Where("order_status = ? AND return_date IS NOT NULL AND return_date < ?", models.StatusShipped, today).
		Order("return_date ASC").Find(&orders).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load overdue orders"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"orders": orders},
	})
}

// PUT /v1/admin/orders/{id}
//
// Lifecycle transition: updates status, both tracking pairs, the return
// label and the approval bookkeeping in a single write. Approval fields
// only move when a program manager drives the transition.
func UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetUserRole(r)
	actor := middleware.GetUserEmail(r)

	id, err := orderIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order id"})
		return
	}

	// Multipart so a return-label file can ride along with the fields.
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid form data"})
			return
		}
	}

	db := database.DB

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Unknown status strings pass through unchanged; the back office uses
	// ad-hoc statuses for edge cases and only the known ones move the
	// approval bookkeeping.
	status := strings.TrimSpace(r.FormValue("order_status"))
	if status == "" {
		status = order.OrderStatus
	}

	now := time.Now()
	updates := map[string]interface{}{
		"order_status":         status,
		"tracking_number":      utils.StringPtr(strings.TrimSpace(r.FormValue("tracking_number"))),
		"tracking_number_link": utils.StringPtr(strings.TrimSpace(r.FormValue("tracking_number_link"))),
		"return_tracking":      utils.StringPtr(strings.TrimSpace(r.FormValue("return_tracking"))),
		"return_tracking_link": utils.StringPtr(strings.TrimSpace(r.FormValue("return_tracking_link"))),
		"updated_date":         now,
	}

	// New label replaces the stored one; otherwise the existing reference
	// is preserved.
	var replacedLabel string
	if file, header, err := r.FormFile("return_label"); err == nil {
		defer file.Close()
		key := utils.ReturnLabelKey(order.ID, header.Filename)
		if err := utils.UploadObject(key, file); err != nil {
			log.Printf("[orders] label upload for order=%d failed: %v", order.ID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store return label"})
			return
		}
		updates["return_label"] = key
		replacedLabel = utils.GetStringValue(order.ReturnLabel)
	}

	for col, val := range models.ApprovalUpdates(role, status, actor, now) {
		updates[col] = val
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		log.Printf("[orders] update order=%d failed: %v", order.ID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update order"})
		return
	}

	// The superseded label object is only garbage after the row points at
	// the new one, so the cleanup runs post-update and is best effort.
	if replacedLabel != "" {
		if err := utils.DeleteObject(replacedLabel); err != nil {
			log.Printf("[orders] stale label cleanup for order=%d failed: %v", order.ID, err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Order updated"})
}

// POST /v1/admin/orders/{id}/notify
//
// Emails the requester the order's current status. Kept separate from the
// transition itself so operators choose when the notification goes out.
func NotifyOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := orderIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order id"})
		return
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	email := utils.BuildStatusChangeEmail(
		order.SalesEmail,
		order.OrderRef,
		order.OrderStatus,
		utils.GetStringValue(order.TrackingNumber),
		utils.GetStringValue(order.TrackingNumberLink),
	)
	if err := utils.SendEmail(email); err != nil {
		log.Printf("[orders] status email for order=%d failed: %v", order.ID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to send notification"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Notification sent"})
}

func orderIDFromPath(r *http.Request) (uint, error) {
	idStr := mux.Vars(r)["id"]
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id64 == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id64), nil
}
