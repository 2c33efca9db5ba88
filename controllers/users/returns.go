package users

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"gorm.io/gorm"
)

type SubmitReturnRequest struct {
	OrderID        uint   `json:"order_id"`
	SubmittedBy    string `json:"submitted_by" validate:"required"`
	ProductsDemod  string `json:"products_demod"`
	ReturnFrom     string `json:"return_from"`
	DemoPurpose    string `json:"demo_purpose" validate:"purpose"`
	DemoCount      int    `json:"demo_count"`
	IsOngoing      bool   `json:"is_ongoing"`
	IsRegistered   bool   `json:"is_registered"`
	DealNumber     string `json:"deal_number"`
	EventDemoCount int    `json:"event_demo_count"`
	Notes          string `json:"notes"`
}

// POST /v1/returns
//
// Records a return submission. Always inserts a new row; inventory is not
// restored here, restock is an explicit admin operation.
func SubmitReturnHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req SubmitReturnRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.OrderID == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "order_id is required"})
		return
	}

	db := database.DB

	var order models.Order
	if err := db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	ret := models.ReturnRequest{
		OrderID:        order.ID,
		SubmittedBy:    req.SubmittedBy,
		ProductsDemod:  utils.StringPtr(req.ProductsDemod),
		ReturnFrom:     utils.StringPtr(req.ReturnFrom),
		DemoPurpose:    utils.StringPtr(req.DemoPurpose),
		DemoCount:      req.DemoCount,
		IsOngoing:      req.IsOngoing,
		IsRegistered:   req.IsRegistered,
		DealNumber:     utils.StringPtr(req.DealNumber),
		EventDemoCount: req.EventDemoCount,
		Notes:          utils.StringPtr(req.Notes),
		SubmitReturn:   "yes",
		SubmittedAt:    time.Now(),
	}

	if err := db.Create(&ret).Error; err != nil {
		log.Printf("[returns] insert failed for order=%d: %v", order.ID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to record return"})
		return
	}

	// Confirmation email carries a return-label download link when one is
	// on file for the order.
	labelURL := ""
	if order.ReturnLabel != nil && *order.ReturnLabel != "" {
		if url, err := utils.PresignObject(*order.ReturnLabel, 7*24*3600); err == nil {
			labelURL = url
		} else {
			log.Printf("[returns] presign label for order=%d failed: %v", order.ID, err)
		}
	}
	utils.SendBestEffort(utils.BuildReturnReceivedEmail(order.SalesEmail, order.OrderRef, labelURL))

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Return recorded",
		Data:    map[string]interface{}{"return_id": ret.ID},
	})
}

// returnStatusRow is the joined "current return status" read: the latest
// feedback row plus the order's return-shipment tracking in one result.
type returnStatusRow struct {
	models.ReturnRequest
	ReturnTracking     *string `json:"return_tracking"`
	ReturnTrackingLink *string `json:"return_tracking_link"`
	OrderStatus        string  `json:"order_status"`
}

// GET /v1/orders/{id}/return-status
//
// The current return status is the most recent submission by submitted_at,
// ties broken by highest id.
func ReturnStatusHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	id, err := orderIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order id"})
		return
	}

	db := database.DB

	var row returnStatusRow
	err = db.Table("return_requests").
		Select("return_requests.*, orders.return_tracking, orders.return_tracking_link, orders.order_status").
		Joins("LEFT JOIN orders ON orders.id = return_requests.order_id").
		Where("return_requests.order_id = ?", id).
		Order("return_requests.submitted_at DESC, return_requests.id DESC").
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "No return submitted for this order"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    row,
	})
}
