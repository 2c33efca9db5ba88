package admins

import (
	"net/http"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"
)

// GET /v1/admin/dashboard
//
// Back-office overview: order counts per status, overdue kits in the field
// and products running low on stock.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	type statusCount struct {
		OrderStatus string `json:"order_status"`
		Count       int64  `json:"count"`
	}
	var byStatus []statusCount
	if err := db.Model(&models.Order{}).Select("order_status, COUNT(*) as count").Group("order_status").Scan(&byStatus).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load dashboard"})
		return
	}

	var overdue int64
	today := time.Now().Truncate(24 * time.Hour)
	db.Model(&models.Order{}).
		Where("order_status = ? AND return_date IS NOT NULL AND return_date < ?", models.StatusShipped, today).
		Count(&overdue)

	var lowStock []models.Product
	db.Where("product_qty <= ?", 1).Order("product_qty ASC, product_name ASC").Find(&lowStock)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"orders_by_status": byStatus,
			"overdue_orders":   overdue,
			"low_stock":        lowStock,
		},
	})
}
