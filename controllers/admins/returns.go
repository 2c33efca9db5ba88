package admins

import (
	"net/http"
	"strconv"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"
)

// GET /v1/admin/returns?order_id=
//
// Back-office view of return submissions, newest first. All rows are kept;
// the latest one per order is the current status.
func ListReturnsHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	q := db.Model(&models.ReturnRequest{}).Order("submitted_at DESC, id DESC")
	if s := r.URL.Query().Get("order_id"); s != "" {
		id64, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id64 == 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order_id"})
			return
		}
		q = q.Where("order_id = ?", uint(id64))
	}

	var returns []models.ReturnRequest
	if err := q.Find(&returns).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load returns"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"returns": returns},
	})
}
